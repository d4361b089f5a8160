// Package config handles viewer configuration loading and management.
package config

import "github.com/Faultbox/tanview/internal/logger"

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Tangents TangentsConfig `yaml:"tangents"`
	Logging  LoggingConfig  `yaml:"logging"`

	// File the config was read from; empty when only defaults and flags apply.
	path string
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	FOV        float32    `yaml:"fov"` // vertical, degrees
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	ClearColor [3]float32 `yaml:"clear_color"`
}

// SceneConfig describes what to load and how to place it.
type SceneConfig struct {
	Mesh          string     `yaml:"mesh"`
	Texture       string     `yaml:"texture"`
	NormalTexture string     `yaml:"normal_texture"`
	AssetDirs     []string   `yaml:"asset_dirs"` // searched in order for relative paths
	LightDir      [3]float32 `yaml:"light_direction"`
	Transform     Transform  `yaml:"transform"`
}

// Transform is applied to the model matrix in order: translate, rotate, scale.
type Transform struct {
	Translate  [3]float32 `yaml:"translate"`
	RotateDeg  float32    `yaml:"rotate_deg"`
	RotateAxis [3]float32 `yaml:"rotate_axis"`
	Scale      [3]float32 `yaml:"scale"`
}

// TangentsConfig selects the tangent generation policy.
type TangentsConfig struct {
	Mode       string `yaml:"mode"`       // overwrite, accumulate
	Degenerate string `yaml:"degenerate"` // propagate, skip, reject
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Logger converts the logging section for logger.InitFromConfig.
func (l LoggingConfig) Logger() logger.Config {
	return logger.Config{
		Level:      l.Level,
		LogFile:    l.LogFile,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        45,
			Near:       0.1,
			Far:        1000,
			ClearColor: [3]float32{0.1, 0.1, 0.12},
		},
		Scene: SceneConfig{
			AssetDirs: []string{"."},
			LightDir:  [3]float32{-0.5, -1, -0.5},
			Transform: Transform{
				RotateAxis: [3]float32{0, 1, 0},
				Scale:      [3]float32{1, 1, 1},
			},
		},
		Tangents: TangentsConfig{
			Mode:       "overwrite",
			Degenerate: "propagate",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
