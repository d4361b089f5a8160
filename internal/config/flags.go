package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagMesh       = flag.String("mesh", "", "Mesh file to view (.obj, .gltf, .glb)")
	flagTexture    = flag.String("texture", "", "Albedo texture")
	flagNormal     = flag.String("normal", "", "Tangent-space normal map")
	flagMode       = flag.String("tangent-mode", "", "Tangent mode: overwrite or accumulate")
	flagDegenerate = flag.String("degenerate", "", "Degenerate UV policy: propagate, skip or reject")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
// A single positional argument is taken as the mesh path.
func ParseFlags() {
	flag.Parse()
	if *flagMesh == "" && flag.NArg() > 0 {
		*flagMesh = flag.Arg(0)
	}
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMesh != "" {
		cfg.Scene.Mesh = *flagMesh
	}
	if *flagTexture != "" {
		cfg.Scene.Texture = *flagTexture
	}
	if *flagNormal != "" {
		cfg.Scene.NormalTexture = *flagNormal
	}
	if *flagMode != "" {
		cfg.Tangents.Mode = *flagMode
	}
	if *flagDegenerate != "" {
		cfg.Tangents.Degenerate = *flagDegenerate
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
