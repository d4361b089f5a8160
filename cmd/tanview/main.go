// Package main is the entry point for the tanview normal-map viewer.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/tanview/internal/assets"
	"github.com/Faultbox/tanview/internal/config"
	"github.com/Faultbox/tanview/internal/engine/scene"
	"github.com/Faultbox/tanview/internal/engine/shader"
	"github.com/Faultbox/tanview/internal/logger"
	"github.com/Faultbox/tanview/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.InitFromConfig(cfg.Logging.Logger()); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== tanview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	am := assets.NewManager()
	defer am.Close()
	for _, dir := range cfg.Scene.AssetDirs {
		if err := am.AddDir(dir); err != nil {
			logger.Warn("skipping asset dir", zap.Error(err))
		}
	}

	if cfg.Scene.Mesh == "" {
		path, err := dialog.File().
			Title("Open mesh").
			Filter("Meshes", "obj", "gltf", "glb").
			Load()
		if err != nil {
			if errors.Is(err, dialog.ErrCancelled) {
				return scene.ErrNoMesh
			}
			return err
		}
		cfg.Scene.Mesh = path
	}

	meshes, err := scene.LoadMeshes(am, cfg.Scene.Mesh)
	if err != nil {
		return err
	}

	v, err := viewer.New(cfg, am, meshes)
	if err != nil {
		if errors.Is(err, shader.ErrCompile) || errors.Is(err, shader.ErrLink) {
			dialog.Message("%v", err).Title("Shader error").Error()
		}
		return err
	}
	defer v.Close()

	return v.Run()
}
