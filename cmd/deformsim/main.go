// Package main is the entry point for the headless deformation simulation.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/meshdeform/internal/config"
	"github.com/Faultbox/meshdeform/internal/logger"
)

var (
	flagSaveConfig     = flag.String("save-config", "", "Write the effective config to this path and continue")
	flagSaveUserConfig = flag.Bool("save-user-config", false, "Write the effective config to the user config directory and continue")
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
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Mesh Deform Simulation ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if *flagSaveConfig != "" {
		if err := cfg.SaveTo(*flagSaveConfig); err != nil {
			logger.Error("failed to save config", zap.String("path", *flagSaveConfig), zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", *flagSaveConfig))
	}
	if *flagSaveUserConfig {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("failed to save user config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", path))
	}

	sim, err := newSimulation(cfg)
	if err != nil {
		logger.Error("failed to create simulation", zap.Error(err))
		os.Exit(1)
	}

	stats, err := sim.Run()
	if err != nil {
		logger.Error("simulation error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("simulation finished",
		zap.Int("ticks", stats.Ticks),
		zap.Int("passes", stats.Passes),
		zap.Int("deformed_vertices", stats.DeformedVertCount),
		zap.Uint64("publishes", stats.Publishes),
		zap.Float32("deepest", stats.Deepest),
		zap.Duration("elapsed", stats.Elapsed),
	)
}
