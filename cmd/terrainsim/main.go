package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"terrainsim/internal/assets"
	"terrainsim/internal/config"
	"terrainsim/internal/game"
	"terrainsim/internal/sim"
)

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	configPath := flag.String("config", config.DefaultPath, "settings file")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	seed := flag.Int64("seed", 0, "random seed (0 keeps the configured one)")
	width := flag.Int("width", 0, "window width")
	height := flag.Int("height", 0, "window height")
	material := flag.String("material", "", "ball material JSON file")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "terrainsim",
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load settings", "err", err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *material != "" {
		cfg.MaterialFile = *material
	}
	logger.SetLevel(cfg.Level())

	ctx, err := sim.NewContext(cfg, logger)
	if err != nil {
		logger.Fatal("create simulation", "err", err)
	}

	assets.Init()
	defer assets.Unload()
	if cfg.MaterialFile != "" {
		m, err := assets.LoadMaterial(cfg.MaterialFile, ctx.Params.Ball)
		if err != nil {
			logger.Warn("ball material not loaded", "file", cfg.MaterialFile, "err", err)
		} else {
			ctx.SetBallMaterial(*m)
		}
	}

	if err := ctx.Populate(cfg.Objects.InitialCount); err != nil {
		logger.Fatal("populate", "err", err)
	}

	if err := game.New(ctx, logger).Run(); err != nil {
		logger.Error("run", "err", err)
		os.Exit(1)
	}
}
