// Terminal front-end: a top-down height map with bodies drawn as glyphs.
package main

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"terrainsim/internal/config"
	"terrainsim/internal/sim"
	"terrainsim/internal/tui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "settings file")
	logFile := flag.String("log", "", "write logs to this file (the terminal is taken by the view)")
	seed := flag.Int64("seed", 0, "random seed (0 keeps the configured one)")
	fps := flag.Int("fps", 60, "frames per second")
	flag.Parse()

	var out io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatal("open log", "err", err)
		}
		defer f.Close()
		out = f
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "terrainsim-tui",
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("load settings", "err", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	logger.SetLevel(cfg.Level())

	ctx, err := sim.NewContext(cfg, logger)
	if err != nil {
		log.Fatal("create simulation", "err", err)
	}
	if err := ctx.Populate(cfg.Objects.InitialCount); err != nil {
		log.Fatal("populate", "err", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal("create screen", "err", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal("init screen", "err", err)
	}

	frame := time.Second / 60
	if *fps > 0 {
		frame = time.Second / time.Duration(*fps)
	}
	tui.New(ctx, screen, logger).Run(frame)
	screen.Fini()
}
