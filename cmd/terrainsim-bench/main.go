// Headless stress run: steps the simulation at a fixed rate while launching
// projectiles and reports how long each step takes as the body count grows.
package main

import (
	"flag"
	"math/rand"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"terrainsim/internal/config"
	"terrainsim/internal/sim"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "settings file")
	frames := flag.Int("frames", 1200, "frames to simulate")
	launchEvery := flag.Int("launch-every", 10, "launch a projectile every N frames (0 disables)")
	objects := flag.Int("objects", -1, "initial objects (-1 keeps the configured count)")
	report := flag.Int("report", 120, "log a summary every N frames")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bench",
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load settings", "err", err)
	}
	cfg.Seed = *seed
	if *objects >= 0 {
		cfg.Objects.InitialCount = *objects
	}
	logger.SetLevel(cfg.Level())

	ctx, err := sim.NewContext(cfg, logger.WithPrefix("sim"))
	if err != nil {
		logger.Fatal("create simulation", "err", err)
	}

	start := time.Now()
	if err := ctx.Populate(cfg.Objects.InitialCount); err != nil {
		logger.Fatal("populate", "err", err)
	}
	logger.Info("populated", "objects", cfg.Objects.InitialCount, "took", time.Since(start))

	rng := rand.New(rand.NewSource(*seed))
	dt := cfg.Physics.FixedTimeStep
	window := make([]time.Duration, 0, *report)
	var total time.Duration
	var last sim.StepStats

	for frame := 1; frame <= *frames; frame++ {
		if *launchEvery > 0 && frame%*launchEvery == 0 {
			ctx.Push(sim.Launch{Pointer: mgl32.Vec2{rng.Float32()*1.6 - 0.8, rng.Float32()*1.2 - 0.6}})
		}

		t0 := time.Now()
		stats := ctx.Tick(dt)
		elapsed := time.Since(t0)

		total += elapsed
		last = stats
		window = append(window, elapsed)

		if *report > 0 && len(window) == *report {
			logWindow(logger, frame, ctx.Registry.Len(), last, window)
			window = window[:0]
		}
	}
	if len(window) > 0 {
		logWindow(logger, *frames, ctx.Registry.Len(), last, window)
	}

	avg := total / time.Duration(max(*frames, 1))
	logger.Info("done",
		"frames", *frames,
		"bodies", ctx.Registry.Len(),
		"total", total,
		"avg", avg,
		"realtime", avg < time.Duration(float64(dt)*float64(time.Second)),
	)
}

func logWindow(logger *log.Logger, frame, bodies int, last sim.StepStats, window []time.Duration) {
	sorted := slices.Clone(window)
	slices.Sort(sorted)

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}
	logger.Info("step",
		"frame", frame,
		"bodies", bodies,
		"synced", last.Synced,
		"contacts", last.Contacts,
		"avg", sum/time.Duration(len(sorted)),
		"p95", sorted[len(sorted)*95/100],
		"max", sorted[len(sorted)-1],
	)
}
