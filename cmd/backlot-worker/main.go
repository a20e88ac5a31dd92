package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backlot/internal/config"
	"backlot/internal/db"
	"backlot/internal/sim"
	"backlot/internal/sim/tuning"
	"backlot/internal/store"
	"backlot/internal/story"
	"backlot/internal/studio"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWorkerFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	tun := tuning.Defaults()
	if cfg.TuningPath != "" {
		tun, err = tuning.Load(cfg.TuningPath)
		if err != nil {
			logger.Error("load tuning failed", "path", cfg.TuningPath, "err", err)
			os.Exit(1)
		}
	}

	st := store.New(pool, logger)
	var generator sim.StoryGenerator = story.NewLocal()
	if cfg.GeminiAPIKey != "" {
		generator = story.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	}
	engine := sim.New(st, generator, logger, sim.WithTuning(tun))
	svc := studio.NewService(st, engine, logger)

	if cfg.RunOnce {
		if err := svc.AdvanceAll(ctx); err != nil {
			logger.Error("advance sweep failed", "err", err)
			os.Exit(1)
		}
		logger.Info("worker run-once completed")
		return
	}

	ticker := time.NewTicker(cfg.AdvanceEvery)
	defer ticker.Stop()

	logger.Info("worker started", "advance_every", cfg.AdvanceEvery.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker shutdown")
			return
		case <-ticker.C:
			if err := svc.AdvanceAll(ctx); err != nil {
				logger.Error("advance sweep failed", "err", err)
				continue
			}
			logger.Info("advance sweep complete")
		}
	}
}
