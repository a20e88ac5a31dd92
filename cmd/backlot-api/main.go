package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backlot/internal/api"
	"backlot/internal/auth"
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

	cfg, err := config.LoadAPIFromEnv()
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

	authClient := auth.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	studioSvc := studio.NewService(st, engine, logger)

	server := api.New(cfg, logger, authClient, studioSvc)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("backlot api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
