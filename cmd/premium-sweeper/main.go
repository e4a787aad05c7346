package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	premiumsweeper "github.com/magabrotheeeer/parking-service/internal/app/premium-sweeper"
	"github.com/magabrotheeeer/parking-service/internal/config"
	"github.com/magabrotheeeer/parking-service/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)
	logger.Info("starting premium-sweeper",
		slog.String("env", cfg.Env),
		slog.String("schedule", cfg.Sweeper.Schedule),
		slog.String("timezone", cfg.Sweeper.Timezone))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := premiumsweeper.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize premium-sweeper", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("premium-sweeper stopped with error", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("premium-sweeper stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case "dev":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case "prod":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
