package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/porygon/mealplanner/internal/app"
	"github.com/porygon/mealplanner/internal/config"
	"github.com/porygon/mealplanner/internal/logger"
	"github.com/porygon/mealplanner/internal/routes"
)

func main() {
	cfg := config.Load()

	logger.Init(logger.Options{
		Development: cfg.IsDevelopment(),
		Environment: cfg.AppEnv,
		SentryDSN:   cfg.SentryDSN,
	})
	defer logger.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	err = routes.Serve(ctx, app)
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}
