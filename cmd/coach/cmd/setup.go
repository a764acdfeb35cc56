package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/porygon/mealplanner/internal/app"
	"github.com/porygon/mealplanner/internal/config"
	"github.com/porygon/mealplanner/internal/logger"
	"github.com/porygon/mealplanner/internal/model"
)

// load reads configuration and installs the logger writing to out.
// Commands that own stdout (mcp, chat) log to stderr.
func load(out io.Writer) *config.Config {
	cfg := config.Load()
	logger.Init(logger.Options{
		Development: cfg.IsDevelopment(),
		Environment: cfg.AppEnv,
		SentryDSN:   cfg.SentryDSN,
		Output:      out,
	})
	return cfg
}

// openApp builds the application and resolves the user the command acts as.
func openApp(ctx context.Context, cfg *config.Config, email string) (*app.App, *model.User, error) {
	if email == "" {
		return nil, nil, fmt.Errorf("--user is required")
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	user, err := a.UserService.EnsureByEmail(ctx, email)
	if err != nil {
		a.Close()
		return nil, nil, fmt.Errorf("failed to resolve user %s: %w", email, err)
	}
	return a, user, nil
}
