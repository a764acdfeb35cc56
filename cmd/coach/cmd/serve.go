package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/porygon/mealplanner/internal/app"
	"github.com/porygon/mealplanner/internal/logger"
	"github.com/porygon/mealplanner/internal/routes"
	"github.com/spf13/cobra"
)

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := load(os.Stdout)
			defer logger.Flush()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			return routes.Serve(ctx, a)
		},
	}
}
