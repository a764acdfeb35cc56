package main

import (
	"os"

	"github.com/porygon/mealplanner/cmd/coach/cmd"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "coach",
		Short:        "Operator tools for the meal planner coach",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.ServeCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.ChatCmd())
	rootCmd.AddCommand(cmd.BadgeCmd())
	rootCmd.AddCommand(cmd.MCPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
