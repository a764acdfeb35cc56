package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/porygon/mealplanner/internal/mcp"
	"github.com/spf13/cobra"
)

const mcpVersion = "1.0.0"

func MCPCmd() *cobra.Command {
	var email string

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start an MCP server for a user",
		Long: `Start a Model Context Protocol server over stdin/stdout that acts as one
user. Logs go to stderr.

AVAILABLE TOOLS:

  chat            Run a chat turn with the coach
  get_state       Preferences, points, streak, badges, recent check-ins
  check_in        Record a meal check-in
  grocery_list    Items to buy for the planned pantry
  set_inventory   Set an item's on-hand quantity
  get_meal_plan   Newest saved plan for a week
  get_outlook     Weekly milestone timeline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := load(os.Stderr)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, user, err := openApp(ctx, cfg, email)
			if err != nil {
				return err
			}
			defer a.Close()

			server := mcp.NewServer(mcp.Services{
				Chat:      a.ChatService,
				Progress:  a.ProgressService,
				MealPlans: a.MealPlanService,
				Inventory: a.InventoryService,
				Outlook:   a.OutlookService,
			}, user.ID, mcpVersion)

			return server.Serve(ctx)
		},
	}

	mcpCmd.Flags().StringVarP(&email, "user", "u", "", "email of the user the tools act as")
	return mcpCmd
}
