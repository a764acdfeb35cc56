package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func ChatCmd() *cobra.Command {
	var email string

	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the coach as a user",
		Long: `Start an interactive chat with the coach. Every line runs a full chat
turn: onboarding answers are saved, meal reports become check-ins and pantry
reports update the inventory, exactly as in the app.

The user is created when the email is unknown. Type "exit" to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := load(os.Stderr)
			ctx := cmd.Context()

			a, user, err := openApp(ctx, cfg, email)
			if err != nil {
				return err
			}
			defer a.Close()

			coachLabel := color.New(color.FgGreen, color.Bold).SprintFunc()
			youLabel := color.New(color.FgCyan, color.Bold).SprintFunc()
			faint := color.New(color.Faint).SprintFunc()

			state, err := a.ChatService.State(ctx, user.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s %d points, %d-day streak\n\n", faint("chatting as "+user.Email+":"), state.Stats.Points, state.Stats.Streak)

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print(youLabel("you> "))
				if !scanner.Scan() {
					fmt.Println()
					return scanner.Err()
				}

				message := strings.TrimSpace(scanner.Text())
				if message == "" {
					continue
				}
				if message == "exit" || message == "quit" {
					return nil
				}

				result, err := a.ChatService.Turn(ctx, user.ID, message)
				if err != nil {
					color.Red("error: %v", err)
					continue
				}

				fmt.Printf("%s %s\n", coachLabel("coach>"), result.Response)
				if result.CheckedIn {
					color.Green("  ✓ check-in recorded: %d points, %d-day streak",
						result.State.Stats.Points, result.State.Stats.Streak)
				}
				for _, b := range result.NewBadges {
					color.Yellow("  ★ new badge: %s", b.BadgeName)
				}
				fmt.Println()
			}
		},
	}

	chatCmd.Flags().StringVarP(&email, "user", "u", "", "email of the user to chat as")
	return chatCmd
}
