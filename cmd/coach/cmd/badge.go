package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func BadgeCmd() *cobra.Command {
	badgeCmd := &cobra.Command{
		Use:   "badge",
		Short: "Manage user badges",
	}

	var email, name, description string
	awardCmd := &cobra.Command{
		Use:   "award",
		Short: "Award a badge to a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			cfg := load(os.Stderr)
			a, user, err := openApp(cmd.Context(), cfg, email)
			if err != nil {
				return err
			}
			defer a.Close()

			badge, err := a.BadgeService.Award(user.ID, name, description)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s awarded to %s\n", color.YellowString("★"), badge.BadgeName, user.Email)
			return nil
		},
	}
	awardCmd.Flags().StringVarP(&email, "user", "u", "", "email of the user")
	awardCmd.Flags().StringVar(&name, "name", "", "badge name")
	awardCmd.Flags().StringVar(&description, "description", "", "badge description")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := load(os.Stderr)
			a, user, err := openApp(cmd.Context(), cfg, email)
			if err != nil {
				return err
			}
			defer a.Close()

			badges, err := a.BadgeService.List(user.ID)
			if err != nil {
				return err
			}
			if len(badges) == 0 {
				fmt.Println("no badges yet")
				return nil
			}
			for _, b := range badges {
				fmt.Printf("%s  %-20s %s\n", b.EarnedAt.Format("2006-01-02"), b.BadgeName, color.New(color.Faint).Sprint(b.Icon+"/"+b.Color))
			}
			return nil
		},
	}
	listCmd.Flags().StringVarP(&email, "user", "u", "", "email of the user")

	badgeCmd.AddCommand(awardCmd, listCmd)
	return badgeCmd
}
