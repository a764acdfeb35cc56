package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jmoiron/sqlx"
	"github.com/porygon/mealplanner/internal/db"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(driver string, conn *sqlx.DB) error {
				err := db.RunMigrations(conn.DB, driver)
				if err != nil {
					return err
				}
				return printVersion(driver, conn)
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(driver string, conn *sqlx.DB) error {
				err := db.MigrateDown(conn.DB, driver)
				if err != nil {
					return err
				}
				return printVersion(driver, conn)
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(printVersion)
		},
	})

	return migrateCmd
}

func withDB(fn func(driver string, conn *sqlx.DB) error) error {
	cfg := load(os.Stderr)

	conn, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer db.Close(conn)

	return fn(cfg.DBDriver, conn)
}

func printVersion(driver string, conn *sqlx.DB) error {
	version, err := db.Version(conn.DB, driver)
	if err != nil {
		return err
	}
	fmt.Printf("%s %d\n", color.CyanString("schema version"), version)
	return nil
}
