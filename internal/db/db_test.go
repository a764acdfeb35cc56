package db

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nested", "coach.db") + "?_pragma=foreign_keys(1)"
}

func TestInitCreatesDirectoryAndMigrates(t *testing.T) {
	database, err := Init("sqlite", openTestDB(t))
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := RunMigrations(database.DB, "sqlite"); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	tables := []string{"users", "user_preferences", "progress_entries", "user_stats", "badges", "meal_plans", "inventory_items"}
	for _, table := range tables {
		var name string
		err := database.Get(&name, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	version, err := Version(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if version != 3 {
		t.Errorf("version = %d, want 3", version)
	}
}

func TestMigrateDownRollsBackOneStep(t *testing.T) {
	database, err := Init("sqlite", openTestDB(t))
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := RunMigrations(database.DB, "sqlite"); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	if err := MigrateDown(database.DB, "sqlite"); err != nil {
		t.Fatalf("MigrateDown failed: %v", err)
	}

	var count int
	err = database.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'inventory_items'`)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 0 {
		t.Error("inventory_items should be dropped after one rollback")
	}
}

func TestGetDialect(t *testing.T) {
	if got := getDialect("pgx"); got != "postgres" {
		t.Errorf("getDialect(pgx) = %q", got)
	}
	if got := getDialect("mysql"); got != "mysql" {
		t.Errorf("unknown drivers should pass through, got %q", got)
	}
}
