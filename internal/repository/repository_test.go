package repository

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/porygon/mealplanner/internal/db"
	"github.com/porygon/mealplanner/internal/model"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Init("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.RunMigrations(conn.DB, "sqlite"); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return conn
}

func createTestUser(t *testing.T, conn *sqlx.DB, email string) *model.User {
	t.Helper()

	user := &model.User{Email: email}
	if err := NewUserRepository(conn).Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }
