package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/porygon/mealplanner/internal/db"
	"github.com/porygon/mealplanner/internal/identity"
	"github.com/porygon/mealplanner/internal/middleware"
	"github.com/porygon/mealplanner/internal/repository"
	"github.com/porygon/mealplanner/internal/service"
)

type fakeProvider map[string]*identity.Identity

func (f fakeProvider) Verify(ctx context.Context, token string) (*identity.Identity, error) {
	id, ok := f[token]
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	return id, nil
}

func setupAuth(t *testing.T) (*service.AuthService, *AuthHandler) {
	t.Helper()

	conn, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db")+"?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.RunMigrations(conn.DB, "sqlite"); err != nil {
		t.Fatal(err)
	}

	users := repository.NewUserRepository(conn)
	userService := service.NewUserService(users, repository.NewStatsRepository(conn), repository.NewInventoryRepository(conn), nil)
	session := identity.NewSession("secret", time.Hour)
	provider := fakeProvider{
		"good": {UID: "uid-1", Email: "fb@example.com", Name: "Claims Name"},
	}
	authService := service.NewAuthService(userService, users, identity.Chain{session, provider}, session)
	return authService, NewAuthHandler(authService, userService)
}

func postJSON(h http.HandlerFunc, body string, header string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/auth/session", strings.NewReader(body))
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}

func TestSessionTokenSources(t *testing.T) {
	_, h := setupAuth(t)

	tests := []struct {
		name   string
		body   string
		header string
		status int
	}{
		{"body token", `{"token":"good"}`, "", http.StatusOK},
		{"body idToken", `{"idToken":"good"}`, "", http.StatusOK},
		{"header", ``, "Bearer good", http.StatusOK},
		{"missing", `{}`, "", http.StatusBadRequest},
		{"invalid", `{"token":"bad"}`, "", http.StatusForbidden},
		{"malformed body", `{"token":`, "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(h.Session, tt.body, tt.header)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
		})
	}
}

func TestSessionCreatesUserOnce(t *testing.T) {
	_, h := setupAuth(t)

	var first, second struct {
		User struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"user"`
	}
	json.NewDecoder(postJSON(h.Session, `{"token":"good","name":"Picked"}`, "").Body).Decode(&first)
	json.NewDecoder(postJSON(h.Session, `{"token":"good","name":"Other"}`, "").Body).Decode(&second)

	if first.User.ID == "" || first.User.ID != second.User.ID {
		t.Errorf("ids = %q, %q", first.User.ID, second.User.ID)
	}
	if first.User.Name != "Picked" || second.User.Name != "Picked" {
		t.Errorf("names = %q, %q", first.User.Name, second.User.Name)
	}
}

func TestMeThroughRequireAuth(t *testing.T) {
	authService, h := setupAuth(t)
	me := middleware.RequireAuth(authService)(h.Me)

	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	me(rec, r)

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "fb@example.com") {
		t.Errorf("me = %d %s", rec.Code, rec.Body)
	}
}
