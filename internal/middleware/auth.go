package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/porygon/mealplanner/internal/ctxkeys"
	"github.com/porygon/mealplanner/internal/identity"
	"github.com/porygon/mealplanner/internal/service"
)

// BearerToken returns the last whitespace-separated field of the
// Authorization header, so both "Bearer <token>" and a bare token work.
func BearerToken(r *http.Request) string {
	fields := strings.Fields(r.Header.Get("Authorization"))
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// RequireAuth resolves the bearer token to a user and puts it in the request
// context. Provider tokens for unseen subjects create the account.
func RequireAuth(authService *service.AuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Access token required")
				return
			}

			user, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, identity.ErrInvalidToken) {
					slog.Error("failed to authenticate request", "error", err, "path", r.URL.Path)
				}
				writeError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			// Security: Remove password hash from context
			user.PasswordHash = nil

			ctx := ctxkeys.WithUser(r.Context(), user)
			next(w, r.WithContext(ctx))
		}
	}
}
