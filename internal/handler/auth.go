package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/porygon/mealplanner/internal/ctxkeys"
	"github.com/porygon/mealplanner/internal/identity"
	"github.com/porygon/mealplanner/internal/middleware"
	"github.com/porygon/mealplanner/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

type sessionRequest struct {
	Token   string `json:"token"`
	IDToken string `json:"idToken"`
	Name    string `json:"name"`
}

// Session exchanges an identity provider token for the app user. The token
// may come in the body or the Authorization header.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token := req.Token
	if token == "" {
		token = req.IDToken
	}
	if token == "" {
		token = middleware.BearerToken(r)
	}
	if token == "" {
		writeError(w, http.StatusBadRequest, "ID token required")
		return
	}

	user, err := h.authService.Session(r.Context(), token, req.Name)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			writeError(w, http.StatusForbidden, "Invalid or expired token")
			return
		}
		slog.Error("failed to create session", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authService.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if writeInputError(w, err) {
			return
		}
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			writeError(w, http.StatusConflict, "An account with this email already exists")
			return
		}
		slog.Error("failed to register user", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": user, "token": token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, service.ErrPasswordlessLogin):
			writeError(w, http.StatusUnauthorized, "This account signs in with its identity provider")
		default:
			slog.Error("failed to log in", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to log in")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user, "token": token})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// DeleteAccount removes the user and everything stored for them.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.Delete(user.ID)
	if err != nil {
		slog.Error("failed to delete account", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
