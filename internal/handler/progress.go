package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/porygon/mealplanner/internal/ctxkeys"
	"github.com/porygon/mealplanner/internal/service"
)

type ProgressHandler struct {
	progressService *service.ProgressService
	badgeService    *service.BadgeService
	statsService    *service.StatsService
}

func NewProgressHandler(progressService *service.ProgressService, statsService *service.StatsService, badgeService *service.BadgeService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		statsService:    statsService,
		badgeService:    badgeService,
	}
}

type checkInRequest struct {
	Date        string  `json:"date"`
	MealsLogged *string `json:"meals_logged"`
	Notes       *string `json:"notes"`
}

// CheckIn records a progress entry and advances points, streak and badges.
func (h *ProgressHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req checkInRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.progressService.CheckIn(r.Context(), user.ID, req.Date, req.MealsLogged, req.Notes)
	if err != nil {
		if writeInputError(w, err) {
			return
		}
		slog.Error("failed to record check-in", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to record progress")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"stats":      result.Stats,
		"new_badges": result.Badges,
	})
}

// List returns recent entries. ?limit= overrides the configured default.
func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.progressService.List(user.ID, limit)
	if err != nil {
		slog.Error("failed to list progress", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to load progress")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *ProgressHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	stats, err := h.statsService.Get(user.ID)
	if err != nil {
		slog.Error("failed to get stats", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	badges, err := h.badgeService.List(user.ID)
	if err != nil {
		slog.Error("failed to list badges", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to load badges")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"stats": stats, "badges": badges})
}
