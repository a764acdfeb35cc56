package handler

import (
	"log/slog"
	"net/http"

	"github.com/porygon/mealplanner/internal/ctxkeys"
	"github.com/porygon/mealplanner/internal/model"
	"github.com/porygon/mealplanner/internal/service"
)

type PreferencesHandler struct {
	preferencesService *service.PreferencesService
}

func NewPreferencesHandler(preferencesService *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{
		preferencesService: preferencesService,
	}
}

// Get returns {"preferences": null} until the first write.
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	prefs, err := h.preferencesService.Get(user.ID)
	if err != nil {
		slog.Error("failed to get preferences", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to load preferences")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"preferences": prefs})
}

// Update merges the supplied fields into the stored preferences.
func (h *PreferencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var update model.PreferencesUpdate
	err := decodeJSON(w, r, &update)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	prefs, err := h.preferencesService.Update(user.ID, update)
	if err != nil {
		slog.Error("failed to update preferences", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to save preferences")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "preferences": prefs})
}
