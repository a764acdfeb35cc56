package handler

import (
	"log/slog"
	"net/http"

	"github.com/porygon/mealplanner/internal/ctxkeys"
	"github.com/porygon/mealplanner/internal/service"
)

type OutlookHandler struct {
	outlookService *service.OutlookService
}

func NewOutlookHandler(outlookService *service.OutlookService) *OutlookHandler {
	return &OutlookHandler{
		outlookService: outlookService,
	}
}

// Outlook places the user's streak on the weekly milestone timeline.
func (h *OutlookHandler) Outlook(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	outlook, err := h.outlookService.Outlook(user.ID)
	if err != nil {
		slog.Error("failed to build outlook", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to load outlook")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"outlook": outlook})
}
