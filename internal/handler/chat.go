package handler

import (
	"log/slog"
	"net/http"

	"github.com/porygon/mealplanner/internal/ctxkeys"
	"github.com/porygon/mealplanner/internal/service"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat answers a message without side effects.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req chatRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.chatService.Respond(r.Context(), user.ID, req.Message)
	if err != nil {
		if writeInputError(w, err) {
			return
		}
		slog.Error("failed to answer chat", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to answer message")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}

// Turn answers a message and applies its effects, returning the new state.
func (h *ChatHandler) Turn(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req chatRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.chatService.Turn(r.Context(), user.ID, req.Message)
	if err != nil {
		if writeInputError(w, err) {
			return
		}
		slog.Error("failed to run chat turn", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to answer message")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"response":    result.Response,
		"topic":       result.Topic,
		"checked_in":  result.CheckedIn,
		"new_badges":  result.NewBadges,
		"preferences": result.State.Preferences,
		"stats":       result.State.Stats,
		"badges":      result.State.Badges,
	})
}
