package handler

import (
	"log/slog"
	"net/http"

	"github.com/porygon/mealplanner/internal/ctxkeys"
	"github.com/porygon/mealplanner/internal/service"
)

type InventoryHandler struct {
	inventoryService *service.InventoryService
}

func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	items, err := h.inventoryService.List(user.ID)
	if err != nil {
		slog.Error("failed to list inventory", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to load inventory")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Set writes the on-hand quantity (and optionally plan details) of one item.
func (h *InventoryHandler) Set(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in service.ItemInput
	err := decodeJSON(w, r, &in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.inventoryService.Set(user.ID, r.PathValue("key"), in)
	if err != nil {
		if writeInputError(w, err) {
			return
		}
		slog.Error("failed to set inventory item", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to save inventory item")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"item": item})
}

func (h *InventoryHandler) GroceryList(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	items, err := h.inventoryService.GroceryList(user.ID)
	if err != nil {
		slog.Error("failed to build grocery list", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to build grocery list")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
