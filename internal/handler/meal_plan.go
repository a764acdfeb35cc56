package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/porygon/mealplanner/internal/ctxkeys"
	"github.com/porygon/mealplanner/internal/service"
)

type MealPlanHandler struct {
	mealPlanService *service.MealPlanService
}

func NewMealPlanHandler(mealPlanService *service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{
		mealPlanService: mealPlanService,
	}
}

type mealPlanRequest struct {
	WeekStartDate string          `json:"week_start_date"`
	PlanData      json.RawMessage `json:"plan_data"`
}

func (h *MealPlanHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req mealPlanRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.mealPlanService.Save(r.Context(), user.ID, req.WeekStartDate, req.PlanData)
	if err != nil {
		if writeInputError(w, err) {
			return
		}
		if errors.Is(err, service.ErrInvalidPlanData) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to save meal plan", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to save meal plan")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": plan.ID})
}

// Latest returns the newest plan for ?week_start_date=, or {"plan": null}.
func (h *MealPlanHandler) Latest(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	plan, err := h.mealPlanService.Latest(user.ID, r.URL.Query().Get("week_start_date"))
	if err != nil {
		if writeInputError(w, err) {
			return
		}
		slog.Error("failed to get meal plan", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to load meal plan")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"plan": plan})
}
