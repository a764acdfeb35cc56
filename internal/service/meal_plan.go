package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/porygon/mealplanner/internal/model"
	"github.com/porygon/mealplanner/internal/repository"
	"github.com/porygon/mealplanner/internal/storage"
	"github.com/porygon/mealplanner/internal/validation"
)

var ErrInvalidPlanData = errors.New("plan_data must be a JSON value")

type MealPlanService struct {
	repo    repository.MealPlanRepository
	archive storage.Archive
}

// NewMealPlanService builds the service. archive may be nil.
func NewMealPlanService(repo repository.MealPlanRepository, archive storage.Archive) *MealPlanService {
	return &MealPlanService{repo: repo, archive: archive}
}

// Save stores a new version of the plan for the week. Earlier versions stay
// in the database; reads return the newest.
func (s *MealPlanService) Save(ctx context.Context, userID, weekStartDate string, planData json.RawMessage) (*model.MealPlan, error) {
	err := validation.ValidateDate(weekStartDate)
	if err != nil {
		return nil, err
	}
	if len(planData) == 0 || !json.Valid(planData) {
		return nil, ErrInvalidPlanData
	}

	plan := &model.MealPlan{
		UserID:        userID,
		WeekStartDate: weekStartDate,
		PlanData:      planData,
	}
	err = s.repo.Create(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to save meal plan: %w", err)
	}

	if s.archive != nil {
		key := storage.MealPlanKey(userID, weekStartDate, plan.ID)
		err = s.archive.Put(ctx, key, planData, "application/json")
		if err != nil {
			slog.Warn("failed to archive meal plan", "error", err, "user_id", userID, "plan_id", plan.ID)
		}
	}

	return plan, nil
}

// Latest returns nil without error when the week has no plan.
func (s *MealPlanService) Latest(userID, weekStartDate string) (*model.MealPlan, error) {
	err := validation.ValidateDate(weekStartDate)
	if err != nil {
		return nil, err
	}

	plan, err := s.repo.Latest(userID, weekStartDate)
	if err != nil {
		if errors.Is(err, repository.ErrMealPlanNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}
	return plan, nil
}
