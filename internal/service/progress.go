package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/porygon/mealplanner/internal/coach"
	"github.com/porygon/mealplanner/internal/model"
	"github.com/porygon/mealplanner/internal/repository"
	"github.com/porygon/mealplanner/internal/validation"
)

const maxProgressLimit = 365

type ProgressService struct {
	repo         repository.ProgressRepository
	statsService *StatsService
	badgeService *BadgeService
	defaultLimit int
	now          func() time.Time
}

func NewProgressService(
	repo repository.ProgressRepository,
	statsService *StatsService,
	badgeService *BadgeService,
	defaultLimit int,
) *ProgressService {
	return &ProgressService{
		repo:         repo,
		statsService: statsService,
		badgeService: badgeService,
		defaultLimit: defaultLimit,
		now:          time.Now,
	}
}

type CheckInResult struct {
	Entry  *model.ProgressEntry `json:"entry"`
	Stats  *model.Stats         `json:"stats"`
	Badges []*model.Badge       `json:"new_badges"`
}

// CheckIn records a progress entry for date (today when empty), then
// advances points and streak from today's date and awards any badges the
// new stats unlock.
func (s *ProgressService) CheckIn(ctx context.Context, userID, date string, mealsLogged, notes *string) (*CheckInResult, error) {
	today := coach.Today(s.now())
	if date == "" {
		date = today
	}
	err := validation.ValidateDate(date)
	if err != nil {
		return nil, err
	}

	entry := &model.ProgressEntry{
		UserID:      userID,
		Date:        date,
		MealsLogged: mealsLogged,
		Notes:       notes,
	}
	err = s.repo.Create(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to record progress: %w", err)
	}

	before, err := s.statsService.Get(userID)
	if err != nil {
		return nil, err
	}

	after, err := s.statsService.ApplyUpdate(ctx, userID, coach.NextCheckInStats(before, today))
	if err != nil {
		return nil, err
	}

	badges, err := s.badgeService.AwardForStats(userID, *before, *after)
	if err != nil {
		// The check-in itself is stored; a missed badge is not worth failing it.
		slog.Error("failed to award badges", "error", err, "user_id", userID)
	}

	slog.Info("check-in recorded", "user_id", userID, "date", date, "streak", after.Streak)
	return &CheckInResult{Entry: entry, Stats: after, Badges: badges}, nil
}

// List returns recent entries, newest date first. limit <= 0 uses the default.
func (s *ProgressService) List(userID string, limit int) ([]*model.ProgressEntry, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > maxProgressLimit {
		limit = maxProgressLimit
	}

	entries, err := s.repo.List(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return entries, nil
}
