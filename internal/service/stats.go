package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/porygon/mealplanner/internal/model"
	"github.com/porygon/mealplanner/internal/repository"
)

type StatsService struct {
	repo repository.StatsRepository
}

func NewStatsService(repo repository.StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// Get returns the user's stats, creating the zero row on first access.
func (s *StatsService) Get(userID string) (*model.Stats, error) {
	stats, err := s.repo.Ensure(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

// ApplyUpdate writes the supplied fields and leaves the rest as stored.
// Values are final: no streak or date arithmetic happens here.
func (s *StatsService) ApplyUpdate(ctx context.Context, userID string, update model.StatsUpdate) (*model.Stats, error) {
	stats, err := s.repo.Apply(userID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update stats: %w", err)
	}

	slog.DebugContext(ctx, "stats updated", "user_id", userID, "points", stats.Points, "streak", stats.Streak)
	return stats, nil
}
