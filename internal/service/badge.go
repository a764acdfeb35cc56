package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/porygon/mealplanner/internal/coach"
	"github.com/porygon/mealplanner/internal/model"
	"github.com/porygon/mealplanner/internal/repository"
)

type BadgeService struct {
	repo repository.BadgeRepository
}

func NewBadgeService(repo repository.BadgeRepository) *BadgeService {
	return &BadgeService{repo: repo}
}

// List returns the user's badges, newest first, with presentation filled in.
func (s *BadgeService) List(userID string) ([]*model.Badge, error) {
	badges, err := s.repo.List(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	for _, b := range badges {
		coach.DecorateBadge(b)
	}
	return badges, nil
}

// Award appends a badge. Earning a badge twice stores it twice.
func (s *BadgeService) Award(userID, name, description string) (*model.Badge, error) {
	badge := &model.Badge{
		UserID:    userID,
		BadgeName: strings.TrimSpace(name),
	}
	if description != "" {
		badge.BadgeDescription = &description
	}

	err := s.repo.Create(badge)
	if err != nil {
		return nil, fmt.Errorf("failed to award badge: %w", err)
	}

	coach.DecorateBadge(badge)
	slog.Info("badge awarded", "user_id", userID, "badge", badge.BadgeName)
	return badge, nil
}

// AwardForStats awards whatever badges the move from before to after unlocked.
func (s *BadgeService) AwardForStats(userID string, before, after model.Stats) ([]*model.Badge, error) {
	awarded := []*model.Badge{}
	for _, earned := range coach.EarnedBadges(before, after) {
		desc := ""
		if earned.BadgeDescription != nil {
			desc = *earned.BadgeDescription
		}
		b, err := s.Award(userID, earned.BadgeName, desc)
		if err != nil {
			return awarded, err
		}
		awarded = append(awarded, b)
	}
	return awarded, nil
}
