package service

import (
	"errors"
	"fmt"

	"github.com/porygon/mealplanner/internal/model"
	"github.com/porygon/mealplanner/internal/repository"
)

type PreferencesService struct {
	repo repository.PreferencesRepository
}

func NewPreferencesService(repo repository.PreferencesRepository) *PreferencesService {
	return &PreferencesService{repo: repo}
}

// Get returns nil without error for a user who has not answered anything yet.
func (s *PreferencesService) Get(userID string) (*model.Preferences, error) {
	prefs, err := s.repo.ByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrPreferencesNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return prefs, nil
}

// Update merges the supplied fields into the stored preferences. Values
// are stored as given.
func (s *PreferencesService) Update(userID string, update model.PreferencesUpdate) (*model.Preferences, error) {
	prefs, err := s.repo.Upsert(userID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}
	return prefs, nil
}
