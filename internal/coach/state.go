package coach

import "github.com/porygon/mealplanner/internal/model"

// State is everything a chat session shows the user. It is rebuilt from the
// store after each turn rather than patched in place.
type State struct {
	Preferences    *model.Preferences     `json:"preferences"`
	Stats          model.Stats            `json:"stats"`
	Badges         []*model.Badge         `json:"badges"`
	RecentProgress []*model.ProgressEntry `json:"recent_progress"`
	Inventory      []*model.InventoryItem `json:"inventory"`
}

// Context returns the responder view of the state.
func (s *State) Context() Context {
	return Context{
		Preferences:    s.Preferences,
		Stats:          s.Stats,
		RecentProgress: s.RecentProgress,
		Inventory:      s.Inventory,
	}
}

// Onboarded reports whether the user has finished onboarding.
func (s *State) Onboarded() bool {
	return s.Preferences != nil && s.Preferences.OnboardingComplete
}

// PreferencesOrEmpty returns the stored preferences, or a zero value for a
// user who has not answered anything yet.
func (s *State) PreferencesOrEmpty() model.Preferences {
	if s.Preferences == nil {
		return model.Preferences{}
	}
	return *s.Preferences
}
