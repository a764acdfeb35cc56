package model

import "time"

const (
	MealPreferenceQuick  = "quick"
	MealPreferenceBoth   = "both"
	MealPreferenceCooked = "cooked"
)

// Preferences holds the onboarding answers of one user. Nil fields have not
// been answered yet.
type Preferences struct {
	ID                 string    `db:"id" json:"id,omitempty"`
	UserID             string    `db:"user_id" json:"user_id,omitempty"`
	FoodAllergies      *string   `db:"food_allergies" json:"food_allergies"`
	FoodsDislike       *string   `db:"foods_dislike" json:"foods_dislike"`
	FoodsLike          *string   `db:"foods_like" json:"foods_like"`
	MealsPerDay        *int      `db:"meals_per_day" json:"meals_per_day"`
	MealPreference     *string   `db:"meal_preference" json:"meal_preference"`
	Goals              *string   `db:"goals" json:"goals"`
	BadHabits          *string   `db:"bad_habits" json:"bad_habits"`
	BodyScanInfo       *string   `db:"body_scan_info" json:"body_scan_info"`
	OnboardingComplete bool      `db:"onboarding_complete" json:"onboarding_complete"`
	CreatedAt          time.Time `db:"created_at" json:"-"`
	UpdatedAt          time.Time `db:"updated_at" json:"-"`
}

// PreferencesUpdate is a partial write: only non-nil fields are stored.
type PreferencesUpdate struct {
	FoodAllergies      *string `json:"food_allergies"`
	FoodsDislike       *string `json:"foods_dislike"`
	FoodsLike          *string `json:"foods_like"`
	MealsPerDay        *int    `json:"meals_per_day"`
	MealPreference     *string `json:"meal_preference"`
	Goals              *string `json:"goals"`
	BadHabits          *string `json:"bad_habits"`
	BodyScanInfo       *string `json:"body_scan_info"`
	OnboardingComplete *bool   `json:"onboarding_complete"`
}

// UpdateFrom converts a full preferences value into a write of every answered field.
func UpdateFrom(p Preferences) PreferencesUpdate {
	complete := p.OnboardingComplete
	return PreferencesUpdate{
		FoodAllergies:      p.FoodAllergies,
		FoodsDislike:       p.FoodsDislike,
		FoodsLike:          p.FoodsLike,
		MealsPerDay:        p.MealsPerDay,
		MealPreference:     p.MealPreference,
		Goals:              p.Goals,
		BadHabits:          p.BadHabits,
		BodyScanInfo:       p.BodyScanInfo,
		OnboardingComplete: &complete,
	}
}
