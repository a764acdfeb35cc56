package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/porygon/mealplanner/internal/model"
)

var ErrPreferencesNotFound = errors.New("preferences not found")

type PreferencesRepository interface {
	ByUserID(userID string) (*model.Preferences, error)
	Upsert(userID string, update model.PreferencesUpdate) (*model.Preferences, error)
}

type preferencesRepository struct {
	db *sqlx.DB
}

func NewPreferencesRepository(db *sqlx.DB) PreferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) ByUserID(userID string) (*model.Preferences, error) {
	prefs := &model.Preferences{}
	query := `SELECT * FROM user_preferences WHERE user_id = $1`

	err := r.db.Get(prefs, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrPreferencesNotFound
	}

	return prefs, err
}

// Upsert creates the row on first write and otherwise merges: nil fields
// in update keep the stored value. Insert and merge are one statement.
func (r *preferencesRepository) Upsert(userID string, update model.PreferencesUpdate) (*model.Preferences, error) {
	now := time.Now().UTC()

	query := `
		INSERT INTO user_preferences (
			id, user_id, food_allergies, foods_dislike, foods_like, meals_per_day,
			meal_preference, goals, bad_habits, body_scan_info, onboarding_complete,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, FALSE), $12, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			food_allergies = COALESCE($3, user_preferences.food_allergies),
			foods_dislike = COALESCE($4, user_preferences.foods_dislike),
			foods_like = COALESCE($5, user_preferences.foods_like),
			meals_per_day = COALESCE($6, user_preferences.meals_per_day),
			meal_preference = COALESCE($7, user_preferences.meal_preference),
			goals = COALESCE($8, user_preferences.goals),
			bad_habits = COALESCE($9, user_preferences.bad_habits),
			body_scan_info = COALESCE($10, user_preferences.body_scan_info),
			onboarding_complete = COALESCE($11, user_preferences.onboarding_complete),
			updated_at = $12
	`
	_, err := r.db.Exec(query,
		uuid.New().String(),
		userID,
		update.FoodAllergies,
		update.FoodsDislike,
		update.FoodsLike,
		update.MealsPerDay,
		update.MealPreference,
		update.Goals,
		update.BadHabits,
		update.BodyScanInfo,
		update.OnboardingComplete,
		now,
	)
	if err != nil {
		return nil, err
	}

	return r.ByUserID(userID)
}
