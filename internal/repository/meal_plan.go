package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/porygon/mealplanner/internal/model"
)

var ErrMealPlanNotFound = errors.New("meal plan not found")

type MealPlanRepository interface {
	Create(plan *model.MealPlan) error
	Latest(userID, weekStartDate string) (*model.MealPlan, error)
}

type mealPlanRepository struct {
	db *sqlx.DB
}

// mealPlanRow scans plan_data as text; drivers return TEXT columns as strings.
type mealPlanRow struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	WeekStartDate string    `db:"week_start_date"`
	PlanData      string    `db:"plan_data"`
	CreatedAt     time.Time `db:"created_at"`
}

func NewMealPlanRepository(db *sqlx.DB) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

// Create stores a new version; older plans for the same week are kept.
func (r *mealPlanRepository) Create(plan *model.MealPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO meal_plans (id, user_id, week_start_date, plan_data, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		plan.ID,
		plan.UserID,
		plan.WeekStartDate,
		string(plan.PlanData),
		plan.CreatedAt,
	)
	return err
}

// Latest returns the most recently created plan for the week.
func (r *mealPlanRepository) Latest(userID, weekStartDate string) (*model.MealPlan, error) {
	row := mealPlanRow{}
	query := `SELECT * FROM meal_plans WHERE user_id = $1 AND week_start_date = $2
	          ORDER BY created_at DESC
	          LIMIT 1`

	err := r.db.Get(&row, query, userID, weekStartDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMealPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	return &model.MealPlan{
		ID:            row.ID,
		UserID:        row.UserID,
		WeekStartDate: row.WeekStartDate,
		PlanData:      json.RawMessage(row.PlanData),
		CreatedAt:     row.CreatedAt,
	}, nil
}
