package model

import (
	"encoding/json"
	"time"
)

type MealPlan struct {
	ID            string          `db:"id" json:"id"`
	UserID        string          `db:"user_id" json:"user_id"`
	WeekStartDate string          `db:"week_start_date" json:"week_start_date"`
	PlanData      json.RawMessage `db:"plan_data" json:"plan_data"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}
