package model

import "time"

// DateLayout is the calendar date format used for check-ins and meal plan weeks.
const DateLayout = "2006-01-02"

type ProgressEntry struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Date        string    `db:"date" json:"date"`
	MealsLogged *string   `db:"meals_logged" json:"meals_logged"`
	Notes       *string   `db:"notes" json:"notes"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
}
