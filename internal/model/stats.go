package model

import "time"

type Stats struct {
	ID              string    `db:"id" json:"-"`
	UserID          string    `db:"user_id" json:"-"`
	Points          int       `db:"points" json:"points"`
	Streak          int       `db:"streak" json:"streak"`
	LastCheckInDate *string   `db:"last_check_in_date" json:"last_check_in_date"`
	CreatedAt       time.Time `db:"created_at" json:"-"`
	UpdatedAt       time.Time `db:"updated_at" json:"-"`
}

// StatsUpdate carries the fields a caller wants to overwrite. Nil means keep.
type StatsUpdate struct {
	Points          *int    `json:"points,omitempty"`
	Streak          *int    `json:"streak,omitempty"`
	LastCheckInDate *string `json:"last_check_in_date,omitempty"`
}
