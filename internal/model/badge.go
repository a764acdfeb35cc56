package model

import "time"

const (
	BadgeFirstCheckIn    = "First Check-In"
	BadgeConsistencyKing = "Consistency King"
)

type Badge struct {
	ID               string    `db:"id" json:"id"`
	UserID           string    `db:"user_id" json:"user_id"`
	BadgeName        string    `db:"badge_name" json:"badge_name"`
	BadgeDescription *string   `db:"badge_description" json:"badge_description"`
	EarnedAt         time.Time `db:"earned_at" json:"earned_at"`

	// Presentation, derived from BadgeName (not in database)
	Icon  string `db:"-" json:"icon"`
	Color string `db:"-" json:"color"`
}
