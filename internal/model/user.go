package model

import (
	"time"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	ExternalUID  *string   `db:"external_uid" json:"-"`  // Set for identity-provider accounts
	PasswordHash *string   `db:"password_hash" json:"-"` // Nullable for provider accounts
	Name         *string   `db:"name" json:"name,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
	UpdatedAt    time.Time `db:"updated_at" json:"-"`
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
