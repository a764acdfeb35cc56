package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/porygon/mealplanner/internal/model"
)

type BadgeRepository interface {
	Create(badge *model.Badge) error
	List(userID string) ([]*model.Badge, error)
}

type badgeRepository struct {
	db *sqlx.DB
}

func NewBadgeRepository(db *sqlx.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

// Create appends a badge. Earning the same badge twice stores two rows.
func (r *badgeRepository) Create(badge *model.Badge) error {
	if badge.ID == "" {
		badge.ID = uuid.New().String()
	}
	if badge.EarnedAt.IsZero() {
		badge.EarnedAt = time.Now().UTC()
	}

	query := `INSERT INTO badges (id, user_id, badge_name, badge_description, earned_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		badge.ID,
		badge.UserID,
		badge.BadgeName,
		badge.BadgeDescription,
		badge.EarnedAt,
	)
	return err
}

func (r *badgeRepository) List(userID string) ([]*model.Badge, error) {
	var badges []*model.Badge
	query := `SELECT * FROM badges WHERE user_id = $1 ORDER BY earned_at DESC`

	err := r.db.Select(&badges, query, userID)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []*model.Badge{}
	}

	return badges, nil
}
