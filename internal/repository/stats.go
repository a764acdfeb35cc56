package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/porygon/mealplanner/internal/model"
)

var ErrStatsNotFound = errors.New("stats not found")

type StatsRepository interface {
	Ensure(userID string) (*model.Stats, error)
	ByUserID(userID string) (*model.Stats, error)
	Apply(userID string, update model.StatsUpdate) (*model.Stats, error)
}

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

// Ensure creates a zero row when the user has none and returns the stored row.
func (r *statsRepository) Ensure(userID string) (*model.Stats, error) {
	now := time.Now().UTC()
	query := `INSERT INTO user_stats (id, user_id, points, streak, created_at, updated_at)
	          VALUES ($1, $2, 0, 0, $3, $3)
	          ON CONFLICT (user_id) DO NOTHING`

	_, err := r.db.Exec(query, uuid.New().String(), userID, now)
	if err != nil {
		return nil, err
	}

	return r.ByUserID(userID)
}

func (r *statsRepository) ByUserID(userID string) (*model.Stats, error) {
	stats := &model.Stats{}
	query := `SELECT * FROM user_stats WHERE user_id = $1`

	err := r.db.Get(stats, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrStatsNotFound
	}

	return stats, err
}

// Apply writes only the non-nil fields of update. A missing row is created
// with zero defaults in the same statement.
func (r *statsRepository) Apply(userID string, update model.StatsUpdate) (*model.Stats, error) {
	now := time.Now().UTC()

	query := `
		INSERT INTO user_stats (id, user_id, points, streak, last_check_in_date, created_at, updated_at)
		VALUES ($1, $2, COALESCE($3, 0), COALESCE($4, 0), $5, $6, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			points = COALESCE($3, user_stats.points),
			streak = COALESCE($4, user_stats.streak),
			last_check_in_date = COALESCE($5, user_stats.last_check_in_date),
			updated_at = $6
	`
	_, err := r.db.Exec(query,
		uuid.New().String(),
		userID,
		update.Points,
		update.Streak,
		update.LastCheckInDate,
		now,
	)
	if err != nil {
		return nil, err
	}

	return r.ByUserID(userID)
}
