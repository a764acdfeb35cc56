package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/porygon/mealplanner/internal/model"
)

type ProgressRepository interface {
	Create(entry *model.ProgressEntry) error
	List(userID string, limit int) ([]*model.ProgressEntry, error)
}

type progressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Create(entry *model.ProgressEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO progress_entries (id, user_id, date, meals_logged, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.UserID,
		entry.Date,
		entry.MealsLogged,
		entry.Notes,
		entry.CreatedAt,
	)
	return err
}

// List returns newest dates first; entries on the same date newest created first.
func (r *progressRepository) List(userID string, limit int) ([]*model.ProgressEntry, error) {
	var entries []*model.ProgressEntry
	query := `SELECT * FROM progress_entries WHERE user_id = $1
	          ORDER BY date DESC, created_at DESC
	          LIMIT $2`

	err := r.db.Select(&entries, query, userID, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*model.ProgressEntry{}
	}

	return entries, nil
}
