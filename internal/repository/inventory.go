package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/porygon/mealplanner/internal/model"
)

var ErrInventoryItemNotFound = errors.New("inventory item not found")

type InventoryRepository interface {
	List(userID string) ([]*model.InventoryItem, error)
	Upsert(item *model.InventoryItem) error
	SetQuantity(userID, itemKey string, quantity float64) error
}

type inventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) List(userID string) ([]*model.InventoryItem, error) {
	var items []*model.InventoryItem
	query := `SELECT * FROM inventory_items WHERE user_id = $1 ORDER BY category ASC, name ASC`

	err := r.db.Select(&items, query, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*model.InventoryItem{}
	}

	return items, nil
}

// Upsert inserts the item or replaces every column of the existing (user, key) row.
func (r *inventoryRepository) Upsert(item *model.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO inventory_items (id, user_id, item_key, name, quantity, unit, category, planned_quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, item_key) DO UPDATE SET
			name = $4,
			quantity = $5,
			unit = $6,
			category = $7,
			planned_quantity = $8,
			updated_at = $9
	`
	_, err := r.db.Exec(query,
		item.ID,
		item.UserID,
		item.ItemKey,
		item.Name,
		item.Quantity,
		item.Unit,
		item.Category,
		item.PlannedQuantity,
		item.UpdatedAt,
	)
	return err
}

func (r *inventoryRepository) SetQuantity(userID, itemKey string, quantity float64) error {
	query := `UPDATE inventory_items SET quantity = $1, updated_at = $2 WHERE user_id = $3 AND item_key = $4`

	result, err := r.db.Exec(query, quantity, time.Now().UTC(), userID, itemKey)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrInventoryItemNotFound
	}

	return nil
}
