package model

import "time"

type InventoryItem struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"-"`
	ItemKey         string    `db:"item_key" json:"key"`
	Name            string    `db:"name" json:"name"`
	Quantity        float64   `db:"quantity" json:"quantity"`
	Unit            string    `db:"unit" json:"unit"`
	Category        string    `db:"category" json:"category"`
	PlannedQuantity float64   `db:"planned_quantity" json:"planned_quantity"`
	UpdatedAt       time.Time `db:"updated_at" json:"-"`
}

// Shortfall is how much on-hand quantity is below plan, never negative.
func (i *InventoryItem) Shortfall() float64 {
	if i.Quantity >= i.PlannedQuantity {
		return 0
	}
	return i.PlannedQuantity - i.Quantity
}

type GroceryItem struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
}
