package coach

import (
	"sort"

	"github.com/porygon/mealplanner/internal/model"
)

// GroceryList turns inventory shortfalls into items to buy, grouped by
// category then name.
func GroceryList(inventory []*model.InventoryItem) []model.GroceryItem {
	items := []model.GroceryItem{}
	for _, it := range inventory {
		short := it.Shortfall()
		if short <= 0 {
			continue
		}
		items = append(items, model.GroceryItem{
			Key:      it.ItemKey,
			Name:     it.Name,
			Quantity: short,
			Unit:     it.Unit,
			Category: it.Category,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})
	return items
}

// DefaultInventory is the starting pantry for a user: every tracked item
// fully stocked for the week.
func DefaultInventory(userID string) []*model.InventoryItem {
	items := make([]*model.InventoryItem, len(TrackedItems))
	for i, t := range TrackedItems {
		items[i] = &model.InventoryItem{
			UserID:          userID,
			ItemKey:         t.Key,
			Name:            t.Name,
			Quantity:        t.Planned,
			Unit:            t.Unit,
			Category:        t.Category,
			PlannedQuantity: t.Planned,
		}
	}
	return items
}
