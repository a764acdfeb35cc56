package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/porygon/mealplanner/internal/coach"
	"github.com/porygon/mealplanner/internal/model"
	"github.com/porygon/mealplanner/internal/repository"
	"github.com/porygon/mealplanner/internal/validation"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type InventoryService struct {
	repo repository.InventoryRepository
}

func NewInventoryService(repo repository.InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

// List returns the user's inventory, seeding the tracked items for accounts
// that have none.
func (s *InventoryService) List(userID string) ([]*model.InventoryItem, error) {
	items, err := s.repo.List(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	if len(items) > 0 {
		return items, nil
	}

	for _, item := range coach.DefaultInventory(userID) {
		err = s.repo.Upsert(item)
		if err != nil {
			return nil, fmt.Errorf("failed to seed inventory: %w", err)
		}
	}
	return s.repo.List(userID)
}

// ItemInput is a pantry write. Nil fields keep the stored value, or a
// default for new items.
type ItemInput struct {
	Quantity        float64  `json:"quantity"`
	Name            *string  `json:"name"`
	Unit            *string  `json:"unit"`
	Category        *string  `json:"category"`
	PlannedQuantity *float64 `json:"planned_quantity"`
}

// Set writes one item. Unknown keys create a custom item named after the key.
func (s *InventoryService) Set(userID, key string, in ItemInput) (*model.InventoryItem, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	err := validation.ValidateItemKey(key)
	if err != nil {
		return nil, err
	}
	err = validation.ValidateQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	if in.PlannedQuantity != nil {
		err = validation.ValidateQuantity(*in.PlannedQuantity)
		if err != nil {
			return nil, err
		}
	}

	items, err := s.List(userID)
	if err != nil {
		return nil, err
	}

	item := findItem(items, key)
	if item == nil {
		item = &model.InventoryItem{
			UserID:   userID,
			ItemKey:  key,
			Name:     displayName(key),
			Category: "Other",
		}
	}

	item.Quantity = in.Quantity
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.Category != nil && *in.Category != "" {
		item.Category = *in.Category
	}
	if in.PlannedQuantity != nil {
		item.PlannedQuantity = *in.PlannedQuantity
	}

	err = s.repo.Upsert(item)
	if err != nil {
		return nil, fmt.Errorf("failed to save inventory item: %w", err)
	}
	return item, nil
}

// ApplyUpdates stores quantities reported in chat.
func (s *InventoryService) ApplyUpdates(userID string, updates []coach.InventoryUpdate) error {
	for _, u := range updates {
		err := s.repo.SetQuantity(userID, u.ItemKey, u.Reported)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrInventoryItemNotFound) {
			return fmt.Errorf("failed to update inventory: %w", err)
		}

		_, err = s.Set(userID, u.ItemKey, ItemInput{
			Quantity:        u.Reported,
			Name:            &u.Name,
			Unit:            &u.Unit,
			PlannedQuantity: &u.Planned,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// GroceryList is what the user needs to buy to cover planned quantities.
func (s *InventoryService) GroceryList(userID string) ([]model.GroceryItem, error) {
	items, err := s.List(userID)
	if err != nil {
		return nil, err
	}
	return coach.GroceryList(items), nil
}

func findItem(items []*model.InventoryItem, key string) *model.InventoryItem {
	for _, it := range items {
		if it.ItemKey == key {
			return it
		}
	}
	return nil
}

// displayName turns an item key like "greek-yogurt" into "Greek Yogurt".
// A Caser is stateful, so each call gets its own.
func displayName(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "-", " "))
}
