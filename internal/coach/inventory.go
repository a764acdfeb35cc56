package coach

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/porygon/mealplanner/internal/model"
)

// TrackedItem is a pantry item the coach can reason about from chat.
type TrackedItem struct {
	Key         string
	Name        string
	Unit        string
	Category    string
	Planned     float64
	Substitutes []string
}

// TrackedItems are seeded into every inventory and recognised in messages.
var TrackedItems = []TrackedItem{
	{Key: "salmon", Name: "Salmon", Unit: "fillets", Category: "Protein", Planned: 4,
		Substitutes: []string{"cod or trout fillets", "canned wild salmon", "chicken breast"}},
	{Key: "chicken", Name: "Chicken breast", Unit: "lbs", Category: "Protein", Planned: 2,
		Substitutes: []string{"turkey breast", "extra-firm tofu", "chickpeas"}},
	{Key: "spinach", Name: "Spinach", Unit: "bunch", Category: "Vegetables", Planned: 1,
		Substitutes: []string{"kale", "Swiss chard", "arugula"}},
	{Key: "eggs", Name: "Eggs", Unit: "eggs", Category: "Protein", Planned: 12,
		Substitutes: []string{"Greek yogurt", "cottage cheese", "tofu scramble"}},
}

var quantityPattern = regexp.MustCompile(`(\d+)\s+(salmons?|chickens?|eggs?|spinach)\b`)

// InventoryUpdate is one "<number> <item>" report found in a message.
type InventoryUpdate struct {
	ItemKey   string  `json:"key"`
	Name      string  `json:"name"`
	Reported  float64 `json:"reported"`
	Planned   float64 `json:"planned"`
	Unit      string  `json:"unit"`
	Shortfall float64 `json:"shortfall"`
}

func trackedItem(key string) (TrackedItem, bool) {
	for _, it := range TrackedItems {
		if it.Key == key {
			return it, true
		}
	}
	return TrackedItem{}, false
}

func itemKey(word string) string {
	switch {
	case strings.HasPrefix(word, "salmon"):
		return "salmon"
	case strings.HasPrefix(word, "chicken"):
		return "chicken"
	case strings.HasPrefix(word, "egg"):
		return "eggs"
	}
	return "spinach"
}

// ParseInventory extracts quantity reports for tracked items. Planned amounts
// come from the user's inventory when present, else from TrackedItems.
// Counts too large for an int are left out; see unreadableCounts.
func ParseInventory(message string, inventory []*model.InventoryItem) []InventoryUpdate {
	lower := strings.ToLower(message)
	matches := quantityPattern.FindAllStringSubmatch(lower, -1)

	var updates []InventoryUpdate
	seen := make(map[string]bool)
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		key := itemKey(m[2])
		if seen[key] {
			continue
		}
		seen[key] = true

		item, _ := trackedItem(key)
		planned, unit, name := item.Planned, item.Unit, item.Name
		for _, inv := range inventory {
			if inv.ItemKey == key {
				planned, unit, name = inv.PlannedQuantity, inv.Unit, inv.Name
			}
		}

		shortfall := planned - float64(n)
		if shortfall < 0 {
			shortfall = 0
		}
		updates = append(updates, InventoryUpdate{
			ItemKey:   key,
			Name:      name,
			Reported:  float64(n),
			Planned:   planned,
			Unit:      unit,
			Shortfall: shortfall,
		})
	}
	return updates
}

// unreadableCounts names the tracked items reported with a count ParseInventory
// could not read and that have no readable report in updates.
func unreadableCounts(message string, updates []InventoryUpdate) []string {
	seen := make(map[string]bool)
	for _, u := range updates {
		seen[u.ItemKey] = true
	}

	var names []string
	for _, m := range quantityPattern.FindAllStringSubmatch(strings.ToLower(message), -1) {
		if _, err := strconv.Atoi(m[1]); err == nil {
			continue
		}
		key := itemKey(m[2])
		if seen[key] {
			continue
		}
		seen[key] = true
		item, _ := trackedItem(key)
		names = append(names, strings.ToLower(item.Name))
	}
	return names
}

func unreadableLine(names []string) string {
	return fmt.Sprintf("I couldn't read the amount for %s. Could you send that number again?", strings.Join(names, ", "))
}

func inventoryReply(updates []InventoryUpdate, unreadable []string) string {
	if len(updates) == 0 {
		names := make([]string, len(TrackedItems))
		for i, it := range TrackedItems {
			names[i] = strings.ToLower(it.Name)
		}
		reply := "Thanks for the pantry update! 🥫 How much do you have left? " +
			"Tell me a number and the item, like \"I only have 2 salmon\", and I'll adjust your plan.\n\n" +
			"I'm tracking: " + strings.Join(names, ", ") + "."
		if len(unreadable) > 0 {
			reply += "\n\n" + unreadableLine(unreadable)
		}
		return reply
	}

	var b strings.Builder
	b.WriteString("Got it, I've updated your inventory! 📦\n\n")
	for _, u := range updates {
		if u.Shortfall == 0 {
			fmt.Fprintf(&b, "• %s: %s %s on hand, that covers this week's plan ✅\n",
				u.Name, formatQuantity(u.Reported), u.Unit)
			continue
		}
		fmt.Fprintf(&b, "• %s: %s of %s %s, so you're %s short\n",
			u.Name, formatQuantity(u.Reported), formatQuantity(u.Planned), u.Unit, formatQuantity(u.Shortfall))
		if item, ok := trackedItem(u.ItemKey); ok && len(item.Substitutes) > 0 {
			fmt.Fprintf(&b, "  You could swap in %s.\n", strings.Join(item.Substitutes, ", "))
		}
	}
	if len(unreadable) > 0 {
		b.WriteString(unreadableLine(unreadable) + "\n")
	}
	b.WriteString("\nI'll add anything missing to your grocery list. 🛒")
	return b.String()
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
