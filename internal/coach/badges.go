package coach

import (
	"hash/fnv"

	"github.com/porygon/mealplanner/internal/model"
)

type badgeStyle struct {
	Icon  string
	Color string
}

var badgeStyles = map[string]badgeStyle{
	model.BadgeFirstCheckIn:    {Icon: "star", Color: "yellow"},
	model.BadgeConsistencyKing: {Icon: "crown", Color: "purple"},
	"Week Warrior":             {Icon: "flame", Color: "orange"},
	"Veggie Champion":          {Icon: "leaf", Color: "green"},
	"Hydration Hero":           {Icon: "droplet", Color: "blue"},
}

var fallbackStyles = []badgeStyle{
	{Icon: "award", Color: "pink"},
	{Icon: "trophy", Color: "amber"},
	{Icon: "medal", Color: "teal"},
	{Icon: "sparkles", Color: "indigo"},
}

// DecorateBadge sets Icon and Color from the badge name. Names without an
// entry hash to a fixed fallback so a badge looks the same wherever it is listed.
func DecorateBadge(b *model.Badge) {
	style, ok := badgeStyles[b.BadgeName]
	if !ok {
		h := fnv.New32a()
		h.Write([]byte(b.BadgeName))
		style = fallbackStyles[h.Sum32()%uint32(len(fallbackStyles))]
	}
	b.Icon = style.Icon
	b.Color = style.Color
}

// EarnedBadges returns the badges unlocked by moving from before to after.
func EarnedBadges(before, after model.Stats) []model.Badge {
	var earned []model.Badge
	if before.Points < CheckInPoints && after.Points >= CheckInPoints {
		desc := "Logged your first meal check-in!"
		earned = append(earned, model.Badge{BadgeName: model.BadgeFirstCheckIn, BadgeDescription: &desc})
	}
	if before.Streak < 7 && after.Streak >= 7 {
		desc := "7-day streak!"
		earned = append(earned, model.Badge{BadgeName: model.BadgeConsistencyKing, BadgeDescription: &desc})
	}
	return earned
}
