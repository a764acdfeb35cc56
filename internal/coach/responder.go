package coach

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/porygon/mealplanner/internal/model"
)

type Topic string

const (
	TopicOnboarding Topic = "onboarding"
	TopicInventory  Topic = "inventory"
	TopicMeal       Topic = "meal"
	TopicGrocery    Topic = "grocery"
	TopicProgress   Topic = "progress"
	TopicOutlook    Topic = "outlook"
	TopicHelp       Topic = "help"
	TopicMotivation Topic = "motivation"
	TopicGratitude  Topic = "gratitude"
	TopicDefault    Topic = "default"
	TopicCheckIn    Topic = "check_in"
)

type matcher struct {
	topic    Topic
	keywords []string
}

// matchers are checked in order; the first topic with a keyword in the
// message wins.
var matchers = []matcher{
	{TopicInventory, []string{"inventory", "only have", "ran out", "run out", "out of", "leftover", "in stock", "in my fridge", "in my pantry"}},
	{TopicMeal, []string{"meal", "food", "recipe", "what should i eat", "menu", "cook", "breakfast", "lunch", "dinner", "hungry", "healthier", "alternative", "instead of", "bad habit"}},
	{TopicGrocery, []string{"grocery", "groceries", "shopping", "shop", "buy"}},
	{TopicProgress, []string{"progress", "reward", "badge", "streak", "points", "track", "what did i eat"}},
	{TopicOutlook, []string{"week", "outlook", "expect", "timeline", "milestone", "how long", "when will"}},
	{TopicHelp, []string{"help", "support", "what can you"}},
	{TopicMotivation, []string{"motivat", "encourag", "inspir", "feeling down", "give up", "struggling"}},
	{TopicGratitude, []string{"thank", "appreciate", "grateful"}},
}

var encouragingMessages = []string{
	"You're doing amazing! 💪✨",
	"Every step forward counts! 🌟",
	"I'm so proud of your progress! 🎉",
	"You've got this! Keep going! 💚",
	"Your dedication is inspiring! 🌈",
	"Small changes lead to big results! 🚀",
	"You're building healthier habits every day! 🌱",
}

var healthierAlternatives = []struct {
	habits  []string
	heading string
	tips    []string
}{
	{[]string{"sugar"}, "For reducing sugar:", []string{
		"Try fresh fruit instead of sugary snacks",
		"Use honey or maple syrup in moderation",
		"Dark chocolate (70%+) satisfies sweet cravings",
		"Frozen grapes are a great sweet treat",
	}},
	{[]string{"processed"}, "For avoiding processed foods:", []string{
		"Choose whole foods over processed options",
		"Prepare meals at home when possible",
		"Read labels and avoid ingredients you can't pronounce",
	}},
	{[]string{"fast food", "fast-food"}, "For reducing fast food:", []string{
		"Meal prep on weekends for quick healthy meals",
		"Keep healthy snacks ready for when hunger strikes",
		"Try making your favorite fast food at home",
	}},
}

// Context is what the responder knows about the user.
type Context struct {
	Preferences    *model.Preferences
	Stats          model.Stats
	RecentProgress []*model.ProgressEntry
	Inventory      []*model.InventoryItem
}

func (c Context) onboarded() bool {
	return c.Preferences != nil && c.Preferences.OnboardingComplete
}

// Reply is a responder answer with the topic that produced it.
type Reply struct {
	Text      string            `json:"text"`
	Topic     Topic             `json:"topic"`
	Inventory []InventoryUpdate `json:"inventory,omitempty"`
}

// Picker returns an index in [0, n). It chooses among canned encouragements.
type Picker func(n int) int

type Responder struct {
	pick Picker
}

// NewResponder returns a Responder. A nil pick uses math/rand.
func NewResponder(pick Picker) *Responder {
	if pick == nil {
		pick = rand.IntN
	}
	return &Responder{pick: pick}
}

// Classify returns the topic of a message for a user past onboarding.
func Classify(message string) Topic {
	lower := strings.ToLower(message)
	for _, m := range matchers {
		for _, k := range m.keywords {
			if strings.Contains(lower, k) {
				return m.topic
			}
		}
	}
	return TopicDefault
}

// Respond returns only the reply text.
func (r *Responder) Respond(message string, ctx Context) string {
	return r.Reply(message, ctx).Text
}

// Reply answers message. Users who have not finished onboarding always get
// the onboarding flow. Any input, including an empty string, yields text.
func (r *Responder) Reply(message string, ctx Context) Reply {
	if !ctx.onboarded() {
		var prefs model.Preferences
		if ctx.Preferences != nil {
			prefs = *ctx.Preferences
		}
		return Reply{Text: OnboardingReply(prefs, message), Topic: TopicOnboarding}
	}

	topic := Classify(message)
	lower := strings.ToLower(message)

	switch topic {
	case TopicInventory:
		updates := ParseInventory(message, ctx.Inventory)
		return Reply{Text: inventoryReply(updates, unreadableCounts(message, updates)), Topic: topic, Inventory: updates}
	case TopicMeal:
		if containsAny(lower, "healthier", "alternative", "instead of", "bad habit") {
			return Reply{Text: alternativesReply(ctx.Preferences), Topic: topic}
		}
		return Reply{Text: mealPlanReply(ctx.Preferences), Topic: topic}
	case TopicGrocery:
		return Reply{Text: groceryReply(ctx.Inventory), Topic: topic}
	case TopicProgress:
		return Reply{Text: progressReply(ctx.Stats, ctx.RecentProgress), Topic: topic}
	case TopicOutlook:
		return Reply{Text: timelineReply(ctx.Stats), Topic: topic}
	case TopicHelp:
		return Reply{Text: helpMessage, Topic: topic}
	case TopicMotivation:
		return Reply{Text: r.encouragementReply(ctx.Stats), Topic: topic}
	case TopicGratitude:
		return Reply{Text: "You're so welcome! 💚 " + r.encouraging() + "\n\nI'm always here when you need me.", Topic: topic}
	}

	return Reply{Text: r.encouraging() + "\n\n" + defaultMenu, Topic: TopicDefault}
}

// CheckInReply acknowledges a logged meal. streak is the value after the check-in.
func (r *Responder) CheckInReply(stats model.Stats) string {
	var b strings.Builder
	b.WriteString(r.encouraging())
	b.WriteString("\n\nThanks for checking in! I've logged your meals. ")
	if stats.Streak > 0 {
		fmt.Fprintf(&b, "You're on a %d-day streak - that's incredible! 🌟\n\n", stats.Streak)
	}
	b.WriteString("Keep tracking your meals to see your progress. Would you like me to:\n" +
		"• Create a meal plan for the week?\n• Suggest healthier alternatives?\n• Show you your progress?")
	return b.String()
}

func (r *Responder) encouraging() string {
	return encouragingMessages[r.pick(len(encouragingMessages))]
}

func (r *Responder) encouragementReply(stats model.Stats) string {
	var b strings.Builder
	b.WriteString(r.encouraging())
	b.WriteString("\n\nEvery healthy choice you make is an investment in your future self. ")
	if stats.Streak > 0 {
		fmt.Fprintf(&b, "Your %d-day streak shows real commitment, and I'm so proud of you! ", stats.Streak)
	}
	b.WriteString("\n\nRemember: progress isn't always linear, but consistency is key. " +
		"You've already proven you have what it takes by showing up every single day.\n\n" +
		"Your body is getting stronger, your habits are becoming automatic, " +
		"and you're building a healthier, happier you. Keep going - you've got this! 🌟")
	return b.String()
}

func mealPlanReply(p *model.Preferences) string {
	var b strings.Builder
	b.WriteString("I've created a delicious and balanced meal plan for you! 🍽️\n\n" +
		"Check out the 'Meal Plan' tab to see your weekly menu. ")
	if p != nil && p.FoodsLike != nil && *p.FoodsLike != "" {
		fmt.Fprintf(&b, "I've included your favorite foods (%s) ", *p.FoodsLike)
	}
	if p != nil && p.FoodAllergies != nil && *p.FoodAllergies != "" && *p.FoodAllergies != "None" {
		fmt.Fprintf(&b, "and made sure to avoid your allergies (%s). ", *p.FoodAllergies)
	}
	if p != nil && p.MealPreference != nil && *p.MealPreference == model.MealPreferenceQuick {
		b.WriteString("Every recipe takes 15 minutes or less. ")
	}
	b.WriteString("Each meal is designed to provide optimal nutrition while being easy to prepare. " +
		"Would you like me to adjust anything?")
	return b.String()
}

func alternativesReply(p *model.Preferences) string {
	habits := ""
	if p != nil && p.BadHabits != nil {
		habits = strings.ToLower(*p.BadHabits)
	}

	var b strings.Builder
	b.WriteString("I'm here to help you make gradual, sustainable changes! 🌱\n\n")
	for _, alt := range healthierAlternatives {
		if !containsAny(habits, alt.habits...) {
			continue
		}
		b.WriteString(alt.heading + "\n")
		for _, tip := range alt.tips {
			b.WriteString("• " + tip + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("Remember: gradual change is sustainable change. We'll work on this together, one step at a time! 💚")
	return b.String()
}

func groceryReply(inventory []*model.InventoryItem) string {
	items := GroceryList(inventory)
	if len(items) == 0 {
		return "Perfect! I've prepared your grocery list for this week! 🛒\n\n" +
			"Head to the 'Grocery List' tab to see everything organized by category. " +
			"I've calculated the exact quantities you need for your meal plan, so there's no waste. " +
			"You can check off items as you shop!\n\n" +
			"Pro tip: Shopping on Sunday or Monday can help you prep for the week ahead!"
	}

	var b strings.Builder
	b.WriteString("Here's what you need to pick up this week! 🛒\n\n")
	for _, it := range items {
		fmt.Fprintf(&b, "• %s: %s %s (%s)\n", it.Name, formatQuantity(it.Quantity), it.Unit, it.Category)
	}
	b.WriteString("\nPro tip: Shopping on Sunday or Monday can help you prep for the week ahead!")
	return b.String()
}

func progressReply(stats model.Stats, recent []*model.ProgressEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You're crushing it! 🌟\n\n🌟 Points: %d\n🔥 Streak: %d days\n\n", stats.Points, stats.Streak)
	if stats.Streak >= 7 {
		b.WriteString("You've unlocked the 'Consistency King' badge! 🏆\n\n")
	}
	if len(recent) > 0 {
		b.WriteString("Recent check-ins:\n")
		for i, e := range recent {
			if i == 5 {
				break
			}
			meals := "Logged meals"
			if e.MealsLogged != nil && *e.MealsLogged != "" {
				meals = *e.MealsLogged
			}
			fmt.Fprintf(&b, "• %s: %s\n", e.Date, meals)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("Start tracking your meals to see your progress here!\n\n")
	}
	b.WriteString("Keep going and you'll unlock more badges! What would you like to focus on this week?")
	return b.String()
}

// CurrentWeek is the journey week implied by a streak; day 0 is week 1.
func CurrentWeek(streak int) int {
	if streak < 0 {
		streak = 0
	}
	return streak/7 + 1
}

func timelineExpectation(week int) string {
	switch {
	case week >= 12:
		return "Month 3: Your new habits will feel more automatic, and you'll see clearer progress toward your goals."
	case week >= 5:
		return "Month 2: You'll likely see more consistent energy and improved sleep quality."
	case week == 4:
		return "Week 4: Congratulations! You'll hit your first month milestone - a huge achievement!"
	case week == 3:
		return "Week 3: Your taste buds will start adapting, and you may crave healthier foods naturally."
	case week == 2:
		return "Week 2: Many people start noticing increased energy levels and better mood stability."
	}
	return "Week 1: You may feel some adjustment as your body adapts to new eating patterns. Stay hydrated!"
}

func timelineReply(stats model.Stats) string {
	return "Great question! Here's what you can expect: 📅\n\n" +
		timelineExpectation(CurrentWeek(stats.Streak)) + "\n\n" +
		fmt.Sprintf("You're currently on day %d of your journey. Keep going - you're doing great! 💪", stats.Streak)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

const helpMessage = "I'm here to make your nutrition journey easy and fun! Here's what I can do for you:\n\n" +
	"🍽️ Create personalized meal plans\n🛒 Generate organized grocery lists\n" +
	"📦 Keep track of what's in your pantry\n" +
	"📊 Track your progress & goals\n🏆 Celebrate your wins with rewards\n" +
	"📅 Show you what to expect in upcoming weeks\n💪 Provide motivation and support\n" +
	"🌱 Suggest healthier alternatives to bad habits\n📝 Check in with you about your meals\n\n" +
	"Just ask me anything! Whether you need a new meal plan, want to check your progress, " +
	"or need some encouragement - I'm here for you!"

const defaultMenu = "I'm here to help you with:\n\n" +
	"• Creating personalized meal plans\n• Tracking your progress\n" +
	"• Providing motivation and support\n• Answering questions about your health journey\n\n" +
	"What would you like to focus on today? 😊"
