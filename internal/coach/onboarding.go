// Package coach holds the deterministic coaching logic: the onboarding
// sequencer, the keyword intent responder and check-in bookkeeping.
// Nothing in here touches storage.
package coach

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/porygon/mealplanner/internal/model"
)

// Field names one onboarding answer, in the JSON spelling of model.Preferences.
type Field string

const (
	FieldFoodAllergies  Field = "food_allergies"
	FieldFoodsDislike   Field = "foods_dislike"
	FieldFoodsLike      Field = "foods_like"
	FieldMealsPerDay    Field = "meals_per_day"
	FieldMealPreference Field = "meal_preference"
	FieldGoals          Field = "goals"
	FieldBadHabits      Field = "bad_habits"
	FieldBodyScanInfo   Field = "body_scan_info"
)

// OnboardingFields is the order in which onboarding asks its questions.
var OnboardingFields = []Field{
	FieldFoodAllergies,
	FieldFoodsDislike,
	FieldFoodsLike,
	FieldMealsPerDay,
	FieldMealPreference,
	FieldGoals,
	FieldBadHabits,
	FieldBodyScanInfo,
}

var (
	nonDigits  = regexp.MustCompile(`\D`)
	negativeNo = regexp.MustCompile(`\bno `)
)

// NextField returns the first unanswered field and its position, or ok=false
// when every field has a value.
func NextField(p model.Preferences) (field Field, index int, ok bool) {
	for i, f := range OnboardingFields {
		if isEmpty(p, f) {
			return f, i, true
		}
	}
	return "", len(OnboardingFields), false
}

// Advance applies one chat message to the preferences being collected and
// returns the result. The input is not modified. A message that does not
// parse for a numeric or choice field leaves the preferences unchanged so the
// same question is asked again.
func Advance(current model.Preferences, message string) model.Preferences {
	next := current
	lower := strings.ToLower(message)

	field, index, ok := NextField(next)
	if !ok {
		next.OnboardingComplete = true
		return next
	}

	isLast := index == len(OnboardingFields)-1
	if isLast && (strings.Contains(lower, "skip") || strings.Contains(lower, "none")) {
		next.OnboardingComplete = true
		return next
	}

	switch field {
	case FieldMealsPerDay:
		n, err := strconv.Atoi(nonDigits.ReplaceAllString(message, ""))
		if err != nil {
			return next
		}
		next.MealsPerDay = &n
	case FieldMealPreference:
		choice := classifyMealPreference(lower)
		if choice == "" {
			return next
		}
		next.MealPreference = &choice
	case FieldFoodAllergies:
		value := message
		if strings.Contains(lower, "none") || negativeNo.MatchString(lower) {
			value = "None"
		}
		next.FoodAllergies = &value
	default:
		setText(&next, field, message)
	}

	if isLast {
		next.OnboardingComplete = true
	}
	return next
}

// classifyMealPreference checks quick, then both, then cooked.
func classifyMealPreference(lower string) string {
	switch {
	case strings.Contains(lower, model.MealPreferenceQuick):
		return model.MealPreferenceQuick
	case strings.Contains(lower, model.MealPreferenceBoth):
		return model.MealPreferenceBoth
	case strings.Contains(lower, model.MealPreferenceCooked):
		return model.MealPreferenceCooked
	}
	return ""
}

func isEmpty(p model.Preferences, f Field) bool {
	if f == FieldMealsPerDay {
		return p.MealsPerDay == nil || *p.MealsPerDay == 0
	}
	v := textField(&p, f)
	return v == nil || *v == ""
}

func textField(p *model.Preferences, f Field) *string {
	switch f {
	case FieldFoodAllergies:
		return p.FoodAllergies
	case FieldFoodsDislike:
		return p.FoodsDislike
	case FieldFoodsLike:
		return p.FoodsLike
	case FieldMealPreference:
		return p.MealPreference
	case FieldGoals:
		return p.Goals
	case FieldBadHabits:
		return p.BadHabits
	case FieldBodyScanInfo:
		return p.BodyScanInfo
	}
	return nil
}

func setText(p *model.Preferences, f Field, value string) {
	switch f {
	case FieldFoodsDislike:
		p.FoodsDislike = &value
	case FieldFoodsLike:
		p.FoodsLike = &value
	case FieldGoals:
		p.Goals = &value
	case FieldBadHabits:
		p.BadHabits = &value
	case FieldBodyScanInfo:
		p.BodyScanInfo = &value
	}
}
