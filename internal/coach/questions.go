package coach

import "github.com/porygon/mealplanner/internal/model"

var questions = map[Field]string{
	FieldFoodAllergies:  "Let's start! Do you have any food allergies I should know about? (e.g., nuts, dairy, shellfish)",
	FieldFoodsDislike:   "Got it! Are there any foods you really don't like? This helps me create meal plans you'll actually enjoy! 😊",
	FieldFoodsLike:      "Perfect! Now, what are some of your favorite foods? I'll make sure to include them in your meal plans!",
	FieldMealsPerDay:    "Great! How many meals do you typically eat per day? (including snacks - e.g., 3 meals + 2 snacks = 5)",
	FieldMealPreference: "Awesome! Do you prefer quick meals (15 min or less) or are you okay with cooked meals that take longer? (quick/cooked/both)",
	FieldGoals:          "Excellent! What are your main health goals? (e.g., brain focus, weight loss, muscle tone, hormone balance, general wellness)",
	FieldBadHabits:      "I understand! What are some habits you'd like to gradually change? (e.g., reducing sugar, eating less processed food, more vegetables)",
	FieldBodyScanInfo:   "Last question! If you have any body scan information or health metrics you'd like me to consider, please share them. Otherwise, just say 'skip'!",
}

const (
	allergyHint = "\n\n(You can say \"none\" if you don't have any allergies)"

	onboardingDone = "🎉 Amazing! I have everything I need to create your personalized meal plan. " +
		"Let's get started on your health journey together! You can ask me about meal plans, " +
		"track your progress, or get support anytime. How can I help you today?"

	onboardingSkipped = "Perfect! I have enough information to get started. Let's begin your health journey! 🚀\n\n" +
		"You can ask me about meal plans, track your progress, or get support anytime. How can I help you today?"
)

// NextQuestion returns the prompt for the first unanswered field, or the
// completion message once onboarding is finished.
func NextQuestion(p model.Preferences) string {
	if p.OnboardingComplete {
		return onboardingDone
	}
	field, index, ok := NextField(p)
	if !ok {
		return onboardingDone
	}
	if index == 0 {
		return questions[field] + allergyHint
	}
	return questions[field]
}

// OnboardingReply is the coach's answer to message while onboarding is open.
// It applies the message with Advance and asks for whatever is still missing.
func OnboardingReply(current model.Preferences, message string) string {
	_, index, open := NextField(current)
	next := Advance(current, message)

	if open && index == len(OnboardingFields)-1 && isEmpty(next, FieldBodyScanInfo) && next.OnboardingComplete {
		return onboardingSkipped
	}
	if next.OnboardingComplete {
		return onboardingDone
	}
	return NextQuestion(next)
}
