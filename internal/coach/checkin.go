package coach

import (
	"regexp"
	"strings"
	"time"

	"github.com/porygon/mealplanner/internal/model"
)

// CheckInPoints is awarded for every check-in, including repeats on one day.
const CheckInPoints = 10

var (
	checkInWords   = regexp.MustCompile(`\b(ate|had)\b`)
	checkInPhrases = []string{"breakfast", "lunch", "dinner", "snack", "check in", "check-in"}
)

// IsCheckIn reports whether message reads like a meal report.
func IsCheckIn(message string) bool {
	lower := strings.ToLower(message)
	if checkInWords.MatchString(lower) {
		return true
	}
	for _, p := range checkInPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// NextCheckInStats derives the stats after a check-in on today (YYYY-MM-DD).
// prev may be nil for a user who never checked in. The streak grows on
// consecutive days, restarts at 1 after a gap and is unchanged on the same day.
func NextCheckInStats(prev *model.Stats, today string) model.StatsUpdate {
	points := CheckInPoints
	streak := 1
	if prev != nil {
		points = prev.Points + CheckInPoints
		if prev.LastCheckInDate != nil && *prev.LastCheckInDate != "" {
			streak = prev.Streak
			switch days := daysBetween(*prev.LastCheckInDate, today); {
			case days == 1:
				streak = prev.Streak + 1
			case days > 1:
				streak = 1
			}
		}
	}

	return model.StatsUpdate{
		Points:          &points,
		Streak:          &streak,
		LastCheckInDate: &today,
	}
}

// daysBetween returns to minus from in whole days, or 2 (a gap) when
// either date is unparseable.
func daysBetween(from, to string) int {
	f, err := time.Parse(model.DateLayout, from)
	if err != nil {
		return 2
	}
	t, err := time.Parse(model.DateLayout, to)
	if err != nil {
		return 2
	}
	return int(t.Sub(f).Hours() / 24)
}

// Today is the check-in date for now, in UTC.
func Today(now time.Time) string {
	return now.UTC().Format(model.DateLayout)
}
