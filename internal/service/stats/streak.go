package stats

import (
	"time"

	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

// calculateStreak calculates the current review streak in days.
// days must be sorted DESC by date (most recent first).
// Returns the number of consecutive days with reviews, starting from today or yesterday.
func calculateStreak(days []domain.DayReviewCount, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	streak := 0
	expectedDate := today

	// Helper to compare only date parts (ignore time)
	sameDay := func(a, b time.Time) bool {
		return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
	}

	// If today has no reviews yet, the streak is still alive: start from yesterday.
	if !sameDay(days[0].Date, today) {
		expectedDate = today.AddDate(0, 0, -1)
	}

	for _, d := range days {
		if sameDay(d.Date, expectedDate) {
			streak++
			expectedDate = expectedDate.AddDate(0, 0, -1)
		} else {
			break // Gap in streak or unexpected date order
		}
	}
	return streak
}
