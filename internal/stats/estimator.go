// Package stats holds the pure habit-progress math: expected completions,
// completion rates, streak transitions and the aggregated statistics report.
// Everything here is side-effect-free so the progress updater, the stats
// endpoint and the background refresher share one implementation.
package stats

import (
	"math"
	"time"

	"github.com/jparra05/habit-tracker/internal/models"
)

// DaysActive returns how many days a habit has been active, inclusive of the
// start day. The result can be zero or negative when start is in the future.
func DaysActive(start, now time.Time) int {
	return int(math.Floor(now.Sub(start).Hours()/24)) + 1
}

// ExpectedCompletions returns how many completions a habit with the given
// frequency should have accumulated between start and now. Never negative.
//
// Monthly habits use calendar-month difference, not elapsed days: a habit
// started on the 31st counts a second month on the 1st. That matches the
// product's behavior and is pinned by tests.
func ExpectedCompletions(frequency string, start, now time.Time) int {
	daysActive := DaysActive(start, now)

	var expected int
	switch frequency {
	case models.FrequencyDaily:
		expected = daysActive
	case models.FrequencyWeekly:
		expected = daysActive / 7
	case models.FrequencyMonthly:
		expected = (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month()) + 1
	default:
		// Unknown frequency: one expected completion keeps every
		// downstream rate denominator positive.
		expected = 1
	}

	if expected < 0 {
		return 0
	}
	return expected
}

// Rate turns a completed-entry count and an expected-completion count into a
// percentage clamped to [0, 100]. A zero expected count is treated as one so
// a habit started today never divides by zero.
func Rate(completedCount, expected int) int {
	if expected < 1 {
		expected = 1
	}
	rate := int(math.Round(float64(completedCount) / float64(expected) * 100))
	if rate > 100 {
		return 100
	}
	return rate
}

// NextStreak applies one progress entry to a running streak: a completion
// extends it by one, anything else resets it to zero.
func NextStreak(current int, completed bool) int {
	if completed {
		return current + 1
	}
	return 0
}
