// Package tracking computes consecutive-day streaks over food-log history.
package tracking

import "time"

// MaxLookbackDays bounds the backward walk in CurrentStreak so that a user
// who has logged every day since signup still terminates.
const MaxLookbackDays = 366

// CurrentStreak counts consecutive days with at least one tracked entry,
// walking backward day by day from today inclusive. Stops at the first day
// the predicate is false, or after maxLookback days. maxLookback <= 0 falls
// back to MaxLookbackDays.
func CurrentStreak(hasEntry func(time.Time) bool, today time.Time, maxLookback int) int {
	if maxLookback <= 0 {
		maxLookback = MaxLookbackDays
	}
	streak := 0
	day := today
	for i := 0; i < maxLookback; i++ {
		if !hasEntry(day) {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak returns the longest run of true values in a per-day
// presence sequence (oldest first). A broken-then-resumed history keeps
// its historical maximum, so longest can exceed the current streak.
func LongestStreak(days []bool) int {
	longest, run := 0, 0
	for _, present := range days {
		if !present {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}
