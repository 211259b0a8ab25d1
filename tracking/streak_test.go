package tracking

import (
	"testing"
	"time"
)

// presenceSet builds a hasEntry predicate from a set of dates relative to
// today: offset 0 is today, 1 is yesterday, and so on.
func presenceSet(today time.Time, offsets ...int) func(time.Time) bool {
	present := map[string]bool{}
	for _, off := range offsets {
		present[today.AddDate(0, 0, -off).Format("2006-01-02")] = true
	}
	return func(day time.Time) bool {
		return present[day.Format("2006-01-02")]
	}
}

func TestCurrentStreak(t *testing.T) {
	today := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"no entries", nil, 0},
		{"today only", []int{0}, 1},
		{"three consecutive days", []int{0, 1, 2}, 3},
		{"gap yesterday breaks the streak", []int{0, 2, 3}, 1},
		{"streak ended yesterday", []int{1, 2, 3}, 0},
		{"week-long run with older noise", []int{0, 1, 2, 3, 4, 5, 6, 10, 11}, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CurrentStreak(presenceSet(today, tc.offsets...), today, MaxLookbackDays)
			if got != tc.want {
				t.Errorf("CurrentStreak = %d, want %d", got, tc.want)
			}
		})
	}
}

// A predicate that is always true must still terminate at the lookback
// bound.
func TestCurrentStreak_BoundedLookback(t *testing.T) {
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	always := func(time.Time) bool { return true }

	if got := CurrentStreak(always, today, 30); got != 30 {
		t.Errorf("CurrentStreak = %d, want lookback bound 30", got)
	}
	if got := CurrentStreak(always, today, 0); got != MaxLookbackDays {
		t.Errorf("CurrentStreak with zero lookback = %d, want default bound %d", got, MaxLookbackDays)
	}
}

func TestLongestStreak(t *testing.T) {
	cases := []struct {
		name string
		days []bool
		want int
	}{
		{"empty", nil, 0},
		{"all absent", []bool{false, false, false}, 0},
		{"single day", []bool{false, true, false}, 1},
		{"run at start", []bool{true, true, true, false, true}, 3},
		{"run at end", []bool{true, false, true, true, true, true}, 4},
		{"broken then resumed keeps the max", []bool{true, true, true, true, false, true, true}, 4},
		{"all present", []bool{true, true, true, true, true}, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LongestStreak(tc.days); got != tc.want {
				t.Errorf("LongestStreak = %d, want %d", got, tc.want)
			}
		})
	}
}

// Longest is computed over the full history, so it can exceed current.
func TestLongestStreak_ExceedsCurrent(t *testing.T) {
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	// Five-day run ending three days ago, then a fresh one-day streak today.
	offsets := []int{0, 3, 4, 5, 6, 7}

	current := CurrentStreak(presenceSet(today, offsets...), today, MaxLookbackDays)
	days := make([]bool, 8)
	for _, off := range offsets {
		days[7-off] = true
	}
	longest := LongestStreak(days)

	if current != 1 {
		t.Errorf("current = %d, want 1", current)
	}
	if longest != 5 {
		t.Errorf("longest = %d, want 5", longest)
	}
}
