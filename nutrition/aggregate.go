package nutrition

import "math"

// ResolvedEntry is one consumed-food record after the tracking layer has
// resolved its nutrition source (catalog meal or custom food) and serving
// multiplier.
type ResolvedEntry struct {
	Info     Info
	Servings float64
	MealType MealType
}

// MealTypeBreakdown is the per-category sub-total emitted in a DailySummary.
type MealTypeBreakdown struct {
	MealType   MealType `json:"meal_type"`
	Calories   int      `json:"calories"`
	Protein    int      `json:"protein"`
	Carbs      int      `json:"carbs"`
	Fat        int      `json:"fat"`
	EntryCount int      `json:"entry_count"`
}

// DailySummary holds the rounded grand totals and per-meal-type breakdown
// for one day's worth of entries.
type DailySummary struct {
	Calories   int                 `json:"calories"`
	Protein    int                 `json:"protein"`
	Carbs      int                 `json:"carbs"`
	Fat        int                 `json:"fat"`
	Fiber      int                 `json:"fiber"`
	Sodium     int                 `json:"sodium"`
	EntryCount int                 `json:"entry_count"`
	Breakdown  []MealTypeBreakdown `json:"breakdown"`
}

// Progress expresses consumed totals as a percentage of targets, field by
// field. Values may exceed 100; clamping to a display cap is the UI's call.
type Progress struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Fiber    int `json:"fiber"`
	Sodium   int `json:"sodium"`
}

// Aggregate sums a day's resolved entries into rounded grand totals plus a
// per-meal-type breakdown. Fields absent on the source contribute 0. Zero
// entries is a valid terminal case: all-zero totals, empty breakdown.
// Breakdown order follows first appearance of each meal type.
func Aggregate(entries []ResolvedEntry) DailySummary {
	var calories, protein, carbs, fat, fiber, sodium float64

	type bucket struct {
		calories, protein, carbs, fat float64
		count                         int
	}
	buckets := map[MealType]*bucket{}
	order := []MealType{}

	for _, e := range entries {
		scaled := e.Info.Scale(e.Servings)
		calories += scaled.Calories
		protein += scaled.Protein
		carbs += scaled.Carbs
		fat += scaled.Fat
		fiber += scaled.Fiber
		sodium += scaled.Sodium

		b, ok := buckets[e.MealType]
		if !ok {
			b = &bucket{}
			buckets[e.MealType] = b
			order = append(order, e.MealType)
		}
		b.calories += scaled.Calories
		b.protein += scaled.Protein
		b.carbs += scaled.Carbs
		b.fat += scaled.Fat
		b.count++
	}

	breakdown := make([]MealTypeBreakdown, 0, len(order))
	for _, mt := range order {
		b := buckets[mt]
		breakdown = append(breakdown, MealTypeBreakdown{
			MealType:   mt,
			Calories:   int(math.Round(b.calories)),
			Protein:    int(math.Round(b.protein)),
			Carbs:      int(math.Round(b.carbs)),
			Fat:        int(math.Round(b.fat)),
			EntryCount: b.count,
		})
	}

	return DailySummary{
		Calories:   int(math.Round(calories)),
		Protein:    int(math.Round(protein)),
		Carbs:      int(math.Round(carbs)),
		Fat:        int(math.Round(fat)),
		Fiber:      int(math.Round(fiber)),
		Sodium:     int(math.Round(sodium)),
		EntryCount: len(entries),
		Breakdown:  breakdown,
	}
}

// ComputeProgress divides a summary's totals by the matching target values
// and rounds to whole percentages. Zero targets yield 0 rather than a
// division blow-up.
func ComputeProgress(s DailySummary, t Targets) Progress {
	return Progress{
		Calories: pct(s.Calories, t.DailyCalories),
		Protein:  pct(s.Protein, t.DailyProtein),
		Carbs:    pct(s.Carbs, t.DailyCarbs),
		Fat:      pct(s.Fat, t.DailyFat),
		Fiber:    pct(s.Fiber, t.DailyFiber),
		Sodium:   pct(s.Sodium, t.DailySodium),
	}
}

func pct(consumed, target int) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(float64(consumed) / float64(target) * 100))
}
