package nutrition

import "testing"

func entry(calories, protein, carbs, fat float64, servings float64, mt MealType) ResolvedEntry {
	return ResolvedEntry{
		Info:     Info{Calories: calories, Protein: protein, Carbs: carbs, Fat: fat},
		Servings: servings,
		MealType: mt,
	}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil)
	if got.Calories != 0 || got.Protein != 0 || got.Carbs != 0 || got.Fat != 0 {
		t.Errorf("empty aggregate has non-zero totals: %+v", got)
	}
	if got.EntryCount != 0 {
		t.Errorf("EntryCount = %d, want 0", got.EntryCount)
	}
	if len(got.Breakdown) != 0 {
		t.Errorf("breakdown not empty: %v", got.Breakdown)
	}
}

// Meal A at 300 kcal x 2 servings plus meal B at 150 kcal x 1 serving
// totals 750.
func TestAggregate_ServingMultiplier(t *testing.T) {
	got := Aggregate([]ResolvedEntry{
		entry(300, 20, 30, 10, 2, MealLunch),
		entry(150, 5, 20, 4, 1, MealSnack),
	})
	if got.Calories != 750 {
		t.Errorf("Calories = %d, want 750", got.Calories)
	}
	if got.Protein != 45 {
		t.Errorf("Protein = %d, want 45", got.Protein)
	}
	if got.EntryCount != 2 {
		t.Errorf("EntryCount = %d, want 2", got.EntryCount)
	}
}

// Aggregating [A, B] must equal aggregating [A] and [B] separately and
// summing field-wise: no double counting, no cross-entry effects.
func TestAggregate_Additivity(t *testing.T) {
	a := entry(312.5, 21.3, 30.2, 11.7, 1.5, MealBreakfast)
	b := entry(148.9, 4.8, 19.6, 3.3, 2.25, MealDinner)

	both := Aggregate([]ResolvedEntry{a, b})
	onlyA := Aggregate([]ResolvedEntry{a})
	onlyB := Aggregate([]ResolvedEntry{b})

	// Totals are rounded after summing, so allow 1 kcal of drift between
	// the combined and split runs.
	diff := both.Calories - (onlyA.Calories + onlyB.Calories)
	if diff < -1 || diff > 1 {
		t.Errorf("calories not additive: %d vs %d + %d", both.Calories, onlyA.Calories, onlyB.Calories)
	}
}

func TestAggregate_MealTypeBuckets(t *testing.T) {
	got := Aggregate([]ResolvedEntry{
		entry(200, 10, 20, 5, 1, MealBreakfast),
		entry(300, 15, 25, 10, 1, MealBreakfast),
		entry(500, 30, 40, 20, 1, MealDinner),
	})

	if len(got.Breakdown) != 2 {
		t.Fatalf("breakdown has %d buckets, want 2", len(got.Breakdown))
	}
	byType := map[MealType]MealTypeBreakdown{}
	for _, b := range got.Breakdown {
		byType[b.MealType] = b
	}

	breakfast := byType[MealBreakfast]
	if breakfast.Calories != 500 || breakfast.EntryCount != 2 {
		t.Errorf("breakfast bucket = %+v, want 500 kcal over 2 entries", breakfast)
	}
	dinner := byType[MealDinner]
	if dinner.Calories != 500 || dinner.EntryCount != 1 {
		t.Errorf("dinner bucket = %+v, want 500 kcal over 1 entry", dinner)
	}
}

func TestAggregate_AbsentFieldsContributeZero(t *testing.T) {
	// Only calories set; fiber/sodium default to zero contribution.
	got := Aggregate([]ResolvedEntry{entry(100, 0, 0, 0, 3, MealSnack)})
	if got.Calories != 300 {
		t.Errorf("Calories = %d, want 300", got.Calories)
	}
	if got.Fiber != 0 || got.Sodium != 0 {
		t.Errorf("absent fields leaked: fiber=%d sodium=%d", got.Fiber, got.Sodium)
	}
}

func TestComputeProgress(t *testing.T) {
	summary := DailySummary{Calories: 1500, Protein: 75, Carbs: 200, Fat: 50}
	targets := Targets{DailyCalories: 2000, DailyProtein: 150, DailyCarbs: 250, DailyFat: 65}

	got := ComputeProgress(summary, targets)
	if got.Calories != 75 {
		t.Errorf("calorie progress = %d%%, want 75%%", got.Calories)
	}
	if got.Protein != 50 {
		t.Errorf("protein progress = %d%%, want 50%%", got.Protein)
	}
	if got.Carbs != 80 {
		t.Errorf("carbs progress = %d%%, want 80%%", got.Carbs)
	}
}

// Progress may exceed 100; clamping is a display concern, not ours.
func TestComputeProgress_Over100NotClamped(t *testing.T) {
	got := ComputeProgress(DailySummary{Calories: 3000}, Targets{DailyCalories: 2000})
	if got.Calories != 150 {
		t.Errorf("calorie progress = %d%%, want 150%%", got.Calories)
	}
}

func TestComputeProgress_ZeroTargets(t *testing.T) {
	got := ComputeProgress(DailySummary{Calories: 500}, Targets{})
	if got.Calories != 0 {
		t.Errorf("zero target progress = %d%%, want 0%%", got.Calories)
	}
}
