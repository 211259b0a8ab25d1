package nutrition

import (
	"math"
	"testing"
)

// makeBiometrics returns the reference snapshot used across calculator
// tests: 70kg, 175cm, 30 years, male, moderately active, maintenance,
// regular diet. Individual tests tweak fields from there.
func makeBiometrics() Biometrics {
	return Biometrics{
		HeightCM:      175,
		WeightKG:      70,
		Age:           30,
		Sex:           SexMale,
		ActivityLevel: ActivityModeratelyActive,
		Goal:          GoalMaintenance,
		DietType:      DietRegular,
	}
}

func TestComputeTargets_ReferenceMaleMaintenance(t *testing.T) {
	targets, ok := ComputeTargets(makeBiometrics())
	if !ok {
		t.Fatal("expected ok=true for complete biometrics")
	}

	// BMR = 88.362 + 13.397*70 + 4.799*175 - 5.677*30 ≈ 1695.7
	// TDEE = BMR * 1.55 ≈ 2628.3
	if math.Abs(float64(targets.DailyCalories)-2628) > 2 {
		t.Errorf("DailyCalories = %d, want ~2628", targets.DailyCalories)
	}
	if targets.ProteinPercentage != 20 || targets.CarbsPercentage != 50 || targets.FatPercentage != 30 {
		t.Errorf("macro split = %v/%v/%v, want 20/50/30",
			targets.ProteinPercentage, targets.CarbsPercentage, targets.FatPercentage)
	}
	if math.Abs(float64(targets.DailyProtein)-131) > 1 {
		t.Errorf("DailyProtein = %d, want ~131", targets.DailyProtein)
	}
	if math.Abs(float64(targets.DailyCarbs)-329) > 1 {
		t.Errorf("DailyCarbs = %d, want ~329", targets.DailyCarbs)
	}
	if math.Abs(float64(targets.DailyFat)-88) > 1 {
		t.Errorf("DailyFat = %d, want ~88", targets.DailyFat)
	}
	if targets.DailySodium != 2300 {
		t.Errorf("DailySodium = %d, want 2300", targets.DailySodium)
	}
	// Fiber: 14g per 1000 kcal
	if math.Abs(float64(targets.DailyFiber)-37) > 1 {
		t.Errorf("DailyFiber = %d, want ~37", targets.DailyFiber)
	}
}

func TestComputeTargets_WeightLossAdjustment(t *testing.T) {
	b := makeBiometrics()
	b.Goal = GoalWeightLoss
	targets, ok := ComputeTargets(b)
	if !ok {
		t.Fatal("expected ok=true")
	}
	// TDEE - 500
	if math.Abs(float64(targets.DailyCalories)-2128) > 2 {
		t.Errorf("DailyCalories = %d, want ~2128 (TDEE-500)", targets.DailyCalories)
	}
}

func TestComputeTargets_GoalAdjustments(t *testing.T) {
	base, _ := ComputeTargets(makeBiometrics())

	cases := []struct {
		name  string
		goal  GoalType
		delta int
	}{
		{"weight gain adds 500", GoalWeightGain, +500},
		{"muscle gain adds 300", GoalMuscleGain, +300},
		{"weight loss subtracts 500", GoalWeightLoss, -500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := makeBiometrics()
			b.Goal = tc.goal
			targets, ok := ComputeTargets(b)
			if !ok {
				t.Fatal("expected ok=true")
			}
			got := targets.DailyCalories - base.DailyCalories
			if got != tc.delta {
				t.Errorf("calorie delta = %d, want %d", got, tc.delta)
			}
		})
	}
}

// TestComputeTargets_CalorieFloor verifies a low-TDEE profile with a
// weight-loss goal clamps to the 1200 kcal floor rather than going under.
func TestComputeTargets_CalorieFloor(t *testing.T) {
	b := Biometrics{
		HeightCM:      145,
		WeightKG:      40,
		Age:           60,
		Sex:           SexFemale,
		ActivityLevel: ActivitySedentary,
		Goal:          GoalWeightLoss,
		DietType:      DietRegular,
	}
	targets, ok := ComputeTargets(b)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if targets.DailyCalories != 1200 {
		t.Errorf("DailyCalories = %d, want floor 1200", targets.DailyCalories)
	}
}

func TestComputeTargets_Deterministic(t *testing.T) {
	b := makeBiometrics()
	first, ok1 := ComputeTargets(b)
	second, ok2 := ComputeTargets(b)
	if !ok1 || !ok2 {
		t.Fatal("expected ok=true on both calls")
	}
	if first != second {
		t.Errorf("ComputeTargets not deterministic: %+v vs %+v", first, second)
	}
}

func TestComputeTargets_InvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		mutFn func(b *Biometrics)
	}{
		{"zero height", func(b *Biometrics) { b.HeightCM = 0 }},
		{"negative height", func(b *Biometrics) { b.HeightCM = -170 }},
		{"zero weight", func(b *Biometrics) { b.WeightKG = 0 }},
		{"negative age", func(b *Biometrics) { b.Age = -1 }},
		{"implausible age", func(b *Biometrics) { b.Age = 131 }},
		{"unknown activity level", func(b *Biometrics) { b.ActivityLevel = "couch" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := makeBiometrics()
			tc.mutFn(&b)
			if _, ok := ComputeTargets(b); ok {
				t.Errorf("expected ok=false for %s", tc.name)
			}
		})
	}
}

// TestMacroSplitsSumTo100 pins the static invariant of the diet-type table.
func TestMacroSplitsSumTo100(t *testing.T) {
	for diet, split := range macroSplits {
		if split.protein+split.carbs+split.fat != 100 {
			t.Errorf("macro split for %s sums to %v, want 100",
				diet, split.protein+split.carbs+split.fat)
		}
	}
}

// TestComputeTargets_GramCalorieConsistency checks the Atwater conversion:
// protein*4 + carbs*4 + fat*9 must land close to the calorie target. Each
// macro is rounded to a whole gram, so the bound is a few kcal.
func TestComputeTargets_GramCalorieConsistency(t *testing.T) {
	diets := []DietType{DietRegular, DietVegetarian, DietVegan, DietKeto, DietPaleo, DietMediterranean}
	for _, diet := range diets {
		t.Run(string(diet), func(t *testing.T) {
			b := makeBiometrics()
			b.DietType = diet
			targets, ok := ComputeTargets(b)
			if !ok {
				t.Fatal("expected ok=true")
			}
			reconstructed := targets.DailyProtein*4 + targets.DailyCarbs*4 + targets.DailyFat*9
			if diff := math.Abs(float64(reconstructed - targets.DailyCalories)); diff > 5 {
				t.Errorf("macro kcal %d vs target %d, diff %.0f exceeds rounding tolerance",
					reconstructed, targets.DailyCalories, diff)
			}
		})
	}
}

func TestComputeTargets_UnknownDietFallsBackToRegular(t *testing.T) {
	b := makeBiometrics()
	b.DietType = "carnivore"
	targets, ok := ComputeTargets(b)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if targets.ProteinPercentage != 20 || targets.CarbsPercentage != 50 || targets.FatPercentage != 30 {
		t.Errorf("unknown diet split = %v/%v/%v, want regular 20/50/30",
			targets.ProteinPercentage, targets.CarbsPercentage, targets.FatPercentage)
	}
}

func TestBMI(t *testing.T) {
	cases := []struct {
		name     string
		heightCM float64
		weightKG float64
		want     float64
		ok       bool
	}{
		{"normal", 175, 70, 22.86, true},
		{"underweight", 180, 55, 16.98, true},
		{"zero height", 0, 70, 0, false},
		{"zero weight", 175, 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := BMI(tc.heightCM, tc.weightKG)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && math.Abs(got-tc.want) > 0.01 {
				t.Errorf("BMI = %.2f, want %.2f", got, tc.want)
			}
		})
	}
}

func TestBMICategory(t *testing.T) {
	cases := []struct {
		bmi  float64
		want string
	}{
		{16, "underweight"},
		{18.5, "normal"},
		{24.9, "normal"},
		{25, "overweight"},
		{29.9, "overweight"},
		{30, "obese"},
	}
	for _, tc := range cases {
		if got := BMICategory(tc.bmi); got != tc.want {
			t.Errorf("BMICategory(%.1f) = %q, want %q", tc.bmi, got, tc.want)
		}
	}
}
