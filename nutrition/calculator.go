package nutrition

import "math"

// Biometrics is the immutable snapshot a targets calculation runs over.
// Age is derived from the stored date of birth by the profile layer before
// it gets here; the calculator never touches the clock.
type Biometrics struct {
	HeightCM      float64
	WeightKG      float64
	Age           int
	Sex           Sex
	ActivityLevel ActivityLevel
	Goal          GoalType
	WeeklyGoalKG  float64
	DietType      DietType
}

// Targets are the daily calorie/macro targets produced by ComputeTargets.
// Created once per plan-generation request and never mutated afterward
// except by an explicit user override merge.
type Targets struct {
	DailyCalories     int     `gorm:"default:0" json:"daily_calories"`
	DailyProtein      int     `gorm:"default:0" json:"daily_protein"`
	DailyCarbs        int     `gorm:"default:0" json:"daily_carbs"`
	DailyFat          int     `gorm:"default:0" json:"daily_fat"`
	DailyFiber        int     `gorm:"default:0" json:"daily_fiber"`
	DailySodium       int     `gorm:"default:0" json:"daily_sodium"`
	ProteinPercentage float64 `gorm:"default:0" json:"protein_percentage"`
	CarbsPercentage   float64 `gorm:"default:0" json:"carbs_percentage"`
	FatPercentage     float64 `gorm:"default:0" json:"fat_percentage"`
}

// minDailyCalories is the floor applied to every computed calorie target,
// regardless of how aggressive the goal adjustment is.
const minDailyCalories = 1200

// dailySodiumMG is the WHO guideline; not goal- or diet-dependent.
const dailySodiumMG = 2300

// macroSplit is a protein/carbs/fat percentage triple. Every row of
// macroSplits sums to 100; TestMacroSplitsSumTo100 pins that down.
type macroSplit struct {
	protein, carbs, fat float64
}

var macroSplits = map[DietType]macroSplit{
	DietRegular:       {20, 50, 30},
	DietVegetarian:    {15, 60, 25},
	DietVegan:         {15, 60, 25},
	DietKeto:          {20, 10, 70},
	DietPaleo:         {25, 35, 40},
	DietMediterranean: {18, 45, 37},
}

// goalAdjustments holds the fixed daily calorie adjustment per goal.
// The deficit/surplus is a flat 500 kcal (about 0.45 kg/week), 300 for
// muscle gain.
var goalAdjustments = map[GoalType]float64{
	GoalWeightLoss:  -500,
	GoalWeightGain:  +500,
	GoalMuscleGain:  +300,
	GoalMaintenance: 0,
}

// ComputeTargets converts a biometric snapshot into daily calorie and macro
// targets. Pure and deterministic: the same input always yields the same
// output. Returns ok=false when the snapshot is unusable (non-positive
// height/weight, implausible age, unknown activity level); callers surface
// that as an absent result rather than an error.
//
// BMR uses the revised Harris-Benedict equations, sex-branched. Macro grams
// use the standard Atwater factors (4 kcal/g protein and carbs, 9 kcal/g
// fat); fiber follows the 14 g per 1000 kcal guideline.
func ComputeTargets(b Biometrics) (Targets, bool) {
	if b.HeightCM <= 0 || b.WeightKG <= 0 {
		return Targets{}, false
	}
	if b.Age < 0 || b.Age > 130 {
		return Targets{}, false
	}
	mult, found := activityMultipliers[b.ActivityLevel]
	if !found {
		return Targets{}, false
	}

	var bmr float64
	if b.Sex == SexMale {
		bmr = 88.362 + 13.397*b.WeightKG + 4.799*b.HeightCM - 5.677*float64(b.Age)
	} else {
		bmr = 447.593 + 9.247*b.WeightKG + 3.098*b.HeightCM - 4.330*float64(b.Age)
	}

	tdee := bmr * mult
	calories := tdee + goalAdjustments[b.Goal]
	if calories < minDailyCalories {
		calories = minDailyCalories
	}
	dailyCalories := int(math.Round(calories))

	split, ok := macroSplits[b.DietType]
	if !ok {
		split = macroSplits[DietRegular]
	}

	cal := float64(dailyCalories)
	return Targets{
		DailyCalories:     dailyCalories,
		DailyProtein:      int(math.Round(cal * split.protein / 100 / 4)),
		DailyCarbs:        int(math.Round(cal * split.carbs / 100 / 4)),
		DailyFat:          int(math.Round(cal * split.fat / 100 / 9)),
		DailyFiber:        int(math.Round(cal / 1000 * 14)),
		DailySodium:       dailySodiumMG,
		ProteinPercentage: split.protein,
		CarbsPercentage:   split.carbs,
		FatPercentage:     split.fat,
	}, true
}

// BMI computes body mass index from height in cm and weight in kg.
// Returns ok=false when either measurement is missing or non-positive.
func BMI(heightCM, weightKG float64) (float64, bool) {
	if heightCM <= 0 || weightKG <= 0 {
		return 0, false
	}
	m := heightCM / 100
	return weightKG / (m * m), true
}

// BMICategory maps a BMI value to the standard WHO classification.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}
