package models

import (
	"testing"
	"time"

	"github.com/crionaz/nutriplan/nutrition"
)

func TestFoodLogEntry_Constructors(t *testing.T) {
	now := time.Now()

	meal := NewMealLogEntry(1, 42, nutrition.MealLunch, 1.5, now)
	if err := meal.Validate(); err != nil {
		t.Errorf("meal entry invalid: %v", err)
	}
	if meal.MealID == nil || *meal.MealID != 42 {
		t.Error("meal entry missing meal reference")
	}

	custom := NewCustomFoodLogEntry(1, CustomFood{
		Name:      "Protein shake",
		Nutrition: nutrition.Info{Calories: 220, Protein: 30},
	}, nutrition.MealSnack, 1, now)
	if err := custom.Validate(); err != nil {
		t.Errorf("custom entry invalid: %v", err)
	}
	if custom.MealID != nil {
		t.Error("custom entry must not reference a meal")
	}
}

// Neither or both food sources set is the illegal state the constructors
// exist to prevent; Validate is the backstop at the persistence boundary.
func TestFoodLogEntry_ValidateExclusivity(t *testing.T) {
	mealID := uint(7)
	cases := []struct {
		name  string
		entry FoodLogEntry
		valid bool
	}{
		{"neither source", FoodLogEntry{}, false},
		{"both sources", FoodLogEntry{
			MealID: &mealID,
			Custom: &CustomFood{Name: "Soup"},
		}, false},
		{"meal only", FoodLogEntry{MealID: &mealID}, true},
		{"custom only", FoodLogEntry{Custom: &CustomFood{Name: "Soup"}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.entry.Validate()
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestUser_Age(t *testing.T) {
	at := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	dob := time.Date(1990, 6, 16, 0, 0, 0, 0, time.UTC) // birthday tomorrow
	u := User{DateOfBirth: &dob}
	if age, ok := u.Age(at); !ok || age != 35 {
		t.Errorf("age = %d (ok=%v), want 35 before the birthday", age, ok)
	}

	dob2 := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC) // birthday today
	u2 := User{DateOfBirth: &dob2}
	if age, ok := u2.Age(at); !ok || age != 36 {
		t.Errorf("age = %d (ok=%v), want 36 on the birthday", age, ok)
	}

	if _, ok := (&User{}).Age(at); ok {
		t.Error("expected ok=false without a date of birth")
	}
}

func TestUser_Biometrics(t *testing.T) {
	at := time.Now()
	dob := at.AddDate(-30, 0, 0)
	height, weight := 175.0, 70.0
	sex := nutrition.SexMale

	u := User{DateOfBirth: &dob, HeightCM: &height, WeightKG: &weight, Sex: &sex}
	b, ok := u.Biometrics(at)
	if !ok {
		t.Fatal("expected ok=true for a complete profile")
	}
	if b.HeightCM != 175 || b.WeightKG != 70 || b.Age != 30 {
		t.Errorf("unexpected snapshot %+v", b)
	}
	// Unset enums fall back to the mildest defaults.
	if b.ActivityLevel != nutrition.ActivitySedentary || b.Goal != nutrition.GoalMaintenance || b.DietType != nutrition.DietRegular {
		t.Errorf("unexpected defaults in %+v", b)
	}

	incomplete := User{DateOfBirth: &dob, HeightCM: &height}
	if _, ok := incomplete.Biometrics(at); ok {
		t.Error("expected ok=false without weight")
	}
}

func TestMeal_ComputeNutrition(t *testing.T) {
	meal := Meal{
		Nutrition: nutrition.Info{Calories: 999}, // explicit value, to be replaced
		Ingredients: []MealIngredient{
			{Name: "Oats", Nutrition: nutrition.Info{Calories: 150, Protein: 5, Carbs: 27, Fat: 3}},
			{Name: "Milk", Nutrition: nutrition.Info{Calories: 100, Protein: 8, Carbs: 12, Fat: 2.5}},
		},
	}
	meal.ComputeNutrition()
	if meal.Nutrition.Calories != 250 {
		t.Errorf("Calories = %v, want 250", meal.Nutrition.Calories)
	}
	if meal.Nutrition.Protein != 13 {
		t.Errorf("Protein = %v, want 13", meal.Nutrition.Protein)
	}

	// Without ingredient rows the explicit aggregate stays authoritative.
	explicit := Meal{Nutrition: nutrition.Info{Calories: 450}}
	explicit.ComputeNutrition()
	if explicit.Nutrition.Calories != 450 {
		t.Errorf("explicit nutrition overwritten: %v", explicit.Nutrition.Calories)
	}
}

func TestMeal_Tags(t *testing.T) {
	meal := Meal{Tags: "Vegan, high-protein , ,Quick"}
	tags := meal.TagList()
	want := []string{"vegan", "high-protein", "quick"}
	if len(tags) != len(want) {
		t.Fatalf("TagList = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("TagList[%d] = %q, want %q", i, tags[i], want[i])
		}
	}

	if !meal.HasTag("VEGAN") {
		t.Error("HasTag should be case-insensitive")
	}
	if meal.HasTag("keto") {
		t.Error("HasTag matched a missing tag")
	}
}
