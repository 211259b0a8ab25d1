package services

import (
	"testing"
	"time"

	"github.com/crionaz/nutriplan/models"
	"github.com/crionaz/nutriplan/nutrition"
)

func TestResolve(t *testing.T) {
	now := time.Now()
	mealID := uint(1)

	entries := []models.FoodLogEntry{
		{
			UserID:     1,
			MealID:     &mealID,
			Meal:       &models.Meal{Nutrition: nutrition.Info{Calories: 300, Protein: 20}},
			MealType:   nutrition.MealLunch,
			Servings:   2,
			ConsumedAt: now,
		},
		{
			UserID:     1,
			Custom:     &models.CustomFood{Name: "Apple", Nutrition: nutrition.Info{Calories: 95}},
			MealType:   nutrition.MealSnack,
			Servings:   1,
			ConsumedAt: now,
		},
		// Dangling meal reference: the meal was deleted after logging.
		{
			UserID:     1,
			MealID:     &mealID,
			MealType:   nutrition.MealDinner,
			Servings:   1,
			ConsumedAt: now,
		},
	}

	resolved := Resolve(entries)
	if len(resolved) != 2 {
		t.Fatalf("resolved %d entries, want 2 (dangling reference dropped)", len(resolved))
	}
	if resolved[0].Info.Calories != 300 || resolved[0].Servings != 2 {
		t.Errorf("unexpected first entry %+v", resolved[0])
	}
	if resolved[1].Info.Calories != 95 || resolved[1].MealType != nutrition.MealSnack {
		t.Errorf("unexpected second entry %+v", resolved[1])
	}

	summary := nutrition.Aggregate(resolved)
	if summary.Calories != 695 {
		t.Errorf("aggregated calories = %d, want 695", summary.Calories)
	}
}
