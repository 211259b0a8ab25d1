package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/crionaz/nutriplan/models"
	"github.com/crionaz/nutriplan/planner"
)

// MealLookupService implements planner.MealLookup over the meal catalog.
// Only public meals are ever returned to the generator.
type MealLookupService struct {
	db *gorm.DB
}

func NewMealLookupService(db *gorm.DB) *MealLookupService {
	return &MealLookupService{db: db}
}

// FindCandidates queries meals matching the slot filter. The calorie window
// applies to the meal's per-base-serving calories; the diet tag, when set,
// must appear in the meal's tag list.
func (s *MealLookupService) FindCandidates(ctx context.Context, f planner.CandidateFilter) ([]planner.MealSummary, error) {
	q := s.db.WithContext(ctx).Model(&models.Meal{}).
		Where("category = ?", f.Category).
		Where("is_public = ?", true).
		Where("calories >= ? AND calories <= ?", f.MinCalories, f.MaxCalories)

	if f.DietTag != "" {
		q = q.Where("tags LIKE ?", "%"+strings.ToLower(f.DietTag)+"%")
	}
	if f.MaxPrepTime > 0 {
		q = q.Where("prep_time <= ?", f.MaxPrepTime)
	}
	if f.MaxCookTime > 0 {
		q = q.Where("cook_time <= ?", f.MaxCookTime)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}

	var meals []models.Meal
	if err := q.Limit(limit).Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("find candidate meals: %w", err)
	}

	out := make([]planner.MealSummary, 0, len(meals))
	for i := range meals {
		m := &meals[i]
		// LIKE is a coarse prefilter for tags; confirm exact membership here
		// so "vegan" never matches a "vegan-option" tagged meal by accident.
		if f.DietTag != "" && !m.HasTag(f.DietTag) {
			continue
		}
		out = append(out, planner.MealSummary{
			ID:                 m.ID,
			CaloriesPerServing: m.Nutrition.Calories,
			Tags:               m.TagList(),
		})
	}
	return out, nil
}
