package models

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/crionaz/nutriplan/nutrition"
)

// ErrFoodSource is returned when a food-log entry does not reference exactly
// one of a catalog meal or a custom food.
var ErrFoodSource = errors.New("food log entry must reference exactly one of meal or custom food")

// CustomFood is an ad-hoc food embedded in a log entry, for things not in
// the catalog.
type CustomFood struct {
	Name      string         `gorm:"size:255" json:"name"`
	Nutrition nutrition.Info `gorm:"embedded" json:"nutrition"`
}

// FoodLogEntry records one consumed food. Exactly one of MealID or Custom
// is set; build entries through NewMealLogEntry / NewCustomFoodLogEntry so
// the both-or-neither state never exists in code, and BeforeSave rejects it
// at the persistence boundary regardless.
type FoodLogEntry struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	UserID     uint               `gorm:"not null;index" json:"user_id"`
	ConsumedAt time.Time          `gorm:"index" json:"consumed_at"`
	MealType   nutrition.MealType `gorm:"size:30;not null" json:"meal_type"`
	Servings   float64            `gorm:"default:1" json:"servings"`
	CreatedAt  time.Time          `json:"created_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"-"`

	MealID *uint       `gorm:"index" json:"meal_id,omitempty"`
	Custom *CustomFood `gorm:"embedded;embeddedPrefix:custom_" json:"custom_food,omitempty"`

	Meal *Meal `json:"meal,omitempty"`
}

// NewMealLogEntry builds an entry referencing a catalog meal.
func NewMealLogEntry(userID, mealID uint, mealType nutrition.MealType, servings float64, consumedAt time.Time) FoodLogEntry {
	id := mealID
	return FoodLogEntry{
		UserID:     userID,
		MealID:     &id,
		MealType:   mealType,
		Servings:   servings,
		ConsumedAt: consumedAt,
	}
}

// NewCustomFoodLogEntry builds an entry carrying its own nutrition facts.
func NewCustomFoodLogEntry(userID uint, food CustomFood, mealType nutrition.MealType, servings float64, consumedAt time.Time) FoodLogEntry {
	return FoodLogEntry{
		UserID:     userID,
		Custom:     &food,
		MealType:   mealType,
		Servings:   servings,
		ConsumedAt: consumedAt,
	}
}

// Validate enforces the mutually-exclusive food source invariant.
func (e *FoodLogEntry) Validate() error {
	hasMeal := e.MealID != nil
	hasCustom := e.Custom != nil && e.Custom.Name != ""
	if hasMeal == hasCustom {
		return ErrFoodSource
	}
	return nil
}

// BeforeSave rejects malformed entries before they reach the database.
func (e *FoodLogEntry) BeforeSave(tx *gorm.DB) error {
	return e.Validate()
}

// WaterIntakeEntry records one drink. The daily total is a derived sum,
// never stored.
type WaterIntakeEntry struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	AmountML   int            `gorm:"not null" json:"amount_ml"`
	RecordedAt time.Time      `gorm:"index" json:"recorded_at"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
