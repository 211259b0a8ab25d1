package models

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/crionaz/nutriplan/nutrition"
)

// Meal is a catalog meal. The embedded Nutrition aggregate is derived from
// the ingredient sum at creation/update time (directly or via the recompute
// worker) and is not mutated by callers afterward.
type Meal struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	Name       string             `gorm:"size:255;not null" json:"name"`
	Category   nutrition.MealType `gorm:"size:30;not null;index" json:"category"`
	PrepTime   int                `gorm:"default:0" json:"prep_time"`
	CookTime   int                `gorm:"default:0" json:"cook_time"`
	Servings   int                `gorm:"default:1" json:"servings"`
	Difficulty string             `gorm:"size:10;default:'easy'" json:"difficulty"`
	Tags       string             `gorm:"size:512" json:"tags"` // comma-separated
	CreatedBy  uint               `gorm:"not null;index" json:"created_by"`
	IsPublic   bool               `gorm:"default:true;index" json:"is_public"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"-"`

	Nutrition   nutrition.Info   `gorm:"embedded" json:"nutrition"`
	Ingredients []MealIngredient `json:"ingredients,omitempty"`
}

// TagList splits the comma-separated tag field into trimmed, lowercased
// tags, dropping empties.
func (m *Meal) TagList() []string {
	parts := strings.Split(m.Tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HasTag reports whether the meal carries the given tag (case-insensitive).
func (m *Meal) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range m.TagList() {
		if t == tag {
			return true
		}
	}
	return false
}

// ComputeNutrition derives the aggregate nutrition facts from the
// ingredient sum. Leaves the aggregate untouched when the meal has no
// ingredient rows (explicitly-set nutrition stays authoritative then).
func (m *Meal) ComputeNutrition() {
	if len(m.Ingredients) == 0 {
		return
	}
	var total nutrition.Info
	for _, ing := range m.Ingredients {
		total = total.Add(ing.Nutrition)
	}
	m.Nutrition = total
}

// MealIngredient is one ingredient row with its own nutrition facts.
type MealIngredient struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	MealID   uint    `gorm:"not null;index" json:"meal_id"`
	Name     string  `gorm:"size:255;not null" json:"name"`
	Quantity float64 `gorm:"default:0" json:"quantity"`
	Unit     string  `gorm:"size:50" json:"unit"`

	Nutrition nutrition.Info `gorm:"embedded" json:"nutrition"`
}
