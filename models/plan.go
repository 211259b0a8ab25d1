package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/crionaz/nutriplan/nutrition"
)

// Plan provenance values for DietPlan.GeneratedBy.
const (
	GeneratedByUser         = "user"
	GeneratedByAI           = "ai"
	GeneratedByNutritionist = "nutritionist"
)

// DietPlan is a dated weekly plan with a snapshot of the targets it was
// built against. At most one plan per user is active; creation deactivates
// prior active plans first (last-write-wins, not a transactional guarantee
// across processes).
type DietPlan struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	GeneratedBy string         `gorm:"size:20;default:'user'" json:"generated_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Targets nutrition.Targets `gorm:"embedded;embeddedPrefix:target_" json:"targets"`
	Meals   []DietPlanMeal    `json:"meals,omitempty"`
}

// DietPlanMeal is one (day-of-week, meal-type) slot of a plan. Multiple
// slots may reference the same catalog meal on different days or types.
type DietPlanMeal struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	DietPlanID  uint               `gorm:"not null;index" json:"diet_plan_id"`
	MealID      uint               `gorm:"not null;index" json:"meal_id"`
	DayOfWeek   int                `gorm:"not null" json:"day_of_week"` // 0-6, Sunday=0
	MealType    nutrition.MealType `gorm:"size:30;not null" json:"meal_type"`
	Servings    float64            `gorm:"default:1" json:"servings"`
	IsCompleted bool               `gorm:"default:false" json:"is_completed"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
	Notes       string             `gorm:"size:512" json:"notes"`
	CreatedAt   time.Time          `json:"created_at"`

	Meal *Meal `json:"meal,omitempty"`
}
