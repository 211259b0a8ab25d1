// Package planner assembles weekly diet plans from calorie/macro targets and
// the meal catalog. Selection is a greedy, randomized, per-slot-independent
// heuristic: no cross-slot optimization, no backtracking when a day comes up
// empty.
package planner

import (
	"context"
	"math"
	"math/rand"

	"github.com/crionaz/nutriplan/nutrition"
)

// MealSummary is the slice of a catalog meal the generator needs.
type MealSummary struct {
	ID                 uint
	CaloriesPerServing float64
	Tags               []string
}

// CandidateFilter describes one slot's candidate query. Zero-valued optional
// fields mean "no constraint".
type CandidateFilter struct {
	Category    nutrition.MealType
	MinCalories float64
	MaxCalories float64
	DietTag     string // empty for regular diets
	MaxPrepTime int    // minutes, 0 = unconstrained
	MaxCookTime int    // minutes, 0 = unconstrained
	Difficulty  string // empty = any
	Limit       int
}

// MealLookup is the port the generator queries for candidate meals.
// Implementations only return publicly visible meals.
type MealLookup interface {
	FindCandidates(ctx context.Context, f CandidateFilter) ([]MealSummary, error)
}

// Preferences steer slot selection. Meal-type inclusion is explicit opt-in:
// if any include flag is set, only those categories are planned; if none is
// set, the default is breakfast, lunch and dinner.
type Preferences struct {
	IncludeBreakfast bool
	IncludeLunch     bool
	IncludeDinner    bool
	IncludeSnacks    bool
	MaxPrepTime      int
	MaxCookTime      int
	Difficulty       string
}

// Slot is one generated (day, meal-type) cell of a weekly plan.
type Slot struct {
	MealID      uint
	DayOfWeek   int // 0-6, Sunday=0
	MealType    nutrition.MealType
	Servings    float64
	IsCompleted bool
}

// Serving bounds and the calorie tolerance band around a slot's share of the
// daily target.
const (
	minServings      = 0.25
	maxServings      = 3.0
	calorieTolerance = 0.3
	candidateLimit   = 10
)

// Generator fills a 7-day plan against a MealLookup. The random source is
// injected so generation is reproducible under a fixed seed.
type Generator struct {
	lookup MealLookup
	rng    *rand.Rand
}

// New returns a Generator using the given lookup and random source.
func New(lookup MealLookup, rng *rand.Rand) *Generator {
	return &Generator{lookup: lookup, rng: rng}
}

// slotTypes resolves the meal-type slots active for this generation run.
func slotTypes(p Preferences) []nutrition.MealType {
	var out []nutrition.MealType
	if p.IncludeBreakfast {
		out = append(out, nutrition.MealBreakfast)
	}
	if p.IncludeLunch {
		out = append(out, nutrition.MealLunch)
	}
	if p.IncludeDinner {
		out = append(out, nutrition.MealDinner)
	}
	if p.IncludeSnacks {
		out = append(out, nutrition.MealSnack)
	}
	if len(out) == 0 {
		out = []nutrition.MealType{nutrition.MealBreakfast, nutrition.MealLunch, nutrition.MealDinner}
	}
	return out
}

// Generate assembles plan slots for all 7 days. A slot whose candidate pool
// is empty is silently skipped, so the result may hold fewer than
// 7 x slot-type entries; that degraded plan is still returned without error.
// Lookup failures propagate.
func (g *Generator) Generate(ctx context.Context, targets nutrition.Targets, prefs Preferences, dietType nutrition.DietType) ([]Slot, error) {
	types := slotTypes(prefs)
	caloriesPerSlot := math.Round(float64(targets.DailyCalories) / float64(len(types)))

	dietTag := ""
	if dietType != "" && dietType != nutrition.DietRegular {
		dietTag = string(dietType)
	}

	var slots []Slot
	for day := 0; day < 7; day++ {
		for _, mealType := range types {
			candidates, err := g.lookup.FindCandidates(ctx, CandidateFilter{
				Category:    mealType,
				MinCalories: caloriesPerSlot * (1 - calorieTolerance),
				MaxCalories: caloriesPerSlot * (1 + calorieTolerance),
				DietTag:     dietTag,
				MaxPrepTime: prefs.MaxPrepTime,
				MaxCookTime: prefs.MaxCookTime,
				Difficulty:  prefs.Difficulty,
				Limit:       candidateLimit,
			})
			if err != nil {
				return nil, err
			}
			if len(candidates) == 0 {
				continue
			}

			meal := candidates[g.rng.Intn(len(candidates))]
			slots = append(slots, Slot{
				MealID:    meal.ID,
				DayOfWeek: day,
				MealType:  mealType,
				Servings:  servingsFor(caloriesPerSlot, meal.CaloriesPerServing),
			})
		}
	}
	return slots, nil
}

// servingsFor sizes a meal to the slot's calorie share, rounded to one
// decimal and clamped to [0.25, 3.0]. A meal with no calorie data gets one
// serving.
func servingsFor(caloriesPerSlot, caloriesPerServing float64) float64 {
	if caloriesPerServing <= 0 {
		return 1.0
	}
	s := math.Round(caloriesPerSlot/caloriesPerServing*10) / 10
	if s < minServings {
		return minServings
	}
	if s > maxServings {
		return maxServings
	}
	return s
}
