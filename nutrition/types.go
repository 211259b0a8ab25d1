package nutrition

// Sex selects the BMR formula branch.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel scales BMR into total daily energy expenditure.
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtremelyActive  ActivityLevel = "extremely_active"
)

// activityMultipliers is the single source of truth for valid activity
// levels; also used for input validation at the profile boundary.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:        1.2,
	ActivityLightlyActive:    1.375,
	ActivityModeratelyActive: 1.55,
	ActivityVeryActive:       1.725,
	ActivityExtremelyActive:  1.9,
}

// ValidActivityLevel reports whether s is a known activity level.
func ValidActivityLevel(s ActivityLevel) bool {
	_, ok := activityMultipliers[s]
	return ok
}

// GoalType is the user's weight goal.
type GoalType string

const (
	GoalWeightLoss  GoalType = "weight_loss"
	GoalWeightGain  GoalType = "weight_gain"
	GoalMaintenance GoalType = "maintenance"
	GoalMuscleGain  GoalType = "muscle_gain"
)

// ValidGoalType reports whether s is a known goal type.
func ValidGoalType(s GoalType) bool {
	switch s {
	case GoalWeightLoss, GoalWeightGain, GoalMaintenance, GoalMuscleGain:
		return true
	}
	return false
}

// DietType picks the macro split and constrains meal selection by tag.
type DietType string

const (
	DietRegular       DietType = "regular"
	DietVegetarian    DietType = "vegetarian"
	DietVegan         DietType = "vegan"
	DietKeto          DietType = "keto"
	DietPaleo         DietType = "paleo"
	DietMediterranean DietType = "mediterranean"
)

// ValidDietType reports whether s is a known diet type.
func ValidDietType(s DietType) bool {
	_, ok := macroSplits[s]
	return ok
}

// MealType is the 8-way meal category shared by the catalog, plan slots and
// food-log entries.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
	MealDessert   MealType = "dessert"
	MealDrink     MealType = "drink"
	MealAppetizer MealType = "appetizer"
	MealSideDish  MealType = "side_dish"
)

// ValidMealType reports whether s is a known meal category.
func ValidMealType(s MealType) bool {
	switch s {
	case MealBreakfast, MealLunch, MealDinner, MealSnack,
		MealDessert, MealDrink, MealAppetizer, MealSideDish:
		return true
	}
	return false
}

// Info is the nutrition-facts shape attached to meals, ingredients and
// custom foods. All fields are per base serving and must be >= 0.
type Info struct {
	Calories    float64 `gorm:"default:0" json:"calories"`
	Protein     float64 `gorm:"default:0" json:"protein"`
	Carbs       float64 `gorm:"default:0" json:"carbs"`
	Fat         float64 `gorm:"default:0" json:"fat"`
	Fiber       float64 `gorm:"default:0" json:"fiber"`
	Sugar       float64 `gorm:"default:0" json:"sugar"`
	Sodium      float64 `gorm:"default:0" json:"sodium"`
	Cholesterol float64 `gorm:"default:0" json:"cholesterol"`
}

// Add returns the field-wise sum of two Info values.
func (n Info) Add(o Info) Info {
	return Info{
		Calories:    n.Calories + o.Calories,
		Protein:     n.Protein + o.Protein,
		Carbs:       n.Carbs + o.Carbs,
		Fat:         n.Fat + o.Fat,
		Fiber:       n.Fiber + o.Fiber,
		Sugar:       n.Sugar + o.Sugar,
		Sodium:      n.Sodium + o.Sodium,
		Cholesterol: n.Cholesterol + o.Cholesterol,
	}
}

// Scale returns the Info multiplied by a servings factor.
func (n Info) Scale(servings float64) Info {
	return Info{
		Calories:    n.Calories * servings,
		Protein:     n.Protein * servings,
		Carbs:       n.Carbs * servings,
		Fat:         n.Fat * servings,
		Fiber:       n.Fiber * servings,
		Sugar:       n.Sugar * servings,
		Sodium:      n.Sodium * servings,
		Cholesterol: n.Cholesterol * servings,
	}
}
