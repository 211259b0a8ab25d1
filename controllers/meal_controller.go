package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crionaz/nutriplan/database"
	"github.com/crionaz/nutriplan/jobs"
	"github.com/crionaz/nutriplan/logger"
	"github.com/crionaz/nutriplan/models"
	"github.com/crionaz/nutriplan/nutrition"
)

type MealRequest struct {
	Name        string                  `json:"name"`
	Category    nutrition.MealType      `json:"category"`
	PrepTime    int                     `json:"prep_time"`
	CookTime    int                     `json:"cook_time"`
	Servings    int                     `json:"servings"`
	Difficulty  string                  `json:"difficulty"`
	Tags        string                  `json:"tags"`
	IsPublic    *bool                   `json:"is_public,omitempty"`
	Nutrition   *nutrition.Info         `json:"nutrition,omitempty"`
	Ingredients []models.MealIngredient `json:"ingredients,omitempty"`
}

func (req *MealRequest) validate() string {
	if req.Name == "" {
		return "Name is required"
	}
	if !nutrition.ValidMealType(req.Category) {
		return "Unknown meal category"
	}
	if req.PrepTime < 0 || req.CookTime < 0 {
		return "Prep and cook time must be >= 0"
	}
	if req.Servings < 1 || req.Servings > 20 {
		return "Servings must be between 1 and 20"
	}
	switch req.Difficulty {
	case "", "easy", "medium", "hard":
	default:
		return "Difficulty must be easy, medium or hard"
	}
	if req.Nutrition != nil {
		n := req.Nutrition
		if n.Calories < 0 || n.Protein < 0 || n.Carbs < 0 || n.Fat < 0 ||
			n.Fiber < 0 || n.Sugar < 0 || n.Sodium < 0 || n.Cholesterol < 0 {
			return "Nutrition fields must be >= 0"
		}
	}
	return ""
}

func (req *MealRequest) apply(meal *models.Meal) {
	meal.Name = req.Name
	meal.Category = req.Category
	meal.PrepTime = req.PrepTime
	meal.CookTime = req.CookTime
	meal.Servings = req.Servings
	if req.Difficulty != "" {
		meal.Difficulty = req.Difficulty
	}
	meal.Tags = req.Tags
	if req.IsPublic != nil {
		meal.IsPublic = *req.IsPublic
	}
	if req.Nutrition != nil {
		meal.Nutrition = *req.Nutrition
	}
	meal.Ingredients = req.Ingredients
	// Ingredient sum is authoritative whenever ingredient rows exist.
	meal.ComputeNutrition()
}

// ListMeals returns public meals plus the caller's own, with optional
// category/search/prep-time/difficulty filters.
func ListMeals(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	q := database.DB.Model(&models.Meal{}).
		Where("is_public = ? OR created_by = ?", true, userID)

	if c := r.URL.Query().Get("category"); c != "" {
		q = q.Where("category = ?", c)
	}
	if search := r.URL.Query().Get("q"); search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	if mp := r.URL.Query().Get("maxPrepTime"); mp != "" {
		if v, err := strconv.Atoi(mp); err == nil {
			q = q.Where("prep_time <= ?", v)
		}
	}
	if d := r.URL.Query().Get("difficulty"); d != "" {
		q = q.Where("difficulty = ?", d)
	}

	var meals []models.Meal
	if err := q.Order("name asc").Find(&meals).Error; err != nil {
		logger.Error("Failed to fetch meals", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch meals")
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

func GetMeal(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	mealID, err := strconv.ParseUint(chi.URLParam(r, "meal_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid meal ID")
		return
	}

	var meal models.Meal
	if err := database.DB.Preload("Ingredients").First(&meal, mealID).Error; err != nil {
		writeError(w, http.StatusNotFound, "Meal not found")
		return
	}
	if !meal.IsPublic && meal.CreatedBy != userID {
		writeError(w, http.StatusNotFound, "Meal not found")
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

func CreateMeal(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req MealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	meal := models.Meal{CreatedBy: userID, IsPublic: true, Difficulty: "easy", Servings: 1}
	req.apply(&meal)

	if err := database.DB.Create(&meal).Error; err != nil {
		logger.Error("Failed to create meal", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create meal")
		return
	}

	if len(meal.Ingredients) > 0 {
		jobs.GetWorker().Enqueue(meal.ID)
	}

	logger.Info("Meal created", "meal_id", meal.ID, "user_id", userID)
	writeJSON(w, http.StatusCreated, meal)
}

func UpdateMeal(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	mealID, err := strconv.ParseUint(chi.URLParam(r, "meal_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid meal ID")
		return
	}

	var meal models.Meal
	if err := database.DB.Preload("Ingredients").Where("id = ? AND created_by = ?", mealID, userID).First(&meal).Error; err != nil {
		writeError(w, http.StatusNotFound, "Meal not found")
		return
	}

	var req MealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if len(req.Ingredients) > 0 {
		// Replace ingredient rows wholesale; partial edits come back as the
		// full list from the client.
		if err := database.DB.Where("meal_id = ?", meal.ID).Delete(&models.MealIngredient{}).Error; err != nil {
			logger.Error("Failed to clear ingredients", "meal_id", meal.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update meal")
			return
		}
	}
	req.apply(&meal)

	if err := database.DB.Save(&meal).Error; err != nil {
		logger.Error("Failed to update meal", "meal_id", meal.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update meal")
		return
	}

	if len(meal.Ingredients) > 0 {
		jobs.GetWorker().Enqueue(meal.ID)
	}

	writeJSON(w, http.StatusOK, meal)
}

func DeleteMeal(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	mealID, err := strconv.ParseUint(chi.URLParam(r, "meal_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid meal ID")
		return
	}

	result := database.DB.Where("id = ? AND created_by = ?", mealID, userID).Delete(&models.Meal{})
	if result.Error != nil {
		logger.Error("Failed to delete meal", "meal_id", mealID, "error", result.Error)
		writeError(w, http.StatusInternalServerError, "Failed to delete meal")
		return
	}
	if result.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "Meal not found")
		return
	}

	logger.Info("Meal deleted", "meal_id", mealID, "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}
