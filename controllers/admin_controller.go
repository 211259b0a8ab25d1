package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crionaz/nutriplan/database"
	"github.com/crionaz/nutriplan/logger"
	"github.com/crionaz/nutriplan/models"
)

// ListUsers returns all users for the admin dashboard.
func ListUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := database.DB.Order("created_at desc").Find(&users).Error; err != nil {
		logger.Error("Failed to fetch users", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(chi.URLParam(r, "user_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	result := database.DB.Delete(&models.User{}, userID)
	if result.Error != nil {
		logger.Error("Failed to delete user", "user_id", userID, "error", result.Error)
		writeError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if result.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	logger.Info("User deleted by admin", "user_id", userID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

// GetAdminStats returns dashboard counters.
func GetAdminStats(w http.ResponseWriter, r *http.Request) {
	var users, meals, plans, foodLogs int64
	database.DB.Model(&models.User{}).Count(&users)
	database.DB.Model(&models.Meal{}).Count(&meals)
	database.DB.Model(&models.DietPlan{}).Count(&plans)
	database.DB.Model(&models.FoodLogEntry{}).Count(&foodLogs)

	writeJSON(w, http.StatusOK, map[string]int64{
		"users":     users,
		"meals":     meals,
		"plans":     plans,
		"food_logs": foodLogs,
	})
}

// SetMealVisibility lets an admin publish or unpublish any catalog meal.
func SetMealVisibility(w http.ResponseWriter, r *http.Request) {
	mealID, err := strconv.ParseUint(chi.URLParam(r, "meal_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid meal ID")
		return
	}

	var req struct {
		IsPublic bool `json:"is_public"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := database.DB.Model(&models.Meal{}).Where("id = ?", mealID).Update("is_public", req.IsPublic)
	if result.Error != nil {
		logger.Error("Failed to update meal visibility", "meal_id", mealID, "error", result.Error)
		writeError(w, http.StatusInternalServerError, "Failed to update meal")
		return
	}
	if result.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "Meal not found")
		return
	}

	logger.Info("Meal visibility updated", "meal_id", mealID, "is_public", req.IsPublic)
	writeJSON(w, http.StatusOK, map[string]any{"meal_id": mealID, "is_public": req.IsPublic})
}
