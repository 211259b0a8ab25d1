package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/crionaz/nutriplan/database"
	"github.com/crionaz/nutriplan/logger"
	"github.com/crionaz/nutriplan/models"
	"github.com/crionaz/nutriplan/nutrition"
)

type FoodLogRequest struct {
	MealID     *uint              `json:"meal_id,omitempty"`
	CustomFood *models.CustomFood `json:"custom_food,omitempty"`
	MealType   nutrition.MealType `json:"meal_type"`
	Servings   float64            `json:"servings"`
	ConsumedAt *time.Time         `json:"consumed_at,omitempty"`
}

// LogFood records one consumed food, referencing either a catalog meal or a
// custom food (exactly one).
func LogFood(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req FoodLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !nutrition.ValidMealType(req.MealType) {
		writeError(w, http.StatusBadRequest, "Unknown meal type")
		return
	}
	if req.Servings < 0.1 || req.Servings > 20 {
		writeError(w, http.StatusBadRequest, "Servings must be between 0.1 and 20")
		return
	}

	consumedAt := time.Now()
	if req.ConsumedAt != nil {
		consumedAt = *req.ConsumedAt
	}

	var entry models.FoodLogEntry
	switch {
	case req.MealID != nil && req.CustomFood == nil:
		var meal models.Meal
		if err := database.DB.First(&meal, *req.MealID).Error; err != nil {
			writeError(w, http.StatusNotFound, "Meal not found")
			return
		}
		entry = models.NewMealLogEntry(userID, meal.ID, req.MealType, req.Servings, consumedAt)
	case req.CustomFood != nil && req.MealID == nil:
		if req.CustomFood.Name == "" {
			writeError(w, http.StatusBadRequest, "Custom food name is required")
			return
		}
		entry = models.NewCustomFoodLogEntry(userID, *req.CustomFood, req.MealType, req.Servings, consumedAt)
	default:
		writeError(w, http.StatusBadRequest, "Provide exactly one of meal_id or custom_food")
		return
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		logger.Error("Failed to log food", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to log food")
		return
	}

	logger.Info("Food logged", "user_id", userID, "entry_id", entry.ID)
	writeJSON(w, http.StatusCreated, entry)
}

// ListFoodLog returns the day's entries (date query param, default today).
func ListFoodLog(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	date, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	var entries []models.FoodLogEntry
	err = database.DB.Preload("Meal").
		Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?", userID, start, start.Add(24*time.Hour)).
		Order("consumed_at asc").
		Find(&entries).Error
	if err != nil {
		logger.Error("Failed to fetch food log", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch food log")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func DeleteFoodLogEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	entryID, err := strconv.ParseUint(chi.URLParam(r, "entry_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.FoodLogEntry{})
	if result.Error != nil {
		logger.Error("Failed to delete food log entry", "entry_id", entryID, "error", result.Error)
		writeError(w, http.StatusInternalServerError, "Failed to delete entry")
		return
	}
	if result.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type WaterLogRequest struct {
	AmountML   int        `json:"amount_ml"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

func LogWater(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req WaterLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AmountML < 1 || req.AmountML > 5000 {
		writeError(w, http.StatusBadRequest, "Amount must be between 1 and 5000 ml")
		return
	}

	recordedAt := time.Now()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	entry := models.WaterIntakeEntry{UserID: userID, AmountML: req.AmountML, RecordedAt: recordedAt}
	if err := database.DB.Create(&entry).Error; err != nil {
		logger.Error("Failed to log water", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to log water")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// ListWaterLog returns the day's entries plus the derived total.
func ListWaterLog(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	date, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	total, entries, err := trackingService().WaterTotal(r.Context(), userID, date)
	if err != nil {
		logger.Error("Failed to fetch water log", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch water log")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"total_ml": total, "entries": entries})
}

// GetDailyStats returns the aggregated day summary, plus progress against
// the active plan's targets when one exists.
func GetDailyStats(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	date, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	summary, err := trackingService().DailySummary(r.Context(), userID, date)
	if err != nil {
		logger.Error("Failed to compute daily stats", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to compute daily stats")
		return
	}

	resp := struct {
		Date     string                 `json:"date"`
		Summary  nutrition.DailySummary `json:"summary"`
		Progress *nutrition.Progress    `json:"progress,omitempty"`
	}{Date: date.Format("2006-01-02"), Summary: summary}

	if plan, err := planService().ActivePlan(r.Context(), userID); err == nil {
		p := nutrition.ComputeProgress(summary, plan.Targets)
		resp.Progress = &p
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Warn("Failed to load active plan for progress", "user_id", userID, "error", err)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetWeeklyStats returns 7 day summaries starting at the start query param
// (default: 6 days ago, so the window ends today).
func GetWeeklyStats(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var start time.Time
	if raw := r.URL.Query().Get("start"); raw != "" {
		start, err = time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start, expected YYYY-MM-DD")
			return
		}
	} else {
		start = time.Now().AddDate(0, 0, -6)
	}

	stats, err := trackingService().WeeklySummary(r.Context(), userID, start)
	if err != nil {
		logger.Error("Failed to compute weekly stats", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to compute weekly stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GetStreak returns the current and longest consecutive-day logging streaks.
func GetStreak(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := trackingService().Streaks(r.Context(), userID, time.Now())
	if err != nil {
		logger.Error("Failed to compute streaks", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to compute streaks")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
