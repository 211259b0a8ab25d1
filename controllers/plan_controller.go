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
	"github.com/crionaz/nutriplan/planner"
	"github.com/crionaz/nutriplan/services"
)

type CreatePlanRequest struct {
	Name      string             `json:"name"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Targets   *nutrition.Targets `json:"targets,omitempty"`

	IncludeBreakfast bool   `json:"include_breakfast"`
	IncludeLunch     bool   `json:"include_lunch"`
	IncludeDinner    bool   `json:"include_dinner"`
	IncludeSnacks    bool   `json:"include_snacks"`
	MaxPrepTime      int    `json:"max_prep_time"`
	MaxCookTime      int    `json:"max_cook_time"`
	Difficulty       string `json:"difficulty"`
}

func (req *CreatePlanRequest) preferences() planner.Preferences {
	return planner.Preferences{
		IncludeBreakfast: req.IncludeBreakfast,
		IncludeLunch:     req.IncludeLunch,
		IncludeDinner:    req.IncludeDinner,
		IncludeSnacks:    req.IncludeSnacks,
		MaxPrepTime:      req.MaxPrepTime,
		MaxCookTime:      req.MaxCookTime,
		Difficulty:       req.Difficulty,
	}
}

func createPlan(w http.ResponseWriter, r *http.Request, generate bool) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	plan, err := planService().Create(r.Context(), &user, services.CreateInput{
		Name:        req.Name,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Targets:     req.Targets,
		Preferences: req.preferences(),
		Generate:    generate,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlanDates):
			writeError(w, http.StatusBadRequest, "End date must be after start date")
		case errors.Is(err, services.ErrNoBiometrics):
			writeError(w, http.StatusBadRequest, "Complete your profile (height, weight, date of birth) or supply targets")
		default:
			logger.Error("Failed to create plan", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create plan")
		}
		return
	}

	writeJSON(w, http.StatusCreated, plan)
}

// CreatePlan persists a manually-specified plan.
func CreatePlan(w http.ResponseWriter, r *http.Request) {
	createPlan(w, r, false)
}

// GeneratePlan runs the targets calculator (unless targets were supplied)
// and the meal-plan generator, then persists the result.
func GeneratePlan(w http.ResponseWriter, r *http.Request) {
	createPlan(w, r, true)
}

func ListPlans(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var plans []models.DietPlan
	if err := database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&plans).Error; err != nil {
		logger.Error("Failed to fetch plans", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch plans")
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func GetActivePlan(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	plan, err := planService().ActivePlan(r.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "No active plan")
			return
		}
		logger.Error("Failed to fetch active plan", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch active plan")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func DeletePlan(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	planID, err := strconv.ParseUint(chi.URLParam(r, "plan_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid plan ID")
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", planID, userID).Delete(&models.DietPlan{})
	if result.Error != nil {
		logger.Error("Failed to delete plan", "plan_id", planID, "error", result.Error)
		writeError(w, http.StatusInternalServerError, "Failed to delete plan")
		return
	}
	if result.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "Plan not found")
		return
	}

	logger.Info("Plan deleted", "plan_id", planID, "user_id", userID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Plan deleted"})
}

// ToggleMealCompletion flips a slot's completed flag.
func ToggleMealCompletion(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	planID, err := strconv.ParseUint(chi.URLParam(r, "plan_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid plan ID")
		return
	}
	slotID, err := strconv.ParseUint(chi.URLParam(r, "slot_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid slot ID")
		return
	}

	slot, err := planService().ToggleMealCompletion(r.Context(), userID, uint(planID), uint(slotID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Plan or slot not found")
			return
		}
		logger.Error("Failed to toggle completion", "plan_id", planID, "slot_id", slotID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update slot")
		return
	}
	writeJSON(w, http.StatusOK, slot)
}
