package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/crionaz/nutriplan/database"
	"github.com/crionaz/nutriplan/logger"
	"github.com/crionaz/nutriplan/models"
	"github.com/crionaz/nutriplan/nutrition"
)

// GetMe returns the authenticated user's profile plus derived BMI and
// targets when the biometrics are complete. Derived figures are computed on
// read, never stored.
func GetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	resp := struct {
		models.User
		BMI         *float64           `json:"bmi,omitempty"`
		BMICategory string             `json:"bmi_category,omitempty"`
		Targets     *nutrition.Targets `json:"targets,omitempty"`
	}{User: user}

	if user.HeightCM != nil && user.WeightKG != nil {
		if bmi, ok := nutrition.BMI(*user.HeightCM, *user.WeightKG); ok {
			resp.BMI = &bmi
			resp.BMICategory = nutrition.BMICategory(bmi)
		}
	}
	if bio, ok := user.Biometrics(time.Now()); ok {
		if targets, ok := nutrition.ComputeTargets(bio); ok {
			resp.Targets = &targets
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type UpdateProfileRequest struct {
	Name          *string                  `json:"name,omitempty"`
	DateOfBirth   *time.Time               `json:"date_of_birth,omitempty"`
	HeightCM      *float64                 `json:"height_cm,omitempty"`
	WeightKG      *float64                 `json:"weight_kg,omitempty"`
	Sex           *nutrition.Sex           `json:"sex,omitempty"`
	ActivityLevel *nutrition.ActivityLevel `json:"activity_level,omitempty"`
	GoalType      *nutrition.GoalType      `json:"goal_type,omitempty"`
	WeeklyGoalKG  *float64                 `json:"weekly_goal_kg,omitempty"`
	DietType      *nutrition.DietType      `json:"diet_type,omitempty"`
}

func (req *UpdateProfileRequest) validate() string {
	if req.HeightCM != nil && *req.HeightCM <= 0 {
		return "height_cm must be positive"
	}
	if req.WeightKG != nil && *req.WeightKG <= 0 {
		return "weight_kg must be positive"
	}
	if req.Sex != nil && *req.Sex != nutrition.SexMale && *req.Sex != nutrition.SexFemale {
		return "sex must be male or female"
	}
	if req.ActivityLevel != nil && !nutrition.ValidActivityLevel(*req.ActivityLevel) {
		return "unknown activity_level"
	}
	if req.GoalType != nil && !nutrition.ValidGoalType(*req.GoalType) {
		return "unknown goal_type"
	}
	if req.DietType != nil && !nutrition.ValidDietType(*req.DietType) {
		return "unknown diet_type"
	}
	return ""
}

// UpdateProfile merges the supplied biometric fields into the user's
// profile. A change that leaves both height and weight present appends a
// BMIRecord to the history.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = req.DateOfBirth
	}
	if req.HeightCM != nil {
		user.HeightCM = req.HeightCM
	}
	if req.WeightKG != nil {
		user.WeightKG = req.WeightKG
	}
	if req.Sex != nil {
		user.Sex = req.Sex
	}
	if req.ActivityLevel != nil {
		user.ActivityLevel = req.ActivityLevel
	}
	if req.GoalType != nil {
		user.GoalType = req.GoalType
	}
	if req.WeeklyGoalKG != nil {
		user.WeeklyGoalKG = req.WeeklyGoalKG
	}
	if req.DietType != nil {
		user.DietType = req.DietType
	}

	if err := database.DB.Save(&user).Error; err != nil {
		logger.Error("Failed to update profile", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	measurementChanged := req.HeightCM != nil || req.WeightKG != nil
	if measurementChanged && user.HeightCM != nil && user.WeightKG != nil {
		if bmi, ok := nutrition.BMI(*user.HeightCM, *user.WeightKG); ok {
			record := models.BMIRecord{
				UserID:     user.ID,
				HeightCM:   *user.HeightCM,
				WeightKG:   *user.WeightKG,
				BMI:        bmi,
				RecordedAt: time.Now(),
			}
			if err := database.DB.Create(&record).Error; err != nil {
				logger.Warn("Failed to append BMI record", "user_id", userID, "error", err)
			}
		}
	}

	logger.Info("Profile updated", "user_id", userID)
	GetMe(w, r)
}

// GetBMIHistory returns the user's BMI records, newest first.
func GetBMIHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var records []models.BMIRecord
	if err := database.DB.Where("user_id = ?", userID).Order("recorded_at desc").Find(&records).Error; err != nil {
		logger.Error("Failed to fetch BMI history", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch BMI history")
		return
	}
	writeJSON(w, http.StatusOK, records)
}
