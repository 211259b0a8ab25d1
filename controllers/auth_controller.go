package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/crionaz/nutriplan/config"
	"github.com/crionaz/nutriplan/database"
	"github.com/crionaz/nutriplan/logger"
	"github.com/crionaz/nutriplan/models"
	"github.com/crionaz/nutriplan/util"
)

const resetTokenTTL = 24 * time.Hour

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func jwtSecret() []byte {
	return []byte(config.GetEnv("JWT_SECRET", "dev-secret-change-me"))
}

func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "A valid email is required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	var existing models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		writeError(w, http.StatusBadRequest, "Email is already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	user := models.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hash),
		Role:     "user",
	}
	if err := database.DB.Create(&user).Error; err != nil {
		logger.Error("Failed to create user", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	token, err := util.GenerateJWT(user.ID, user.Email, user.Role, jwtSecret())
	if err != nil {
		logger.Error("Failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	logger.Info("User registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, AuthResponse{Token: token, User: &user})
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := util.GenerateJWT(user.ID, user.Email, user.Role, jwtSecret())
	if err != nil {
		logger.Error("Failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: &user})
}

// ForgotPassword creates a reset token for the account. The response is the
// same whether or not the email exists, to avoid account enumeration.
func ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp := map[string]string{"message": "If the account exists, a reset link has been sent"}

	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	reset := models.PasswordResetToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := database.DB.Create(&reset).Error; err != nil {
		logger.Error("Failed to create reset token", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process request")
		return
	}

	// Mail delivery is handled out-of-band; log the token for dev setups.
	logger.Debug("Password reset token created", "user_id", user.ID, "token", reset.Token)
	writeJSON(w, http.StatusOK, resp)
}

func ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	var reset models.PasswordResetToken
	err := database.DB.Where("token = ? AND used_at IS NULL AND expires_at > ?", req.Token, time.Now()).First(&reset).Error
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	now := time.Now()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", reset.UserID).Update("password", string(hash)).Error; err != nil {
			return err
		}
		return tx.Model(&reset).Update("used_at", &now).Error
	})
	if err != nil {
		logger.Error("Failed to reset password", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	logger.Info("Password reset", "user_id", reset.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}
