package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/crionaz/nutriplan/nutrition"
)

// User represents an authenticated user in the system, including the
// biometric profile the targets calculator reads. Profile fields are
// pointers: absent until the user fills them in. BMI and calorie figures
// are always derived, never stored here.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name      string         `gorm:"size:255" json:"name"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	DateOfBirth   *time.Time               `json:"date_of_birth,omitempty"`
	HeightCM      *float64                 `json:"height_cm,omitempty"`
	WeightKG      *float64                 `json:"weight_kg,omitempty"`
	Sex           *nutrition.Sex           `gorm:"size:10" json:"sex,omitempty"`
	ActivityLevel *nutrition.ActivityLevel `gorm:"size:30" json:"activity_level,omitempty"`
	GoalType      *nutrition.GoalType      `gorm:"size:30" json:"goal_type,omitempty"`
	WeeklyGoalKG  *float64                 `json:"weekly_goal_kg,omitempty"`
	DietType      *nutrition.DietType      `gorm:"size:30" json:"diet_type,omitempty"`
}

// Age derives the user's age in whole years at the given instant.
// Returns ok=false when no date of birth is on file.
func (u *User) Age(at time.Time) (int, bool) {
	if u.DateOfBirth == nil {
		return 0, false
	}
	age := at.Year() - u.DateOfBirth.Year()
	if at.Before(u.DateOfBirth.AddDate(age, 0, 0)) {
		age--
	}
	return age, true
}

// Biometrics builds the calculator input snapshot from the profile.
// Returns ok=false when height, weight or date of birth is missing; the
// caller surfaces that as an absent result, not an error.
func (u *User) Biometrics(at time.Time) (nutrition.Biometrics, bool) {
	age, ok := u.Age(at)
	if !ok || u.HeightCM == nil || u.WeightKG == nil {
		return nutrition.Biometrics{}, false
	}
	b := nutrition.Biometrics{
		HeightCM: *u.HeightCM,
		WeightKG: *u.WeightKG,
		Age:      age,
	}
	if u.Sex != nil {
		b.Sex = *u.Sex
	}
	if u.ActivityLevel != nil {
		b.ActivityLevel = *u.ActivityLevel
	} else {
		b.ActivityLevel = nutrition.ActivitySedentary
	}
	if u.GoalType != nil {
		b.Goal = *u.GoalType
	} else {
		b.Goal = nutrition.GoalMaintenance
	}
	if u.WeeklyGoalKG != nil {
		b.WeeklyGoalKG = *u.WeeklyGoalKG
	}
	if u.DietType != nil {
		b.DietType = *u.DietType
	} else {
		b.DietType = nutrition.DietRegular
	}
	return b, true
}

// BMIRecord is one point in a user's BMI history. Append-only; a new record
// is written whenever the profile's height/weight change.
type BMIRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	HeightCM   float64   `gorm:"not null" json:"height_cm"`
	WeightKG   float64   `gorm:"not null" json:"weight_kg"`
	BMI        float64   `gorm:"not null" json:"bmi"`
	RecordedAt time.Time `json:"recorded_at"`
}

// PasswordResetToken is a single-use, expiring token for the
// forgot-password flow.
type PasswordResetToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Token     string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
