package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/crionaz/nutriplan/logger"
	"github.com/crionaz/nutriplan/models"
	"github.com/crionaz/nutriplan/nutrition"
	"github.com/crionaz/nutriplan/planner"
)

// ErrNoBiometrics is returned when plan generation needs computed targets
// but the user's profile is missing height, weight or date of birth.
var ErrNoBiometrics = errors.New("profile is missing height, weight or date of birth")

// ErrPlanDates is returned when a plan's end date is not after its start.
var ErrPlanDates = errors.New("plan end date must be after start date")

// PlanService creates, generates and mutates diet plans.
type PlanService struct {
	db     *gorm.DB
	lookup planner.MealLookup
	newRng func() *rand.Rand
}

// NewPlanService wires the service with a time-seeded random source.
// Tests swap newRng for a fixed seed.
func NewPlanService(db *gorm.DB, lookup planner.MealLookup) *PlanService {
	return &PlanService{
		db:     db,
		lookup: lookup,
		newRng: func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) },
	}
}

// WithRand overrides the random source factory; used by tests for
// reproducible generation.
func (s *PlanService) WithRand(newRng func() *rand.Rand) *PlanService {
	s.newRng = newRng
	return s
}

// CreateInput is a manual or generated plan-creation request. Targets may be
// supplied by the caller; when nil they are computed from the user's profile.
type CreateInput struct {
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	Targets     *nutrition.Targets
	Preferences planner.Preferences
	GeneratedBy string
	Generate    bool
}

// Create builds and persists a plan for the user. Prior active plans are
// deactivated in the same transaction; across concurrent requests the last
// writer wins, which is the documented single-active-plan behavior.
func (s *PlanService) Create(ctx context.Context, user *models.User, in CreateInput) (*models.DietPlan, error) {
	if !in.EndDate.After(in.StartDate) {
		return nil, ErrPlanDates
	}

	targets, err := s.resolveTargets(user, in.Targets)
	if err != nil {
		return nil, err
	}

	plan := &models.DietPlan{
		UserID:      user.ID,
		Name:        in.Name,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsActive:    true,
		GeneratedBy: in.GeneratedBy,
		Targets:     targets,
	}
	if plan.GeneratedBy == "" {
		plan.GeneratedBy = models.GeneratedByUser
	}

	if in.Generate {
		dietType := nutrition.DietRegular
		if user.DietType != nil {
			dietType = *user.DietType
		}
		gen := planner.New(s.lookup, s.newRng())
		slots, err := gen.Generate(ctx, targets, in.Preferences, dietType)
		if err != nil {
			return nil, fmt.Errorf("generate plan slots: %w", err)
		}
		plan.GeneratedBy = models.GeneratedByAI
		for _, slot := range slots {
			plan.Meals = append(plan.Meals, models.DietPlanMeal{
				MealID:    slot.MealID,
				DayOfWeek: slot.DayOfWeek,
				MealType:  slot.MealType,
				Servings:  slot.Servings,
			})
		}
		logger.Info("Plan generated", "user_id", user.ID, "slots", len(slots))
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.DietPlan{}).
			Where("user_id = ? AND is_active = ?", user.ID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(plan).Error
	})
	if err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	return plan, nil
}

// resolveTargets returns the caller-supplied targets or computes them from
// the user's biometric profile.
func (s *PlanService) resolveTargets(user *models.User, supplied *nutrition.Targets) (nutrition.Targets, error) {
	if supplied != nil {
		return *supplied, nil
	}
	bio, ok := user.Biometrics(time.Now())
	if !ok {
		return nutrition.Targets{}, ErrNoBiometrics
	}
	targets, ok := nutrition.ComputeTargets(bio)
	if !ok {
		return nutrition.Targets{}, ErrNoBiometrics
	}
	return targets, nil
}

// ToggleMealCompletion flips a slot's completion flag and stamps the time.
// The slot must belong to one of the user's plans.
func (s *PlanService) ToggleMealCompletion(ctx context.Context, userID, planID, slotID uint) (*models.DietPlanMeal, error) {
	var plan models.DietPlan
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error; err != nil {
		return nil, err
	}

	var slot models.DietPlanMeal
	if err := s.db.WithContext(ctx).Where("id = ? AND diet_plan_id = ?", slotID, planID).First(&slot).Error; err != nil {
		return nil, err
	}

	slot.IsCompleted = !slot.IsCompleted
	if slot.IsCompleted {
		now := time.Now()
		slot.CompletedAt = &now
	} else {
		slot.CompletedAt = nil
	}
	if err := s.db.WithContext(ctx).Save(&slot).Error; err != nil {
		return nil, fmt.Errorf("save slot: %w", err)
	}
	return &slot, nil
}

// ActivePlan returns the user's active plan with its slots, or
// gorm.ErrRecordNotFound.
func (s *PlanService) ActivePlan(ctx context.Context, userID uint) (*models.DietPlan, error) {
	var plan models.DietPlan
	err := s.db.WithContext(ctx).
		Preload("Meals").Preload("Meals.Meal").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("updated_at desc").
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
