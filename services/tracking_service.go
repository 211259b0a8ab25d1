package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/crionaz/nutriplan/models"
	"github.com/crionaz/nutriplan/nutrition"
	"github.com/crionaz/nutriplan/tracking"
)

// TrackingService resolves food-log entries into nutrition and computes the
// daily/weekly summaries and streaks the stats endpoints return.
type TrackingService struct {
	db *gorm.DB
}

func NewTrackingService(db *gorm.DB) *TrackingService {
	return &TrackingService{db: db}
}

// dayWindow returns [startOfDay, startOfNextDay) for the given instant.
func dayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.Add(24 * time.Hour)
}

// entriesForDay loads the user's food-log entries in the day window,
// preloading referenced meals so nutrition can be resolved.
func (s *TrackingService) entriesForDay(ctx context.Context, userID uint, date time.Time) ([]models.FoodLogEntry, error) {
	start, end := dayWindow(date)
	var entries []models.FoodLogEntry
	err := s.db.WithContext(ctx).
		Preload("Meal").
		Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?", userID, start, end).
		Order("consumed_at asc").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("query food log: %w", err)
	}
	return entries, nil
}

// Resolve maps persisted entries to the aggregator's input shape. Entries
// whose meal reference can no longer be resolved contribute nothing.
func Resolve(entries []models.FoodLogEntry) []nutrition.ResolvedEntry {
	out := make([]nutrition.ResolvedEntry, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		var info nutrition.Info
		switch {
		case e.Custom != nil && e.Custom.Name != "":
			info = e.Custom.Nutrition
		case e.Meal != nil:
			info = e.Meal.Nutrition
		default:
			continue
		}
		out = append(out, nutrition.ResolvedEntry{
			Info:     info,
			Servings: e.Servings,
			MealType: e.MealType,
		})
	}
	return out
}

// DailySummary aggregates one day's entries.
func (s *TrackingService) DailySummary(ctx context.Context, userID uint, date time.Time) (nutrition.DailySummary, error) {
	entries, err := s.entriesForDay(ctx, userID, date)
	if err != nil {
		return nutrition.DailySummary{}, err
	}
	return nutrition.Aggregate(Resolve(entries)), nil
}

// WeeklyStats is seven day summaries plus running averages over the days
// that actually have entries.
type WeeklyStats struct {
	StartDate       string                   `json:"start_date"`
	Days            []nutrition.DailySummary `json:"days"`
	DaysWithEntries int                      `json:"days_with_entries"`
	AvgCalories     int                      `json:"avg_calories"`
	AvgProtein      int                      `json:"avg_protein"`
	AvgCarbs        int                      `json:"avg_carbs"`
	AvgFat          int                      `json:"avg_fat"`
}

// WeeklySummary aggregates the 7 days starting at start. Days without
// entries stay in the slice as zero summaries; averages divide by the days
// with entries only.
func (s *TrackingService) WeeklySummary(ctx context.Context, userID uint, start time.Time) (WeeklyStats, error) {
	stats := WeeklyStats{StartDate: start.Format("2006-01-02")}

	var totalCal, totalProtein, totalCarbs, totalFat int
	for i := 0; i < 7; i++ {
		day, err := s.DailySummary(ctx, userID, start.AddDate(0, 0, i))
		if err != nil {
			return WeeklyStats{}, err
		}
		stats.Days = append(stats.Days, day)
		if day.EntryCount > 0 {
			stats.DaysWithEntries++
			totalCal += day.Calories
			totalProtein += day.Protein
			totalCarbs += day.Carbs
			totalFat += day.Fat
		}
	}
	if stats.DaysWithEntries > 0 {
		div := float64(stats.DaysWithEntries)
		stats.AvgCalories = int(math.Round(float64(totalCal) / div))
		stats.AvgProtein = int(math.Round(float64(totalProtein) / div))
		stats.AvgCarbs = int(math.Round(float64(totalCarbs) / div))
		stats.AvgFat = int(math.Round(float64(totalFat) / div))
	}
	return stats, nil
}

// hasEntryOnDay reports whether the user logged any food in the day window.
func (s *TrackingService) hasEntryOnDay(ctx context.Context, userID uint, date time.Time) bool {
	start, end := dayWindow(date)
	var count int64
	s.db.WithContext(ctx).Model(&models.FoodLogEntry{}).
		Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?", userID, start, end).
		Count(&count)
	return count > 0
}

// StreakStats carries both streak figures for the stats endpoint.
type StreakStats struct {
	Current int `json:"current_streak"`
	Longest int `json:"longest_streak"`
}

// Streaks computes the current streak by walking back from today, and the
// longest streak from a single query over the lookback window's distinct
// logged days.
func (s *TrackingService) Streaks(ctx context.Context, userID uint, today time.Time) (StreakStats, error) {
	current := tracking.CurrentStreak(func(day time.Time) bool {
		return s.hasEntryOnDay(ctx, userID, day)
	}, today, tracking.MaxLookbackDays)

	start, _ := dayWindow(today.AddDate(0, 0, -tracking.MaxLookbackDays))
	_, end := dayWindow(today)

	var entries []models.FoodLogEntry
	err := s.db.WithContext(ctx).
		Select("consumed_at").
		Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?", userID, start, end).
		Find(&entries).Error
	if err != nil {
		return StreakStats{}, fmt.Errorf("query streak history: %w", err)
	}

	present := make(map[string]bool, len(entries))
	for i := range entries {
		present[entries[i].ConsumedAt.Format("2006-01-02")] = true
	}
	days := make([]bool, 0, tracking.MaxLookbackDays+1)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, present[d.Format("2006-01-02")])
	}

	return StreakStats{Current: current, Longest: tracking.LongestStreak(days)}, nil
}

// WaterTotal sums the day's water intake in ml.
func (s *TrackingService) WaterTotal(ctx context.Context, userID uint, date time.Time) (int, []models.WaterIntakeEntry, error) {
	start, end := dayWindow(date)
	var entries []models.WaterIntakeEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recorded_at >= ? AND recorded_at < ?", userID, start, end).
		Order("recorded_at asc").
		Find(&entries).Error
	if err != nil {
		return 0, nil, fmt.Errorf("query water log: %w", err)
	}
	total := 0
	for i := range entries {
		total += entries[i].AmountML
	}
	return total, entries, nil
}
