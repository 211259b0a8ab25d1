package jobs

import (
	"sync"

	"github.com/crionaz/nutriplan/database"
	"github.com/crionaz/nutriplan/logger"
	"github.com/crionaz/nutriplan/models"
	"github.com/crionaz/nutriplan/nutrition"
)

// NutritionJob asks the worker to recompute one meal's aggregate nutrition
// from its ingredient rows.
type NutritionJob struct {
	MealID uint
}

// NutritionUpdate is broadcast to SSE subscribers when a meal's nutrition
// facts have been recomputed.
type NutritionUpdate struct {
	MealID    uint           `json:"meal_id"`
	Nutrition nutrition.Info `json:"nutrition"`
}

// NutritionWorker recomputes meal nutrition in the background so ingredient
// edits don't block the write path.
type NutritionWorker struct {
	jobs        chan NutritionJob
	subscribers map[chan NutritionUpdate]bool
	subMux      sync.RWMutex
}

var (
	worker     *NutritionWorker
	workerOnce sync.Once
)

// GetWorker returns the singleton NutritionWorker instance
func GetWorker() *NutritionWorker {
	workerOnce.Do(func() {
		worker = &NutritionWorker{
			jobs:        make(chan NutritionJob, 100),
			subscribers: make(map[chan NutritionUpdate]bool),
		}
		go worker.run()
		logger.Info("Nutrition worker started")
	})
	return worker
}

// Enqueue adds a recompute job to the queue. Drops with a warning when the
// queue is full; the next ingredient write re-enqueues anyway.
func (w *NutritionWorker) Enqueue(mealID uint) {
	select {
	case w.jobs <- NutritionJob{MealID: mealID}:
		logger.Debug("Nutrition job enqueued", "meal_id", mealID)
	default:
		logger.Warn("Nutrition job queue full, dropping job", "meal_id", mealID)
	}
}

// Subscribe registers a channel to receive nutrition updates
func (w *NutritionWorker) Subscribe(ch chan NutritionUpdate) {
	w.subMux.Lock()
	defer w.subMux.Unlock()
	w.subscribers[ch] = true
}

// Unsubscribe removes a channel from nutrition updates
func (w *NutritionWorker) Unsubscribe(ch chan NutritionUpdate) {
	w.subMux.Lock()
	defer w.subMux.Unlock()
	delete(w.subscribers, ch)
	close(ch)
}

func (w *NutritionWorker) run() {
	for job := range w.jobs {
		w.processJob(job)
	}
}

func (w *NutritionWorker) processJob(job NutritionJob) {
	var meal models.Meal
	if err := database.DB.Preload("Ingredients").First(&meal, job.MealID).Error; err != nil {
		logger.Error("Failed to fetch meal for nutrition job", "meal_id", job.MealID, "error", err)
		return
	}
	if len(meal.Ingredients) == 0 {
		logger.Debug("Meal has no ingredient rows, keeping explicit nutrition", "meal_id", job.MealID)
		return
	}

	meal.ComputeNutrition()
	if err := database.DB.Save(&meal).Error; err != nil {
		logger.Error("Failed to save recomputed nutrition", "meal_id", job.MealID, "error", err)
		return
	}

	logger.Info("Meal nutrition recomputed", "meal_id", job.MealID, "calories", meal.Nutrition.Calories)

	update := NutritionUpdate{MealID: meal.ID, Nutrition: meal.Nutrition}
	w.subMux.RLock()
	for ch := range w.subscribers {
		select {
		case ch <- update:
		default:
			// Drop update if subscriber is slow
		}
	}
	w.subMux.RUnlock()
}
