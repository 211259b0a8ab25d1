package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/crionaz/nutriplan/jobs"
	"github.com/crionaz/nutriplan/logger"
)

// MealNutritionSSE streams meal nutrition recompute results to the client
// so the catalog view can refresh without polling.
func MealNutritionSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	updateCh := make(chan jobs.NutritionUpdate, 10)
	worker := jobs.GetWorker()
	worker.Subscribe(updateCh)

	logger.Info("SSE client connected")

	fmt.Fprintf(w, "event: connected\ndata: {\"status\": \"connected\"}\n\n")
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			logger.Info("SSE client disconnected")
			worker.Unsubscribe(updateCh)
			return
		case update := <-updateCh:
			data, err := json.Marshal(update)
			if err != nil {
				logger.Error("Failed to marshal nutrition update", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: nutrition_update\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
