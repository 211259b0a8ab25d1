package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/crionaz/nutriplan/database"
	"github.com/crionaz/nutriplan/middleware"
	"github.com/crionaz/nutriplan/services"
)

var errNoUser = errors.New("no authenticated user in request context")

func getUserID(r *http.Request) (uint, error) {
	val := r.Context().Value(middleware.UserContextKey)
	id, ok := val.(uint)
	if !ok || id == 0 {
		return 0, errNoUser
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseDateParam reads a YYYY-MM-DD query param, defaulting to today.
func parseDateParam(r *http.Request, key string) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", raw)
}

func planService() *services.PlanService {
	return services.NewPlanService(database.DB, services.NewMealLookupService(database.DB))
}

func trackingService() *services.TrackingService {
	return services.NewTrackingService(database.DB)
}
