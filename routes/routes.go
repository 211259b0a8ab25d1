package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/crionaz/nutriplan/config"
	"github.com/crionaz/nutriplan/controllers"
	auth "github.com/crionaz/nutriplan/middleware"
)

func SetupRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS Configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	// Public / Auth
	r.Post("/auth/register", controllers.Register)
	r.Post("/auth/login", controllers.Login)
	r.Post("/auth/forgot-password", controllers.ForgotPassword)
	r.Post("/auth/reset-password", controllers.ResetPassword)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.JWTAuth)

		r.Get("/me", controllers.GetMe)
		r.Put("/me/profile", controllers.UpdateProfile)
		r.Get("/me/bmi-history", controllers.GetBMIHistory)

		r.Get("/meals", controllers.ListMeals)
		r.Post("/meals", controllers.CreateMeal)
		r.Get("/meals/{meal_id}", controllers.GetMeal)
		r.Put("/meals/{meal_id}", controllers.UpdateMeal)
		r.Delete("/meals/{meal_id}", controllers.DeleteMeal)

		r.Get("/plans", controllers.ListPlans)
		r.Get("/plans/active", controllers.GetActivePlan)
		r.Post("/plans", controllers.CreatePlan)
		r.Post("/plans/generate", controllers.GeneratePlan)
		r.Delete("/plans/{plan_id}", controllers.DeletePlan)
		r.Patch("/plans/{plan_id}/meals/{slot_id}/complete", controllers.ToggleMealCompletion)

		r.Post("/logs/food", controllers.LogFood)
		r.Get("/logs/food", controllers.ListFoodLog)
		r.Delete("/logs/food/{entry_id}", controllers.DeleteFoodLogEntry)
		r.Post("/logs/water", controllers.LogWater)
		r.Get("/logs/water", controllers.ListWaterLog)

		r.Get("/stats/daily", controllers.GetDailyStats)
		r.Get("/stats/weekly", controllers.GetWeeklyStats)
		r.Get("/stats/streak", controllers.GetStreak)

		// Admin dashboard
		r.Group(func(r chi.Router) {
			r.Use(auth.AdminOnly)
			r.Get("/admin/users", controllers.ListUsers)
			r.Delete("/admin/users/{user_id}", controllers.DeleteUser)
			r.Get("/admin/stats", controllers.GetAdminStats)
			r.Patch("/admin/meals/{meal_id}/visibility", controllers.SetMealVisibility)
		})
	})

	// Server-Sent Events for real-time meal nutrition updates
	r.Get("/sse/meals", MealNutritionSSE)

	return r
}
