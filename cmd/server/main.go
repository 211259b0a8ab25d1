package main

import (
	"net/http"

	"github.com/joho/godotenv"

	"github.com/crionaz/nutriplan/config"
	"github.com/crionaz/nutriplan/database"
	"github.com/crionaz/nutriplan/jobs"
	"github.com/crionaz/nutriplan/logger"
	"github.com/crionaz/nutriplan/routes"
)

func main() {
	// Initialize Structured Logger
	logger.Init()
	defer logger.Sync()

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system env vars")
	}

	// Optional YAML config file, env vars take precedence
	if _, err := config.Load(config.GetEnv("CONFIG_FILE", "config.yaml")); err != nil {
		logger.Fatal("Failed to read config file", "error", err)
	}

	// Initialize DB
	database.InitDB()

	// Start background nutrition recompute worker
	jobs.GetWorker()

	// Setup Router
	r := routes.SetupRouter()

	port := config.GetEnv("PORT", "8080")
	logger.Info("Server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Error("Server failed to start", "error", err)
	}
}
