package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds structured settings loadable from a YAML file.
// Environment variables take precedence over file values; GetEnv is the
// single accessor used across the codebase.
type Config struct {
	Port      string `yaml:"port"`
	JWTSecret string `yaml:"jwt_secret"`
	DB        struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"db"`
	CORSOrigins []string `yaml:"cors_origins"`
}

var fileConfig *Config

// Load reads an optional YAML config file. Missing file is not an error;
// env vars cover everything for container deployments.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	fileConfig = &cfg
	return &cfg, nil
}

// GetEnv returns the env var value, falling back to the loaded config file
// and then to the supplied default.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if fileConfig != nil {
		if v, ok := fromFile(key); ok && v != "" {
			return v
		}
	}
	return fallback
}

func fromFile(key string) (string, bool) {
	switch key {
	case "PORT":
		return fileConfig.Port, true
	case "JWT_SECRET":
		return fileConfig.JWTSecret, true
	case "DB_HOST":
		return fileConfig.DB.Host, true
	case "DB_PORT":
		return fileConfig.DB.Port, true
	case "DB_USER":
		return fileConfig.DB.User, true
	case "DB_PASSWORD":
		return fileConfig.DB.Password, true
	case "DB_NAME":
		return fileConfig.DB.Name, true
	case "DB_SSLMODE":
		return fileConfig.DB.SSLMode, true
	}
	return "", false
}

// CORSOrigins returns configured allowed origins, defaulting to the local
// Vite dev servers for the client and admin dashboards.
func CORSOrigins() []string {
	if fileConfig != nil && len(fileConfig.CORSOrigins) > 0 {
		return fileConfig.CORSOrigins
	}
	return []string{"http://localhost:5173", "http://localhost:5174", "http://127.0.0.1:5173"}
}
