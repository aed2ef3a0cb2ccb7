package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	ServerPort      int
	DatabasePath    string
	JWTSecret       string
	ImageGenBaseURL string
	ImageGenAPIKey  string
	ImageGenModel   string
	DailyPuzzleCron string // standard cron expression; empty disables the daily generator
	AllowedOrigins  []string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:      port,
		DatabasePath:    getEnv("DATABASE_PATH", "./jigsaw.db"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		ImageGenBaseURL: getEnv("IMAGEGEN_BASE_URL", "https://api.openai.com/v1"),
		ImageGenAPIKey:  getEnv("IMAGEGEN_API_KEY", ""),
		ImageGenModel:   getEnv("IMAGEGEN_MODEL", "gpt-image-1"),
		DailyPuzzleCron: getEnv("DAILY_PUZZLE_CRON", ""),
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
