package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string

	// JWT
	JWTSecret          string
	JWTExpirationHours int

	// Background Workers
	WorkerCount int

	// CORS
	AllowedOrigins []string

	// Billing rules
	ChargeGraceDays    int     // days after due date before a charge becomes VENCIDO
	DelinquentAfter    int     // days after due date before a charge becomes MOROSO
	LateFineAmount     float64 // amount of an automatic RETRASO_PAGO fine
	LateFineGraceDays  int     // days overdue before a late fine is issued
	EstimateMultiplier float64 // projection multiplier for the monthly income series

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		WorkerCount:        getEnvAsInt("WORKER_COUNT", 5),
		AllowedOrigins:     getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		ChargeGraceDays:    getEnvAsInt("CHARGE_GRACE_DAYS", 0),
		DelinquentAfter:    getEnvAsInt("DELINQUENT_AFTER_DAYS", 60),
		LateFineAmount:     getEnvAsFloat("LATE_FINE_AMOUNT", 20000),
		LateFineGraceDays:  getEnvAsInt("LATE_FINE_GRACE_DAYS", 15),
		EstimateMultiplier: getEnvAsFloat("ESTIMATE_MULTIPLIER", 1.1),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
	}

	// Validate required configuration
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	// Set default JWT secret for development
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return fallback
}

func getEnvAsSlice(key string, fallback []string) []string {
	if v := getEnv(key, ""); v != "" {
		return strings.Split(v, ",")
	}
	return fallback
}
