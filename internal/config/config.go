package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort         = "8080"
	defaultJWTAccessTTL = "24h"
	defaultJWTSecret    = "change-me-jwt-secret"
)

// Runtime holds everything the binaries read from the environment.
type Runtime struct {
	AppEnv       string
	Port         string
	DatabaseURL  string
	JWTSecret    string
	JWTAccessTTL time.Duration
	SweepToken   string
}

func Load() (*Runtime, error) {
	cfg := &Runtime{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	ttl, err := time.ParseDuration(getEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TTL: %w", err)
	}
	cfg.JWTAccessTTL = ttl

	// Shared secret for the cron-triggered sweep endpoint. Empty means
	// the HTTP trigger is disabled; the cmd/sweep binary still works.
	cfg.SweepToken = strings.TrimSpace(os.Getenv("SWEEP_TOKEN"))

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
