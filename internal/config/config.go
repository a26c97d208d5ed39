package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseDriver   string
	DatabaseURL      string
	ImageStoragePath string
	SeedWorkers      int
	LogDir           string
	LogRetentionDays int
}

func Load() Config {
	return Config{
		DatabaseDriver:   envOr("DATABASE_DRIVER", "pgx"),
		DatabaseURL:      mustEnv("DATABASE_URL"),
		ImageStoragePath: envOr("IMAGE_STORAGE_PATH", "storage/images"),
		SeedWorkers:      clamp(envOrInt("SEED_WORKERS", 4), 1, 64),
		LogDir:           envOr("LOG_DIR", "storage/logs"),
		LogRetentionDays: clamp(envOrInt("LOG_RETENTION_DAYS", 7), 1, 7),
	}
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
