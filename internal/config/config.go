package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDatabaseURL  = "docuserve.db"
	defaultUploadDir    = "./uploads"
	defaultHTTPPort     = "8080"
	defaultDBMaxRetries = "5"
	defaultDBRetryDelay = "2s"
)

type Config struct {
	DatabaseURL  string
	UploadDir    string
	HTTPPort     string
	DBMaxRetries int
	DBRetryDelay time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir))
	cfg.HTTPPort = strings.TrimSpace(getEnv("HTTP_PORT", defaultHTTPPort))

	var err error
	cfg.DBMaxRetries, err = parseIntEnv("DB_MAX_RETRIES", defaultDBMaxRetries)
	if err != nil {
		return nil, err
	}

	cfg.DBRetryDelay, err = parseDurationEnv("DB_RETRY_DELAY", defaultDBRetryDelay)
	if err != nil {
		return nil, err
	}

	if cfg.UploadDir == "" {
		return nil, fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if cfg.DBMaxRetries < 1 {
		return nil, fmt.Errorf("DB_MAX_RETRIES must be >= 1")
	}
	if cfg.DBRetryDelay <= 0 {
		return nil, fmt.Errorf("DB_RETRY_DELAY must be > 0")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseIntEnv(key, fallback string) (int, error) {
	raw := getEnv(key, fallback)
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
	return v, nil
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
	return v, nil
}
