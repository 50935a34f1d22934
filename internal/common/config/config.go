package config

import (
	"fmt"
	"os"
	"time"

	"github.com/eNoodles/user-service/internal/common/constants"
	commonerrors "github.com/eNoodles/user-service/internal/common/errors"
)

type Config struct {
	HTTPPort    string
	DatabaseURL string

	// Empty RedisAddr selects the in-memory session store.
	RedisAddr     string
	RedisPassword string

	SessionTTL     time.Duration
	RequestTimeout time.Duration

	LogDir   string
	LogLevel string
}

func Load() (Config, error) {
	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:       getEnv("HTTP_PORT", "3100"),
		DatabaseURL:    databaseURL,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		SessionTTL:     getDurationEnv("SESSION_TTL", constants.DefaultSessionTTL),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.RequestTimeout),
		LogDir:         os.Getenv("LOG_DIR"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
