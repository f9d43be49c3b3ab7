package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/akarpovich/notes-service/internal/common/constants"
	commonerrors "github.com/akarpovich/notes-service/internal/common/errors"
)

// Config is the full environment-sourced configuration surface. It is loaded
// once at startup and shared read-only afterwards.
type Config struct {
	HTTPPort       string
	DatabaseURL    string
	JWTSecret      string
	RunMigrations  bool
	TokenTTL       time.Duration
	RequestTimeout time.Duration
	LogDir         string
	LogLevel       string
}

func Load() (Config, error) {
	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return Config{}, err
	}

	if len(jwtSecret) < constants.JWTSecretMinLength {
		return Config{}, commonerrors.ErrInvalidJWTSecret
	}

	return Config{
		HTTPPort:       getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:    databaseURL,
		JWTSecret:      jwtSecret,
		RunMigrations:  getBoolEnv("RUN_MIGRATIONS", false),
		TokenTTL:       getDurationEnv("TOKEN_TTL", constants.DefaultTokenTTL),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		LogDir:         os.Getenv("LOG_DIR"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
	}, nil
}

func mustEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("%s is not set", key))
	}
	return value, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
