package config

import (
	"os"
	"strconv"
	"time"

	"printflow/internal/workflow"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL string
	HTTPAddr    string
	JWTSecret   string
	JWTTTL      time.Duration
	Workflow    workflow.Config
}

// Load reads .env if present, then the environment. Every field has a
// development default except JWT_SECRET, which falls back to an insecure
// value with a loud warning.
func Load() *Config {
	_ = godotenv.Load()

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		secret = "dev-secret-change-me"
		logrus.Warn("JWT_SECRET is not set, using insecure development default")
	}

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", "file::memory:?cache=shared"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		JWTSecret:   secret,
		JWTTTL:      getEnvDuration("JWT_TTL", 24*time.Hour),
		Workflow: workflow.Config{
			AutoCompleteProjects: getEnvBool("WORKFLOW_AUTO_COMPLETE", false),
			AllowStagingTasks:    getEnvBool("WORKFLOW_ALLOW_STAGING", true),
			MaxRetries:           getEnvInt("WORKFLOW_MAX_RETRIES", 3),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		logrus.WithField("key", key).Warn("invalid boolean in environment, using default")
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithField("key", key).Warn("invalid integer in environment, using default")
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		logrus.WithField("key", key).Warn("invalid duration in environment, using default")
		return fallback
	}
	return parsed
}
