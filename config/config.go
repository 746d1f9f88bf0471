// Package config loads runtime settings from the environment, with an
// optional .env file for development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the application reads.
type Config struct {
	// ServiceURL is the base URL of the wall-detection service. Empty
	// means remote detection is unavailable and only local detection (if
	// built in) works.
	ServiceURL string

	// ServiceTimeout bounds each service request.
	ServiceTimeout time.Duration

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string

	// UseLocalDetector switches detection to the in-process heuristic.
	UseLocalDetector bool
}

// Load reads the environment. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServiceURL:       getEnv("ROOMPAINTER_SERVICE_URL", ""),
		ServiceTimeout:   getDuration("ROOMPAINTER_SERVICE_TIMEOUT", 30*time.Second),
		LogLevel:         getEnv("ROOMPAINTER_LOG_LEVEL", "info"),
		UseLocalDetector: getBool("ROOMPAINTER_LOCAL_DETECTOR", false),
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
