package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// config holds the process settings read from the environment.
type config struct {
	Addr            string
	LogLevel        string
	HistoryLimit    int
	ShutdownTimeout time.Duration
	OTelLogs        bool
}

// loadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// loadConfig reads config from the environment, applying defaults for
// unset variables.
func loadConfig(getenv func(string) string) (config, error) {
	cfg := config{
		Addr:            ":8080",
		LogLevel:        getenv("LOG_LEVEL"),
		ShutdownTimeout: 5 * time.Second,
	}

	if v := getenv("HTTP_ADDR"); v != "" {
		cfg.Addr = v
	}

	if v := getenv("ACCUMULATOR_HISTORY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return config{}, fmt.Errorf("ACCUMULATOR_HISTORY_LIMIT: want a non-negative integer, got %q", v)
		}
		cfg.HistoryLimit = n
	}

	if v := getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	if v := getenv("OTEL_LOGS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return config{}, fmt.Errorf("OTEL_LOGS_ENABLED: %w", err)
		}
		cfg.OTelLogs = enabled
	}

	return cfg, nil
}
