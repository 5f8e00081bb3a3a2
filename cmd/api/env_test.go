package main

import (
	"testing"
	"time"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(envFrom(nil))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Fatalf("expected addr %q, got %q", ":8080", cfg.Addr)
	}
	if cfg.HistoryLimit != 0 {
		t.Fatalf("expected unbounded history, got %d", cfg.HistoryLimit)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("expected 5s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if cfg.OTelLogs {
		t.Fatal("expected OTLP log export to be off by default")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	cfg, err := loadConfig(envFrom(map[string]string{
		"HTTP_ADDR":                 "127.0.0.1:9000",
		"LOG_LEVEL":                 "debug",
		"ACCUMULATOR_HISTORY_LIMIT": "50",
		"SHUTDOWN_TIMEOUT":          "2s",
		"OTEL_LOGS_ENABLED":         "true",
	}))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	want := config{
		Addr:            "127.0.0.1:9000",
		LogLevel:        "debug",
		HistoryLimit:    50,
		ShutdownTimeout: 2 * time.Second,
		OTelLogs:        true,
	}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"ACCUMULATOR_HISTORY_LIMIT": "-1",
		"SHUTDOWN_TIMEOUT":          "soon",
		"OTEL_LOGS_ENABLED":         "maybe",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			if _, err := loadConfig(envFrom(map[string]string{key: value})); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}
