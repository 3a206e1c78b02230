// internal/config/config_test.go
package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestMustLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "PORT", "JWT_SECRET", "JWT_EXPIRES_IN", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := MustLoad()

	if cfg.ServerPort != ":8080" {
		t.Errorf("ServerPort = %q, want :8080", cfg.ServerPort)
	}
	if cfg.DBConn == "" {
		t.Error("DBConn default is empty")
	}
	if cfg.JWTExpiresIn != 24*time.Hour {
		t.Errorf("JWTExpiresIn = %v, want 24h", cfg.JWTExpiresIn)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestMustLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example/db")
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRES_IN", "30m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := MustLoad()

	if cfg.DBConn != "postgres://example/db" {
		t.Errorf("DBConn = %q", cfg.DBConn)
	}
	if cfg.ServerPort != ":9000" {
		t.Errorf("ServerPort = %q, want :9000", cfg.ServerPort)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.JWTExpiresIn != 30*time.Minute {
		t.Errorf("JWTExpiresIn = %v, want 30m", cfg.JWTExpiresIn)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
