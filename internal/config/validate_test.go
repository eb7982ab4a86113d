package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		HTTPAddr:       ":8080",
		DatabaseURL:    "postgres://localhost/guildwatch",
		JWTSecret:      strings.Repeat("s", 32),
		SessionTTL:     24 * time.Hour,
		SyncGuildDelay: time.Second,
		BcryptCost:     10,
	}
}

func TestValidate(t *testing.T) {
	t.Run("Valid config", func(t *testing.T) {
		if err := validConfig().Validate(); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	})

	t.Run("Short JWT secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = "short"
		if err := cfg.Validate(); err == nil {
			t.Fatal("Expected error, got nil")
		}
	})

	t.Run("Sync delay out of bounds", func(t *testing.T) {
		cfg := validConfig()
		cfg.SyncGuildDelay = 5 * time.Minute
		if err := cfg.Validate(); err == nil {
			t.Fatal("Expected error, got nil")
		}

		cfg.SyncGuildDelay = time.Millisecond
		if err := cfg.Validate(); err == nil {
			t.Fatal("Expected error, got nil")
		}
	})

	t.Run("Session TTL out of bounds", func(t *testing.T) {
		cfg := validConfig()
		cfg.SessionTTL = time.Second
		if err := cfg.Validate(); err == nil {
			t.Fatal("Expected error, got nil")
		}
	})

	t.Run("Bcrypt cost out of bounds", func(t *testing.T) {
		cfg := validConfig()
		cfg.BcryptCost = 99
		if err := cfg.Validate(); err == nil {
			t.Fatal("Expected error, got nil")
		}
	})

	t.Run("Multiple errors reported together", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = "short"
		cfg.HTTPAddr = ""

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		msg := err.Error()
		if !strings.Contains(msg, "JWT_SECRET") || !strings.Contains(msg, "HTTP_ADDR") {
			t.Errorf("Expected both failures in message, got: %s", msg)
		}
	})
}
