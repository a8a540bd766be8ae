package config

import (
	"errors"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("DB_NAME", "clinic")
}

func TestLoadConfig_MissingBotToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("DB_NAME", "clinic")

	_, err := LoadConfig()
	if !errors.Is(err, ErrMissingBotToken) {
		t.Fatalf("expected ErrMissingBotToken, got %v", err)
	}
}

func TestLoadConfig_MissingDBName(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("DB_NAME", "")

	_, err := LoadConfig()
	if !errors.Is(err, ErrMissingDBName) {
		t.Fatalf("expected ErrMissingDBName, got %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_TTL", "")
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("BOOKING_MODE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Fatalf("expected default session TTL 30m, got %v", cfg.Session.TTL)
	}
	if cfg.App.Timezone != DefaultTimezone {
		t.Fatalf("expected default timezone %s, got %s", DefaultTimezone, cfg.App.Timezone)
	}
	if cfg.Bot.BookingMode != BookingModePatient {
		t.Fatalf("expected default booking mode, got %s", cfg.Bot.BookingMode)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("BOOKING_MODE", "chat_user")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Session.TTL != 5*time.Minute {
		t.Fatalf("expected session TTL 5m, got %v", cfg.Session.TTL)
	}
	if cfg.Bot.BookingMode != BookingModeChatUser {
		t.Fatalf("expected chat_user booking mode, got %s", cfg.Bot.BookingMode)
	}
}
