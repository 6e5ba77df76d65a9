package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("OPENWEATHERMAP_API_KEY", "key")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickEvery != 45*time.Second {
		t.Fatalf("TickEvery = %s, want 45s", cfg.TickEvery)
	}
	if cfg.DataFile != "./data/user_data.json" {
		t.Fatalf("DataFile = %q", cfg.DataFile)
	}
}

func TestLoadRejectsTickAtOrOverAMinute(t *testing.T) {
	setRequiredEnv(t)

	for _, v := range []string{"60s", "1m", "2m", "0s"} {
		t.Setenv("NOTIFY_TICK", v)
		if _, err := Load(); err == nil || !strings.Contains(err.Error(), "NOTIFY_TICK") {
			t.Errorf("NOTIFY_TICK=%s: err = %v, want a tick validation error", v, err)
		}
	}
}

func TestLoadAcceptsSubMinuteTick(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NOTIFY_TICK", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickEvery != 30*time.Second {
		t.Fatalf("TickEvery = %s, want 30s", cfg.TickEvery)
	}
}
