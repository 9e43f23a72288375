package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port %q, want 8080", cfg.Port)
	}
	if cfg.GracePeriod != 2*time.Second {
		t.Errorf("grace period %s, want 2s", cfg.GracePeriod)
	}
	if cfg.AllowedOrigins != "*" {
		t.Errorf("origins %q, want *", cfg.AllowedOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("GRACE_PERIOD", "150ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("port %q, want 9999", cfg.Port)
	}
	if cfg.GracePeriod != 150*time.Millisecond {
		t.Errorf("grace period %s, want 150ms", cfg.GracePeriod)
	}
}
