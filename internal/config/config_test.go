package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("EVENT_ID", "")
	t.Setenv("EVENT_NAME", "")
	t.Setenv("EVENT_CAPACITY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.EventID != defaultEventID || cfg.EventSeats != defaultEventSeats {
		t.Fatalf("unexpected event defaults: %+v", cfg)
	}
	if cfg.RabbitURL != "" {
		t.Fatalf("expected event stream disabled by default, got %q", cfg.RabbitURL)
	}
	if len(cfg.CORSOrigins) == 0 {
		t.Fatalf("expected default CORS origins")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("EVENT_ID", "expo-2026")
	t.Setenv("EVENT_CAPACITY", "1200")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != "9999" || cfg.EventID != "expo-2026" || cfg.EventSeats != 1200 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadRejectsBadCapacity(t *testing.T) {
	t.Setenv("EVENT_CAPACITY", "lots")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric capacity")
	}

	t.Setenv("EVENT_CAPACITY", "-5")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative capacity")
	}
}
