package config

import (
	"testing"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("missing DATABASE_URL did not error")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/clinicdesk")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Errorf("Env = %q, want development default", cfg.Env)
	}
	if cfg.JWTTTLHours != 72 {
		t.Errorf("JWTTTLHours = %d, want 72", cfg.JWTTTLHours)
	}
}

func TestValidateRejectsWeakSecretInProduction(t *testing.T) {
	cfg := &Config{Env: "production", JWTSecret: "short", JWTTTLHours: 72}
	if err := cfg.Validate(); err == nil {
		t.Fatal("weak JWT secret accepted outside development")
	}

	cfg.JWTSecret = "0123456789abcdef0123456789abcdef"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("strong secret rejected: %v", err)
	}
}

func TestValidateRejectsNonPositiveTTL(t *testing.T) {
	cfg := &Config{Env: "development", JWTTTLHours: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero token TTL accepted")
	}
}
