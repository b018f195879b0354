package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/carepulse")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("expected development env by default")
	}
	if cfg.GatewayPhonePrefix != "994" {
		t.Errorf("expected default phone prefix 994, got %s", cfg.GatewayPhonePrefix)
	}
	if cfg.GatewayPhoneDigits != 9 {
		t.Errorf("expected 9 local digits, got %d", cfg.GatewayPhoneDigits)
	}
	if cfg.GatewayTimeout() != 5*time.Second {
		t.Errorf("expected 5s gateway timeout, got %s", cfg.GatewayTimeout())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/carepulse")
	t.Setenv("PORT", "9999")
	t.Setenv("GATEWAY_URL", "https://gate.example.com/send")
	t.Setenv("GATEWAY_TIMEOUT_SECONDS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %s", cfg.Port)
	}
	if cfg.GatewayURL != "https://gate.example.com/send" {
		t.Errorf("unexpected gateway url: %s", cfg.GatewayURL)
	}
	if cfg.GatewayTimeout() != 2*time.Second {
		t.Errorf("expected 2s timeout, got %s", cfg.GatewayTimeout())
	}
}

func TestValidate_ProductionRequiresAdminSecrets(t *testing.T) {
	cfg := &Config{
		Env:                   "production",
		GatewayPhoneDigits:    9,
		GatewayTimeoutSeconds: 5,
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing ADMIN_PASSKEY in production")
	}

	cfg.AdminPasskey = "123456"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing JWT_SECRET in production")
	}

	cfg.JWTSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsBadGatewaySettings(t *testing.T) {
	cfg := &Config{
		Env:                   "development",
		GatewayURL:            "not-a-url",
		GatewayPhoneDigits:    9,
		GatewayTimeoutSeconds: 5,
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for malformed GATEWAY_URL")
	}

	cfg.GatewayURL = "https://gate.example.com"
	cfg.GatewayPhoneDigits = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero GATEWAY_PHONE_DIGITS")
	}

	cfg.GatewayPhoneDigits = 9
	cfg.GatewayTimeoutSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero GATEWAY_TIMEOUT_SECONDS")
	}
}
