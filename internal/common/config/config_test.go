package config_test

import (
	"errors"
	"testing"
	"time"

	"sitehost/internal/common/config"
	commonerrors "sitehost/internal/common/errors"
)

const validSecret = "test-secret-key-must-be-at-least-32-bytes-long"

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	if !errors.Is(err, commonerrors.ErrMissingRequiredEnv) {
		t.Errorf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	_, err := config.Load()
	if !errors.Is(err, commonerrors.ErrInvalidJWTSecret) {
		t.Errorf("expected ErrInvalidJWTSecret, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", validSecret)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTPPort != "3000" {
		t.Errorf("expected port 3000, got %s", cfg.HTTPPort)
	}
	if cfg.UsersFile != "data/users.json" {
		t.Errorf("expected default users file, got %s", cfg.UsersFile)
	}
	if cfg.StaticDir != "public" {
		t.Errorf("expected default static dir, got %s", cfg.StaticDir)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Errorf("expected 7 day token ttl, got %v", cfg.TokenTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", validSecret)
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("USERS_FILE", "/tmp/u.json")
	t.Setenv("TOKEN_TTL", "24h")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.UsersFile != "/tmp/u.json" {
		t.Errorf("expected /tmp/u.json, got %s", cfg.UsersFile)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h ttl, got %v", cfg.TokenTTL)
	}
}
