package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != ":3001" {
		t.Errorf("expected :3001, got %s", cfg.Addr())
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("expected 24h ttl, got %s", cfg.JWTTTL)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected 2 default origins, got %v", cfg.CORSOrigins)
	}
	if cfg.Development() {
		t.Errorf("default environment must not be development")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", ":9000")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CORS_ORIGINS", "https://admin.example.com,https://example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Development() {
		t.Errorf("expected development mode")
	}
	if cfg.Addr() != ":9000" {
		t.Errorf("expected :9000, got %s", cfg.Addr())
	}
	if cfg.JWTSecret != "s3cret" || cfg.JWTTTL != 90*time.Minute || cfg.CacheTTL != 30*time.Second {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://admin.example.com" {
		t.Errorf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("JWT_TTL", "-1h")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative ttl")
	}
}
