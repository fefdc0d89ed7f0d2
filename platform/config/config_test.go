package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://www.example-bouw.nl, https://example-bouw.nl")
	t.Setenv("MINIO_ENDPOINT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSOrigins)
	}
	if cfg.IsMinIOEnabled() {
		t.Fatal("expected MinIO disabled without endpoint")
	}
	if cfg.GetSessionTTL() <= 0 || cfg.GetSessionSweepInterval() <= 0 {
		t.Fatalf("expected positive session durations, got %v / %v", cfg.GetSessionTTL(), cfg.GetSessionSweepInterval())
	}
	if cfg.GetAddressLookupURL() == "" {
		t.Fatal("expected a default address lookup url")
	}
}

func TestLoadRejectsWildcardWithCredentials(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for wildcard origins with credentials")
	}
}

func TestLoadRequiresMinIOCredentials(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY", "")
	t.Setenv("MINIO_SECRET_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for MinIO without credentials")
	}
}

func TestLoadSessionTTL(t *testing.T) {
	t.Setenv("OFFERTE_SESSION_TTL", "45m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GetSessionTTL() != 45*time.Minute {
		t.Fatalf("expected 45m, got %v", cfg.GetSessionTTL())
	}
}
