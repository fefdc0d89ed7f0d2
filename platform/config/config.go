// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketOffertePhotos() string
	IsMinIOEnabled() bool
}

// OfferteConfig provides settings for the quote intake module.
type OfferteConfig interface {
	GetSessionTTL() time.Duration
	GetSessionSweepInterval() time.Duration
	GetIntakeRateLimitPerMinute() int
}

// MapsConfig provides settings for the address lookup proxy.
type MapsConfig interface {
	GetAddressLookupURL() string
}

// =============================================================================
// Config Implementation
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Env                      string
	HTTPAddr                 string
	CORSAllowAll             bool
	CORSOrigins              []string
	CORSAllowCreds           bool
	MinIOEndpoint            string
	MinIOAccessKey           string
	MinIOSecretKey           string
	MinIOUseSSL              bool
	MinIOMaxFileSize         int64
	MinioBucketOffertePhotos string
	SessionTTL               time.Duration
	SessionSweepInterval     time.Duration
	IntakeRateLimit          int
	AddressLookupURL         string
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string   { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string  { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string  { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool       { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64 { return c.MinIOMaxFileSize }
func (c *Config) GetMinioBucketOffertePhotos() string {
	return c.MinioBucketOffertePhotos
}
func (c *Config) IsMinIOEnabled() bool { return c.MinIOEndpoint != "" }

// OfferteConfig implementation
func (c *Config) GetSessionTTL() time.Duration           { return c.SessionTTL }
func (c *Config) GetSessionSweepInterval() time.Duration { return c.SessionSweepInterval }
func (c *Config) GetIntakeRateLimitPerMinute() int       { return c.IntakeRateLimit }

// MapsConfig implementation
func (c *Config) GetAddressLookupURL() string { return c.AddressLookupURL }

// =============================================================================

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                      getEnv("APP_ENV", "development"),
		HTTPAddr:                 getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:             corsAllowAll,
		CORSOrigins:              corsOrigins,
		CORSAllowCreds:           strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		MinIOEndpoint:            getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:           getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:           getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:              strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:         mustInt64(getEnv("MINIO_MAX_FILE_SIZE", "5242880")),
		MinioBucketOffertePhotos: getEnv("MINIO_BUCKET_OFFERTE_PHOTOS", "offerte-photos"),
		SessionTTL:               mustDuration(getEnv("OFFERTE_SESSION_TTL", "2h")),
		SessionSweepInterval:     mustDuration(getEnv("OFFERTE_SWEEP_INTERVAL", "1m")),
		IntakeRateLimit:          int(mustInt64(getEnv("OFFERTE_RATE_LIMIT_PER_MINUTE", "120"))),
		AddressLookupURL:         getEnv("ADDRESS_LOOKUP_URL", "https://nominatim.openstreetmap.org/search"),
	}

	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("OFFERTE_SESSION_TTL must be a positive duration")
	}
	if cfg.SessionSweepInterval <= 0 {
		return nil, fmt.Errorf("OFFERTE_SWEEP_INTERVAL must be a positive duration")
	}
	if cfg.IntakeRateLimit <= 0 {
		return nil, fmt.Errorf("OFFERTE_RATE_LIMIT_PER_MINUTE must be positive")
	}
	if cfg.IsMinIOEnabled() && (cfg.MinIOAccessKey == "" || cfg.MinIOSecretKey == "") {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when MINIO_ENDPOINT is set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
