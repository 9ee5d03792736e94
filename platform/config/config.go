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

// SquareConfig provides settings for the Square payment-links client.
type SquareConfig interface {
	GetSquareAccessToken() string
	GetSquareLocationID() string
	GetSquareAPIBase() string
	GetSquareVersion() string
	GetSquareCurrency() string
	IsSquareConfigured() bool
}

// SheetsConfig provides settings for the lead webhook client.
type SheetsConfig interface {
	GetSheetsWebhookURL() string
	GetSheetsSecret() string
	GetSheetsTransport() string
	GetSheetsTimeout() time.Duration
	GetLeadsMode() string
	IsSheetsConfigured() bool
}

// SchedulerConfig provides settings for queued lead delivery.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// RateLimitConfig provides settings for the public-endpoint rate limiter.
type RateLimitConfig interface {
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// Valid values for SHEETS_TRANSPORT.
const (
	SheetsTransportPost = "post"
	SheetsTransportGet  = "get"
)

// Valid values for LEADS_MODE.
const (
	LeadsModeAppend = "append"
	LeadsModeUpsert = "upsert"
)

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values. It is constructed once
// at startup and read-only afterwards.
type Config struct {
	Env      string
	HTTPAddr string

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	SquareAccessToken string
	SquareLocationID  string
	SquareAPIBase     string
	SquareVersion     string
	SquareCurrency    string

	SheetsWebhookURL string
	SheetsSecret     string
	SheetsTransport  string
	SheetsTimeout    time.Duration
	LeadsMode        string

	RedisURL         string
	RedisTLSInsecure bool
	AsynqQueueName   string
	AsynqConcurrency int

	RateLimitRPS   float64
	RateLimitBurst int
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// SquareConfig implementation
func (c *Config) GetSquareAccessToken() string { return c.SquareAccessToken }
func (c *Config) GetSquareLocationID() string  { return c.SquareLocationID }
func (c *Config) GetSquareAPIBase() string     { return c.SquareAPIBase }
func (c *Config) GetSquareVersion() string     { return c.SquareVersion }
func (c *Config) GetSquareCurrency() string    { return c.SquareCurrency }
func (c *Config) IsSquareConfigured() bool {
	return c.SquareAccessToken != "" && c.SquareLocationID != ""
}

// SheetsConfig implementation
func (c *Config) GetSheetsWebhookURL() string       { return c.SheetsWebhookURL }
func (c *Config) GetSheetsSecret() string           { return c.SheetsSecret }
func (c *Config) GetSheetsTransport() string        { return c.SheetsTransport }
func (c *Config) GetSheetsTimeout() time.Duration   { return c.SheetsTimeout }
func (c *Config) GetLeadsMode() string              { return c.LeadsMode }
func (c *Config) IsSheetsConfigured() bool          { return c.SheetsWebhookURL != "" }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// RateLimitConfig implementation
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// Load reads configuration from environment variables. Missing Square or
// Sheets credentials do not fail startup; the affected operations return a
// configuration error at request time so /env-check stays reachable.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "*"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),

		SquareAccessToken: getEnv("SQUARE_ACCESS_TOKEN", ""),
		SquareLocationID:  getEnv("SQUARE_LOCATION_ID", ""),
		SquareAPIBase:     strings.TrimRight(getEnv("SQUARE_API_BASE", "https://connect.squareup.com"), "/"),
		SquareVersion:     getEnv("SQUARE_VERSION", "2024-01-18"),
		SquareCurrency:    getEnv("SQUARE_CURRENCY", "USD"),

		SheetsWebhookURL: getEnv("SHEETS_WEBHOOK_URL", ""),
		SheetsSecret:     getEnv("SHEETS_WEBHOOK_SECRET", ""),
		SheetsTransport:  strings.ToLower(getEnv("SHEETS_TRANSPORT", SheetsTransportPost)),
		SheetsTimeout:    mustDuration(getEnv("SHEETS_TIMEOUT", "15s")),
		LeadsMode:        strings.ToLower(getEnv("LEADS_MODE", LeadsModeAppend)),

		RedisURL:         getEnv("REDIS_URL", ""),
		RedisTLSInsecure: strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:   getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency: mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),

		RateLimitRPS:   mustFloat(getEnv("RATE_LIMIT_RPS", "2")),
		RateLimitBurst: mustInt(getEnv("RATE_LIMIT_BURST", "10")),
	}

	if cfg.SheetsTransport != SheetsTransportPost && cfg.SheetsTransport != SheetsTransportGet {
		return nil, fmt.Errorf("SHEETS_TRANSPORT must be %q or %q", SheetsTransportPost, SheetsTransportGet)
	}
	if cfg.LeadsMode != LeadsModeAppend && cfg.LeadsMode != LeadsModeUpsert {
		return nil, fmt.Errorf("LEADS_MODE must be %q or %q", LeadsModeAppend, LeadsModeUpsert)
	}
	if cfg.SheetsTimeout <= 0 {
		cfg.SheetsTimeout = 15 * time.Second
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
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

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
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
