// Package config loads layered service configuration with koanf:
// built-in defaults, YAML profiles, and APP_-prefixed environment
// variables, in rising precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Server defaults.
const (
	DefaultServerPort     = 8080
	DefaultMaxRequestSize = 1 << 20 // 1 MiB
)

// Outbound client defaults.
const (
	DefaultClientRetryMaxAttempts     = 3
	DefaultClientRetryMultiplier      = 2.0
	DefaultClientRetryJitterFactor    = 0.25
	DefaultClientCircuitMaxFailures   = 5
	DefaultClientCircuitHalfOpenLimit = 3

	DefaultTransportMaxIdleConns        = 100
	DefaultTransportMaxIdleConnsPerHost = 10
	DefaultTransportIdleConnTimeout     = 90 * time.Second
)

// Rolling log file defaults.
const (
	DefaultLogFileMaxSizeMB  = 100
	DefaultLogFileMaxBackups = 3
	DefaultLogFileMaxAgeDays = 28
)

// DefaultAPIKeyHeader is the header inspected for API key credentials,
// inbound verification and outbound propagation alike.
const DefaultAPIKeyHeader = "X-API-Key"

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Auth      AuthConfig      `koanf:"auth"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"       validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"   validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"    validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// AuthConfig contains credential verification settings.
//
// When Enabled is false, requests are authorized with the anonymous subject
// and full scopes (useful for local development; never for production).
type AuthConfig struct {
	Enabled          bool               `koanf:"enabled"`
	Issuer           string             `koanf:"issuer"`
	APIKeyHeader     string             `koanf:"api_key_header"`
	AnonymousSubject string             `koanf:"anonymous_subject"`
	RequiredScope    string             `koanf:"required_scope"`
	Credentials      []CredentialConfig `koanf:"credentials" validate:"dive"`
}

// CredentialConfig declares one accepted credential and the authorization it
// grants. Exactly one credential form should be set per entry: api_key,
// username+password, or token.
type CredentialConfig struct {
	Subject   string   `koanf:"subject" validate:"required"`
	APIKey    string   `koanf:"api_key"`
	Username  string   `koanf:"username"`
	Password  string   `koanf:"password"`
	Token     string   `koanf:"token"`
	Scopes    []string `koanf:"scopes"`
	AllScopes bool     `koanf:"all_scopes"`
}

// ClientConfig contains HTTP client settings for downstream services.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
	Downstream     DownstreamConfig     `koanf:"downstream"`
}

// RetryConfig contains retry settings for HTTP clients.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"         validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"      validate:"required,min=1s"`
}

// DownstreamConfig contains the optional downstream endpoint the service
// relays requests to. When disabled no outbound client is constructed.
type DownstreamConfig struct {
	Enabled bool   `koanf:"enabled"`
	BaseURL string `koanf:"base_url" validate:"required_if=Enabled true,omitempty,url"`
	Name    string `koanf:"name"     validate:"required_if=Enabled true"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "go-api-runtime",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "go-api-runtime",
		"telemetry.sampling_rate": 1.0,

		"auth.enabled":           false,
		"auth.issuer":            "static",
		"auth.api_key_header":    DefaultAPIKeyHeader,
		"auth.anonymous_subject": "anonymous",

		"client.timeout":                           "30s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "100ms",
		"client.retry.max_interval":                "5s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",
		"client.downstream.enabled":                false,
	}
}

// Load assembles the configuration for a profile. Layers merge in rising
// precedence: defaults, configs/base.yaml, configs/{profile}.yaml, then
// APP_-prefixed environment variables. Missing YAML files are skipped;
// malformed ones fail the load.
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if err := mergeYAML(k, "configs/base.yaml"); err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		if err := mergeYAML(k, fmt.Sprintf("configs/%s.yaml", profile)); err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	if err := k.Load(env.Provider("APP_", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps an environment variable name onto a config key:
// APP_SERVER_PORT becomes server.port. Nested keys whose names contain
// underscores (max_attempts) cannot be set this way; use YAML for those.
func envKey(name string) string {
	return strings.ReplaceAll(
		strings.ToLower(strings.TrimPrefix(name, "APP_")),
		"_",
		".",
	)
}

// mergeYAML merges a YAML file into the tree, treating an absent file as
// an empty layer.
func mergeYAML(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
