// Package config provides unified configuration for the torii gateway.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (TORII_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the torii gateway.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Backend       BackendConfig       `yaml:"backend"`
	Credentials   CredentialsConfig   `yaml:"credentials"`
	Secrets       SecretsConfig       `yaml:"secrets"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 8080
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 30s
}

// BackendConfig holds the answering backend settings.
type BackendConfig struct {
	URL     string        `yaml:"url"`     // required
	Timeout time.Duration `yaml:"timeout"` // default: 60s
}

// CredentialsConfig holds the client credential store settings.
type CredentialsConfig struct {
	Store    string         `yaml:"store"`    // "memory" or "postgres", default: "memory"
	Clients  []ClientConfig `yaml:"clients"`  // seed records for the memory store
	Postgres PostgresConfig `yaml:"postgres"`
}

// ClientConfig describes a single provisioned client for the memory store.
// Only the secret's hash is ever configured; the secret itself lives with
// the client.
type ClientConfig struct {
	ClientID       string `yaml:"client_id" json:"client_id"`
	CompanyID      int64  `yaml:"company_id" json:"company_id"`
	SecretHash     string `yaml:"secret_hash" json:"secret_hash"`
	SecretHashFile string `yaml:"secret_hash_file" json:"secret_hash_file"` // _file variant for secret_hash
	Active         *bool  `yaml:"active" json:"active"`                     // default: true
	HomePage       string `yaml:"home_page" json:"home_page"`
}

// IsActive returns the active flag, defaulting to true when unset.
func (c *ClientConfig) IsActive() bool {
	return c.Active == nil || *c.Active
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	DSNFile        string `yaml:"dsn_file"`         // _file variant for dsn
	MaxConns       int32  `yaml:"max_conns"`        // default: 25
	MigrateOnStart bool   `yaml:"migrate_on_start"` // default: false
}

// SecretsConfig holds the token signing material and its caching policy.
type SecretsConfig struct {
	// CacheTTL bounds how long fetched secret bundles are reused.
	// Zero disables caching. Default: 5m.
	CacheTTL time.Duration `yaml:"cache_ttl"`

	TokenSettings TokenSettingsConfig `yaml:"token_settings"`
}

// TokenSettingsConfig holds the signing secrets and lifetimes for both
// token kinds.
type TokenSettingsConfig struct {
	AccessSecret      string `yaml:"access_secret"`
	AccessSecretFile  string `yaml:"access_secret_file"` // _file variant for access_secret
	RefreshSecret     string `yaml:"refresh_secret"`
	RefreshSecretFile string `yaml:"refresh_secret_file"` // _file variant for refresh_secret
	TTLSeconds        int64  `yaml:"ttl_seconds"`         // default: 300
	RefreshTTLSeconds int64  `yaml:"refresh_ttl_seconds"` // default: 3600
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Backend: BackendConfig{
			Timeout: 60 * time.Second,
		},
		Credentials: CredentialsConfig{
			Store: "memory",
			Postgres: PostgresConfig{
				MaxConns: 25,
			},
		},
		Secrets: SecretsConfig{
			CacheTTL: 5 * time.Minute,
			TokenSettings: TokenSettingsConfig{
				TTLSeconds:        300,
				RefreshTTLSeconds: 3600,
			},
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
