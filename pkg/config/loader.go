package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, TORII_CONFIG env, ./config.yaml, /etc/torii/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	// Start with defaults.
	cfg := Defaults()

	// Discover and load YAML config file.
	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	// Apply environment variable overrides.
	applyEnvOverrides(&cfg)

	// Resolve _file references.
	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	// Validate.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. TORII_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/torii/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	// Explicit path takes priority.
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("TORII_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/torii/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps TORII_* environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TORII_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("TORII_BACKEND_URL"); v != "" {
		cfg.Backend.URL = v
	}
	if v := os.Getenv("TORII_CREDENTIAL_STORE"); v != "" {
		cfg.Credentials.Store = v
	}
	if v := os.Getenv("TORII_POSTGRES_DSN"); v != "" {
		cfg.Credentials.Postgres.DSN = v
	}
	if v := os.Getenv("TORII_ACCESS_TOKEN_SECRET"); v != "" {
		cfg.Secrets.TokenSettings.AccessSecret = v
	}
	if v := os.Getenv("TORII_REFRESH_TOKEN_SECRET"); v != "" {
		cfg.Secrets.TokenSettings.RefreshSecret = v
	}
	if v := os.Getenv("TORII_TOKEN_TTL_SECONDS"); v != "" {
		if ttl, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Secrets.TokenSettings.TTLSeconds = ttl
		}
	}
	if v := os.Getenv("TORII_REFRESH_TTL_SECONDS"); v != "" {
		if ttl, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Secrets.TokenSettings.RefreshTTLSeconds = ttl
		}
	}
	if v := os.Getenv("TORII_SECRETS_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Secrets.CacheTTL = d
		}
	}

	// TORII_CLIENTS: JSON array of client configs for the memory store.
	if v := os.Getenv("TORII_CLIENTS"); v != "" {
		clients, err := parseClientsJSON(v)
		if err == nil && len(clients) > 0 {
			cfg.Credentials.Clients = clients
		}
	}
}

// parseClientsJSON parses a JSON array of client configurations.
func parseClientsJSON(jsonStr string) ([]ClientConfig, error) {
	var clients []ClientConfig
	if err := json.Unmarshal([]byte(jsonStr), &clients); err != nil {
		return nil, fmt.Errorf("parsing clients JSON: %w", err)
	}
	return clients, nil
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields. For each field ending in _file, if the value field is empty
// and the file field is set, the file is read, whitespace is trimmed, and
// the value field is populated.
func resolveFileReferences(cfg *Config) error {
	// credentials.postgres.dsn_file -> credentials.postgres.dsn
	if cfg.Credentials.Postgres.DSNFile != "" && cfg.Credentials.Postgres.DSN == "" {
		val, err := readSecretFile(cfg.Credentials.Postgres.DSNFile)
		if err != nil {
			return fmt.Errorf("credentials.postgres.dsn_file: %w", err)
		}
		cfg.Credentials.Postgres.DSN = val
	}

	// secrets.token_settings.access_secret_file -> access_secret
	ts := &cfg.Secrets.TokenSettings
	if ts.AccessSecretFile != "" && ts.AccessSecret == "" {
		val, err := readSecretFile(ts.AccessSecretFile)
		if err != nil {
			return fmt.Errorf("secrets.token_settings.access_secret_file: %w", err)
		}
		ts.AccessSecret = val
	}

	// secrets.token_settings.refresh_secret_file -> refresh_secret
	if ts.RefreshSecretFile != "" && ts.RefreshSecret == "" {
		val, err := readSecretFile(ts.RefreshSecretFile)
		if err != nil {
			return fmt.Errorf("secrets.token_settings.refresh_secret_file: %w", err)
		}
		ts.RefreshSecret = val
	}

	// credentials.clients[*].secret_hash_file -> secret_hash
	for i := range cfg.Credentials.Clients {
		c := &cfg.Credentials.Clients[i]
		if c.SecretHashFile != "" && c.SecretHash == "" {
			val, err := readSecretFile(c.SecretHashFile)
			if err != nil {
				return fmt.Errorf("credentials.clients[%d].secret_hash_file: %w", i, err)
			}
			c.SecretHash = val
		}
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
