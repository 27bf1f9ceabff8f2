package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	// backend.url is required and must parse.
	if c.Backend.URL == "" {
		errs = append(errs, fmt.Errorf("backend.url is required"))
	} else if _, err := url.Parse(c.Backend.URL); err != nil {
		errs = append(errs, fmt.Errorf("backend.url: %w", err))
	}

	// server.port must be positive.
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// credentials.store must be a known value.
	switch c.Credentials.Store {
	case "memory", "postgres":
		// valid
	default:
		errs = append(errs, fmt.Errorf("credentials.store must be \"memory\" or \"postgres\", got %q", c.Credentials.Store))
	}

	// If credentials.store is "postgres", DSN or DSNFile must be set.
	if c.Credentials.Store == "postgres" {
		if c.Credentials.Postgres.DSN == "" && c.Credentials.Postgres.DSNFile == "" {
			errs = append(errs, fmt.Errorf("credentials.postgres.dsn or credentials.postgres.dsn_file is required when credentials.store is \"postgres\""))
		}
	}

	// Memory-store client records must be complete.
	if c.Credentials.Store == "memory" {
		for i, client := range c.Credentials.Clients {
			if client.ClientID == "" {
				errs = append(errs, fmt.Errorf("credentials.clients[%d].client_id is required", i))
			}
			if client.CompanyID <= 0 {
				errs = append(errs, fmt.Errorf("credentials.clients[%d].company_id must be > 0, got %d", i, client.CompanyID))
			}
			if client.SecretHash == "" && client.SecretHashFile == "" {
				errs = append(errs, fmt.Errorf("credentials.clients[%d].secret_hash or secret_hash_file is required", i))
			}
			if client.HomePage == "" {
				errs = append(errs, fmt.Errorf("credentials.clients[%d].home_page is required", i))
			}
		}
	}

	// Token settings: both secrets and positive lifetimes are required.
	ts := c.Secrets.TokenSettings
	if ts.AccessSecret == "" && ts.AccessSecretFile == "" {
		errs = append(errs, fmt.Errorf("secrets.token_settings.access_secret or access_secret_file is required"))
	}
	if ts.RefreshSecret == "" && ts.RefreshSecretFile == "" {
		errs = append(errs, fmt.Errorf("secrets.token_settings.refresh_secret or refresh_secret_file is required"))
	}
	if ts.TTLSeconds <= 0 {
		errs = append(errs, fmt.Errorf("secrets.token_settings.ttl_seconds must be > 0, got %d", ts.TTLSeconds))
	}
	if ts.RefreshTTLSeconds <= 0 {
		errs = append(errs, fmt.Errorf("secrets.token_settings.refresh_ttl_seconds must be > 0, got %d", ts.RefreshTTLSeconds))
	}

	// An enabled metrics endpoint needs a mount point.
	if c.Observability.Metrics.Enabled && c.Observability.Metrics.Path == "" {
		errs = append(errs, fmt.Errorf("observability.metrics.path is required when observability.metrics.enabled is true"))
	}

	return errors.Join(errs...)
}
