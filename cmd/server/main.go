// Command server runs the torii authentication gateway.
//
// Configuration is layered: built-in defaults, a YAML config file
// (-config flag, TORII_CONFIG, ./config.yaml, /etc/torii/config.yaml),
// then TORII_* environment variable overrides. See pkg/config.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/torii-gw/torii/pkg/config"
	"github.com/torii-gw/torii/pkg/credential"
	"github.com/torii-gw/torii/pkg/credential/memory"
	"github.com/torii-gw/torii/pkg/credential/postgres"
	"github.com/torii-gw/torii/pkg/debug"
	"github.com/torii-gw/torii/pkg/secrets"
	"github.com/torii-gw/torii/pkg/token"
	"github.com/torii-gw/torii/pkg/transport"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: debug.ParseLevel(os.Getenv("TORII_LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Credential store.
	store, health, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	verifier, err := credential.NewVerifier(store, logger)
	if err != nil {
		return err
	}

	// Secret provider: static settings from config, wrapped in a cache so
	// token verification does not refetch the bundle on every request.
	var provider secrets.Provider = secrets.NewStatic(map[string]secrets.Bundle{
		secrets.TokenSettingsName: tokenSettingsBundle(cfg),
	})
	if cfg.Secrets.CacheTTL > 0 {
		provider = secrets.NewCached(provider, cfg.Secrets.CacheTTL)
	}

	issuer, err := token.NewIssuer(provider)
	if err != nil {
		return err
	}

	backendURL, err := url.Parse(cfg.Backend.URL)
	if err != nil {
		return fmt.Errorf("parsing backend URL: %w", err)
	}

	metricsPath := ""
	if cfg.Observability.Metrics.Enabled {
		metricsPath = cfg.Observability.Metrics.Path
	}

	handler, err := transport.NewHandler(issuer, verifier, provider, transport.Config{
		BackendURL:     backendURL,
		BackendTimeout: cfg.Backend.Timeout,
		Logger:         logger,
		Health:         health,
		MetricsPath:    metricsPath,
	})
	if err != nil {
		return err
	}

	srv := transport.NewServer(handler.Handler(), transport.ServerConfig{
		Addr:            ":" + strconv.Itoa(cfg.Server.Port),
		ReadTimeout:     cfg.Server.ReadTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Logger:          logger,
	})

	logger.Info("gateway configured",
		"port", cfg.Server.Port,
		"backend", cfg.Backend.URL,
		"credential_store", cfg.Credentials.Store,
	)

	return srv.ListenAndServe()
}

// buildStore constructs the configured credential store. The returned
// health checker is nil for the memory store.
func buildStore(ctx context.Context, cfg *config.Config) (credential.Store, transport.HealthChecker, func(), error) {
	switch cfg.Credentials.Store {
	case "postgres":
		pg, err := postgres.New(ctx, postgres.Config{
			DSN:            cfg.Credentials.Postgres.DSN,
			MaxConns:       cfg.Credentials.Postgres.MaxConns,
			MigrateOnStart: cfg.Credentials.Postgres.MigrateOnStart,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("creating postgres store: %w", err)
		}
		return pg, pg, func() { pg.Close() }, nil

	default:
		seed := make([]credential.AuthClient, 0, len(cfg.Credentials.Clients))
		for _, c := range cfg.Credentials.Clients {
			seed = append(seed, credential.AuthClient{
				ClientID:   c.ClientID,
				CompanyID:  c.CompanyID,
				SecretHash: c.SecretHash,
				Active:     c.IsActive(),
				HomePage:   c.HomePage,
				CreatedAt:  time.Now().UTC(),
			})
		}
		slog.Info("credential store ready", "type", "memory", "clients", len(seed))
		return memory.New(seed), nil, func() {}, nil
	}
}

// tokenSettingsBundle maps the config's token settings into the bundle
// shape the token package reads.
func tokenSettingsBundle(cfg *config.Config) secrets.Bundle {
	ts := cfg.Secrets.TokenSettings
	return secrets.Bundle{
		"access_token_secret":  ts.AccessSecret,
		"refresh_token_secret": ts.RefreshSecret,
		"ttl_seconds":          strconv.FormatInt(ts.TTLSeconds, 10),
		"refresh_ttl_seconds":  strconv.FormatInt(ts.RefreshTTLSeconds, 10),
	}
}
