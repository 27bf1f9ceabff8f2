package token

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/torii-gw/torii/pkg/secrets"
)

// Bundle keys in the token settings secret.
const (
	keyAccessSecret  = "access_token_secret"
	keyRefreshSecret = "refresh_token_secret"
	keyTTL           = "ttl_seconds"
	keyRefreshTTL    = "refresh_ttl_seconds"
)

// Settings holds the signing secrets and lifetimes for both token kinds,
// as delivered by the secret store.
type Settings struct {
	AccessSecret  []byte
	RefreshSecret []byte
	TTL           time.Duration
	RefreshTTL    time.Duration
}

// SecretFor returns the signing secret for the given kind.
func (s *Settings) SecretFor(kind Kind) []byte {
	if kind == KindRefresh {
		return s.RefreshSecret
	}
	return s.AccessSecret
}

// TTLFor returns the configured lifetime for the given kind.
func (s *Settings) TTLFor(kind Kind) time.Duration {
	if kind == KindRefresh {
		return s.RefreshTTL
	}
	return s.TTL
}

// LoadSettings fetches and validates the token settings bundle. Missing or
// malformed keys fail with secrets.ErrConfiguration; there is no partial
// result.
func LoadSettings(ctx context.Context, provider secrets.Provider) (*Settings, error) {
	bundle, err := provider.Fetch(ctx, secrets.TokenSettingsName)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", secrets.ErrConfiguration, secrets.TokenSettingsName, err)
	}

	accessSecret, err := requireKey(bundle, keyAccessSecret)
	if err != nil {
		return nil, err
	}
	refreshSecret, err := requireKey(bundle, keyRefreshSecret)
	if err != nil {
		return nil, err
	}
	ttl, err := requireSeconds(bundle, keyTTL)
	if err != nil {
		return nil, err
	}
	refreshTTL, err := requireSeconds(bundle, keyRefreshTTL)
	if err != nil {
		return nil, err
	}

	return &Settings{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		TTL:           ttl,
		RefreshTTL:    refreshTTL,
	}, nil
}

func requireKey(b secrets.Bundle, key string) (string, error) {
	v, ok := b[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%w: missing %s", secrets.ErrConfiguration, key)
	}
	return v, nil
}

func requireSeconds(b secrets.Bundle, key string) (time.Duration, error) {
	v, err := requireKey(b, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", secrets.ErrConfiguration, key, v)
	}
	return time.Duration(n) * time.Second, nil
}
