// Package secrets abstracts the external secret store that supplies signing
// secrets and token lifetimes. Providers return named bundles of key/value
// pairs; the gateway consults the store, it never writes to it.
package secrets

import (
	"context"
	"errors"
	"fmt"
)

// TokenSettingsName is the bundle holding token signing secrets and TTLs.
const TokenSettingsName = "token_setting"

// Sentinel errors.
var (
	// ErrNotFound is returned when a named bundle does not exist.
	ErrNotFound = errors.New("secret bundle not found")

	// ErrConfiguration is returned when a bundle exists but required keys
	// are missing or malformed. It surfaces as a server error, never as a
	// client authentication failure.
	ErrConfiguration = errors.New("secret bundle misconfigured")
)

// Bundle is a named collection of secret values, the unit of retrieval
// from the secret store.
type Bundle map[string]string

// Provider supplies secret bundles by name. Fetch may block on I/O and is
// on the critical path of every authenticated request; wrap a Provider in
// a Cached decorator to bound that latency.
type Provider interface {
	Fetch(ctx context.Context, name string) (Bundle, error)
}

// Static is a Provider backed by an in-process map, typically populated
// from configuration at startup.
type Static struct {
	bundles map[string]Bundle
}

// NewStatic creates a static provider from the given bundles.
func NewStatic(bundles map[string]Bundle) *Static {
	copied := make(map[string]Bundle, len(bundles))
	for name, b := range bundles {
		cb := make(Bundle, len(b))
		for k, v := range b {
			cb[k] = v
		}
		copied[name] = cb
	}
	return &Static{bundles: copied}
}

// Fetch returns the named bundle or ErrNotFound.
func (s *Static) Fetch(_ context.Context, name string) (Bundle, error) {
	b, ok := s.bundles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return b, nil
}
