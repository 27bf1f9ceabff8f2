// Package bearer provides a Bearer-scheme authenticator that verifies
// signed tenant tokens. One instance handles exactly one token kind;
// the access and refresh endpoints each mount their own.
package bearer

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/torii-gw/torii/pkg/auth"
	"github.com/torii-gw/torii/pkg/secrets"
	"github.com/torii-gw/torii/pkg/token"
)

// Authenticator verifies Bearer tokens of a single kind.
type Authenticator struct {
	kind     token.Kind
	provider secrets.Provider
	nowFunc  func() time.Time
}

// Option configures the authenticator.
type Option func(*Authenticator)

// WithNowFunc injects the clock used for expiry checks.
func WithNowFunc(now func() time.Time) Option {
	return func(a *Authenticator) {
		a.nowFunc = now
	}
}

// New creates a Bearer authenticator for the given token kind.
func New(kind token.Kind, provider secrets.Provider, opts ...Option) *Authenticator {
	a := &Authenticator{
		kind:     kind,
		provider: provider,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate extracts a Bearer token, verifies its signature under the
// kind's secret, and checks expiry. Signature verification always runs
// before the expiry check, so a tampered expiry field cannot leak timing
// information.
//
// Decision outcomes:
//   - Abstain: no Authorization header or not a Bearer scheme
//   - No: token present but malformed, forged, or expired
//   - Yes: valid token with the tenant identity populated
func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) auth.AuthResult {
	header := r.Header.Get("Authorization")
	if header == "" {
		return auth.AuthResult{Decision: auth.Abstain}
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return auth.AuthResult{Decision: auth.Abstain}
	}

	scheme := "bearer_" + a.kind.String()

	tok := strings.TrimPrefix(header, "Bearer ")
	if tok == "" {
		return auth.AuthResult{Decision: auth.No, Err: token.ErrMalformed, Scheme: scheme}
	}

	settings, err := token.LoadSettings(ctx, a.provider)
	if err != nil {
		return auth.AuthResult{Decision: auth.No, Err: err, Scheme: scheme}
	}

	claims, err := token.Decode(tok, settings.SecretFor(a.kind))
	if err != nil {
		return auth.AuthResult{Decision: auth.No, Err: err, Scheme: scheme}
	}

	// A token is valid through its expiry second and rejected after it.
	if a.nowFunc().UTC().Unix() > claims.ExpiresAt {
		return auth.AuthResult{Decision: auth.No, Err: token.ErrExpired, Scheme: scheme}
	}

	return auth.AuthResult{
		Decision: auth.Yes,
		Identity: &auth.Identity{CompanyID: claims.CompanyID},
		Scheme:   scheme,
	}
}
