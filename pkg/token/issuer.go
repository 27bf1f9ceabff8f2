package token

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/torii-gw/torii/pkg/api"
	"github.com/torii-gw/torii/pkg/secrets"
)

// nonceBytes is the entropy per token nonce (192 bits, base64url-encoded).
const nonceBytes = 24

// Issuer mints access/refresh token pairs for a tenant. It reads signing
// secrets and lifetimes from the secret store on every call, so secret
// rotation takes effect without a restart.
type Issuer struct {
	provider secrets.Provider
	nowFunc  func() time.Time
	nonce    func() (string, error)
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithNowFunc sets the clock source (primarily for testing).
func WithNowFunc(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.nowFunc = now
	}
}

// WithNonceFunc sets the nonce source (primarily for testing).
func WithNonceFunc(nonce func() (string, error)) IssuerOption {
	return func(i *Issuer) {
		i.nonce = nonce
	}
}

// NewIssuer creates an issuer backed by the given secret provider.
func NewIssuer(provider secrets.Provider, options ...IssuerOption) (*Issuer, error) {
	if provider == nil {
		return nil, fmt.Errorf("token issuer: secret provider is required")
	}
	i := &Issuer{
		provider: provider,
		nowFunc:  time.Now,
		nonce:    randomNonce,
	}
	for _, opt := range options {
		opt(i)
	}
	return i, nil
}

// Issue mints a fresh access/refresh pair bound to the given tenant.
func (i *Issuer) Issue(ctx context.Context, companyID int64) (*api.AccessTokenResponse, error) {
	return i.mint(ctx, companyID)
}

// Refresh mints a fresh access/refresh pair for a caller that presented a
// valid refresh token. Both tokens are re-derived from scratch; nothing is
// extended, and the prior refresh token stays valid until its own expiry.
func (i *Issuer) Refresh(ctx context.Context, companyID int64) (*api.AccessTokenResponse, error) {
	return i.mint(ctx, companyID)
}

func (i *Issuer) mint(ctx context.Context, companyID int64) (*api.AccessTokenResponse, error) {
	settings, err := LoadSettings(ctx, i.provider)
	if err != nil {
		return nil, err
	}

	now := i.nowFunc().UTC()
	expiresAt := now.Add(settings.TTL)
	refreshExpiresAt := now.Add(settings.RefreshTTL)

	accessToken, err := i.encodeWithFreshNonce(companyID, expiresAt.Unix(), settings.AccessSecret)
	if err != nil {
		return nil, fmt.Errorf("minting access token: %w", err)
	}
	refreshToken, err := i.encodeWithFreshNonce(companyID, refreshExpiresAt.Unix(), settings.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("minting refresh token: %w", err)
	}

	return &api.AccessTokenResponse{
		AccessToken:       accessToken,
		ExpiresAt:         expiresAt,
		TTLSeconds:        int64(settings.TTL / time.Second),
		RefreshToken:      refreshToken,
		RefreshExpiresAt:  refreshExpiresAt,
		RefreshTTLSeconds: int64(settings.RefreshTTL / time.Second),
	}, nil
}

func (i *Issuer) encodeWithFreshNonce(companyID int64, exp int64, secret []byte) (string, error) {
	nonce, err := i.nonce()
	if err != nil {
		return "", err
	}
	return Encode(nonce, companyID, exp, secret)
}

// randomNonce returns a fresh URL-safe nonce with nonceBytes of entropy.
func randomNonce() (string, error) {
	b := make([]byte, nonceBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading nonce entropy: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
