package api

import "time"

// AccessTokenResponse bundles a freshly issued access/refresh token pair.
// It is produced once per issuance or refresh call and never mutated.
type AccessTokenResponse struct {
	// AccessToken is the short-lived bearer credential for API calls.
	AccessToken string `json:"access_token"`

	// ExpiresAt is the absolute expiry of the access token (UTC).
	ExpiresAt time.Time `json:"expires_at"`

	// TTLSeconds is the access token lifetime in seconds.
	TTLSeconds int64 `json:"ttl_seconds"`

	// RefreshToken is the longer-lived credential used solely to obtain
	// a new access/refresh pair.
	RefreshToken string `json:"refresh_token"`

	// RefreshExpiresAt is the absolute expiry of the refresh token (UTC).
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`

	// RefreshTTLSeconds is the refresh token lifetime in seconds.
	RefreshTTLSeconds int64 `json:"refresh_ttl_seconds"`
}
