package token

import "errors"

// Sentinel errors for token verification. All are terminal for the
// current request.
var (
	// ErrMalformed is returned when a token does not split into exactly
	// four fields or its numeric fields contain non-digit characters.
	ErrMalformed = errors.New("token malformed")

	// ErrSignatureInvalid is returned when the recomputed HMAC does not
	// match the presented signature.
	ErrSignatureInvalid = errors.New("token signature invalid")

	// ErrExpired is returned by callers of the codec when the current time
	// exceeds the embedded expiry of an otherwise valid token.
	ErrExpired = errors.New("token expired")
)
