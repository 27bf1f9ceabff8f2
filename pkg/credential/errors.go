package credential

import "errors"

// Classified verification errors. All are terminal for the current request.
var (
	// ErrCredentialMalformed is returned when the credential header is
	// absent, unparsable, or empty.
	ErrCredentialMalformed = errors.New("credential malformed")

	// ErrAuthenticationFailed is returned for an unknown client id or a
	// secret mismatch. The two cases are deliberately indistinguishable to
	// prevent client id enumeration.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrClientInactive is returned when the credential matched but the
	// client is disabled.
	ErrClientInactive = errors.New("client inactive")

	// ErrOriginMismatch is returned when the credential matched but the
	// declared origin differs from the registered one.
	ErrOriginMismatch = errors.New("origin mismatch")
)
