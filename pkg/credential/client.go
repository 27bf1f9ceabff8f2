package credential

import (
	"context"
	"errors"
	"time"
)

// AuthClient is a provisioned client credential record. The gateway reads
// these records; provisioning happens out-of-band (see cmd/credgen).
type AuthClient struct {
	// ClientID is the opaque, unique lookup key.
	ClientID string

	// CompanyID is the tenant the credential is bound to. Many clients may
	// share a tenant.
	CompanyID int64

	// SecretHash is the SHA-256 hex digest of the client secret. The raw
	// secret is never stored.
	SecretHash string

	// Active gates the credential; inactive clients are rejected regardless
	// of credential correctness.
	Active bool

	// HomePage is the origin a request must declare to use this credential.
	HomePage string

	// CreatedAt is informational and plays no part in verification.
	CreatedAt time.Time
}

// ErrNotFound is returned by stores when no record exists for a client id.
var ErrNotFound = errors.New("auth client not found")

// Store is a read-only view of the client record store. Implementations
// must be safe for concurrent use.
type Store interface {
	// GetClient returns the record for the given client id, or ErrNotFound.
	GetClient(ctx context.Context, clientID string) (*AuthClient, error)
}
