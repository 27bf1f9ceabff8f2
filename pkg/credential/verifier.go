package credential

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// Verifier validates presented client credentials against the record store
// and enforces the active and origin policies. It is stateless and safe for
// concurrent use.
type Verifier struct {
	store  Store
	logger *slog.Logger
}

// NewVerifier creates a verifier over the given store.
func NewVerifier(store Store, logger *slog.Logger) (*Verifier, error) {
	if store == nil {
		return nil, fmt.Errorf("credential verifier: store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{store: store, logger: logger}, nil
}

// Verify checks a client id / secret pair and the request's declared origin.
// On success it returns the matching record; every rejection is one of the
// classified errors in this package.
//
// Rejections are logged with the client id and reason, never with the
// secret or its hash.
func (v *Verifier) Verify(ctx context.Context, clientID, secret, origin string) (*AuthClient, error) {
	if clientID == "" || secret == "" {
		v.logger.Warn("credential rejected", "reason", "malformed")
		return nil, ErrCredentialMalformed
	}

	presentedHash := HashSecret(secret)

	client, err := v.store.GetClient(ctx, clientID)
	if err != nil {
		// Unknown id and wrong secret are indistinguishable to the caller.
		v.logger.Warn("credential rejected", "client_id", clientID, "reason", "unknown_client")
		return nil, ErrAuthenticationFailed
	}

	if subtle.ConstantTimeCompare([]byte(presentedHash), []byte(client.SecretHash)) != 1 {
		v.logger.Warn("credential rejected", "client_id", clientID, "reason", "secret_mismatch")
		return nil, ErrAuthenticationFailed
	}

	if !client.Active {
		v.logger.Warn("credential rejected", "client_id", clientID, "reason", "inactive")
		return nil, ErrClientInactive
	}

	if client.HomePage != origin {
		v.logger.Warn("credential rejected", "client_id", clientID, "reason", "origin_mismatch")
		return nil, ErrOriginMismatch
	}

	return client, nil
}

// HashSecret returns the SHA-256 hex digest of a client secret. The scheme
// must match the one used at provisioning time exactly.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
