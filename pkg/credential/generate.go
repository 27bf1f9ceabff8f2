package credential

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generated holds a freshly provisioned credential. The Secret is returned
// exactly once; only the hash is stored.
type Generated struct {
	ClientID   string
	Secret     string
	SecretHash string
}

// Generate creates a new client id (128 bits) and secret (256 bits), both
// hex-encoded, together with the secret's storable hash.
func Generate() (*Generated, error) {
	id := make([]byte, 16)
	if _, err := rand.Read(id); err != nil {
		return nil, fmt.Errorf("generating client id: %w", err)
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generating client secret: %w", err)
	}

	secretStr := hex.EncodeToString(secret)
	return &Generated{
		ClientID:   hex.EncodeToString(id),
		Secret:     secretStr,
		SecretHash: HashSecret(secretStr),
	}, nil
}
