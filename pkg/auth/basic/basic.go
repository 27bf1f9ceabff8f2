// Package basic provides a Basic-scheme authenticator that validates
// client id and secret pairs against a credential verifier. The request
// origin is taken from the X-Origin header and must match the client's
// registered home page.
package basic

import (
	"context"
	"net/http"
	"strings"

	"github.com/torii-gw/torii/pkg/auth"
	"github.com/torii-gw/torii/pkg/credential"
)

const scheme = "basic"

// OriginHeader carries the caller's claimed origin.
const OriginHeader = "X-Origin"

// Authenticator validates Basic credentials against a verifier.
type Authenticator struct {
	verifier *credential.Verifier
}

// New creates a Basic authenticator backed by the given verifier.
func New(verifier *credential.Verifier) *Authenticator {
	return &Authenticator{verifier: verifier}
}

// Authenticate extracts Basic credentials and verifies them.
// Returns Yes with the client's identity if valid, No if Basic
// credentials are present but invalid, Abstain if the Authorization
// header is missing or uses another scheme.
func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) auth.AuthResult {
	header := r.Header.Get("Authorization")
	if header == "" {
		return auth.AuthResult{Decision: auth.Abstain}
	}
	if !strings.HasPrefix(header, "Basic ") {
		return auth.AuthResult{Decision: auth.Abstain}
	}

	clientID, secret, ok := r.BasicAuth()
	if !ok {
		return auth.AuthResult{
			Decision: auth.No,
			Err:      credential.ErrCredentialMalformed,
			Scheme:   scheme,
		}
	}

	client, err := a.verifier.Verify(ctx, clientID, secret, r.Header.Get(OriginHeader))
	if err != nil {
		return auth.AuthResult{Decision: auth.No, Err: err, Scheme: scheme}
	}

	return auth.AuthResult{
		Decision: auth.Yes,
		Identity: &auth.Identity{ClientID: client.ClientID, CompanyID: client.CompanyID},
		Scheme:   scheme,
	}
}
