package auth

import (
	"context"
	"net/http"
	"strconv"

	"github.com/torii-gw/torii/pkg/credential"
)

// AuthDecision represents the three possible outcomes of authentication.
type AuthDecision int

const (
	// Yes means credentials are valid. The chain stops and the identity is used.
	Yes AuthDecision = iota

	// No means credentials are present but invalid. The chain stops and the
	// request is rejected.
	No

	// Abstain means this authenticator cannot handle the credentials type.
	// The chain continues to the next authenticator.
	Abstain
)

// AuthResult carries the outcome of an authentication attempt.
type AuthResult struct {
	Decision AuthDecision
	Identity *Identity // populated only when Decision == Yes
	Err      error     // populated only when Decision == No

	// Scheme names the credential type the authenticator handled
	// (e.g., "basic", "bearer"). Set on Yes and No, empty on Abstain.
	Scheme string
}

// Identity represents an authenticated caller.
type Identity struct {
	// ClientID is the credential identifier the caller presented.
	// Empty for token-based authentication, which only proves tenancy.
	ClientID string

	// CompanyID is the tenant the caller acts for.
	CompanyID int64
}

// CompanyIDString returns the tenant id in decimal form, for headers and logs.
func (id *Identity) CompanyIDString() string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(id.CompanyID, 10)
}

// Authenticator examines request credentials and returns a three-outcome vote.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) AuthResult
}

// AuthChain evaluates authenticators in order using three-outcome voting.
// The chain is fail-closed: a request no authenticator recognizes is
// rejected as malformed rather than admitted anonymously.
type AuthChain struct {
	// Authenticators are evaluated left to right.
	Authenticators []Authenticator
}

// Authenticate runs the chain. Stops on the first Yes or No.
// If all abstain, the request carried no recognizable credentials.
func (c *AuthChain) Authenticate(ctx context.Context, r *http.Request) AuthResult {
	for _, authn := range c.Authenticators {
		result := authn.Authenticate(ctx, r)
		if result.Decision != Abstain {
			return result
		}
	}

	return AuthResult{
		Decision: No,
		Err:      credential.ErrCredentialMalformed,
	}
}
