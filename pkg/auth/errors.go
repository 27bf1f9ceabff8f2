package auth

import (
	"errors"
	"net/http"

	"github.com/torii-gw/torii/pkg/api"
	"github.com/torii-gw/torii/pkg/credential"
	"github.com/torii-gw/torii/pkg/secrets"
	"github.com/torii-gw/torii/pkg/token"
)

// Classify maps an authentication failure to an HTTP status and response
// body. Unknown-client and wrong-secret failures collapse into the same
// generic 401 so callers cannot probe which client ids exist.
func Classify(err error) (int, *api.APIError) {
	switch {
	case errors.Is(err, credential.ErrClientInactive):
		return http.StatusForbidden,
			api.NewForbiddenError("client_inactive", "client is not active")

	case errors.Is(err, credential.ErrOriginMismatch):
		return http.StatusForbidden,
			api.NewForbiddenError("origin_mismatch", "request origin is not allowed for this client")

	case errors.Is(err, token.ErrExpired):
		return http.StatusUnauthorized,
			api.NewUnauthorizedError("token_expired", "token has expired")

	case errors.Is(err, secrets.ErrConfiguration):
		return http.StatusInternalServerError,
			api.NewServerError("authentication is misconfigured")

	default:
		// Covers malformed credentials, unknown clients, wrong secrets,
		// and invalid token signatures alike.
		return http.StatusUnauthorized,
			api.NewUnauthorizedError("authentication_failed", "authentication failed")
	}
}
