package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/torii-gw/torii/pkg/api"
	"github.com/torii-gw/torii/pkg/observability"
)

// Middleware creates HTTP middleware from an AuthChain. It checks the
// bypass list, runs authentication, and injects the identity into the
// request context. Rejections are written as JSON error responses; the
// response never distinguishes unknown clients from wrong secrets.
func Middleware(chain *AuthChain, logger *slog.Logger, bypassEndpoints []string) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	bypass := make(map[string]bool, len(bypassEndpoints))
	for _, ep := range bypassEndpoints {
		bypass[ep] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bypass[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			result := chain.Authenticate(r.Context(), r)
			scheme := result.Scheme
			if scheme == "" {
				scheme = "none"
			}

			if result.Decision == No {
				observability.AuthDecisionsTotal.WithLabelValues(scheme, "deny").Inc()
				logger.Warn("authentication failed",
					"path", r.URL.Path,
					"scheme", scheme,
					"remote_addr", r.RemoteAddr,
					"error", result.Err,
				)
				status, apiErr := Classify(result.Err)
				writeError(w, status, apiErr)
				return
			}

			if result.Decision != Yes || result.Identity == nil {
				observability.AuthDecisionsTotal.WithLabelValues(scheme, "deny").Inc()
				writeError(w, http.StatusUnauthorized,
					api.NewUnauthorizedError("authentication_failed", "authentication failed"))
				return
			}

			observability.AuthDecisionsTotal.WithLabelValues(scheme, "allow").Inc()
			logger.Debug("authentication succeeded",
				"company_id", result.Identity.CompanyID,
				"scheme", scheme,
				"path", r.URL.Path,
			)

			ctx := SetIdentity(r.Context(), result.Identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, apiErr *api.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: apiErr})
}

// DefaultBypassEndpoints lists endpoints that skip authentication.
var DefaultBypassEndpoints = []string{"/healthz", "/readyz", "/metrics"}
