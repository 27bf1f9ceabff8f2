package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/torii-gw/torii/pkg/api"
	"github.com/torii-gw/torii/pkg/auth"
	"github.com/torii-gw/torii/pkg/auth/basic"
	"github.com/torii-gw/torii/pkg/auth/bearer"
	"github.com/torii-gw/torii/pkg/credential"
	"github.com/torii-gw/torii/pkg/observability"
	"github.com/torii-gw/torii/pkg/secrets"
	"github.com/torii-gw/torii/pkg/token"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Config holds the transport configuration.
type Config struct {
	// BackendURL is the answering backend all /v1 traffic is proxied to.
	BackendURL *url.URL

	// BackendTimeout bounds how long the proxy waits for backend response
	// headers. Zero means no limit.
	BackendTimeout time.Duration

	// Logger is the structured logger. Defaults to slog.Default().
	Logger *slog.Logger

	// Health is an optional dependency checked by /healthz (typically the
	// credential store).
	Health HealthChecker

	// MetricsPath is where the prometheus handler is mounted. Empty
	// disables the metrics endpoint.
	MetricsPath string
}

// Handler is the torii HTTP surface.
type Handler struct {
	issuer *token.Issuer
	config Config
	proxy  http.Handler

	basicChain   *auth.AuthChain
	accessChain  *auth.AuthChain
	refreshChain *auth.AuthChain
}

// NewHandler builds the HTTP surface from the issuer, credential verifier,
// and secret provider. Each route group gets its own auth chain so a
// refresh token can never pass the access gate and vice versa.
func NewHandler(issuer *token.Issuer, verifier *credential.Verifier, provider secrets.Provider, cfg Config) (*Handler, error) {
	if issuer == nil {
		return nil, fmt.Errorf("transport: issuer is required")
	}
	if verifier == nil {
		return nil, fmt.Errorf("transport: credential verifier is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("transport: secret provider is required")
	}
	if cfg.BackendURL == nil {
		return nil, fmt.Errorf("transport: backend URL is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	h := &Handler{
		issuer: issuer,
		config: cfg,
		basicChain: &auth.AuthChain{Authenticators: []auth.Authenticator{
			basic.New(verifier),
		}},
		accessChain: &auth.AuthChain{Authenticators: []auth.Authenticator{
			bearer.New(token.KindAccess, provider),
		}},
		refreshChain: &auth.AuthChain{Authenticators: []auth.Authenticator{
			bearer.New(token.KindRefresh, provider),
		}},
	}
	h.proxy = newBackendProxy(cfg)

	return h, nil
}

// Handler returns the fully assembled http.Handler with routing and
// cross-cutting middleware applied.
func (h *Handler) Handler() http.Handler {
	mux := http.NewServeMux()

	guard := func(chain *auth.AuthChain, next http.Handler) http.Handler {
		return auth.Middleware(chain, h.config.Logger, nil)(next)
	}

	mux.Handle("POST /auth/token", guard(h.basicChain, http.HandlerFunc(h.handleIssue)))
	mux.Handle("POST /auth/refresh", guard(h.refreshChain, http.HandlerFunc(h.handleRefresh)))
	mux.Handle("/v1/", guard(h.accessChain, h.proxy))
	mux.HandleFunc("GET /healthz", h.handleHealth)
	if h.config.MetricsPath != "" {
		mux.Handle("GET "+h.config.MetricsPath, promhttp.Handler())
	}

	return Chain(
		Recovery(h.config.Logger),
		RequestID(),
		observability.MetricsMiddleware,
		Logging(h.config.Logger),
	)(mux)
}

// handleIssue exchanges verified client credentials for a token pair.
// The auth middleware has already established the identity.
func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	h.mintPair(w, r, "credentials")
}

// handleRefresh exchanges a verified refresh token for a new pair.
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	h.mintPair(w, r, "refresh")
}

func (h *Handler) mintPair(w http.ResponseWriter, r *http.Request, grant string) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		WriteAPIError(w, api.NewServerError("authentication context missing"))
		return
	}

	var (
		pair *api.AccessTokenResponse
		err  error
	)
	if grant == "refresh" {
		pair, err = h.issuer.Refresh(r.Context(), id.CompanyID)
	} else {
		pair, err = h.issuer.Issue(r.Context(), id.CompanyID)
	}
	if err != nil {
		h.config.Logger.Error("token issuance failed",
			"request_id", RequestIDFromContext(r.Context()),
			"company_id", id.CompanyID,
			"grant", grant,
			"error", err,
		)
		status, apiErr := auth.Classify(err)
		WriteErrorResponse(w, apiErr, status)
		return
	}

	observability.TokensIssuedTotal.WithLabelValues(grant).Inc()
	h.config.Logger.Info("token pair issued",
		"request_id", RequestIDFromContext(r.Context()),
		"company_id", id.CompanyID,
		"grant", grant,
	)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pair)
}

// handleHealth reports liveness and, when configured, dependency health.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.config.Health != nil {
		if err := h.config.Health.HealthCheck(r.Context()); err != nil {
			h.config.Logger.Error("health check failed", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
