package transport

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strconv"

	"github.com/torii-gw/torii/pkg/api"
	"github.com/torii-gw/torii/pkg/auth"
	"github.com/torii-gw/torii/pkg/debug"
	"github.com/torii-gw/torii/pkg/observability"
)

// CompanyIDHeader carries the authenticated tenant to the backend. The
// backend trusts it because only the gateway can reach it.
const CompanyIDHeader = "X-Company-ID"

// newBackendProxy builds the reverse proxy for authenticated /v1 traffic.
// The client's Authorization and X-Origin headers are stripped and the
// verified tenant id is injected, so the backend never sees raw
// credentials and cannot be confused by a spoofed tenant header.
func newBackendProxy(cfg Config) http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(cfg.BackendURL)

	baseDirector := proxy.Director
	proxy.Director = func(r *http.Request) {
		baseDirector(r)

		r.Header.Del("Authorization")
		r.Header.Del("X-Origin")
		r.Header.Del(CompanyIDHeader)

		if id := auth.IdentityFromContext(r.Context()); id != nil {
			r.Header.Set(CompanyIDHeader, id.CompanyIDString())
		}
		if reqID := RequestIDFromContext(r.Context()); reqID != "" {
			r.Header.Set(requestIDHeader, reqID)
		}

		debug.Log("proxy", "forwarding request",
			"path", r.URL.Path,
			"company_id", r.Header.Get(CompanyIDHeader),
		)
	}

	if cfg.BackendTimeout > 0 {
		proxy.Transport = &http.Transport{
			ResponseHeaderTimeout: cfg.BackendTimeout,
		}
	}

	proxy.ModifyResponse = func(resp *http.Response) error {
		statusClass := strconv.Itoa(resp.StatusCode/100) + "xx"
		observability.ProxiedRequestsTotal.WithLabelValues(statusClass).Inc()
		return nil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("backend proxy error",
			"request_id", RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		observability.ProxiedRequestsTotal.WithLabelValues("5xx").Inc()
		WriteErrorResponse(w, api.NewServerError("backend unavailable"), http.StatusBadGateway)
	}

	return proxy
}
