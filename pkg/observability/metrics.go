// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the torii gateway.
package observability

import "github.com/prometheus/client_golang/prometheus"

// GatewayBuckets defines histogram buckets suited for gateway latencies,
// ranging from 5ms to 10s. Auth checks sit at the low end, proxied
// backend calls at the high end.
var GatewayBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

var (
	// RequestsTotal counts all HTTP requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "torii_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "torii_request_duration_seconds",
			Help:    "Request duration",
			Buckets: GatewayBuckets,
		},
		[]string{"method"},
	)

	// AuthDecisionsTotal counts authentication outcomes by credential
	// scheme ("basic", "bearer_access", "bearer_refresh", "none") and
	// outcome ("allow", "deny").
	AuthDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "torii_auth_decisions_total",
			Help: "Authentication decisions",
		},
		[]string{"scheme", "outcome"},
	)

	// TokensIssuedTotal counts token pairs minted by grant
	// ("credentials" for the initial exchange, "refresh" for renewals).
	TokensIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "torii_tokens_issued_total",
			Help: "Token pairs issued",
		},
		[]string{"grant"},
	)

	// ProxiedRequestsTotal counts requests forwarded to the backend by
	// status class.
	ProxiedRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "torii_proxied_requests_total",
			Help: "Requests forwarded to the backend",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AuthDecisionsTotal,
		TokensIssuedTotal,
		ProxiedRequestsTotal,
	)
}
