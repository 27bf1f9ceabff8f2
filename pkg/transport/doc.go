// Package transport wires the torii HTTP surface: the token issuance and
// refresh endpoints, the authenticated reverse proxy in front of the
// answering backend, and the health and metrics endpoints.
//
// # Routes
//
//   - POST /auth/token: exchange Basic client credentials for a token pair
//   - POST /auth/refresh: exchange a valid refresh token for a new pair
//   - /v1/*: proxied to the backend once an access token is verified
//   - GET /healthz: liveness and dependency health
//   - GET /metrics: Prometheus exposition
//
// # Middleware
//
// Every route runs inside panic recovery, request ID assignment
// (X-Request-ID), request metrics, and structured logging via log/slog.
// Authentication middleware from pkg/auth guards each route group with
// its own chain, so a refresh token can never pass the access gate.
package transport
