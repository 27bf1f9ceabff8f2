package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/torii-gw/torii/pkg/api"
	"github.com/torii-gw/torii/pkg/credential"
	"github.com/torii-gw/torii/pkg/token"
)

func runMiddleware(t *testing.T, chain *AuthChain, target string) (*httptest.ResponseRecorder, *Identity) {
	t.Helper()

	var seen *Identity
	handler := Middleware(chain, nil, DefaultBypassEndpoints)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = IdentityFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec, seen
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *api.APIError {
	t.Helper()

	var resp api.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if resp.Error == nil {
		t.Fatal("error body missing error object")
	}
	return resp.Error
}

func TestMiddlewareAllow(t *testing.T) {
	chain := &AuthChain{Authenticators: []Authenticator{
		&stubAuthn{result: AuthResult{Decision: Yes, Identity: &Identity{ClientID: "c1", CompanyID: 9}, Scheme: "basic"}},
	}}

	rec, seen := runMiddleware(t, chain, "/v1/answers")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen == nil || seen.CompanyID != 9 {
		t.Errorf("handler identity = %+v, want CompanyID 9", seen)
	}
}

func TestMiddlewareDenyUnauthorized(t *testing.T) {
	chain := &AuthChain{Authenticators: []Authenticator{
		&stubAuthn{result: AuthResult{Decision: No, Err: credential.ErrAuthenticationFailed, Scheme: "basic"}},
	}}

	rec, seen := runMiddleware(t, chain, "/v1/answers")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if seen != nil {
		t.Error("handler ran despite rejection")
	}
	if got := decodeError(t, rec); got.Code != "authentication_failed" {
		t.Errorf("code = %q, want authentication_failed", got.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestMiddlewareDenyForbidden(t *testing.T) {
	chain := &AuthChain{Authenticators: []Authenticator{
		&stubAuthn{result: AuthResult{Decision: No, Err: credential.ErrClientInactive, Scheme: "basic"}},
	}}

	rec, _ := runMiddleware(t, chain, "/v1/answers")

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if got := decodeError(t, rec); got.Code != "client_inactive" {
		t.Errorf("code = %q, want client_inactive", got.Code)
	}
}

func TestMiddlewareDenyExpired(t *testing.T) {
	chain := &AuthChain{Authenticators: []Authenticator{
		&stubAuthn{result: AuthResult{Decision: No, Err: token.ErrExpired, Scheme: "bearer_access"}},
	}}

	rec, _ := runMiddleware(t, chain, "/v1/answers")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := decodeError(t, rec); got.Code != "token_expired" {
		t.Errorf("code = %q, want token_expired", got.Code)
	}
}

func TestMiddlewareBypass(t *testing.T) {
	// An always-deny chain must not run for bypassed endpoints.
	chain := &AuthChain{Authenticators: []Authenticator{
		&stubAuthn{result: AuthResult{Decision: No, Err: credential.ErrAuthenticationFailed}},
	}}

	for _, ep := range DefaultBypassEndpoints {
		rec, _ := runMiddleware(t, chain, ep)
		if rec.Code != http.StatusOK {
			t.Errorf("bypass endpoint %s: status = %d, want 200", ep, rec.Code)
		}
	}
}

func TestMiddlewareNoCredentials(t *testing.T) {
	chain := &AuthChain{Authenticators: []Authenticator{
		&stubAuthn{result: AuthResult{Decision: Abstain}},
	}}

	rec, _ := runMiddleware(t, chain, "/v1/answers")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestMiddlewareNilIdentity(t *testing.T) {
	// A broken authenticator voting Yes without an identity must not
	// admit the request.
	chain := &AuthChain{Authenticators: []Authenticator{
		&stubAuthn{result: AuthResult{Decision: Yes, Scheme: "basic"}},
	}}

	rec, seen := runMiddleware(t, chain, "/v1/answers")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if seen != nil {
		t.Error("handler ran with nil identity")
	}
}
