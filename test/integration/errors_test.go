package integration

import (
	"net/http"
	"testing"
)

func TestIssueWrongSecret(t *testing.T) {
	resp := requestTokens(t, activeClientID, "wrong-secret", activeHomePage)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if code := errorCode(t, resp); code != "authentication_failed" {
		t.Errorf("code = %q, want authentication_failed", code)
	}
}

func TestIssueUnknownClient(t *testing.T) {
	// An unknown client id must be indistinguishable from a wrong secret.
	resp := requestTokens(t, "no-such-client", activeSecret, activeHomePage)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if code := errorCode(t, resp); code != "authentication_failed" {
		t.Errorf("code = %q, want authentication_failed", code)
	}
}

func TestIssueInactiveClient(t *testing.T) {
	resp := requestTokens(t, inactiveClientID, inactiveSecret, inactiveHomePage)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if code := errorCode(t, resp); code != "client_inactive" {
		t.Errorf("code = %q, want client_inactive", code)
	}
}

func TestIssueOriginMismatch(t *testing.T) {
	tests := []struct {
		name   string
		origin string
	}{
		{"different host", "https://evil.example.com"},
		{"trailing slash", activeHomePage + "/"},
		{"missing header", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := requestTokens(t, activeClientID, activeSecret, tt.origin)
			if resp.StatusCode != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", resp.StatusCode)
			}
			if code := errorCode(t, resp); code != "origin_mismatch" {
				t.Errorf("code = %q, want origin_mismatch", code)
			}
		})
	}
}

func TestIssueMissingAuthorization(t *testing.T) {
	req, err := http.NewRequest(http.MethodPost, testEnv.BaseURL()+"/auth/token", nil)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	req.Header.Set("X-Origin", activeHomePage)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /auth/token: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestProtectedEndpointWithoutToken(t *testing.T) {
	resp := bearerRequest(t, http.MethodGet, "/v1/answers", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestProtectedEndpointGarbageToken(t *testing.T) {
	resp := bearerRequest(t, http.MethodGet, "/v1/answers", "not.a.real.token")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if code := errorCode(t, resp); code != "authentication_failed" {
		t.Errorf("code = %q, want authentication_failed", code)
	}
}

func TestErrorResponsesAreJSON(t *testing.T) {
	resp := bearerRequest(t, http.MethodGet, "/v1/answers", "bad-token")
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}
