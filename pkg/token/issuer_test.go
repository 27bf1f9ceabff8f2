package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/torii-gw/torii/pkg/secrets"
)

func testProvider() secrets.Provider {
	return secrets.NewStatic(map[string]secrets.Bundle{
		secrets.TokenSettingsName: {
			"access_token_secret":  "access-secret",
			"refresh_token_secret": "refresh-secret",
			"ttl_seconds":          "300",
			"refresh_ttl_seconds":  "3600",
		},
	})
}

func TestIssuePair(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	issuer, err := NewIssuer(testProvider(), WithNowFunc(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}

	resp, err := issuer.Issue(context.Background(), 42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if resp.TTLSeconds != 300 {
		t.Errorf("TTLSeconds = %d, want 300", resp.TTLSeconds)
	}
	if resp.RefreshTTLSeconds != 3600 {
		t.Errorf("RefreshTTLSeconds = %d, want 3600", resp.RefreshTTLSeconds)
	}
	if !resp.ExpiresAt.Equal(now.Add(300 * time.Second)) {
		t.Errorf("ExpiresAt = %v, want %v", resp.ExpiresAt, now.Add(300*time.Second))
	}
	if !resp.RefreshExpiresAt.Equal(now.Add(3600 * time.Second)) {
		t.Errorf("RefreshExpiresAt = %v, want %v", resp.RefreshExpiresAt, now.Add(3600*time.Second))
	}

	// Each token verifies under its own secret and carries the tenant
	// binding and the configured expiry.
	claims, err := Decode(resp.AccessToken, []byte("access-secret"))
	if err != nil {
		t.Fatalf("Decode access token: %v", err)
	}
	if claims.CompanyID != 42 {
		t.Errorf("access CompanyID = %d, want 42", claims.CompanyID)
	}
	if claims.ExpiresAt != now.Unix()+300 {
		t.Errorf("access ExpiresAt = %d, want %d", claims.ExpiresAt, now.Unix()+300)
	}

	refreshClaims, err := Decode(resp.RefreshToken, []byte("refresh-secret"))
	if err != nil {
		t.Fatalf("Decode refresh token: %v", err)
	}
	if refreshClaims.CompanyID != 42 {
		t.Errorf("refresh CompanyID = %d, want 42", refreshClaims.CompanyID)
	}
	if refreshClaims.ExpiresAt != now.Unix()+3600 {
		t.Errorf("refresh ExpiresAt = %d, want %d", refreshClaims.ExpiresAt, now.Unix()+3600)
	}
}

func TestIssueCrossKeyRejection(t *testing.T) {
	issuer, err := NewIssuer(testProvider())
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}

	resp, err := issuer.Issue(context.Background(), 7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := Decode(resp.AccessToken, []byte("refresh-secret")); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("access token under refresh secret: err = %v, want ErrSignatureInvalid", err)
	}
	if _, err := Decode(resp.RefreshToken, []byte("access-secret")); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("refresh token under access secret: err = %v, want ErrSignatureInvalid", err)
	}
}

func TestIssueFreshNonces(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	issuer, err := NewIssuer(testProvider(), WithNowFunc(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}

	// Same tenant, same frozen clock: the nonce alone must make every
	// token string unique.
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		resp, err := issuer.Issue(context.Background(), 42)
		if err != nil {
			t.Fatalf("Issue %d: %v", i, err)
		}
		for _, tok := range []string{resp.AccessToken, resp.RefreshToken} {
			if seen[tok] {
				t.Fatalf("duplicate token string on issuance %d", i)
			}
			seen[tok] = true
		}
	}
}

func TestRefreshRederivesBothTokens(t *testing.T) {
	issuer, err := NewIssuer(testProvider())
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}

	first, err := issuer.Issue(context.Background(), 42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	second, err := issuer.Refresh(context.Background(), 42)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if second.AccessToken == first.AccessToken {
		t.Error("refresh reused the access token")
	}
	if second.RefreshToken == first.RefreshToken {
		t.Error("refresh reused the refresh token")
	}
}

func TestIssueMissingConfiguration(t *testing.T) {
	p := secrets.NewStatic(map[string]secrets.Bundle{
		secrets.TokenSettingsName: {"ttl_seconds": "300"},
	})
	issuer, err := NewIssuer(p)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}

	if _, err := issuer.Issue(context.Background(), 42); !errors.Is(err, secrets.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

func TestNewIssuerRequiresProvider(t *testing.T) {
	if _, err := NewIssuer(nil); err == nil {
		t.Fatal("expected error for nil provider")
	}
}

func TestRandomNonceIsURLSafe(t *testing.T) {
	for i := 0; i < 20; i++ {
		n, err := randomNonce()
		if err != nil {
			t.Fatalf("randomNonce: %v", err)
		}
		if len(n) != 32 {
			t.Fatalf("nonce length = %d, want 32", len(n))
		}
		for _, c := range n {
			ok := c == '-' || c == '_' ||
				(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
			if !ok {
				t.Fatalf("nonce %q contains non-URL-safe character %q", n, c)
			}
		}
	}
}
