package token

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Kind selects which secret signs and verifies a token. The wire shape is
// identical for all kinds.
type Kind int

const (
	// KindAccess is the short-lived token presented on every API call.
	KindAccess Kind = iota

	// KindRefresh is the longer-lived token exchanged for a new pair.
	KindRefresh
)

// String returns the kind's name for logging and metric labels.
func (k Kind) String() string {
	switch k {
	case KindAccess:
		return "access"
	case KindRefresh:
		return "refresh"
	default:
		return "unknown"
	}
}

// Claims holds the verified payload of a decoded token.
type Claims struct {
	// CompanyID is the tenant the token is bound to.
	CompanyID int64

	// ExpiresAt is the absolute expiry in epoch seconds UTC. The codec
	// does not compare it against a clock; the caller does.
	ExpiresAt int64
}

// hs256 is the HMAC-SHA256 signing method used for both minting and
// verification.
var hs256 = jwtlib.SigningMethodHS256

// Encode builds a signed token string from a nonce, tenant id, and expiry.
// The nonce must consist of URL-safe characters and must not contain the
// field delimiter.
func Encode(random string, companyID int64, exp int64, secret []byte) (string, error) {
	payload := fmt.Sprintf("%s.%d.%d", random, companyID, exp)
	sig, err := hs256.Sign(payload, secret)
	if err != nil {
		return "", fmt.Errorf("signing token payload: %w", err)
	}
	return payload + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Decode splits and verifies a token string against the given secret.
//
// Structural checks (field count, digit-only numeric fields) run before any
// signature computation and fail with ErrMalformed. The signature field is
// treated as an opaque string and compared in constant time against the
// encoding Encode would have produced; any deviation, including undecodable
// base64, fails with ErrSignatureInvalid. Comparing strings rather than
// decoded digests keeps the field non-malleable: unpadded base64url leaves
// two unused bits in the final character, and a byte-level comparison after
// a lenient decode would accept signature strings that differ there.
// Decode never checks expiry.
func Decode(tok string, secret []byte) (Claims, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 4 {
		return Claims{}, ErrMalformed
	}
	random, companyStr, expStr, sigStr := parts[0], parts[1], parts[2], parts[3]

	if !isDigits(companyStr) || !isDigits(expStr) {
		return Claims{}, ErrMalformed
	}
	companyID, err := strconv.ParseInt(companyStr, 10, 64)
	if err != nil {
		return Claims{}, ErrMalformed
	}
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return Claims{}, ErrMalformed
	}

	payload := random + "." + companyStr + "." + expStr
	sig, err := hs256.Sign(payload, secret)
	if err != nil {
		return Claims{}, fmt.Errorf("signing token payload: %w", err)
	}
	expected := base64.RawURLEncoding.EncodeToString(sig)
	if subtle.ConstantTimeCompare([]byte(sigStr), []byte(expected)) != 1 {
		return Claims{}, ErrSignatureInvalid
	}

	return Claims{CompanyID: companyID, ExpiresAt: exp}, nil
}

// isDigits reports whether s is non-empty and contains only ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
