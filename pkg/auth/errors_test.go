package auth

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/torii-gw/torii/pkg/api"
	"github.com/torii-gw/torii/pkg/credential"
	"github.com/torii-gw/torii/pkg/secrets"
	"github.com/torii-gw/torii/pkg/token"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   api.ErrorType
		wantCode   string
	}{
		{
			name:       "inactive client",
			err:        credential.ErrClientInactive,
			wantStatus: http.StatusForbidden,
			wantType:   api.ErrorTypeForbidden,
			wantCode:   "client_inactive",
		},
		{
			name:       "origin mismatch",
			err:        credential.ErrOriginMismatch,
			wantStatus: http.StatusForbidden,
			wantType:   api.ErrorTypeForbidden,
			wantCode:   "origin_mismatch",
		},
		{
			name:       "expired token",
			err:        token.ErrExpired,
			wantStatus: http.StatusUnauthorized,
			wantType:   api.ErrorTypeUnauthorized,
			wantCode:   "token_expired",
		},
		{
			name:       "configuration failure",
			err:        fmt.Errorf("%w: missing ttl_seconds", secrets.ErrConfiguration),
			wantStatus: http.StatusInternalServerError,
			wantType:   api.ErrorTypeServerError,
		},
		{
			name:       "malformed credentials",
			err:        credential.ErrCredentialMalformed,
			wantStatus: http.StatusUnauthorized,
			wantType:   api.ErrorTypeUnauthorized,
			wantCode:   "authentication_failed",
		},
		{
			name:       "unknown client",
			err:        credential.ErrAuthenticationFailed,
			wantStatus: http.StatusUnauthorized,
			wantType:   api.ErrorTypeUnauthorized,
			wantCode:   "authentication_failed",
		},
		{
			name:       "bad signature",
			err:        token.ErrSignatureInvalid,
			wantStatus: http.StatusUnauthorized,
			wantType:   api.ErrorTypeUnauthorized,
			wantCode:   "authentication_failed",
		},
		{
			name:       "malformed token",
			err:        token.ErrMalformed,
			wantStatus: http.StatusUnauthorized,
			wantType:   api.ErrorTypeUnauthorized,
			wantCode:   "authentication_failed",
		},
		{
			name:       "unclassified error",
			err:        errors.New("boom"),
			wantStatus: http.StatusUnauthorized,
			wantType:   api.ErrorTypeUnauthorized,
			wantCode:   "authentication_failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, apiErr := Classify(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if apiErr.Type != tt.wantType {
				t.Errorf("type = %q, want %q", apiErr.Type, tt.wantType)
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", apiErr.Code, tt.wantCode)
			}
			if apiErr.Message == "" {
				t.Error("message should not be empty")
			}
		})
	}
}

func TestClassifyWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("verifying request: %w", credential.ErrOriginMismatch)

	status, apiErr := Classify(wrapped)
	if status != http.StatusForbidden || apiErr.Code != "origin_mismatch" {
		t.Errorf("Classify(wrapped) = (%d, %q), want (403, origin_mismatch)", status, apiErr.Code)
	}
}
