package auth

import "context"

// identityKey is a private type for the identity context key.
type identityKey struct{}

// SetIdentity stores the authenticated identity in the context.
func SetIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext retrieves the authenticated identity.
// Returns nil if no identity is set (unauthenticated path).
func IdentityFromContext(ctx context.Context) *Identity {
	if v, ok := ctx.Value(identityKey{}).(*Identity); ok {
		return v
	}
	return nil
}

// CompanyIDFromContext returns the authenticated tenant id, or false if
// the context carries no identity.
func CompanyIDFromContext(ctx context.Context) (int64, bool) {
	id := IdentityFromContext(ctx)
	if id == nil {
		return 0, false
	}
	return id.CompanyID, true
}
