// Package credential verifies long-lived client credentials against the
// client record store. A credential is a client id / secret pair provisioned
// out-of-band per calling application and bound to a tenant and an
// allow-listed origin.
//
// Only the SHA-256 hex digest of a secret is ever stored or compared; the
// comparison is constant-time. The verifier reads from the store and has no
// other side effects.
package credential
