// Package token implements the gateway's bearer tokens: a deterministic
// codec for the signed wire format and an issuer that mints access/refresh
// pairs.
//
// A token is four dot-delimited ASCII fields:
//
//	<random>.<company_id>.<exp>.<signature>
//
// where random is an opaque URL-safe nonce, company_id and exp are decimal
// digits (exp in epoch seconds UTC), and signature is the unpadded base64url
// HMAC-SHA256 of the first three fields under a kind-specific secret.
// Access and refresh tokens share this shape and differ only in the secret
// that signs them.
//
// The codec never consults a clock; expiry is compared against the current
// time by the caller. This keeps signature verification deterministic and
// lets the same codec serve callers with different clock-skew tolerances.
package token
