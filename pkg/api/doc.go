// Package api defines the wire types of the torii gateway: the token
// issuance response and the structured error envelope returned on
// authentication failures.
package api
