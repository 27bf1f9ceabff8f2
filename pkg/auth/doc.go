// Package auth provides pluggable authentication for torii.
//
// Authentication uses a chain-of-responsibility pattern with three-outcome
// voting: each authenticator returns Yes (identity established), No
// (credentials invalid), or Abstain (can't handle). The chain is fail-closed:
// when every authenticator abstains, the request is rejected as carrying no
// recognizable credentials.
//
// Auth is implemented as HTTP middleware, keeping it decoupled from the
// proxy logic. The middleware injects the authenticated identity into the
// request context for tenant scoping downstream.
package auth
