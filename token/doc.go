// Package token issues and verifies the typed, time-limited tokens that back
// account activation and password-reset links.
//
// Tokens are self-contained signed claim sets. Each token carries a purpose
// tag (the token type) alongside subject, issued-at, and expires-at claims,
// and verification requires the caller to name the expected purpose. A token
// minted for one purpose can never satisfy a verification for another.
//
// The package supports hs256 for simple shared-secret deployments and ed25519
// where the verifying side should not hold signing material. The accepted
// signing method is pinned at verification time.
package token
