// Package google implements the federated identity side of the account
// engine: OAuth 2.0 authorization-code flow against Google, with endpoints
// resolved from the provider discovery document instead of being hardcoded.
//
// The package stops at identity: it exchanges a callback code for a verified
// profile (subject, email, email_verified, names). Deciding what to do with
// that profile, including the email_verified gate and account provisioning,
// belongs to the engine.
package google
