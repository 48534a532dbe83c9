// Package policy implements credential format validation: username, email, and
// password strength rules.
//
// All functions are pure and total: any input string either yields a normalized
// value or one of the package sentinel errors. The same rules run in
// entity-level guards and in form-level pre-submit validation, so this package
// must stay free of persistence and engine imports.
package policy
