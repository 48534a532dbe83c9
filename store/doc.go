// Package store provides the Redis reference implementation of the account
// persistence boundary.
//
// Each account lives as a JSON blob under an ID key. Username and email
// uniqueness is enforced with index keys that map identifier to account ID;
// the index entries are claimed atomically with the account blob via a Lua
// script, so concurrent registrations for the same identifier resolve to
// exactly one winner.
//
// The package returns the goAccounts sentinels (ErrAccountNotFound,
// ErrUsernameTaken, ErrEmailTaken, ErrStoreUnavailable) so engine flows can
// classify storage failures without importing Redis types.
package store
