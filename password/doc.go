// Package password implements password hashing and verification with bcrypt.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy (length,
// character classes) is enforced by the policy package before a value reaches
// the hasher.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive hashes.
//   - Import any other goAccounts package.
//   - Log plaintext passwords at runtime.
package password
