// Package goAccounts provides an account-management engine for web application
// backends: registration with email activation, username/email + password login
// with time-boxed lockout, signed typed access tokens for activation and
// password-reset links, and Google federated sign-in.
//
// The package is designed for concurrent server workloads: Engine methods are safe
// to call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goAccounts is the public surface. It exposes [Engine], [Builder], [Config], the
// [Account] entity, and the collaborator interfaces ([AccountStore], [MailSink],
// [AuditSink], [FederatedProvider]). Pure building blocks live in sub-packages:
// policy (credential validation), password (hashing), token (typed signed tokens),
// google (OAuth provider), store (Redis-backed AccountStore).
//
// # What this package must NOT do
//
//   - Render templates or speak HTTP/SMTP — mail delivery and routing belong to
//     the embedding application behind [MailSink].
//   - Expose storage clients or token encoding details in its public API.
//   - Import any sub-package that re-imports goAccounts (no import cycles).
package goAccounts
