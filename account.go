package goAccounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrEthical07/goAccounts/policy"
)

const (
	// MaxLoginAttempts is an exported constant or variable used by the account engine.
	MaxLoginAttempts = 5
	// LockDuration is an exported constant or variable used by the account engine.
	LockDuration = 120 * time.Minute

	// ProviderLocal is an exported constant or variable used by the account engine.
	ProviderLocal = "local"
	// ProviderGoogle is an exported constant or variable used by the account engine.
	ProviderGoogle = "google"
)

// Account defines a public type used by goAccounts APIs.
//
// Account is a plain value: it validates and transitions its own state but
// never talks to storage. Persisting a mutated Account is the caller's job,
// which keeps the security state machine testable without any backend.
type Account struct {
	ID            string
	Username      string
	Email         string
	FirstName     string
	LastName      string
	PasswordHash  string
	Provider      string
	Active        bool
	LoginAttempts int
	LockedUntil   time.Time
	CreatedAt     time.Time
}

// NewAccount describes the newaccount operation and its observable behavior.
//
// NewAccount may return an error when input validation, dependency calls, or security checks fail.
// NewAccount does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewAccount(username, email string) (*Account, error) {
	acc := &Account{
		ID:        uuid.NewString(),
		Provider:  ProviderLocal,
		CreatedAt: time.Now().UTC(),
	}
	if err := acc.SetUsername(username); err != nil {
		return nil, err
	}
	if err := acc.SetEmail(email); err != nil {
		return nil, err
	}
	return acc, nil
}

// NewFederatedAccount describes the newfederatedaccount operation and its observable behavior.
//
// Federated accounts are provisioned from an identity the provider already
// verified, so they start active. The provider subject doubles as the
// username, which keeps it unique and lets username lookup find the account
// on the next sign-in.
func NewFederatedAccount(provider, subject, email string) (*Account, error) {
	validated, err := policy.Email(email)
	if err != nil {
		return nil, err
	}
	if subject == "" {
		return nil, ErrAccountNotFound
	}
	return &Account{
		ID:        uuid.NewString(),
		Username:  subject,
		Email:     validated,
		Provider:  provider,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// SetUsername describes the setusername operation and its observable behavior.
//
// SetUsername may return an error when input validation, dependency calls, or security checks fail.
// SetUsername does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Account) SetUsername(value string) error {
	normalized, err := policy.Username(value)
	if err != nil {
		return err
	}
	a.Username = normalized
	return nil
}

// SetEmail describes the setemail operation and its observable behavior.
//
// SetEmail may return an error when input validation, dependency calls, or security checks fail.
// SetEmail does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Account) SetEmail(value string) error {
	validated, err := policy.Email(value)
	if err != nil {
		return err
	}
	a.Email = validated
	return nil
}

// SetName describes the setname operation and its observable behavior.
//
// Both components are validated; neither is written unless both pass, so a
// partial update never leaves the account with a mixed name.
func (a *Account) SetName(first, last string) error {
	trimmedFirst, err := policy.DisplayName(first)
	if err != nil {
		return err
	}
	trimmedLast, err := policy.DisplayName(last)
	if err != nil {
		return err
	}
	a.FirstName = trimmedFirst
	a.LastName = trimmedLast
	return nil
}

// SetPassword describes the setpassword operation and its observable behavior.
//
// SetPassword validates the plaintext against the credential policy before
// hashing. The plaintext is never stored on the account.
func (a *Account) SetPassword(hasher PasswordHasher, plaintext string) error {
	if err := policy.Password(plaintext); err != nil {
		return err
	}
	hash, err := hasher.Hash(plaintext)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

// CheckPassword describes the checkpassword operation and its observable behavior.
//
// CheckPassword may return an error when input validation, dependency calls, or security checks fail.
// CheckPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Account) CheckPassword(hasher PasswordHasher, plaintext string) (bool, error) {
	if a.PasswordHash == "" {
		return false, nil
	}
	return hasher.Verify(plaintext, a.PasswordHash)
}

// Activate describes the activate operation and its observable behavior.
//
// Activate is idempotent: activating an already active account is a no-op.
func (a *Account) Activate() {
	a.Active = true
}

// Lock describes the lock operation and its observable behavior.
//
// Lock sets the lock deadline to now plus d. Locking an already locked
// account pushes the deadline out. A non-positive d falls back to
// [LockDuration].
func (a *Account) Lock(now time.Time, d time.Duration) {
	if d <= 0 {
		d = LockDuration
	}
	a.LockedUntil = now.Add(d)
}

// Unlock describes the unlock operation and its observable behavior.
//
// Unlock clears the lock deadline and the failed-attempt counter.
func (a *Account) Unlock() {
	a.LockedUntil = time.Time{}
	a.LoginAttempts = 0
}

// IsLocked describes the islocked operation and its observable behavior.
//
// Lock state derives from the deadline alone: a zero LockedUntil means
// unlocked, so there is no separate flag to drift out of sync. The boundary
// is strict: an account whose lock expires exactly at now is no longer
// locked.
func (a *Account) IsLocked(now time.Time) bool {
	return !a.LockedUntil.IsZero() && now.Before(a.LockedUntil)
}

// SyncLockState describes the synclockstate operation and its observable behavior.
//
// SyncLockState performs the lazy lock catch-up: if the stored lock has
// expired by now, it clears the lock and the attempt counter and reports that
// the account changed and should be persisted.
func (a *Account) SyncLockState(now time.Time) bool {
	if !a.LockedUntil.IsZero() && !now.Before(a.LockedUntil) {
		a.Unlock()
		return true
	}
	return false
}

// RegisterFailedAttempt describes the registerfailedattempt operation and its observable behavior.
//
// RegisterFailedAttempt increments the failed-login counter and, while the
// counter is at or past maxAttempts, locks the account for lockFor and
// reports it. A failed attempt on an already locked account therefore resets
// the lock window to now, and the caller re-sends the lock notification.
// Non-positive maxAttempts falls back to [MaxLoginAttempts].
func (a *Account) RegisterFailedAttempt(now time.Time, maxAttempts int, lockFor time.Duration) bool {
	if maxAttempts <= 0 {
		maxAttempts = MaxLoginAttempts
	}
	a.LoginAttempts++
	if a.LoginAttempts >= maxAttempts {
		a.Lock(now, lockFor)
		return true
	}
	return false
}

// ResetLoginAttempts describes the resetloginattempts operation and its observable behavior.
//
// ResetLoginAttempts is idempotent.
func (a *Account) ResetLoginAttempts() {
	a.LoginAttempts = 0
}
