package goAccounts

import (
	"context"

	"github.com/MrEthical07/goAccounts/google"
)

// AccountStore defines a public type used by goAccounts APIs.
//
// AccountStore is the persistence boundary of the engine. Implementations
// must enforce username and email uniqueness on Create and return the
// package sentinels ([ErrUsernameTaken], [ErrEmailTaken], [ErrAccountNotFound],
// [ErrStoreUnavailable]) so the engine can classify failures without knowing
// the backend.
type AccountStore interface {
	Create(ctx context.Context, account *Account) error
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
}

// PasswordHasher defines a public type used by goAccounts APIs.
//
// PasswordHasher instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

// FederatedProvider defines a public type used by goAccounts APIs.
//
// FederatedProvider abstracts the external identity provider so engine flows
// can be tested against a local fake.
type FederatedProvider interface {
	AuthURL(ctx context.Context, state string) (string, error)
	Exchange(ctx context.Context, code string) (*google.Profile, error)
}

// RegisterRequest defines a public type used by goAccounts APIs.
//
// RegisterRequest instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RegisterRequest struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// RegisterResult defines a public type used by goAccounts APIs.
//
// RegisterResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RegisterResult struct {
	Account *Account

	// ActivationToken is the signed activation token mailed to the user. It
	// is surfaced so embedding applications can build their own delivery or
	// test activation end to end.
	ActivationToken string
}

// AuthenticateResult defines a public type used by goAccounts APIs.
//
// AuthenticateResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuthenticateResult struct {
	Account *Account
}

// FederatedResult defines a public type used by goAccounts APIs.
//
// FederatedResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type FederatedResult struct {
	Account *Account

	// Created reports whether this sign-in provisioned a new account.
	Created bool
}
