package goAccounts

import (
	"errors"

	"github.com/MrEthical07/goAccounts/policy"
)

var (
	// ErrInvalidCredentials is an exported constant or variable used by the account engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountNotActivated is an exported constant or variable used by the account engine.
	ErrAccountNotActivated = errors.New("account not activated")
	// ErrAccountLocked is an exported constant or variable used by the account engine.
	ErrAccountLocked = errors.New("account locked")
	// ErrAccountNotFound is an exported constant or variable used by the account engine.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUsernameTaken is an exported constant or variable used by the account engine.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is an exported constant or variable used by the account engine.
	ErrEmailTaken = errors.New("email already taken")
	// ErrDuplicateIdentifier is an exported constant or variable used by the account engine.
	//
	// AccountStore implementations return it (usually wrapped) when a storage-level
	// uniqueness constraint on username or email is violated.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	// ErrTokenExpired is an exported constant or variable used by the account engine.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is an exported constant or variable used by the account engine.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenTypeMismatch is an exported constant or variable used by the account engine.
	ErrTokenTypeMismatch = errors.New("token type mismatch")
	// ErrRegistrationDisabled is an exported constant or variable used by the account engine.
	ErrRegistrationDisabled = errors.New("registration disabled")
	// ErrPasswordResetDisabled is an exported constant or variable used by the account engine.
	ErrPasswordResetDisabled = errors.New("password reset disabled")
	// ErrFederatedDisabled is an exported constant or variable used by the account engine.
	ErrFederatedDisabled = errors.New("federated login disabled")
	// ErrEmailNotVerified is an exported constant or variable used by the account engine.
	//
	// Returned when the federated identity provider reports email_verified=false.
	ErrEmailNotVerified = errors.New("federated email not verified")
	// ErrStoreUnavailable is an exported constant or variable used by the account engine.
	ErrStoreUnavailable = errors.New("account store unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the account engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)

func isPolicyError(err error) bool {
	return errors.Is(err, policy.ErrUsernameInvalid) ||
		errors.Is(err, policy.ErrEmailInvalid) ||
		errors.Is(err, policy.ErrNameInvalid) ||
		errors.Is(err, policy.ErrPasswordWeak)
}
