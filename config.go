package goAccounts

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config defines a public type used by goAccounts APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Token         TokenConfig
	Password      PasswordConfig
	Lockout       LockoutConfig
	Registration  RegistrationConfig
	PasswordReset PasswordResetConfig
	Federated     FederatedConfig
	Mail          MailConfig
	Audit         AuditConfig
	Metrics       MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by goAccounts APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	TTL           time.Duration
	SigningMethod string // "hs256" (default), "ed25519" optional
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	Leeway        time.Duration
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig defines a public type used by goAccounts APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	Cost int
}

// LockoutConfig defines a public type used by goAccounts APIs.
//
// LockoutConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LockoutConfig struct {
	MaxAttempts  int
	LockDuration time.Duration
}

// RegistrationConfig defines a public type used by goAccounts APIs.
//
// RegistrationConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RegistrationConfig struct {
	Enabled bool

	// RequireActivation gates login on a confirmed activation token. When
	// false, accounts are created active.
	RequireActivation bool
}

// PasswordResetConfig defines a public type used by goAccounts APIs.
//
// PasswordResetConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordResetConfig struct {
	Enabled bool
}

// FederatedConfig defines a public type used by goAccounts APIs.
//
// FederatedConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type FederatedConfig struct {
	Enabled bool
}

// MailConfig defines a public type used by goAccounts APIs.
//
// MailConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MailConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
	Sender     string

	// ActivationURL and ResetURL are the link bases embedded in outgoing
	// mail. The signed token is appended as the last path segment.
	ActivationURL string
	ResetURL      string
}

// AuditConfig defines a public type used by goAccounts APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by goAccounts APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig returns the baseline configuration: hs256 tokens with a
// two hour TTL, bcrypt cost 12, the standard lockout policy, registration
// with mandatory activation, and mail composition enabled. Signing key
// material must still be supplied before the config validates.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			TTL:           120 * time.Minute,
			SigningMethod: "hs256",
			Leeway:        30 * time.Second,
		},
		Password: PasswordConfig{
			Cost: 12,
		},
		Lockout: LockoutConfig{
			MaxAttempts:  MaxLoginAttempts,
			LockDuration: LockDuration,
		},
		Registration: RegistrationConfig{
			Enabled:           true,
			RequireActivation: true,
		},
		PasswordReset: PasswordResetConfig{
			Enabled: true,
		},
		Federated: FederatedConfig{
			Enabled: false,
		},
		Mail: MailConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
			Sender:     "no-reply@localhost",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.PrivateKey = cloneBytes(cfg.Token.PrivateKey)
	out.Token.PublicKey = cloneBytes(cfg.Token.PublicKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Token
	if c.Token.TTL <= 0 {
		return errors.New("Token TTL must be > 0")
	}
	if c.Token.SigningMethod != "hs256" && c.Token.SigningMethod != "ed25519" {
		return errors.New("unsupported token signing method")
	}
	if len(c.Token.PrivateKey) == 0 {
		return errors.New("token signing requires PrivateKey")
	}
	if c.Token.SigningMethod == "ed25519" && len(c.Token.PublicKey) == 0 {
		return errors.New("ed25519 requires PublicKey")
	}
	if c.Token.Leeway < 0 || c.Token.Leeway > 2*time.Minute {
		return errors.New("Token Leeway must be between 0 and 2m")
	}

	// Password
	if c.Password.Cost < bcrypt.MinCost || c.Password.Cost > bcrypt.MaxCost {
		return errors.New("Password Cost is out of range")
	}

	// Lockout
	if c.Lockout.MaxAttempts <= 0 {
		return errors.New("Lockout MaxAttempts must be > 0")
	}
	if c.Lockout.LockDuration <= 0 {
		return errors.New("Lockout LockDuration must be > 0")
	}

	// Mail
	if c.Mail.Enabled {
		if c.Mail.BufferSize <= 0 {
			return errors.New("Mail BufferSize must be > 0 when mail is enabled")
		}
		if c.Mail.Sender == "" {
			return errors.New("Mail Sender must be set when mail is enabled")
		}
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
