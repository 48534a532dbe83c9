package token

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Type defines a public type used by goAccounts APIs.
//
// Type is a closed variant: only [ActivateAccount] and [ResetPassword] are
// valid, and every switch over it must handle both.
type Type string

const (
	// ActivateAccount is an exported constant or variable used by the account engine.
	ActivateAccount Type = "activate_account"
	// ResetPassword is an exported constant or variable used by the account engine.
	ResetPassword Type = "reset_password"
)

// Valid describes the valid operation and its observable behavior.
//
// Valid reports whether t is one of the closed token type variants.
func (t Type) Valid() bool {
	switch t {
	case ActivateAccount, ResetPassword:
		return true
	default:
		return false
	}
}

// SigningMethod defines a public type used by goAccounts APIs.
//
// SigningMethod instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SigningMethod string

const (
	// MethodEd25519 is an exported constant or variable used by the account engine.
	MethodEd25519 SigningMethod = "ed25519"
	// MethodHS256 is an exported constant or variable used by the account engine.
	MethodHS256 SigningMethod = "hs256"
)

var (
	// ErrExpired is an exported constant or variable used by the account engine.
	ErrExpired = errors.New("token expired")
	// ErrInvalid is an exported constant or variable used by the account engine.
	ErrInvalid = errors.New("token invalid")
	// ErrTypeMismatch is an exported constant or variable used by the account engine.
	//
	// ErrTypeMismatch is returned when signature and expiry are valid but the
	// token was issued for a different purpose, so an activation token can
	// never be replayed as a password-reset token.
	ErrTypeMismatch = errors.New("token type mismatch")
)

// Config defines a public type used by goAccounts APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	TTL           time.Duration
	SigningMethod SigningMethod
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	Leeway        time.Duration

	// Now overrides the wall clock for issuance and expiry checks. Nil means
	// time.Now. Tests use it to simulate expiry without sleeping.
	Now func() time.Time
}

// Claims defines a public type used by goAccounts APIs.
//
// Claims instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Claims struct {
	TokenType Type `json:"token_type"`
	jwt.RegisteredClaims
}

// Manager defines a public type used by goAccounts APIs.
//
// Manager instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Manager struct {
	config Config
}

// NewManager describes the newmanager operation and its observable behavior.
//
// NewManager may return an error when input validation, dependency calls, or security checks fail.
// NewManager does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.TTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	switch cfg.SigningMethod {
	case MethodHS256:
		if len(cfg.PrivateKey) == 0 {
			return nil, errors.New("hs256 requires private key")
		}
	case MethodEd25519:
		if _, err := parseEdPrivateKey(cfg.PrivateKey); err != nil {
			return nil, err
		}
		if _, err := parseEdPublicKey(cfg.PublicKey); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("unsupported signing method")
	}

	return &Manager{config: cfg}, nil
}

// Issue describes the issue operation and its observable behavior.
//
// Issue produces a signed, self-contained token for subject carrying tokenType,
// issued-at, and expires-at claims. A non-positive ttl falls back to the
// configured default TTL.
func (m *Manager) Issue(subject string, tokenType Type, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token subject must not be empty")
	}
	if !tokenType.Valid() {
		return "", fmt.Errorf("unsupported token type %q", tokenType)
	}
	if ttl <= 0 {
		ttl = m.config.TTL
	}

	now := m.config.Now()
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
		},
	}

	signKey, err := m.getSignKey()
	if err != nil {
		return "", err
	}

	return jwt.NewWithClaims(m.getMethod(), claims).SignedString(signKey)
}

// Verify describes the verify operation and its observable behavior.
//
// Verify checks signature and expiry, then checks that the embedded token type
// equals expected. Errors are always one of [ErrExpired], [ErrInvalid], or
// [ErrTypeMismatch]; the underlying parser error is never exposed.
func (m *Manager) Verify(expected Type, tokenStr string) (*Claims, error) {
	if !expected.Valid() {
		return nil, fmt.Errorf("unsupported token type %q", expected)
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{m.getMethod().Alg()}),
		jwt.WithTimeFunc(m.config.Now),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	parsed, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.getVerifyKey()
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}
	if claims.Subject == "" {
		return nil, ErrInvalid
	}
	if claims.TokenType != expected {
		return nil, ErrTypeMismatch
	}

	return claims, nil
}

func (m *Manager) getMethod() jwt.SigningMethod {
	switch m.config.SigningMethod {
	case MethodHS256:
		return jwt.SigningMethodHS256
	default:
		return jwt.SigningMethodEdDSA
	}
}

func (m *Manager) getSignKey() (interface{}, error) {
	switch m.config.SigningMethod {
	case MethodHS256:
		return m.config.PrivateKey, nil
	default:
		return parseEdPrivateKey(m.config.PrivateKey)
	}
}

func (m *Manager) getVerifyKey() (interface{}, error) {
	switch m.config.SigningMethod {
	case MethodHS256:
		return m.config.PrivateKey, nil
	default:
		return parseEdPublicKey(m.config.PublicKey)
	}
}

func parseEdPrivateKey(key []byte) (ed25519.PrivateKey, error) {
	if len(key) == ed25519.PrivateKeySize {
		return ed25519.PrivateKey(key), nil
	}
	parsed, err := jwt.ParseEdPrivateKeyFromPEM(key)
	if err != nil {
		return nil, errors.New("invalid ed25519 private key")
	}
	edKey, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("invalid ed25519 private key type")
	}
	return edKey, nil
}

func parseEdPublicKey(key []byte) (ed25519.PublicKey, error) {
	if len(key) == ed25519.PublicKeySize {
		return ed25519.PublicKey(key), nil
	}
	parsed, err := jwt.ParseEdPublicKeyFromPEM(key)
	if err != nil {
		return nil, errors.New("invalid ed25519 public key")
	}
	edKey, ok := parsed.(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("invalid ed25519 public key type")
	}
	return edKey, nil
}
