package policy

import (
	"errors"
	"regexp"
	"strings"
)

const (
	// MinPasswordLength is an exported constant or variable used by the account engine.
	MinPasswordLength = 8
	// MaxPasswordLength is an exported constant or variable used by the account engine.
	MaxPasswordLength = 30
	// SpecialCharacters is the closed set of characters that satisfy the
	// password special-character requirement.
	SpecialCharacters = "$&+,:;=?@#|'<>.^*(){}%!_-"
	// MaxDisplayNameLength is an exported constant or variable used by the account engine.
	MaxDisplayNameLength = 30
)

var (
	// ErrUsernameInvalid is an exported constant or variable used by the account engine.
	ErrUsernameInvalid = errors.New("username is invalid: use only letters, numbers, fullstops and underscore")
	// ErrEmailInvalid is an exported constant or variable used by the account engine.
	ErrEmailInvalid = errors.New("email is invalid: an example email would be example@company.com")
	// ErrPasswordWeak is an exported constant or variable used by the account engine.
	ErrPasswordWeak = errors.New("password is too weak: must be 8 to 30 characters with at least one uppercase, lowercase, number, and special character")
	// ErrNameInvalid is an exported constant or variable used by the account engine.
	ErrNameInvalid = errors.New("name is invalid: must be 1 to 30 characters")
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]*$`)
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// Username validates a username and returns its canonical (lower-cased) form.
//
// The empty string is rejected even though the character class alone would
// accept it.
func Username(value string) (string, error) {
	if value == "" {
		return "", ErrUsernameInvalid
	}

	normalized := strings.ToLower(value)
	if !usernamePattern.MatchString(normalized) {
		return "", ErrUsernameInvalid
	}

	return normalized, nil
}

// Email validates an email address. The value is returned unmodified so the
// caller stores exactly what the user typed.
func Email(value string) (string, error) {
	if value == "" {
		return "", ErrEmailInvalid
	}
	if !emailPattern.MatchString(value) {
		return "", ErrEmailInvalid
	}

	return value, nil
}

// DisplayName validates a display-name component (first or last name) and
// returns its trimmed form. Names carry no character-class restriction, only a
// presence and length requirement.
func DisplayName(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || len(trimmed) > MaxDisplayNameLength {
		return "", ErrNameInvalid
	}

	return trimmed, nil
}

// Password validates password strength: length between [MinPasswordLength] and
// [MaxPasswordLength] bytes with at least one digit, one lowercase letter, one
// uppercase letter, and one character from [SpecialCharacters].
//
// Password never hashes; hashing is the caller's responsibility.
func Password(value string) error {
	if len(value) < MinPasswordLength || len(value) > MaxPasswordLength {
		return ErrPasswordWeak
	}

	var hasDigit, hasLower, hasUpper, hasSpecial bool
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case strings.ContainsRune(SpecialCharacters, r):
			hasSpecial = true
		}
	}

	if !hasDigit || !hasLower || !hasUpper || !hasSpecial {
		return ErrPasswordWeak
	}

	return nil
}
