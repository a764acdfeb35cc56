package validation

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrEmailRequired    = errors.New("email address is required")
	ErrEmailTooLong     = errors.New("email address is too long (max 254 characters)")
	ErrEmailFormat      = errors.New("invalid email address format")
	ErrPasswordTooShort = errors.New("password must be at least 12 characters")
	ErrPasswordTooLong  = errors.New("password must not exceed 72 characters")
	ErrPasswordCommon   = errors.New("password is too common, please choose a stronger one")
	ErrNameTooLong      = errors.New("name is too long (max 100 characters)")
)

var commonPasswordPatterns = []string{
	"password", "123456", "qwerty", "admin", "letmein",
	"welcome", "monkey", "dragon", "master", "sunshine",
}

// ValidateEmail checks length limits (RFC 5321) and syntax (RFC 5322, via net/mail).
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if len(email) > 254 {
		return ErrEmailTooLong
	}
	_, err := mail.ParseAddress(email)
	if err != nil {
		return ErrEmailFormat
	}
	return nil
}

// ValidatePassword enforces 12 to 72 bytes (bcrypt truncates past 72)
// and rejects well-known weak patterns.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}

	lower := strings.ToLower(password)
	for _, pattern := range commonPasswordPatterns {
		if strings.Contains(lower, pattern) {
			return ErrPasswordCommon
		}
	}
	return nil
}

// ValidateName accepts an empty name; display names are optional.
func ValidateName(name string) error {
	if len(strings.TrimSpace(name)) > 100 {
		return ErrNameTooLong
	}
	return nil
}
