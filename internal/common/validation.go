package common

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	digitRegex = regexp.MustCompile(`\d`)
)

// NormalizeEmail lowercases and trims an email address. All storage and
// lookups go through the normalized form so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(NormalizeEmail(email)) {
		return NewValidationError("invalid email format")
	}
	return nil
}

// ValidatePassword enforces the registration policy: at least 6
// characters with at least one digit.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return NewValidationError("password must be at least 6 characters long")
	}
	if len(password) > 100 {
		return NewValidationError("password is too long")
	}
	if !digitRegex.MatchString(password) {
		return NewValidationError("password must contain at least one digit")
	}
	return nil
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("name is required")
	}
	return nil
}
