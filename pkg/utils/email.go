package utils

import (
	"net/mail"
	"strings"
)

const (
	MinPasswordLength = 6
	// MaxPasswordLength is in bytes; bcrypt refuses longer input.
	MaxPasswordLength = 72
	MaxNameLength     = 100
)

// ValidateRegistration validates the fields of a new account.
// Rules: name 1-100 characters, a parseable email address, password 6-72 bytes.
func ValidateRegistration(name, email, password string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return &ValidationError{Field: "all", Message: "All fields are required"}
	}

	if len(name) > MaxNameLength {
		return &ValidationError{Field: "name", Message: "Name must be at most 100 characters"}
	}

	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "Email address is invalid"}
	}

	if len(password) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	}

	if len(password) > MaxPasswordLength {
		return &ValidationError{Field: "password", Message: "Password must be at most 72 bytes"}
	}

	return nil
}

// NormalizeEmail converts an email to lowercase for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
