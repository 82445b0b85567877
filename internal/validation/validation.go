// Package validation checks request fields for presence, type, enum
// membership, date parseability and UUID shape. Failures are returned as
// apperr validation errors carrying a client-safe message.
package validation

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"todo-tracker/internal/apperr"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s looks like an email address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Password reports whether s is long enough to be a password.
func Password(s string) bool {
	return len(s) >= MinPasswordLength
}

// UUID reports whether s is a canonical RFC 4122 UUID of version 1 to 5.
func UUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return id.Variant() == uuid.RFC4122 && id.Version() >= 1 && id.Version() <= 5
}

// Enum reports whether value is one of allowed.
func Enum(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// Blank reports whether s is empty after trimming whitespace.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func requiredError(field string) error {
	return apperr.Validation(field + " is required")
}

func stringError(field string) error {
	return apperr.Validation(field + " must be a string")
}

func booleanError(field string) error {
	return apperr.Validation(field + " must be a boolean")
}

func enumError(field string, allowed []string) error {
	return apperr.Validation(field + " must be one of: " + strings.Join(allowed, ", "))
}

func dateError(field string) error {
	return apperr.Validation(field + " must be a valid date")
}

func uuidError(field string) error {
	return apperr.Validation(field + " must be a valid UUID")
}
