package validation

import (
	"fmt"

	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// HTTP body limits
const (
	// MaxBodySize is the maximum allowed request body size (64 KB).
	// Sufficient for JSON APIs while preventing memory exhaustion attacks.
	MaxBodySize = 64 * 1024
)

// String element length limits
const (
	// MaxNameLength is the maximum length of a student name.
	MaxNameLength = 200

	// MaxEmailLength is the maximum length of an email address.
	MaxEmailLength = 255

	// MaxStatusLength is the maximum length of an eligibility status value.
	MaxStatusLength = 100

	// MaxReferenceIDLength is the maximum length of a certificate reference ID.
	MaxReferenceIDLength = 64
)

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}

// CheckEmail validates email syntax.
func CheckEmail(fieldName, value string) error {
	if err := defaultValidator.Var(value, "email"); err != nil {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be a valid email", fieldName))
	}
	return nil
}
