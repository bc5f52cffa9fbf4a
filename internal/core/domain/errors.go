package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrApplicantNotFound    = errors.New("applicant not found")
	ErrDuplicatePassport    = errors.New("passport number already exists")
	ErrBlobNotFound         = errors.New("file not found")
	ErrUnsupportedMediaType = errors.New("unsupported file type")
	ErrPayloadTooLarge      = errors.New("file exceeds maximum upload size")
	ErrAdminExists          = errors.New("username or email already exists")
	ErrAdminNotFound        = errors.New("admin not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrTooManyAttempts      = errors.New("too many failed login attempts")
)

// ValidationError reports caller input that is missing or malformed,
// naming every offending field so the client can fix them in one pass.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	return fmt.Sprintf("invalid or missing fields: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError over the given field names.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
