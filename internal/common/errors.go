package common

import (
	"errors"
	"fmt"
)

// Business logic errors
var (
	// General errors
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")

	// Chat errors
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("user is not a conversation participant")
	ErrCompanionNotFound    = errors.New("companion not found")
	ErrInvalidParticipant   = errors.New("invalid participant role")
	ErrOnlyClientsRequest   = errors.New("only clients can request services")
	ErrConversationInactive = errors.New("conversation does not accept new messages")
	ErrServiceNotFound      = errors.New("companion service not found")

	// Alert errors
	ErrAlertNotFound = errors.New("security alert not found")
	ErrNotModerator  = errors.New("moderator role required")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError carries per-field validation failures.
// It unwraps to ErrValidation so handlers can match with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
