package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors raised by services and translated to HTTP responses at the
// boundary. Handlers match these with errors.Is.
var (
	ErrForbidden          = errors.New("forbidden")
	ErrEventNotFound      = errors.New("event not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrGuestNotFound      = errors.New("guest not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrBudgetNotFound     = errors.New("budget not found")
	ErrVendorNotFound     = errors.New("vendor not found")
	ErrIdeaNotFound       = errors.New("idea not found")
	ErrInvalidInviteCode  = errors.New("invalid invite code")
	ErrAlreadyMember      = errors.New("user is already a member of this event")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotImplemented     = errors.New("not implemented")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level details for malformed input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns the error only if any field failed, so Validate methods can
// end with `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
