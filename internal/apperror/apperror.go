package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the application's failure taxonomy.
//
// Services return these wrapped inside an *AppError; handlers use
// errors.Is to decide how to respond (re-render with flash, redirect, 500).
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnavailable        = errors.New("store unavailable")
)

// AppError carries a sentinel error plus human-readable detail.
//
// Message is safe to show to the user. Messages holds the individual
// reasons when validation fails with more than one rule at once.
type AppError struct {
	Err      error    // sentinel from the list above
	Message  string   // human-readable summary
	Field    string   // optional: field causing the error
	Messages []string // optional: one entry per failed validation rule
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationFailed wraps a list of validation messages.
// The summary Message is the first entry so the error reads naturally
// when printed, but callers should render Messages in full.
func ValidationFailed(messages []string) *AppError {
	msg := "invalid input"
	if len(messages) > 0 {
		msg = messages[0]
	}
	return &AppError{
		Err:      ErrValidation,
		Message:  msg,
		Messages: messages,
	}
}

// DuplicateEmail reports a uniqueness violation on the email column.
// The message names no account and no timestamp.
func DuplicateEmail() *AppError {
	return &AppError{
		Err:     ErrDuplicateEmail,
		Message: "that email address is already registered",
		Field:   "email",
	}
}

// InvalidCredentials is returned for both unknown-email and wrong-password
// login failures. Using a single constructor keeps the two cases
// indistinguishable to the caller, which prevents user enumeration.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "invalid email or password",
	}
}

// NotFound reports a missing record.
func NotFound(resource, key string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, key),
	}
}

// Unavailable wraps a store failure that is fatal for the current request.
// The underlying error is kept in the chain for logging, but Message stays
// generic so driver detail never reaches the user.
func Unavailable(err error) *AppError {
	return &AppError{
		Err:     errors.Join(ErrUnavailable, err),
		Message: "the service is temporarily unavailable",
	}
}
