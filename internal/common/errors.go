package common

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConnection   = errors.New("connection failed")
	ErrExtraction   = errors.New("extraction failed")
	ErrInvalidInput = errors.New("invalid input")
)

const (
	CodeConnection = "CONNECTION_ERROR"
	CodeExtraction = "EXTRACTION_ERROR"
	CodeConfig     = "CONFIG_ERROR"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Kind    error
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches the error's kind sentinel.
func (e *AppError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// Error constructors
func NewAppError(code, message string, kind, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Kind:    kind,
		Cause:   cause,
	}
}

// NewConnectionError wraps a destination/transport failure.
func NewConnectionError(message string, cause error) *AppError {
	return NewAppError(CodeConnection, message, ErrConnection, cause)
}

// NewExtractionError wraps a model call or parse failure.
func NewExtractionError(message string, cause error) *AppError {
	return NewAppError(CodeExtraction, message, ErrExtraction, cause)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
