package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
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

// Common application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrDatabase     = errors.New("database error")

	// ErrOCR marks a failed OCR call; the page is skipped, not the batch.
	ErrOCR = errors.New("ocr failed")
	// ErrExtraction marks a failed record-extraction call for one span.
	ErrExtraction = errors.New("extraction failed")
	// ErrProtected marks an encrypted PDF with no password supplied.
	ErrProtected = errors.New("pdf is password-protected")
	// ErrBadPassword marks an encrypted PDF whose password did not match.
	ErrBadPassword = errors.New("incorrect pdf password")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
