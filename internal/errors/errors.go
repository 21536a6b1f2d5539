package errors

import (
	stderrors "errors"
	"fmt"

	"payrecon/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a
// wrapped AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeOf(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the code of the outermost AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// CodeOf classifies an arbitrary error, recognizing domain source errors
func CodeOf(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, core.ErrUnreadableSource):
		return CodeUnreadableSource
	case stderrors.Is(err, core.ErrHeaderNotFound):
		return CodeHeaderNotFound
	case stderrors.Is(err, core.ErrUnresolvedColumns):
		return CodeUnresolvedColumns
	case stderrors.Is(err, core.ErrInvalidSynonyms):
		return CodeConfigInvalid
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternalError
}

// IsUserError reports whether err stems from the uploaded data or the
// request rather than from the application itself
func IsUserError(err error) bool {
	switch CodeOf(err) {
	case CodeUnreadableSource, CodeHeaderNotFound, CodeUnresolvedColumns, CodeInvalidInput, CodeUploadTooLarge:
		return true
	}
	return false
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeNotFound          = "NOT_FOUND"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnreadableSource  = "UNREADABLE_SOURCE"
	CodeHeaderNotFound    = "HEADER_NOT_FOUND"
	CodeUnresolvedColumns = "UNRESOLVED_COLUMNS"
	CodeBusy              = "BUSY"
	CodeUploadTooLarge    = "UPLOAD_TOO_LARGE"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func Busy(message string) *AppError {
	return New(CodeBusy, message)
}

func UploadTooLarge(limit int64, cause error) *AppError {
	return &AppError{
		Code:    CodeUploadTooLarge,
		Message: fmt.Sprintf("upload exceeds the %d byte limit", limit),
		Cause:   cause,
	}
}
