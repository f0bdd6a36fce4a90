// Package errors provides the structured error type and exit codes of the
// voltcheck CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Exit codes. A non-compliant batch exits with ExitFailure without being an
// error.
const (
	ExitSuccess      = 0 // Every record compliant
	ExitFailure      = 1 // Non-compliant records, or the command failed
	ExitConfigError  = 2 // Invalid configuration or catalog
	ExitInputError   = 3 // Unreadable or malformed test records
	ExitRuntimeError = ExitFailure
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindValidation
	KindInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindRuntime:
		return "runtime"
	case KindConfig:
		return "config"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindInput:
		return "input"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// VoltcheckError carries a kind that decides the exit code, the file or
// location it concerns, and an optional cause.
type VoltcheckError struct {
	Kind    ErrorKind
	Message string
	Source  string // File, sheet or field the error refers to
	Cause   error
}

func (e *VoltcheckError) Error() string {
	msg := e.Message
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *VoltcheckError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *VoltcheckError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindInput, KindNotFound:
		return ExitInputError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *VoltcheckError {
	return &VoltcheckError{Kind: KindRuntime, Message: message}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *VoltcheckError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *VoltcheckError {
	return &VoltcheckError{Kind: KindConfig, Message: message}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *VoltcheckError {
	return Config(fmt.Sprintf(format, args...))
}

// Input creates an error for unreadable or malformed test records in source.
func Input(source, message string) *VoltcheckError {
	return &VoltcheckError{Kind: KindInput, Source: source, Message: message}
}

// Inputf creates an input error with formatting.
func Inputf(source, format string, args ...interface{}) *VoltcheckError {
	return Input(source, fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *VoltcheckError {
	return &VoltcheckError{Kind: KindRuntime, Message: message, Cause: err}
}

// WrapKind wraps an error with a kind and the source it concerns.
func WrapKind(kind ErrorKind, source string, err error, message string) *VoltcheckError {
	return &VoltcheckError{Kind: kind, Source: source, Message: message, Cause: err}
}

// NotFound creates a not found error.
func NotFound(what, name string) *VoltcheckError {
	return &VoltcheckError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// GetExitCode returns the exit code for an error, looking through wrapped
// errors for a *VoltcheckError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ve *VoltcheckError
	if stderrors.As(err, &ve) {
		return ve.ExitCode()
	}
	return ExitRuntimeError
}

// IsKind reports whether err wraps a *VoltcheckError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ve *VoltcheckError
	return stderrors.As(err, &ve) && ve.Kind == kind
}
