// Package errors provides the error kinds and exit codes used by gdtdd commands.
package errors

import (
	"fmt"
)

// Exit codes returned by the gdtdd binary.
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	// KindFailure is a run that completed but did not pass (tests failed,
	// coverage below threshold).
	KindFailure ErrorKind = iota
	KindNotFound
	KindMalformedInput
	KindTimeout
	KindUsage
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindMalformedInput:
		return "malformed input"
	case KindTimeout:
		return "timeout"
	case KindUsage:
		return "usage"
	default:
		return "failure"
	}
}

// Error is the base error type for gdtdd.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit code for this error.
func (e *Error) ExitCode() int {
	if e.Kind == KindUsage {
		return ExitUsage
	}
	return ExitFailure
}

// Failure creates an error for a run that finished without passing.
// An empty message means the command already reported the outcome.
func Failure(message string) *Error {
	return &Error{Kind: KindFailure, Message: message}
}

// NotFound creates a not found error.
func NotFound(what, name string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// Malformed wraps a decoding or validation error of an input document.
func Malformed(what string, cause error) *Error {
	return &Error{
		Kind:    KindMalformedInput,
		Message: fmt.Sprintf("malformed %s", what),
		Cause:   cause,
	}
}

// Timeout creates an error for an external process that exceeded its bound.
func Timeout(what string, after fmt.Stringer) *Error {
	return &Error{
		Kind:    KindTimeout,
		Message: fmt.Sprintf("%s timed out (%s)", what, after),
	}
}

// Usage creates an error for invalid command-line usage.
func Usage(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindUsage,
		Message: fmt.Sprintf(format, args...),
	}
}

// Is reports whether err is a gdtdd error of the given kind.
func Is(err error, kind ErrorKind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	for e := err; e != nil; {
		if ge, ok := e.(*Error); ok {
			return ge.ExitCode()
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return ExitFailure
}
