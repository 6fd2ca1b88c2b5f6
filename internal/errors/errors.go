// Package errors provides structured error types and exit codes for testbridge.
package errors

import (
	"fmt"
)

// Exit codes reported by the CLI.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Runtime error (bad request, command failed, etc.)
	ExitConfigError      = 2 // Configuration error (invalid config, empty base command, etc.)
	ExitEnvironmentError = 3 // Environment error (Docker not available, missing dependency, etc.)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindEnvironment

	// Request rejection kinds. A rejected request never reaches a subprocess.
	KindMalformedLocation
	KindEmptyPath
	KindInvalidSpecSuffix
	KindEmptyBaseCommand
)

// BridgeError is the base error type for testbridge.
type BridgeError struct {
	Kind    ErrorKind
	Message string
	Input   string // Offending raw input if applicable
	Cause   error  // Underlying error
}

func (e *BridgeError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("%s: %q", e.Message, e.Input)
	}
	return e.Message
}

func (e *BridgeError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *BridgeError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindEmptyBaseCommand:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *BridgeError {
	return &BridgeError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *BridgeError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *BridgeError {
	return &BridgeError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *BridgeError {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates a new environment error.
func Environment(message string) *BridgeError {
	return &BridgeError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *BridgeError {
	return Environment(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *BridgeError {
	return &BridgeError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// MalformedLocation creates an error for a location string that does not
// follow the path[:line...] syntax. The detail names the violated rule.
func MalformedLocation(input, detail string) *BridgeError {
	return &BridgeError{
		Kind:    KindMalformedLocation,
		Message: fmt.Sprintf("malformed location: %s", detail),
		Input:   input,
	}
}

// EmptyPath creates an error for a location whose file path is empty.
func EmptyPath(input string) *BridgeError {
	return &BridgeError{
		Kind:    KindEmptyPath,
		Message: "location has an empty file path",
		Input:   input,
	}
}

// InvalidSpecSuffix creates an error for a path that is not an RSpec spec file.
func InvalidSpecSuffix(input string) *BridgeError {
	return &BridgeError{
		Kind:    KindInvalidSpecSuffix,
		Message: `spec file must end in "_spec.rb"`,
		Input:   input,
	}
}

// EmptyBaseCommand creates an error for a base command with no tokens.
func EmptyBaseCommand(base string) *BridgeError {
	return &BridgeError{
		Kind:    KindEmptyBaseCommand,
		Message: "base command is empty",
		Input:   base,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *BridgeError {
	return &BridgeError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if be, ok := err.(*BridgeError); ok {
		return be.ExitCode()
	}
	return ExitRuntimeError
}
