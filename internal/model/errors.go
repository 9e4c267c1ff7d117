package model

import "fmt"

// InvalidRangeError reports a malformed or out-of-bounds port
// specification. It is detected before any network activity and is
// fatal to the whole invocation.
type InvalidRangeError struct {
	// Spec is the offending port specification as given by the user.
	Spec string

	// Reason describes why the spec was rejected.
	Reason string
}

// Error satisfies the error interface.
func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid port range %q: %s", e.Spec, e.Reason)
}

// NewInvalidRangeError creates an InvalidRangeError for the given spec.
func NewInvalidRangeError(spec, reason string) *InvalidRangeError {
	return &InvalidRangeError{Spec: spec, Reason: reason}
}

// InvalidTargetError reports a target that is neither an IPv4 literal
// nor a resolvable hostname. It is detected before probing starts and
// is fatal; zero probes are issued.
type InvalidTargetError struct {
	// Target is the string that failed validation.
	Target string
}

// Error satisfies the error interface.
func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid target %q: not an IPv4 address or resolvable hostname", e.Target)
}

// NewInvalidTargetError creates an InvalidTargetError for the given
// target.
func NewInvalidTargetError(target string) *InvalidTargetError {
	return &InvalidTargetError{Target: target}
}

// ExitCode defines the CLI exit codes. These codes allow scripts to
// programmatically distinguish configuration failures from scan
// failures.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidRange indicates the port specification was malformed
	// or out of bounds.
	ExitInvalidRange ExitCode = 2

	// ExitInvalidTarget indicates the target failed both the IPv4
	// literal and hostname resolution checks.
	ExitInvalidTarget ExitCode = 3
)

// CLIError is an error that carries an exit code, letting the cli
// package translate domain failures into process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the message,
// including the underlying error when present.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
