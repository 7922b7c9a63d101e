// Package derrors provides the typed errors raised by the console core.
// Recoverable errors (unknown command, arity, coercion, execution) are reported to the
// transcript by the dispatcher; configuration errors abort registry construction.
package derrors

import (
	"fmt"
)

// ConsoleError is the base interface for all console errors
type ConsoleError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all console errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// UnknownCommandError is returned when the first token names no registered command
type UnknownCommandError struct {
	baseError
	Command string
}

// NewUnknownCommandError creates a new unknown command error
func NewUnknownCommandError(command string) *UnknownCommandError {
	return &UnknownCommandError{
		baseError: baseError{
			code:    "UNKNOWN_COMMAND",
			message: "Unknown command: " + command,
		},
		Command: command,
	}
}

// ArityError is returned when fewer arguments are supplied than the command requires
type ArityError struct {
	baseError
	Line     string
	Required int
	Supplied int
}

// NewArityError creates a new arity error for the submitted line
func NewArityError(line string, required, supplied int) *ArityError {
	return &ArityError{
		baseError: baseError{
			code:    "ARITY_ERROR",
			message: "not enough arguments supplied to command: " + line,
		},
		Line:     line,
		Required: required,
		Supplied: supplied,
	}
}

// CoercionError is returned when an argument cannot be converted to its parameter type
type CoercionError struct {
	baseError
	Command   string
	Parameter string
	Value     string
	Type      string
}

// NewCoercionError creates a new coercion error
func NewCoercionError(command, parameter, value, typeName, line string, cause error) *CoercionError {
	return &CoercionError{
		baseError: baseError{
			code:    "COERCION_ERROR",
			message: fmt.Sprintf("invalid value %q for parameter %s (%s) in command: %s", value, parameter, typeName, line),
			cause:   cause,
		},
		Command:   command,
		Parameter: parameter,
		Value:     value,
		Type:      typeName,
	}
}

// ExecutionError represents a failure raised by a command operation
type ExecutionError struct {
	baseError
	Command string
}

// NewExecutionError creates a new execution error
func NewExecutionError(command string, message string, cause error) *ExecutionError {
	return &ExecutionError{
		baseError: baseError{
			code:    "EXEC_ERROR",
			message: message,
			cause:   cause,
		},
		Command: command,
	}
}

// ConfigurationError represents a malformed command set or console setup
type ConfigurationError struct {
	baseError
	Subject string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(subject string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Subject: subject,
	}
}

// ValidationError represents errors during config file validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// NotFoundError represents errors when a resource is not found
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: message,
			cause:   nil,
		},
		Resource: resource,
	}
}
