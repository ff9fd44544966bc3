// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across the monkey toolchain.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial code set

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Language front end
	CodeSyntax          Code = "SYNTAX"
	CodeUnexpectedToken Code = "UNEXPECTED_TOKEN"
	CodeInputTooLong    Code = "INPUT_TOO_LONG"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Storage
	CodeStorageError Code = "STORAGE_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeSyntax, CodeUnexpectedToken, CodeInputTooLong,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig,
		CodeStorageError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeSyntax, CodeUnexpectedToken, CodeInputTooLong:
		return "language"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	case CodeStorageError:
		return "storage"
	default:
		return "generic"
	}
}
