// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. The logger maps severities
//              onto log levels when reporting structured errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers bad user input such as syntax errors
	SeverityLow Severity = iota

	// SeverityMedium is the default for errors without a more specific code
	SeverityMedium

	// SeverityHigh covers failures of the environment (storage, config)
	SeverityHigh

	// SeverityCritical makes the tool unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeStorageError, CodeConfigError, CodeInvalidConfig:
		return SeverityHigh
	case CodeSyntax, CodeUnexpectedToken, CodeInputTooLong,
		CodeInvalidInput, CodeNotFound, CodeMissingConfig:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
