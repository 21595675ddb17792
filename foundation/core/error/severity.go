// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to pick log levels for errors.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers user mistakes the session recovers from
	SeverityLow Severity = iota

	// SeverityMedium affects functionality but has workarounds
	SeverityMedium

	// SeverityHigh significantly impacts functionality
	SeverityHigh

	// SeverityCritical makes the program unusable
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

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeDataCorruption:
		return SeverityHigh
	case CodeDatabaseError, CodeConfigError, CodeInvalidConfig, CodeInternal:
		return SeverityHigh
	case CodePersistence:
		return SeverityMedium
	case CodeInvalidInput, CodeUnknownOperation, CodeDivisionByZero, CodeDomainError,
		CodeNothingToUndo, CodeNothingToRedo, CodeNotFound:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
