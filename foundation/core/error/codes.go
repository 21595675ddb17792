// File: codes.go
// Title: Error Code Definitions
// Description: Standardized error codes for consistent error classification
//              across mRW. Codes drive severity, errors.Is matching and
//              log levels.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Arithmetic
	CodeUnknownOperation Code = "UNKNOWN_OPERATION"
	CodeDivisionByZero   Code = "DIVISION_BY_ZERO"
	CodeDomainError      Code = "DOMAIN_ERROR"

	// History navigation
	CodeNothingToUndo Code = "NOTHING_TO_UNDO"
	CodeNothingToRedo Code = "NOTHING_TO_REDO"

	// Storage
	CodePersistence    Code = "PERSISTENCE_ERROR"
	CodeDataCorruption Code = "DATA_CORRUPTION"
	CodeDatabaseError  Code = "DATABASE_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeUnknownOperation, CodeDivisionByZero, CodeDomainError:
		return "arithmetic"
	case CodeNothingToUndo, CodeNothingToRedo:
		return "history"
	case CodePersistence, CodeDataCorruption, CodeDatabaseError:
		return "storage"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeInvalidInput:
		return "validation"
	default:
		return "generic"
	}
}
