// ============================================================================
// meinRECHENWERK (mRW) - Interaktiver Rechner
// ============================================================================
//
// Package:     version
// Description: Central version management for the calculator components
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants for all mRW components
const (
	// Application version
	Application = "1.0.0"

	// Component versions
	Calculator    = "1.0.0"
	HistoryFormat = "1.0.0"
	Journal       = "1.0.0"
)

// Build information, set with -ldflags at build time
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "calculator":
		return Calculator
	case "history":
		return HistoryFormat
	case "journal":
		return Journal
	default:
		return Application
	}
}

// String returns the full version line
func String() string {
	return fmt.Sprintf("meinRECHENWERK %s (commit %s, built %s)", Application, Commit, BuildDate)
}
