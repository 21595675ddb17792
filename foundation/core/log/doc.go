// Package log provides structured logging for meinRECHENWERK.
//
// Package: log
// Title: mRW Structured Logging
// Description: Structured logger with levels, persistent context fields,
//              pluggable output formats and integration with the mRW error
//              codes. Used by the calculator core listeners, the persistence
//              layer and the CLI.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-18 v0.2.0: Dropped async buffering, sorted field output, calculator fields
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{
//		Level:  log.LevelInfo,
//		Format: log.FormatText,
//		Output: file,
//		Name:   "repl",
//	}).WithField("session", sessionID)
//
//	logger.Info("calculation performed", log.Fields{
//		"operator": "add",
//		"result":   5,
//	})
//	logger.LogError(err)
package log
