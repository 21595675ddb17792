// ============================================================================
// meinRECHENWERK (mRW) - Interaktiver Rechner
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating Foundation loggers from the
//              application configuration
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	mrwlog "github.com/msto63/mRW/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Logger name
	Name string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "json", "text" or "logfmt" (default: text)
	Format string

	// Output writer (default: stderr)
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "info",
		Format: "text",
	}
}

// NewLogger creates a new Foundation logger
func NewLogger(cfg LoggerConfig) *mrwlog.Logger {
	level, err := mrwlog.ParseLevel(cfg.Level)
	if err != nil {
		level = mrwlog.LevelInfo
	}

	format, err := mrwlog.ParseFormat(cfg.Format)
	if err != nil {
		format = mrwlog.FormatText
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return mrwlog.NewWithConfig(mrwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.Name,
	})
}

// NewFileLogger creates a logger appending to path. The returned closer
// closes the log file.
func NewFileLogger(cfg LoggerConfig, path string) (*mrwlog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	cfg.Output = file
	return NewLogger(cfg), file, nil
}

// NewSessionID returns a new random session identifier
func NewSessionID() string {
	return uuid.New().String()
}

// WithSession returns a logger tagging every entry with the session ID
func WithSession(logger *mrwlog.Logger, sessionID string) *mrwlog.Logger {
	return logger.WithField("session", sessionID)
}
