// File: logger.go
// Title: Core Logger Implementation
// Description: Implements the Logger type: structured logging with persistent
//              context fields, configurable format and output, and severity
//              aware logging of mRW errors.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-18 v0.2.0: Removed async worker, default logger and unused
//   builders; added Nop logger and timers

package log

import (
	"io"
	"os"
	"sync"
	"time"

	mrwerror "github.com/msto63/mRW/foundation/core/error"
)

// Logger represents a structured logger with contextual information
type Logger struct {
	level     Level
	formatter Formatter
	output    io.Writer
	name      string

	// Context fields that are added to all log entries
	contextFields Fields

	mutex sync.RWMutex
}

// Config represents logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
	Name   string
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	logger := &Logger{
		level:         config.Level,
		formatter:     GetFormatter(config.Format),
		output:        config.Output,
		name:          config.Name,
		contextFields: make(Fields),
	}

	if logger.output == nil {
		logger.output = os.Stdout
	}

	return logger
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return NewWithConfig(Config{Level: LevelFatal, Output: io.Discard})
}

// WithField adds a persistent field to all log entries
func (l *Logger) WithField(key string, value interface{}) *Logger {
	clone := l.clone()
	clone.contextFields[key] = value
	return clone
}

// Debug logs a debug level message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, 0, fields...)
}

// Info logs an info level message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, 0, fields...)
}

// Warn logs a warning level message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, 0, fields...)
}

// Error logs an error level message
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, 0, fields...)
}

// WarnWithErr logs a warning with an error object
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, 0, fields...)
}

// LogError logs an error, picking the level from the severity of mRW errors
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	mrwErr, ok := err.(*mrwerror.Error)
	if !ok {
		l.log(LevelError, err.Error(), err, 0)
		return
	}

	fields := Fields{
		"error_code":     mrwErr.Code(),
		"error_severity": mrwErr.Severity().String(),
	}
	if op := mrwErr.Operation(); op != "" {
		fields["error_operation"] = op
	}
	for k, v := range mrwErr.Details() {
		fields["error_"+k] = v
	}

	switch mrwErr.Severity() {
	case mrwerror.SeverityLow:
		l.log(LevelInfo, err.Error(), err, 0, fields)
	case mrwerror.SeverityMedium:
		l.log(LevelWarn, err.Error(), err, 0, fields)
	default:
		l.log(LevelError, err.Error(), err, 0, fields)
	}
}

// StartTimer creates and starts a new performance timer
func (l *Logger) StartTimer(operation string) *Timer {
	return &Timer{logger: l, operation: operation, start: time.Now()}
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.level
}

// log is the internal logging method
func (l *Logger) log(level Level, message string, err error, duration time.Duration, fields ...Fields) {
	l.mutex.RLock()
	if !level.ShouldLog(l.level) {
		l.mutex.RUnlock()
		return
	}

	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.Error = err
	entry.Duration = duration

	for k, v := range l.contextFields {
		entry.Fields[k] = v
	}
	for _, fieldSet := range fields {
		for k, v := range fieldSet {
			entry.Fields[k] = v
		}
	}

	formatter := l.formatter
	output := l.output
	l.mutex.RUnlock()

	if formatted, formatErr := formatter.Format(entry); formatErr == nil {
		output.Write(formatted)
	}
}

// clone creates a copy of the logger for immutable operations
func (l *Logger) clone() *Logger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	clone := &Logger{
		level:         l.level,
		formatter:     l.formatter,
		output:        l.output,
		name:          l.name,
		contextFields: make(Fields, len(l.contextFields)),
	}
	for k, v := range l.contextFields {
		clone.contextFields[k] = v
	}
	return clone
}

// Timer measures the duration of an operation
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
	stopped   bool
}

// Stop logs the elapsed time at debug level and returns it
func (t *Timer) Stop(fields ...Fields) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true

	elapsed := time.Since(t.start)
	all := append([]Fields{{"operation": t.operation}}, fields...)
	t.logger.log(LevelDebug, "operation completed", nil, elapsed, all...)
	return elapsed
}
