// Package logging provides a logging abstraction layer that decouples the
// pipeline from specific logging frameworks. Packages hold a package-level
// logger obtained from GetLogger and expose a SetLogger hook for tests.
package logging

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger defines the interface for structured logging throughout the application.
// Implementations should provide structured logging with support for fields and error context.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger

	// Fatal logs a fatal-level message and exits the program
	Fatal(msg string, fields ...Field)

	// Fatalf logs a fatal-level message with formatting and exits the program
	Fatalf(msg string, args ...interface{})
}

// Field represents a key-value pair for structured logging.
// Fields provide context to log messages without cluttering the message text.
type Field struct {
	Key   string
	Value interface{}
}

var (
	defaultMu sync.RWMutex

	// standard is the shared logrus instance behind the default logger, so
	// that SetAllLogLevels reaches every package-level copy of it.
	standard = logrus.New()

	defaultLogger Logger = NewLogrusAdapterFromLogger(standard)
)

// GetLogger returns the process-wide default logger. Packages capture it in
// a package-level var and accept replacements through their own SetLogger.
func GetLogger() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetLogger replaces the process-wide default logger.
func SetLogger(l Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// SetAllLogLevels applies the level to the global logrus instance and to the
// shared instance behind the default logger. Loggers handed out earlier by
// GetLogger pick the change up immediately.
func SetAllLogLevels(level logrus.Level) {
	logrus.SetLevel(level)
	standard.SetLevel(level)
}
