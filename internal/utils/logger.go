package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// logPrefix is shown in front of every console log line.
const logPrefix = "todopad"

// Logger provides leveled logging with verbose mode support.
type Logger struct {
	mu      sync.RWMutex
	verbose bool
	out     *log.Logger
	file    *os.File
}

var (
	loggerInstance *Logger
	once           sync.Once
)

// GetLogger returns the singleton logger instance.
func GetLogger() *Logger {
	once.Do(func() {
		loggerInstance = newLogger(os.Stderr)
	})
	return loggerInstance
}

func newLogger(w io.Writer) *Logger {
	return &Logger{
		out: log.NewWithOptions(w, log.Options{
			Level:  log.InfoLevel,
			Prefix: logPrefix,
		}),
	}
}

// SetVerboseMode sets the verbose mode globally.
func SetVerboseMode(verbose bool) {
	GetLogger().SetVerbose(verbose)
}

// SetVerbose sets the verbose mode for this logger instance.
// Verbose mode enables debug lines and timestamps.
func (l *Logger) SetVerbose(verbose bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = verbose
	if verbose {
		l.out.SetLevel(log.DebugLevel)
	} else {
		l.out.SetLevel(log.InfoLevel)
	}
	l.out.SetReportTimestamp(verbose)
	l.out.SetTimeFormat("15:04:05")
}

// IsVerbose returns whether verbose mode is enabled.
func (l *Logger) IsVerbose() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.verbose
}

// SetOutput redirects log output. Any file opened by LogToFile is closed.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closeFileLocked()
	l.out.SetOutput(w)
}

// LogToFile sends log output to path, appending. On failure the logger
// degrades to io.Discard and the error is returned. The interactive UI uses
// this so log lines never draw over the screen.
func (l *Logger) LogToFile(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closeFileLocked()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		l.out.SetOutput(io.Discard)
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		l.out.SetOutput(io.Discard)
		return fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	l.out.SetOutput(f)
	return nil
}

// Close closes the log file, if any, and falls back to stderr.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.closeFileLocked()
		l.out.SetOutput(os.Stderr)
	}
}

func (l *Logger) closeFileLocked() {
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}

// DefaultLogPath returns a PID-specific log file path in the temp directory.
func DefaultLogPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("todopad-%d.log", os.Getpid()))
}

// formatMessage formats a message with optional printf-style arguments.
func formatMessage(msgOrFormat string, args ...interface{}) string {
	if len(args) > 0 {
		return fmt.Sprintf(msgOrFormat, args...)
	}
	return msgOrFormat
}

// Debug logs a debug message (only shown when verbose=true).
func (l *Logger) Debug(msgOrFormat string, args ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.out.Debug(formatMessage(msgOrFormat, args...))
}

// Info logs an info message (always shown).
func (l *Logger) Info(msgOrFormat string, args ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.out.Info(formatMessage(msgOrFormat, args...))
}

// Warn logs a warning message (always shown).
func (l *Logger) Warn(msgOrFormat string, args ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.out.Warn(formatMessage(msgOrFormat, args...))
}

// Error logs an error message (always shown).
func (l *Logger) Error(msgOrFormat string, args ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.out.Error(formatMessage(msgOrFormat, args...))
}

// Debugf is a convenience function that logs a debug message using the global logger.
func Debugf(format string, args ...interface{}) {
	GetLogger().Debug(format, args...)
}

// Infof is a convenience function that logs an info message using the global logger.
func Infof(format string, args ...interface{}) {
	GetLogger().Info(format, args...)
}

// Warnf is a convenience function that logs a warning message using the global logger.
func Warnf(format string, args ...interface{}) {
	GetLogger().Warn(format, args...)
}

// Errorf is a convenience function that logs an error message using the global logger.
func Errorf(format string, args ...interface{}) {
	GetLogger().Error(format, args...)
}
