package logger

import (
	"os"
	"sync"
)

var (
	globalLogger *Logger
	globalMu     sync.RWMutex
	once         sync.Once
)

// GetLogger returns the global logger instance
func GetLogger() *Logger {
	once.Do(func() {
		globalMu.Lock()
		defer globalMu.Unlock()
		if globalLogger != nil {
			return
		}

		defaultLevel := "warn"
		if os.Getenv("DEBUG") == "true" {
			defaultLevel = "debug"
		} else if os.Getenv("LOG_LEVEL") != "" {
			defaultLevel = os.Getenv("LOG_LEVEL")
		}

		globalLogger = New(Config{
			Level:  defaultLevel,
			Format: "json",
			Output: "stdout",
		})
	})

	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetLogger replaces the global logger instance
func SetLogger(logger *Logger) {
	once.Do(func() {})
	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
	SetGlobalLogger(logger)
}

// Debug logs a debug message
func Debug(msg string) {
	GetLogger().Debug(msg)
}

// Info logs an info message
func Info(msg string) {
	GetLogger().Info(msg)
}

// Warn logs a warning message
func Warn(msg string) {
	GetLogger().Warn(msg)
}

// Error logs an error message
func Error(msg string) {
	GetLogger().Error(msg)
}

// WithField adds a field to the logger
func WithField(key string, value interface{}) *Logger {
	return GetLogger().WithField(key, value)
}

// WithError adds an error to the logger
func WithError(err error) *Logger {
	return GetLogger().WithError(err)
}
