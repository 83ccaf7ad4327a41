package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Options configures the global logger.
type Options struct {
	Debug bool
}

var singleton *log.Logger

// Init initializes the global logger. This must be called before using any
// logging functions; calls before Init are dropped.
func Init(opts Options) {
	level := log.InfoLevel
	if opts.Debug {
		level = log.DebugLevel
	}
	singleton = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}

// Debug writes a message at DEBUG level.
func Debug(message string, keyvals ...any) {
	if singleton == nil {
		return
	}
	singleton.Debug(message, keyvals...)
}

// Info writes a message at INFO level.
func Info(message string, keyvals ...any) {
	if singleton == nil {
		return
	}
	singleton.Info(message, keyvals...)
}

// Warn writes a message at WARN level.
func Warn(message string, keyvals ...any) {
	if singleton == nil {
		return
	}
	singleton.Warn(message, keyvals...)
}

// Error writes a message at ERROR level.
func Error(message string, keyvals ...any) {
	if singleton == nil {
		return
	}
	singleton.Error(message, keyvals...)
}

// Fatal writes a message at FATAL level and terminates the program.
func Fatal(message string, keyvals ...any) {
	if singleton == nil {
		os.Exit(1)
	}
	singleton.Fatal(message, keyvals...)
}
