package logger

import (
	"context"
	"fmt"

	"github.com/philipp01105/nlogtree/core"
)

// Package-level convenience functions using the root logger. They call
// root.log directly so that captured stack traces start at the caller.

// Log logs msg at level on the root logger
func Log(level core.Level, msg any, opts ...Option) {
	if !root.Enabled(level) {
		return
	}
	root.log(context.Background(), level, msg, opts)
}

// LogContext logs msg at level with ctx on the root logger
func LogContext(ctx context.Context, level core.Level, msg any, opts ...Option) {
	if !root.Enabled(level) {
		return
	}
	root.log(ctx, level, msg, opts)
}

// Verbose logs a verbose message using the root logger
func Verbose(msg any, opts ...Option) {
	if !root.Enabled(core.VerboseLevel) {
		return
	}
	root.log(context.Background(), core.VerboseLevel, msg, opts)
}

// Debug logs a debug message using the root logger
func Debug(msg any, opts ...Option) {
	if !root.Enabled(core.DebugLevel) {
		return
	}
	root.log(context.Background(), core.DebugLevel, msg, opts)
}

// Info logs an info message using the root logger
func Info(msg any, opts ...Option) {
	if !root.Enabled(core.InfoLevel) {
		return
	}
	root.log(context.Background(), core.InfoLevel, msg, opts)
}

// Warn logs a warning message using the root logger
func Warn(msg any, opts ...Option) {
	if !root.Enabled(core.WarnLevel) {
		return
	}
	root.log(context.Background(), core.WarnLevel, msg, opts)
}

// Error logs an error message using the root logger
func Error(msg any, opts ...Option) {
	if !root.Enabled(core.ErrorLevel) {
		return
	}
	root.log(context.Background(), core.ErrorLevel, msg, opts)
}

// Debugf logs a formatted debug message using the root logger
func Debugf(format string, args ...any) {
	if !root.Enabled(core.DebugLevel) {
		return
	}
	root.log(context.Background(), core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs a formatted info message using the root logger
func Infof(format string, args ...any) {
	if !root.Enabled(core.InfoLevel) {
		return
	}
	root.log(context.Background(), core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a formatted warning message using the root logger
func Warnf(format string, args ...any) {
	if !root.Enabled(core.WarnLevel) {
		return
	}
	root.log(context.Background(), core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs a formatted error message using the root logger
func Errorf(format string, args ...any) {
	if !root.Enabled(core.ErrorLevel) {
		return
	}
	root.log(context.Background(), core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}
