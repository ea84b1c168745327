package logger

import (
	"sync/atomic"

	"github.com/philipp01105/nlogtree/core"
)

// Level Re-export type and predefined levels for convenience
type Level = core.Level

var (
	AllLevel     = core.AllLevel
	VerboseLevel = core.VerboseLevel
	DebugLevel   = core.DebugLevel
	InfoLevel    = core.InfoLevel
	WarnLevel    = core.WarnLevel
	ErrorLevel   = core.ErrorLevel
	OffLevel     = core.OffLevel
)

var (
	hierarchical    atomic.Bool
	stackTraceLevel atomic.Pointer[core.Level]
)

func init() {
	off := core.OffLevel
	stackTraceLevel.Store(&off)
}

// SetHierarchical switches between global mode (false, the default) and
// hierarchical mode. Existing level overrides are kept; they are simply
// ignored while global mode is active.
func SetHierarchical(enabled bool) {
	hierarchical.Store(enabled)
}

// Hierarchical reports whether hierarchical mode is enabled
func Hierarchical() bool {
	return hierarchical.Load()
}

// SetStackTraceLevel sets the level at or above which a stack trace is
// captured for records that were logged without one. OffLevel (the
// default) effectively disables capturing.
func SetStackTraceLevel(level core.Level) {
	stackTraceLevel.Store(&level)
}

// StackTraceLevel returns the current stack-trace capture threshold
func StackTraceLevel() core.Level {
	return *stackTraceLevel.Load()
}

// ParseLevel converts a level name or numeric rank to a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}
