package core

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Level is a named severity with a numeric rank. Levels are ordered and
// compared by Rank only, so two levels with different names but the same
// rank are interchangeable.
type Level struct {
	Name string
	Rank int
}

// Predefined levels, in ascending order
var (
	// AllLevel enables every record
	AllLevel = Level{Name: "ALL", Rank: 0}
	// VerboseLevel for very detailed tracing output
	VerboseLevel = Level{Name: "VERBOSE", Rank: 300}
	// DebugLevel for detailed debugging information
	DebugLevel = Level{Name: "DEBUG", Rank: 500}
	// InfoLevel for general informational messages (default)
	InfoLevel = Level{Name: "INFO", Rank: 800}
	// WarnLevel for warning messages
	WarnLevel = Level{Name: "WARN", Rank: 900}
	// ErrorLevel for error messages
	ErrorLevel = Level{Name: "ERROR", Rank: 1200}
	// OffLevel disables every record
	OffLevel = Level{Name: "OFF", Rank: 2000}
)

// DefaultLevel is the level used by the root logger and by detached
// loggers until a level is set on them.
var DefaultLevel = InfoLevel

// Levels lists the predefined levels in ascending order
var Levels = []Level{AllLevel, VerboseLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel, OffLevel}

// NewLevel creates a custom level
func NewLevel(name string, rank int) Level {
	return Level{Name: name, Rank: rank}
}

// String returns the level name, or its rank when the level is unnamed
func (l Level) String() string {
	if l.Name == "" {
		return "LEVEL(" + strconv.Itoa(l.Rank) + ")"
	}
	return l.Name
}

// Key returns a value suitable for use as a map key. Levels with equal
// ranks share the same key.
func (l Level) Key() int {
	return l.Rank
}

// Equal reports whether l and o have the same rank
func (l Level) Equal(o Level) bool {
	return l.Rank == o.Rank
}

// Compare returns -1, 0 or +1 depending on whether l ranks below, equal
// to or above o.
func (l Level) Compare(o Level) int {
	return cmp.Compare(l.Rank, o.Rank)
}

// Less reports whether l ranks below o
func (l Level) Less(o Level) bool {
	return l.Rank < o.Rank
}

// AtLeast reports whether l ranks at or above o
func (l Level) AtLeast(o Level) bool {
	return l.Rank >= o.Rank
}

// LookupLevel returns the predefined level with the given rank. When no
// predefined level matches, an unnamed level with that rank is returned.
func LookupLevel(rank int) Level {
	for _, l := range Levels {
		if l.Rank == rank {
			return l
		}
	}
	return Level{Rank: rank}
}

// ParseLevel converts a level name or a numeric rank to a Level.
// Unknown names yield InfoLevel and an error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ALL":
		return AllLevel, nil
	case "VERBOSE", "TRACE":
		return VerboseLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "OFF":
		return OffLevel, nil
	}
	if rank, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return LookupLevel(rank), nil
	}
	return InfoLevel, fmt.Errorf("unknown level %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	if l.Name == "" {
		return []byte(strconv.Itoa(l.Rank)), nil
	}
	return []byte(l.Name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
