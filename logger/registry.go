package logger

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	registryMu sync.Mutex
	registry   = make(map[string]*Logger)
	root       = newLogger("", "", nil, false)
)

func init() {
	registry[""] = root
}

// Root returns the root logger
func Root() *Logger {
	return root
}

// Get returns the logger registered under fullName, creating it and every
// missing ancestor on first use. The same name always yields the same
// *Logger. The empty name denotes the root logger.
func Get(fullName string) (*Logger, error) {
	if fullName == "" {
		return root, nil
	}
	if err := ValidateName(fullName); err != nil {
		return nil, err
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	return getLocked(fullName), nil
}

// MustGet is like Get but panics if fullName is invalid
func MustGet(fullName string) *Logger {
	l, err := Get(fullName)
	if err != nil {
		panic(err)
	}
	return l
}

// getLocked must be called with registryMu held and a validated name
func getLocked(fullName string) *Logger {
	if l, ok := registry[fullName]; ok {
		return l
	}

	parent, name := root, fullName
	if i := strings.LastIndexByte(fullName, '.'); i >= 0 {
		parent = getLocked(fullName[:i])
		name = fullName[i+1:]
	}

	l := newLogger(name, fullName, parent, false)
	parent.mu.Lock()
	parent.children[name] = l
	parent.mu.Unlock()
	registry[fullName] = l
	return l
}

// NewDetached creates a logger that is not part of the hierarchy. It has
// no parent and no children, ignores the mode switch and the root level,
// and every call returns a new instance.
func NewDetached(name string) (*Logger, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return newLogger(name, name, nil, true), nil
}

// Attached returns every registered logger, root included, sorted by
// full name.
func Attached() []*Logger {
	registryMu.Lock()
	loggers := make([]*Logger, 0, len(registry))
	for _, l := range registry {
		loggers = append(loggers, l)
	}
	registryMu.Unlock()

	slices.SortFunc(loggers, func(a, b *Logger) int {
		return strings.Compare(a.fullName, b.fullName)
	})
	return loggers
}

// ValidateName reports whether name is a valid logger name. Every
// dot-separated segment must be non-empty.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	case strings.HasPrefix(name, "."), strings.HasSuffix(name, "."):
		return fmt.Errorf("%w: %q must not start or end with '.'", ErrInvalidName, name)
	case strings.Contains(name, ".."):
		return fmt.Errorf("%w: %q contains an empty segment", ErrInvalidName, name)
	}
	return nil
}
