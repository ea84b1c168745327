package logger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/philipp01105/nlogtree/core"
)

// callerSkip is the number of frames between a public log method and
// the call to core.CaptureStack in log.
const callerSkip = 2

// Logger is a named node in the logger tree
type Logger struct {
	name     string
	fullName string
	parent   *Logger
	detached bool

	mu       sync.RWMutex
	children map[string]*Logger
	level    *core.Level // nil inherits

	// setMu serializes level mutations, including their notification
	setMu sync.Mutex

	records      stream[core.Record]
	levelChanges stream[core.Level]
}

func newLogger(name, fullName string, parent *Logger, detached bool) *Logger {
	return &Logger{
		name:     name,
		fullName: fullName,
		parent:   parent,
		detached: detached,
		children: make(map[string]*Logger),
	}
}

// Name returns the last segment of the logger's name
func (l *Logger) Name() string {
	return l.name
}

// FullName returns the dotted path from the root to this logger
func (l *Logger) FullName() string {
	return l.fullName
}

// Parent returns the parent logger, or nil for the root and for detached
// loggers.
func (l *Logger) Parent() *Logger {
	return l.parent
}

// IsRoot reports whether l is the root logger
func (l *Logger) IsRoot() bool {
	return l == root
}

// IsDetached reports whether l was created by NewDetached
func (l *Logger) IsDetached() bool {
	return l.detached
}

// Child returns the direct child with the given segment name
func (l *Logger) Child(name string) (*Logger, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.children[name]
	return c, ok
}

// ChildNames returns the segment names of the direct children, sorted
func (l *Logger) ChildNames() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Sorted(maps.Keys(l.children))
}

// Children returns a copy of the children map. Modifying the copy does
// not affect the hierarchy.
func (l *Logger) Children() map[string]*Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return maps.Clone(l.children)
}

// OwnLevel returns the level set directly on l, if any
func (l *Logger) OwnLevel() (core.Level, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level == nil {
		return core.Level{}, false
	}
	return *l.level, true
}

// Level returns the effective level of l.
//
// Detached loggers always use their own level. In global mode every
// attached logger uses the root's level; in hierarchical mode a logger
// uses its own level or that of its nearest ancestor with one.
func (l *Logger) Level() core.Level {
	if !l.detached && !Hierarchical() {
		return root.resolved()
	}
	return l.resolved()
}

// resolved walks up from l to the nearest logger with a level set
func (l *Logger) resolved() core.Level {
	for n := l; n != nil; n = n.parent {
		if lvl, ok := n.OwnLevel(); ok {
			return lvl
		}
	}
	return core.DefaultLevel
}

// SetLevel sets the level of l. Non-root attached loggers only accept a
// level while hierarchical mode is enabled.
func (l *Logger) SetLevel(level core.Level) error {
	return l.setLevel(&level)
}

// ClearLevel removes the level of l so that it inherits from its
// ancestors. The root and detached loggers must always carry a level.
func (l *Logger) ClearLevel() error {
	if l.parent == nil {
		return fmt.Errorf("%w: logger %q has no parent to inherit a level from", ErrUnsupported, l.fullName)
	}
	return l.setLevel(nil)
}

func (l *Logger) setLevel(level *core.Level) error {
	if l.parent != nil && !Hierarchical() {
		return fmt.Errorf("%w: enable hierarchical mode to change the level of %q", ErrUnsupported, l.fullName)
	}
	// While a level-change handler runs, its caller holds setMu.
	if l.levelChanges.inFlight() {
		return fmt.Errorf("%w: logger %q", ErrReentrant, l.fullName)
	}
	l.setMu.Lock()
	defer l.setMu.Unlock()

	before := l.resolved()
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()

	if after := l.resolved(); !after.Equal(before) {
		l.levelChanges.emit(after)
	}
	return nil
}

// Enabled reports whether a record at level would be logged by l
func (l *Logger) Enabled(level core.Level) bool {
	return level.AtLeast(l.Level())
}

// OnRecord registers fn to receive every record delivered to l
func (l *Logger) OnRecord(fn func(core.Record)) *Subscription {
	return l.records.subscribe(fn)
}

// OnLevelChange registers fn to receive the new level whenever the level
// of l changes. fn must not change the level of l.
func (l *Logger) OnLevelChange(fn func(core.Level)) *Subscription {
	return l.levelChanges.subscribe(fn)
}

// ClearListeners cancels every record and level-change subscription on l.
// Other loggers are unaffected.
func (l *Logger) ClearListeners() {
	l.records.clear()
	l.levelChanges.clear()
}

// HasListeners reports whether l has at least one record subscription
func (l *Logger) HasListeners() bool {
	return l.records.hasListeners()
}

// Log logs msg at level. msg may be a Thunk, func() any or func() string,
// which is only evaluated if the record is going to be delivered.
func (l *Logger) Log(level core.Level, msg any, opts ...Option) {
	if !l.Enabled(level) {
		return
	}
	l.log(context.Background(), level, msg, opts)
}

// LogContext is like Log but records ctx as the record's context
func (l *Logger) LogContext(ctx context.Context, level core.Level, msg any, opts ...Option) {
	if !l.Enabled(level) {
		return
	}
	l.log(ctx, level, msg, opts)
}

// log builds the record and dispatches it. Callers have already done the
// level check.
func (l *Logger) log(ctx context.Context, level core.Level, msg any, opts []Option) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	object := resolve(msg)

	if o.stack == nil && level.AtLeast(StackTraceLevel()) {
		o.stack = core.CaptureStack(callerSkip)
		if o.err == nil {
			o.err = core.ErrStackCaptured
		}
	}

	rec := core.NewRecord(ctx, level, render(object), object, l.fullName, o.err, o.stack)
	if o.hasTime {
		rec.Time = o.time
	}
	l.dispatch(rec)
}

// dispatch delivers rec to l and, in hierarchical mode, to each ancestor
func (l *Logger) dispatch(rec core.Record) {
	l.records.deliver(rec)
	if l.detached || !Hierarchical() {
		return
	}
	for p := l.parent; p != nil; p = p.parent {
		p.records.deliver(rec)
	}
}

// Verbose logs a verbose message
func (l *Logger) Verbose(msg any, opts ...Option) {
	if !l.Enabled(core.VerboseLevel) {
		return
	}
	l.log(context.Background(), core.VerboseLevel, msg, opts)
}

// Debug logs a debug message
func (l *Logger) Debug(msg any, opts ...Option) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(context.Background(), core.DebugLevel, msg, opts)
}

// Info logs an info message
func (l *Logger) Info(msg any, opts ...Option) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(context.Background(), core.InfoLevel, msg, opts)
}

// Warn logs a warning message
func (l *Logger) Warn(msg any, opts ...Option) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	l.log(context.Background(), core.WarnLevel, msg, opts)
}

// Error logs an error message
func (l *Logger) Error(msg any, opts ...Option) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(context.Background(), core.ErrorLevel, msg, opts)
}

// VerboseContext logs a verbose message with ctx
func (l *Logger) VerboseContext(ctx context.Context, msg any, opts ...Option) {
	if !l.Enabled(core.VerboseLevel) {
		return
	}
	l.log(ctx, core.VerboseLevel, msg, opts)
}

// DebugContext logs a debug message with ctx
func (l *Logger) DebugContext(ctx context.Context, msg any, opts ...Option) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(ctx, core.DebugLevel, msg, opts)
}

// InfoContext logs an info message with ctx
func (l *Logger) InfoContext(ctx context.Context, msg any, opts ...Option) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(ctx, core.InfoLevel, msg, opts)
}

// WarnContext logs a warning message with ctx
func (l *Logger) WarnContext(ctx context.Context, msg any, opts ...Option) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	l.log(ctx, core.WarnLevel, msg, opts)
}

// ErrorContext logs an error message with ctx
func (l *Logger) ErrorContext(ctx context.Context, msg any, opts ...Option) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(ctx, core.ErrorLevel, msg, opts)
}

// Verbosef logs a verbose message with formatting
func (l *Logger) Verbosef(format string, args ...any) {
	if !l.Enabled(core.VerboseLevel) {
		return
	}
	l.log(context.Background(), core.VerboseLevel, fmt.Sprintf(format, args...), nil)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...any) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(context.Background(), core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...any) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(context.Background(), core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...any) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	l.log(context.Background(), core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...any) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(context.Background(), core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// String returns the full name, or "<root>" for the root logger
func (l *Logger) String() string {
	if l.fullName == "" {
		return "<root>"
	}
	return l.fullName
}
