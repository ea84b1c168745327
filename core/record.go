package core

import (
	"context"
	"strings"
	"sync/atomic"
	"time"
)

// sequence numbers every record built by NewRecord in this process
var sequence atomic.Uint64

// Record is an immutable snapshot of one logging event
type Record struct {
	Level   Level
	Message string
	// Object is the logged value before rendering. For lazily evaluated
	// messages it holds the value the thunk returned.
	Object     any
	LoggerName string
	Time       time.Time
	Err        error
	StackTrace StackTrace
	// Context is the context that was active at the call site
	Context  context.Context
	Sequence uint64
}

// NewRecord builds a record stamped with the current time and the next
// sequence number. A nil ctx is replaced with context.Background.
func NewRecord(ctx context.Context, level Level, message string, object any, loggerName string, err error, stack StackTrace) Record {
	if ctx == nil {
		ctx = context.Background()
	}
	return Record{
		Level:      level,
		Message:    message,
		Object:     object,
		LoggerName: loggerName,
		Time:       Now(),
		Err:        err,
		StackTrace: stack,
		Context:    ctx,
		Sequence:   sequence.Add(1),
	}
}

// ScopeID returns the scope id of the record's context, if any
func (r Record) ScopeID() string {
	return ScopeID(r.Context)
}

// String renders the record as "[LEVEL] logger: message"
func (r Record) String() string {
	var b strings.Builder
	b.Grow(len(r.Message) + len(r.LoggerName) + 16)
	b.WriteByte('[')
	b.WriteString(r.Level.String())
	b.WriteString("] ")
	b.WriteString(r.LoggerName)
	b.WriteString(": ")
	b.WriteString(r.Message)
	return b.String()
}
