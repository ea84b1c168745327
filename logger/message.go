package logger

import (
	"fmt"
	"time"

	"github.com/philipp01105/nlogtree/core"
)

// Thunk produces a message on demand. It is only called for records that
// pass the level check.
type Thunk func() any

// Option adjusts a single log call
type Option func(*callOptions)

type callOptions struct {
	err     error
	stack   core.StackTrace
	time    time.Time
	hasTime bool
}

// WithError attaches err to the record
func WithError(err error) Option {
	return func(o *callOptions) {
		o.err = err
	}
}

// WithStackTrace attaches st to the record. An explicit trace disables
// automatic capturing for that call.
func WithStackTrace(st core.StackTrace) Option {
	return func(o *callOptions) {
		o.stack = st
	}
}

// WithTime stamps the record with t instead of the current time. A zero
// t is kept as is, for sources that report no time.
func WithTime(t time.Time) Option {
	return func(o *callOptions) {
		o.time = t
		o.hasTime = true
	}
}

// resolve calls msg if it is one of the supported thunk shapes
func resolve(msg any) any {
	switch fn := msg.(type) {
	case Thunk:
		return fn()
	case func() any:
		return fn()
	case func() string:
		return fn()
	}
	return msg
}

func render(object any) string {
	if s, ok := object.(string); ok {
		return s
	}
	return fmt.Sprint(object)
}
