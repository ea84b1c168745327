package handler

import (
	"github.com/philipp01105/nlogtree/core"
	"github.com/philipp01105/nlogtree/logger"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log record
	Handle(rec core.Record) error

	// Close closes the handler and releases resources
	Close() error
}

// Attach subscribes h to the records delivered to l. Errors returned by
// Handle are passed to onError when it is non-nil. Cancel the returned
// subscription to detach the handler; the handler is not closed.
func Attach(l *logger.Logger, h Handler, onError func(error)) *logger.Subscription {
	return l.OnRecord(func(rec core.Record) {
		if err := h.Handle(rec); err != nil && onError != nil {
			onError(err)
		}
	})
}
