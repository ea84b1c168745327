package handler

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/nlogtree/core"
)

// MultiHandler sends log records to multiple handlers
type MultiHandler struct {
	handlers []Handler
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Handle passes the record to every handler, even when some of them fail,
// and returns the combined errors.
func (h *MultiHandler) Handle(rec core.Record) error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Handle(rec))
	}
	return err
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Close())
	}
	return err
}
