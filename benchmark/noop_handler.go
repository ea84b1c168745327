package benchmark

import (
	"github.com/philipp01105/nlogtree/core"
	"github.com/philipp01105/nlogtree/handler"
)

type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Handle(rec core.Record) error {
	_ = len(rec.Message)
	return nil
}

func (h *noopHandler) Close() error {
	return nil
}
