package handler

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"github.com/philipp01105/nlogtree/core"
)

// PtermHandler prints records for humans using pterm's prefix printers.
// Colors follow pterm's global styling settings.
type PtermHandler struct {
	writer io.Writer
	mu     sync.Mutex
	stats  *Stats
}

// NewPtermHandler creates a handler that writes to w (default: os.Stdout)
func NewPtermHandler(w io.Writer) *PtermHandler {
	if w == nil {
		w = os.Stdout
	}
	return &PtermHandler{writer: w, stats: NewStats()}
}

// printerFor picks the prefix printer of the band a level falls into
func printerFor(level core.Level) *pterm.PrefixPrinter {
	switch {
	case level.AtLeast(core.ErrorLevel):
		return &pterm.Error
	case level.AtLeast(core.WarnLevel):
		return &pterm.Warning
	case level.AtLeast(core.InfoLevel):
		return &pterm.Info
	default:
		// pterm.Debug is silenced unless pterm.PrintDebugMessages is set
		return pterm.Debug.WithDebugger(false)
	}
}

// Handle prints rec as "logger: message" behind the level's prefix
func (h *PtermHandler) Handle(rec core.Record) error {
	var b strings.Builder
	if rec.LoggerName != "" {
		b.WriteString(rec.LoggerName)
		b.WriteString(": ")
	}
	b.WriteString(rec.Message)
	if rec.Err != nil {
		b.WriteString(" error=")
		b.WriteString(strconv.Quote(rec.Err.Error()))
	}
	if id := rec.ScopeID(); id != "" {
		b.WriteString(" scope=")
		b.WriteString(id)
	}

	line := printerFor(rec.Level).Sprintln(b.String())
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}

	h.mu.Lock()
	_, err := io.WriteString(h.writer, line)
	h.mu.Unlock()
	if err == nil {
		h.stats.IncrementProcessed()
	}
	return err
}

// Stats returns a snapshot of the current statistics
func (h *PtermHandler) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close is a no-op; the writer is not closed
func (h *PtermHandler) Close() error {
	return nil
}
