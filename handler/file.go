package handler

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/nlogtree/core"
	"github.com/philipp01105/nlogtree/formatter"
)

// FileHandler appends log records to a file. Rotation is left to
// external tools; Reopen can be used after a file has been moved away.
type FileHandler struct {
	filename        string
	file            *os.File
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	mu              sync.Mutex
	stats           *Stats
	async           *asyncQueue
	closed          bool
}

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: DefaultLevelPolicy)
	OverflowPolicy LevelPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// ErrFileClosed is returned when writing to a closed FileHandler
var ErrFileClosed = errors.New("file handler is closed")

// NewFileHandler creates a new file handler
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, errors.New("filename is required")
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}

	file, err := openLogFile(cfg.Filename)
	if err != nil {
		return nil, err
	}

	h := &FileHandler{
		filename:  cfg.Filename,
		file:      file,
		formatter: cfg.Formatter,
		stats:     NewStats(),
	}

	// Cache WriterFormatter for zero-alloc path
	h.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)

	if cfg.Async {
		h.async = newAsyncQueue(cfg.BufferSize, cfg.OverflowPolicy, cfg.BlockTimeout, cfg.DrainTimeout, h.stats, h.write)
	}

	return h, nil
}

func openLogFile(name string) (*os.File, error) {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// Handle processes a log record
func (h *FileHandler) Handle(rec core.Record) error {
	if h.async == nil {
		return h.write(&rec)
	}
	return h.async.enqueue(rec)
}

// write formats and writes a record
func (h *FileHandler) write(rec *core.Record) error {
	var data []byte
	if h.writerFormatter == nil {
		var err error
		if data, err = h.formatter.Format(rec); err != nil {
			return err
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrFileClosed
	}

	var err error
	if h.writerFormatter != nil {
		err = h.writerFormatter.FormatTo(rec, h.file)
	} else {
		_, err = h.file.Write(data)
	}
	if err == nil {
		h.stats.IncrementProcessed()
	}
	return err
}

// Reopen closes and reopens the file by name, picking up a new file if
// the old one was moved away by an external rotation tool.
func (h *FileHandler) Reopen() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrFileClosed
	}

	file, err := openLogFile(h.filename)
	if err != nil {
		return err
	}
	old := h.file
	h.file = file
	return old.Close()
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close drains the async queue and closes the file
func (h *FileHandler) Close() error {
	if h.async != nil {
		h.async.close()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	return multierr.Append(h.file.Sync(), h.file.Close())
}
