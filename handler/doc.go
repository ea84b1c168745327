// Package handler provides the Handler interface and its built-in
// implementations for writing log records to various outputs.
//
// Handlers are collaborators of the logger tree: Attach subscribes a
// handler to a logger's record stream, and from then on every record
// delivered to that logger is passed to Handle.
//
// ConsoleHandler and FileHandler support both synchronous and
// asynchronous operation. In async mode, records are sent to a bounded
// channel and processed by a background goroutine.
//
// When the async queue is full, each handler applies a per-level
// OverflowPolicy: DropNewest (default below ERROR), DropOldest, or Block
// with a configurable timeout (default for ERROR and above).
//
// Built-in handlers:
//
//   - ConsoleHandler writes formatted records to any io.Writer (default: stdout).
//   - FileHandler appends formatted records to a file.
//   - MultiHandler fans out a single record to multiple child handlers.
//   - ZapHandler forwards records to a go.uber.org/zap core.
//   - PtermHandler prints records with pterm's colored level prefixes.
//   - SlogHandler adapts a logger to log/slog.Handler, so code written
//     against the standard library logs into the tree.
//
// Console and file handlers track dropped, blocked, and processed counts
// via the Stats type, which can be queried at runtime for monitoring.
package handler
