// Package logger is the public API of nlogtree. Most users only need to
// import this package.
//
// Loggers form a tree addressed by dotted names. Get returns the one
// logger registered under a name, creating it and any missing ancestors
// on first use:
//
//	db := logger.MustGet("app.storage.db")
//	db.Info("connected")
//
// Records only reach subscribers. A logger with no subscribers (and, in
// hierarchical mode, no ancestors with subscribers) drops everything; the
// handler package provides console, file, zap and slog sinks that attach
// to a logger's record stream.
//
// Filtering works in one of two modes. In the default global mode every
// attached logger uses the root logger's level and only the root's level
// can be changed. After SetHierarchical(true) each logger may carry its
// own level; loggers without one inherit from the nearest ancestor that
// has one, and records also propagate to the subscribers of every
// ancestor up to the root.
//
// Messages may be passed as a func() any, func() string or Thunk. The
// function is called only after the level check succeeds, so filtered-out
// calls cost a level comparison and nothing else:
//
//	log.Debug(func() any { return expensiveDump(state) })
//
// Delivery is synchronous: Log returns after every subscriber has run.
package logger
