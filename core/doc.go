// Package core defines the shared types used across nlogtree.
//
// It provides the Level type for severity filtering and the Record type
// that represents a single, already-filtered log event. Both are plain
// values: a Level is compared by rank only, and a Record is handed to
// subscribers by value so that no subscriber can observe another one's
// modifications.
//
// Records carry the context.Context that was active at the call site.
// The context is metadata only and is never used for scheduling; WithScope
// tags a context with a random scope id so that records emitted from the
// same unit of work can be correlated by the handlers.
//
// Stack traces are captured with CaptureStack. Capturing walks the
// goroutine stack and is comparatively expensive, which is why the logger
// package only does it above a configurable threshold.
package core
