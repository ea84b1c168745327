// Package benchmark compares the logger tree with zap, zerolog, logrus
// and log/slog, and measures hierarchy-specific paths such as level
// resolution and upward propagation. It only contains benchmarks.
package benchmark
