package logger

import (
	"testing"

	"github.com/philipp01105/nlogtree/core"
)

// useMode switches the process-wide mode for the duration of a test and
// restores the mode, the root level and the stack-trace threshold after.
func useMode(t *testing.T, hierarchicalMode bool) {
	t.Helper()

	prevMode := Hierarchical()
	prevStack := StackTraceLevel()
	root.mu.RLock()
	prevRoot := root.level
	root.mu.RUnlock()

	SetHierarchical(hierarchicalMode)
	t.Cleanup(func() {
		SetHierarchical(prevMode)
		SetStackTraceLevel(prevStack)
		root.mu.Lock()
		root.level = prevRoot
		root.mu.Unlock()
		root.ClearListeners()
	})
}

// collect subscribes to l and appends every record it receives
func collect(t *testing.T, l *Logger, into *[]core.Record) {
	t.Helper()
	sub := l.OnRecord(func(r core.Record) {
		*into = append(*into, r)
	})
	t.Cleanup(sub.Cancel)
}
