package core

import (
	"errors"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// ErrStackCaptured accompanies an automatically captured stack trace when
// the caller did not supply an error of its own.
var ErrStackCaptured = errors.New("stack trace captured")

const maxStackDepth = 64

// StackTrace is a captured call stack, innermost frame first
type StackTrace []runtime.Frame

// CallerInfo contains information about a single frame
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// CaptureStack records the stack of the calling goroutine. skip is the
// number of frames to omit, with 0 identifying the caller of CaptureStack.
func CaptureStack(skip int) StackTrace {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	st := make(StackTrace, 0, n)
	for {
		frame, more := frames.Next()
		st = append(st, frame)
		if !more {
			break
		}
	}
	return st
}

// Caller returns the innermost frame of the trace
func (st StackTrace) Caller() CallerInfo {
	if len(st) == 0 {
		return CallerInfo{}
	}
	f := st[0]
	return CallerInfo{
		File:      f.File,
		ShortFile: filepath.Base(f.File),
		Line:      f.Line,
		Function:  f.Function,
		Defined:   true,
	}
}

// String formats the trace the way runtime/debug.Stack does: a function
// line followed by an indented file:line line per frame.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range st {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.Function)
		b.WriteString("\n\t")
		b.WriteString(f.File)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(f.Line))
	}
	return b.String()
}
