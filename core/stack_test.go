package core

import (
	"strings"
	"testing"
)

func TestCaptureStack(t *testing.T) {
	st := CaptureStack(0)
	if len(st) == 0 {
		t.Fatal("CaptureStack() returned an empty trace")
	}

	caller := st.Caller()
	if !caller.Defined {
		t.Fatal("Caller() returned undefined CallerInfo")
	}
	if !strings.HasSuffix(caller.Function, "TestCaptureStack") {
		t.Errorf("innermost frame = %q, want TestCaptureStack", caller.Function)
	}
	if caller.ShortFile != "stack_test.go" {
		t.Errorf("ShortFile = %q, want stack_test.go", caller.ShortFile)
	}
	if caller.Line == 0 {
		t.Error("Expected non-zero line number")
	}
}

func TestCaptureStack_Skip(t *testing.T) {
	st := captureFromHelper()
	if !strings.HasSuffix(st.Caller().Function, "TestCaptureStack_Skip") {
		t.Errorf("innermost frame = %q, want the helper to be skipped", st.Caller().Function)
	}
}

func captureFromHelper() StackTrace {
	return CaptureStack(1)
}

func TestStackTrace_String(t *testing.T) {
	s := CaptureStack(0).String()
	if !strings.Contains(s, "TestStackTrace_String") {
		t.Errorf("String() does not mention the test function:\n%s", s)
	}
	if !strings.Contains(s, "\n\t") {
		t.Errorf("String() should indent file:line entries:\n%s", s)
	}

	var empty StackTrace
	if empty.String() != "" {
		t.Error("empty trace should format as an empty string")
	}
	if empty.Caller().Defined {
		t.Error("empty trace should have no caller")
	}
}
