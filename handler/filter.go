package handler

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/philipp01105/nlogtree/core"
)

// filterEnv is what a filter expression can see of a record
type filterEnv struct {
	Level     int    `expr:"level"`
	LevelName string `expr:"level_name"`
	Logger    string `expr:"logger"`
	Message   string `expr:"message"`
	Error     string `expr:"err"`
	Scope     string `expr:"scope"`
	Seq       uint64 `expr:"seq"`

	Verbose int `expr:"VERBOSE"`
	Debug   int `expr:"DEBUG"`
	Info    int `expr:"INFO"`
	Warn    int `expr:"WARN"`
	Err     int `expr:"ERROR"`
}

func newFilterEnv(rec *core.Record) filterEnv {
	env := filterEnv{
		Level:     rec.Level.Rank,
		LevelName: rec.Level.String(),
		Logger:    rec.LoggerName,
		Message:   rec.Message,
		Scope:     rec.ScopeID(),
		Seq:       rec.Sequence,
		Verbose:   core.VerboseLevel.Rank,
		Debug:     core.DebugLevel.Rank,
		Info:      core.InfoLevel.Rank,
		Warn:      core.WarnLevel.Rank,
		Err:       core.ErrorLevel.Rank,
	}
	if rec.Err != nil {
		env.Error = rec.Err.Error()
	}
	return env
}

// FilterHandler passes records to another handler only when a boolean
// expression (github.com/expr-lang/expr) holds for them, for example
//
//	level >= WARN && logger startsWith "app.db"
//	message contains "timeout" || err != ""
type FilterHandler struct {
	program *vm.Program
	next    Handler
}

// NewFilterHandler compiles expression and wraps next
func NewFilterHandler(expression string, next Handler) (*FilterHandler, error) {
	program, err := expr.Compile(expression, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter: %w", err)
	}
	return &FilterHandler{program: program, next: next}, nil
}

// Match reports whether rec satisfies the filter expression
func (h *FilterHandler) Match(rec *core.Record) (bool, error) {
	out, err := expr.Run(h.program, newFilterEnv(rec))
	if err != nil {
		return false, err
	}
	return out.(bool), nil
}

// Handle forwards rec when it matches
func (h *FilterHandler) Handle(rec core.Record) error {
	ok, err := h.Match(&rec)
	if err != nil || !ok {
		return err
	}
	return h.next.Handle(rec)
}

// Close closes the wrapped handler
func (h *FilterHandler) Close() error {
	return h.next.Close()
}
