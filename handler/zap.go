package handler

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/nlogtree/core"
)

// ZapHandler forwards records to a zapcore.Core, so the tree can feed an
// existing zap pipeline.
type ZapHandler struct {
	core zapcore.Core
}

// NewZapHandler creates a handler that writes to c
func NewZapHandler(c zapcore.Core) *ZapHandler {
	return &ZapHandler{core: c}
}

// NewZapHandlerFromLogger creates a handler that writes to the core of l
func NewZapHandlerFromLogger(l *zap.Logger) *ZapHandler {
	return &ZapHandler{core: l.Core()}
}

// ZapLevel maps a level onto the closest zap level. Levels below DEBUG
// map to zap's DebugLevel and levels at or above ERROR to ErrorLevel.
func ZapLevel(level core.Level) zapcore.Level {
	switch {
	case level.AtLeast(core.ErrorLevel):
		return zapcore.ErrorLevel
	case level.AtLeast(core.WarnLevel):
		return zapcore.WarnLevel
	case level.AtLeast(core.InfoLevel):
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Handle writes rec to the zap core if the core accepts its level
func (h *ZapHandler) Handle(rec core.Record) error {
	lvl := ZapLevel(rec.Level)
	if !h.core.Enabled(lvl) {
		return nil
	}

	entry := zapcore.Entry{
		Level:      lvl,
		Time:       rec.Time,
		LoggerName: rec.LoggerName,
		Message:    rec.Message,
		Stack:      rec.StackTrace.String(),
	}
	if len(rec.StackTrace) > 0 {
		c := rec.StackTrace.Caller()
		entry.Caller = zapcore.NewEntryCaller(0, c.File, c.Line, true)
		entry.Caller.Function = c.Function
	}

	fields := make([]zapcore.Field, 0, 4)
	fields = append(fields, zap.String("level_name", rec.Level.String()), zap.Uint64("seq", rec.Sequence))
	if rec.Err != nil {
		fields = append(fields, zap.Error(rec.Err))
	}
	if id := rec.ScopeID(); id != "" {
		fields = append(fields, zap.String("scope", id))
	}

	return h.core.Write(entry, fields)
}

// Close flushes the zap core
func (h *ZapHandler) Close() error {
	return h.core.Sync()
}
