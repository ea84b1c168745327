package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/philipp01105/nlogtree/core"
	"github.com/philipp01105/nlogtree/logger"
)

// LoggerKey is the top-level slog attribute that selects the logger a
// record is routed to. Its value is a dotted name relative to the
// handler's logger.
const LoggerKey = "logger"

// SlogHandler implements slog.Handler on top of a logger of the tree.
// Level checks use the logger's effective level, and attributes are
// appended to the message as key=value pairs. An attribute whose value is
// an error becomes the record's error.
//
// A LoggerKey attribute routes records to a descendant: With(LoggerKey,
// "db") on a handler for "app" logs through "app.db", and so does passing
// the attribute to a single call. slog checks Enabled before it sees
// per-call attributes, so such records must also pass the handler's own
// logger. Handlers on detached loggers cannot route and keep the
// attribute in the message.
type SlogHandler struct {
	logger *logger.Logger
	attrs  []slog.Attr
	group  string
}

var _ slog.Handler = (*SlogHandler)(nil)

// SlogMessage is the object of records produced by SlogHandler
type SlogMessage struct {
	Message string
	// Attrs holds the attributes with group names folded into dotted keys
	Attrs []SlogAttr
}

// SlogAttr is a flattened slog attribute
type SlogAttr struct {
	Key   string
	Value any
}

// String renders the message followed by " key=value" for every attribute
func (m SlogMessage) String() string {
	var b strings.Builder
	b.WriteString(m.Message)
	for _, a := range m.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteByte('=')
		fmt.Fprint(&b, a.Value)
	}
	return b.String()
}

// NewSlogHandler creates a new slog.Handler that logs through l
func NewSlogHandler(l *logger.Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// Logger returns the logger records are sent to
func (s *SlogHandler) Logger() *logger.Logger {
	return s.logger
}

// LevelFromSlog maps a slog level onto the predefined levels. Levels
// below slog.LevelDebug map to VerboseLevel.
func LevelFromSlog(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.VerboseLevel
	}
}

// Enabled reports whether the logger accepts records at the given level
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.logger.Enabled(LevelFromSlog(level))
}

// Handle converts a slog.Record and logs it with the record's context
// and time.
func (s *SlogHandler) Handle(ctx context.Context, record slog.Record) error {
	var (
		msg    = SlogMessage{Message: record.Message}
		err    error
		target = s.logger
	)

	appendAttr := func(group string, a slog.Attr) {
		a.Value = a.Value.Resolve()
		if e, ok := a.Value.Any().(error); ok && err == nil {
			err = e
			return
		}
		msg.Attrs = flattenAttr(msg.Attrs, group, a)
	}
	// Attributes from WithAttrs are already wrapped in their groups
	for _, a := range s.attrs {
		appendAttr("", a)
	}
	record.Attrs(func(a slog.Attr) bool {
		if s.group == "" && a.Key == LoggerKey {
			if l, ok := s.route(a.Value); ok {
				target = l
				return true
			}
		}
		appendAttr(s.group, a)
		return true
	})

	opts := []logger.Option{logger.WithTime(record.Time)}
	if err != nil {
		opts = append(opts, logger.WithError(err))
	}
	target.LogContext(ctx, LevelFromSlog(record.Level), msg, opts...)
	return nil
}

// route resolves a LoggerKey value below the handler's logger
func (s *SlogHandler) route(v slog.Value) (*logger.Logger, bool) {
	v = v.Resolve()
	if v.Kind() != slog.KindString || s.logger.IsDetached() {
		return nil, false
	}
	name := v.String()
	if !s.logger.IsRoot() {
		name = s.logger.FullName() + "." + name
	}
	l, err := logger.Get(name)
	if err != nil {
		return nil, false
	}
	return l, true
}

// flattenAttr appends a to attrs, folding groups into dotted keys
func flattenAttr(attrs []SlogAttr, group string, a slog.Attr) []SlogAttr {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return attrs
	}
	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			attrs = flattenAttr(attrs, key, ga)
		}
		return attrs
	}
	return append(attrs, SlogAttr{Key: key, Value: a.Value.Any()})
}

// WithAttrs returns a new SlogHandler with additional attributes. A
// top-level LoggerKey attribute switches the handler to that logger.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return s
	}
	target := s.logger
	newAttrs := make([]slog.Attr, 0, len(s.attrs)+len(attrs))
	newAttrs = append(newAttrs, s.attrs...)
	for _, a := range attrs {
		if s.group == "" && a.Key == LoggerKey {
			if l, ok := (&SlogHandler{logger: target}).route(a.Value); ok {
				target = l
				continue
			}
		}
		if s.group != "" {
			a = slog.Attr{Key: s.group, Value: slog.GroupValue(a)}
		}
		newAttrs = append(newAttrs, a)
	}
	return &SlogHandler{
		logger: target,
		attrs:  newAttrs,
		group:  s.group,
	}
}

// WithGroup returns a new SlogHandler that qualifies later attribute keys
// with name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		logger: s.logger,
		attrs:  s.attrs,
		group:  newGroup,
	}
}
