package formatter

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/philipp01105/nlogtree/core"
)

// TextFormatter formats log records as human-readable text
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextFormatter{Config: cfg}
}

// Format formats a record as text
func (f *TextFormatter) Format(rec *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(rec, buf)

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record and writes it directly to the writer
func (f *TextFormatter) FormatTo(rec *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(rec, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// pre-formatted level strings of the predefined levels
var levelBrackets = func() map[core.Level]string {
	m := make(map[core.Level]string, len(core.Levels))
	for _, l := range core.Levels {
		m[l] = " [" + l.Name + "] "
	}
	return m
}()

func (f *TextFormatter) formatToBuffer(rec *core.Record, buf *bytes.Buffer) {
	buf.Write(rec.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	if s, ok := levelBrackets[rec.Level]; ok {
		buf.WriteString(s)
	} else {
		buf.WriteString(" [")
		buf.WriteString(rec.Level.String())
		buf.WriteString("] ")
	}

	if f.IncludeCaller && len(rec.StackTrace) > 0 {
		caller := rec.StackTrace.Caller()
		buf.WriteByte('[')
		buf.WriteString(caller.ShortFile)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(caller.Line))
		buf.WriteString("] ")
	}

	if rec.LoggerName != "" {
		buf.WriteString(rec.LoggerName)
		buf.WriteString(": ")
	}
	buf.WriteString(rec.Message)

	if rec.Err != nil {
		buf.WriteString(" error=")
		buf.WriteString(strconv.Quote(rec.Err.Error()))
	}
	if id := rec.ScopeID(); id != "" {
		buf.WriteString(" scope=")
		buf.WriteString(id)
	}
	buf.WriteByte('\n')

	if f.IncludeStackTrace && len(rec.StackTrace) > 0 {
		for _, line := range strings.Split(rec.StackTrace.String(), "\n") {
			buf.WriteString("    ")
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
}
