package formatter

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/philipp01105/nlogtree/core"
)

// JSONFormatter formats log records as JSON, one object per line
type JSONFormatter struct {
	Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339Nano
	}
	return &JSONFormatter{Config: cfg}
}

// Format formats a record as JSON
func (f *JSONFormatter) Format(rec *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatJSONToBuffer(rec, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record as JSON and writes it directly to the writer
func (f *JSONFormatter) FormatTo(rec *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatJSONToBuffer(rec, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// formatJSONToBuffer builds JSON manually into the buffer without allocations
func (f *JSONFormatter) formatJSONToBuffer(rec *core.Record, buf *bytes.Buffer) {
	buf.WriteString(`{"time":"`)
	buf.Write(rec.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	buf.WriteString(`","level":"`)
	appendJSONString(buf, rec.Level.String())
	buf.WriteString(`","rank":`)
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(rec.Level.Rank), 10))

	buf.WriteString(`,"logger":"`)
	appendJSONString(buf, rec.LoggerName)

	buf.WriteString(`","message":"`)
	appendJSONString(buf, rec.Message)
	buf.WriteString(`","seq":`)
	buf.Write(strconv.AppendUint(buf.AvailableBuffer(), rec.Sequence, 10))

	if rec.Err != nil {
		buf.WriteString(`,"error":"`)
		appendJSONString(buf, rec.Err.Error())
		buf.WriteByte('"')
	}

	if id := rec.ScopeID(); id != "" {
		buf.WriteString(`,"scope":"`)
		appendJSONString(buf, id)
		buf.WriteByte('"')
	}

	if f.IncludeCaller && len(rec.StackTrace) > 0 {
		caller := rec.StackTrace.Caller()
		buf.WriteString(`,"caller":{"file":"`)
		appendJSONString(buf, caller.ShortFile)
		buf.WriteString(`","line":`)
		buf.WriteString(strconv.Itoa(caller.Line))
		if caller.Function != "" {
			buf.WriteString(`,"function":"`)
			appendJSONString(buf, caller.Function)
			buf.WriteByte('"')
		}
		buf.WriteByte('}')
	}

	if f.IncludeStackTrace && len(rec.StackTrace) > 0 {
		buf.WriteString(`,"stack":"`)
		appendJSONString(buf, rec.StackTrace.String())
		buf.WriteByte('"')
	}

	buf.WriteString("}\n")
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		// Flush unescaped prefix
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	// Flush remaining
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
