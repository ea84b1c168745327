package formatter

import (
	"bytes"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/philipp01105/nlogtree/core"
)

// DefaultTemplate renders records like the text formatter without caller
// and stack information.
const DefaultTemplate = `{{ .Time | date "2006-01-02T15:04:05Z07:00" }} [{{ .Level }}] {{ with .LoggerName }}{{ . }}: {{ end }}{{ .Message }}{{ with .Err }} error={{ .Error | quote }}{{ end }}{{ with .ScopeID }} scope={{ . }}{{ end }}`

// TemplateFormatter renders records with a text/template. The template
// sees the *core.Record and the sprig function library; a trailing
// newline is added when the template does not end with one.
type TemplateFormatter struct {
	tmpl *template.Template
}

// NewTemplateFormatter parses text into a formatter. An empty text uses
// DefaultTemplate.
func NewTemplateFormatter(text string) (*TemplateFormatter, error) {
	if text == "" {
		text = DefaultTemplate
	}
	tmpl, err := template.New("record").Funcs(sprig.TxtFuncMap()).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, err
	}
	return &TemplateFormatter{tmpl: tmpl}, nil
}

// Format renders a record
func (f *TemplateFormatter) Format(rec *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := f.formatToBuffer(rec, buf); err != nil {
		return nil, err
	}
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo renders a record directly to w
func (f *TemplateFormatter) FormatTo(rec *core.Record, w io.Writer) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := f.formatToBuffer(rec, buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (f *TemplateFormatter) formatToBuffer(rec *core.Record, buf *bytes.Buffer) error {
	if err := f.tmpl.Execute(buf, rec); err != nil {
		return err
	}
	if b := buf.Bytes(); len(b) == 0 || b[len(b)-1] != '\n' {
		buf.WriteByte('\n')
	}
	return nil
}
