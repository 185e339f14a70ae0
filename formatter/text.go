package formatter

import (
	"bytes"

	"github.com/quarryhill/logway/core"
)

// TextFormatter renders records as single human-readable lines:
//
//	2026-01-02 15:04:05,123 [ERROR] host01 myapp.views something failed user=alice
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = defaultTimestampFormat
	}
	return &TextFormatter{Config: cfg}
}

// pre-formatted level strings to avoid multiple WriteString calls
var levelBrackets = [...]string{
	core.DebugLevel:    " [DEBUG] ",
	core.InfoLevel:     " [INFO] ",
	core.WarningLevel:  " [WARNING] ",
	core.ErrorLevel:    " [ERROR] ",
	core.CriticalLevel: " [CRITICAL] ",
}

// Format renders the record as a text line terminated by '\n'. A stack
// trace, when present, follows on its own lines.
func (f *TextFormatter) Format(rec *core.Record) []byte {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(rec, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result
}

func (f *TextFormatter) formatToBuffer(rec *core.Record, buf *bytes.Buffer) {
	buf.Write(rec.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	if int(rec.Level) >= 0 && int(rec.Level) < len(levelBrackets) {
		buf.WriteString(levelBrackets[rec.Level])
	} else {
		buf.WriteString(" [UNKNOWN] ")
	}

	if rec.Machine != "" {
		buf.WriteString(rec.Machine)
		buf.WriteByte(' ')
	}
	if rec.Name != "" {
		buf.WriteString(rec.Name)
		buf.WriteByte(' ')
	}

	buf.WriteString(rec.Message)

	for _, field := range rec.Fields {
		buf.WriteByte(' ')
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		buf.WriteString(field.StringValue())
	}

	if rec.Err != nil {
		buf.WriteString(" error=")
		buf.WriteString(rec.Err.Message)
		if rec.Err.Stack != "" {
			buf.WriteByte('\n')
			buf.WriteString(rec.Err.Stack)
			if rec.Err.Stack[len(rec.Err.Stack)-1] == '\n' {
				buf.Truncate(buf.Len() - 1)
			}
		}
	}

	buf.WriteByte('\n')
}
