package formatter

import (
	"bytes"
	"html"

	"github.com/quarryhill/logway/core"
)

// htmlColor maps a severity to the color used in email bodies.
func htmlColor(level core.Level) string {
	switch level {
	case core.CriticalLevel, core.ErrorLevel:
		return "#EE0000"
	case core.WarningLevel:
		return "#DAA520"
	case core.InfoLevel:
		return "#228B22"
	case core.DebugLevel:
		return "#D0D2C4"
	default:
		return "#000"
	}
}

// HTMLFormatter renders records as an HTML table for email delivery.
type HTMLFormatter struct {
	Config
}

// NewHTMLFormatter creates a new HTML formatter
func NewHTMLFormatter(cfg Config) *HTMLFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = defaultTimestampFormat
	}
	return &HTMLFormatter{Config: cfg}
}

// Format renders the record as an HTML document embedding severity,
// timestamp, logger name, message, the stack trace when present, and a
// marker for any attachment carried by the record.
func (f *HTMLFormatter) Format(rec *core.Record) []byte {
	buf := getBuffer()
	defer putBuffer(buf)

	color := htmlColor(rec.Level)

	buf.WriteString("<html><body><table>")
	writeRow(buf, "Severity", `<span style="color:`+color+`;">`+rec.Level.String()+"</span>")
	writeRow(buf, "Time", html.EscapeString(rec.Time.Format(f.TimestampFormat)))
	if rec.Machine != "" {
		writeRow(buf, "Machine", html.EscapeString(rec.Machine))
	}
	if rec.Name != "" {
		writeRow(buf, "Logger", html.EscapeString(rec.Name))
	}
	writeRow(buf, "Message", html.EscapeString(rec.Message))
	for _, field := range rec.Fields {
		writeRow(buf, html.EscapeString(field.Key), html.EscapeString(field.StringValue()))
	}
	buf.WriteString("</table>")

	if rec.Err != nil {
		buf.WriteString(`<pre style="color:` + color + `;">`)
		buf.WriteString(html.EscapeString(rec.Err.Message))
		if rec.Err.Stack != "" {
			buf.WriteByte('\n')
			buf.WriteString(html.EscapeString(rec.Err.Stack))
		}
		buf.WriteString("</pre>")
	}

	if rec.Attachment != nil {
		if rec.Attachment.URL != "" {
			u := html.EscapeString(rec.Attachment.URL)
			buf.WriteString(`<div><a href="` + u + `">` + u + `</a></div>`)
		}
		buf.WriteString(`<img src="cid:` + html.EscapeString(rec.Attachment.Name) + `"/>`)
	}

	buf.WriteString("</body></html>")

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result
}

func writeRow(buf *bytes.Buffer, key, val string) {
	buf.WriteString("<tr><td><b>")
	buf.WriteString(key)
	buf.WriteString("</b></td><td>")
	buf.WriteString(val)
	buf.WriteString("</td></tr>")
}
