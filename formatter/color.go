package formatter

import "github.com/quarryhill/logway/core"

// ANSI escape sequences for severity coloring.
const (
	ansiMagenta = "\x1b[35m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiRed     = "\x1b[31m"
	ansiReset   = "\x1b[0m"
)

// levelColor maps a severity to its fixed terminal color.
func levelColor(level core.Level) string {
	switch level {
	case core.DebugLevel:
		return ansiMagenta
	case core.InfoLevel:
		return ansiGreen
	case core.WarningLevel:
		return ansiYellow
	case core.ErrorLevel, core.CriticalLevel:
		return ansiRed
	default:
		return ansiReset
	}
}

// ColorFormatter wraps an inner text rendering in ANSI color codes.
// Construct it only for writers that IsTerminal reported interactive;
// non-terminal destinations use the plain TextFormatter instead so the
// decision is made once at sink activation.
type ColorFormatter struct {
	inner *TextFormatter
}

// NewColorFormatter creates a colorizing formatter around a TextFormatter.
func NewColorFormatter(cfg Config) *ColorFormatter {
	return &ColorFormatter{inner: NewTextFormatter(cfg)}
}

// Format renders the record with its severity color applied to the
// whole line. The trailing newline stays outside the colored region.
func (f *ColorFormatter) Format(rec *core.Record) []byte {
	buf := getBuffer()
	defer putBuffer(buf)

	buf.WriteString(levelColor(rec.Level))
	f.inner.formatToBuffer(rec, buf)
	buf.Truncate(buf.Len() - 1) // move '\n' after the reset code
	buf.WriteString(ansiReset)
	buf.WriteByte('\n')

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result
}
