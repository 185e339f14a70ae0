package logger

import (
	"runtime/debug"
	"time"

	"github.com/quarryhill/logway/core"
	"github.com/quarryhill/logway/intercept"
	"github.com/quarryhill/logway/setup"
)

// Logger is an immutable named handle. The zero value is not usable;
// construct with Get or New.
type Logger struct {
	name    string
	fields  []core.Field
	emitter intercept.Emitter
}

// Get returns a logger emitting through the process-wide registry.
// Loggers with the same name are interchangeable; Get does not cache.
func Get(name string) *Logger {
	return &Logger{name: name, emitter: setup.Default()}
}

// New returns a logger bound to a specific emitter, for callers that
// maintain their own registry.
func New(name string, e intercept.Emitter) *Logger {
	return &Logger{name: name, emitter: e}
}

// Name returns the logger's dot-delimited name.
func (l *Logger) Name() string { return l.name }

// With returns a copy of the logger carrying additional fields. The
// receiver is unchanged.
func (l *Logger) With(fields ...core.Field) *Logger {
	merged := make([]core.Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &Logger{name: l.name, fields: merged, emitter: l.emitter}
}

// Named returns a child logger with segment appended to the name.
func (l *Logger) Named(segment string) *Logger {
	name := segment
	if l.name != "" {
		name = l.name + "." + segment
	}
	return &Logger{name: name, fields: l.fields, emitter: l.emitter}
}

func (l *Logger) log(level core.Level, msg string, errInfo *core.ErrorInfo, fields []core.Field) {
	rec := &core.Record{
		Time:    time.Now(),
		Level:   level,
		Name:    l.name,
		Message: msg,
		Err:     errInfo,
	}
	if n := len(l.fields) + len(fields); n > 0 {
		rec.Fields = make([]core.Field, 0, n)
		rec.Fields = append(rec.Fields, l.fields...)
		rec.Fields = append(rec.Fields, fields...)
	}
	// Back-pressure reports from Block-policy queues stop here: a log
	// statement must never become the reason a caller's code path fails.
	_ = l.emitter.Emit(rec)
}

// Debug logs at DEBUG severity.
func (l *Logger) Debug(msg string, fields ...core.Field) {
	l.log(core.DebugLevel, msg, nil, fields)
}

// Info logs at INFO severity.
func (l *Logger) Info(msg string, fields ...core.Field) {
	l.log(core.InfoLevel, msg, nil, fields)
}

// Warning logs at WARNING severity.
func (l *Logger) Warning(msg string, fields ...core.Field) {
	l.log(core.WarningLevel, msg, nil, fields)
}

// Error logs at ERROR severity.
func (l *Logger) Error(msg string, fields ...core.Field) {
	l.log(core.ErrorLevel, msg, nil, fields)
}

// Critical logs at CRITICAL severity.
func (l *Logger) Critical(msg string, fields ...core.Field) {
	l.log(core.CriticalLevel, msg, nil, fields)
}

// Exception logs err at ERROR severity with the current goroutine's
// stack trace attached. Email sinks render the stack in the message
// body; error-level email deliveries may additionally trigger a
// screenshot capture when a provider is installed.
func (l *Logger) Exception(msg string, err error, fields ...core.Field) {
	info := &core.ErrorInfo{Stack: string(debug.Stack())}
	if err != nil {
		info.Message = err.Error()
	}
	l.log(core.ErrorLevel, msg, info, fields)
}
