package intercept

import (
	"context"
	"log/slog"

	"github.com/quarryhill/logway/core"
)

// Emitter receives intercepted records. The setup registry implements
// it; the indirection keeps this package free of a dependency on setup.
// The returned error is non-nil only for Block-policy enqueue timeouts.
type Emitter interface {
	Emit(rec *core.Record) error
}

// SlogHandler routes log/slog records into the active setup. Install it
// as the default handler to capture emission from arbitrary slog-based
// code:
//
//	slog.SetDefault(slog.New(intercept.NewSlogHandler(registry, "")))
//
// The handler's group chain forms the hierarchical logger name, so
// slog.Default().WithGroup("myapp").WithGroup("views") emits records
// named "myapp.views".
type SlogHandler struct {
	emitter Emitter
	name    string
	attrs   []core.Field
}

// NewSlogHandler creates a slog bridge emitting under the given logger
// name; groups extend the name with dot-separated segments.
func NewSlogHandler(e Emitter, name string) *SlogHandler {
	return &SlogHandler{emitter: e, name: name}
}

// Enabled always reports true: severity filtering is per sink and the
// interception decision is per emission, so the gate cannot be static.
func (h *SlogHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// Handle converts the slog record and hands it to the emitter.
func (h *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	rec := &core.Record{
		Time:    record.Time,
		Level:   slogLevel(record.Level),
		Name:    h.name,
		Message: record.Message,
	}
	if len(h.attrs) > 0 {
		rec.Fields = append(rec.Fields, h.attrs...)
	}
	record.Attrs(func(a slog.Attr) bool {
		rec.Fields = append(rec.Fields, attrToField(a))
		return true
	})
	return h.emitter.Emit(rec)
}

// WithAttrs returns a handler carrying additional pre-bound fields.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	for _, a := range attrs {
		newAttrs = append(newAttrs, attrToField(a))
	}
	return &SlogHandler{emitter: h.emitter, name: h.name, attrs: newAttrs}
}

// WithGroup extends the hierarchical logger name by one segment.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	full := name
	if h.name != "" {
		full = h.name + "." + name
	}
	attrs := make([]core.Field, len(h.attrs))
	copy(attrs, h.attrs)
	return &SlogHandler{emitter: h.emitter, name: full, attrs: attrs}
}

// slogLevel converts a slog.Level to a core.Level.
func slogLevel(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError+4:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// attrToField converts a slog.Attr to a core.Field.
func attrToField(a slog.Attr) core.Field {
	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindString:
		return core.Field{Key: a.Key, Type: core.StringType, Str: a.Value.String()}
	case slog.KindInt64:
		return core.Field{Key: a.Key, Type: core.Int64Type, Int64: a.Value.Int64()}
	case slog.KindFloat64:
		return core.Field{Key: a.Key, Type: core.Float64Type, Float64: a.Value.Float64()}
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return core.Field{Key: a.Key, Type: core.BoolType, Int64: val}
	case slog.KindDuration:
		return core.Field{Key: a.Key, Type: core.DurationType, Int64: int64(a.Value.Duration())}
	case slog.KindTime:
		return core.Field{Key: a.Key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()}
	default:
		return core.Field{Key: a.Key, Type: core.AnyType, Any: a.Value.Any()}
	}
}
