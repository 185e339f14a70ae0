package logger

import (
	"context"

	"github.com/quarryhill/logway/core"
)

type fieldsKey struct{}

// NewContext returns a context carrying fields that WithContext stamps
// onto records. Web middleware is the intended caller — attach the
// authenticated user and client address once per request and every
// handler's log lines carry them:
//
//	ctx := logger.NewContext(r.Context(),
//	    logger.String("user", user),
//	    logger.String("ip", r.RemoteAddr),
//	)
//
// Nesting accumulates: fields from an outer NewContext are kept ahead
// of the new ones.
func NewContext(ctx context.Context, fields ...core.Field) context.Context {
	if existing := FieldsFromContext(ctx); len(existing) > 0 {
		merged := make([]core.Field, 0, len(existing)+len(fields))
		merged = append(merged, existing...)
		merged = append(merged, fields...)
		fields = merged
	}
	return context.WithValue(ctx, fieldsKey{}, fields)
}

// FieldsFromContext returns the fields attached with NewContext, or nil.
func FieldsFromContext(ctx context.Context) []core.Field {
	fields, _ := ctx.Value(fieldsKey{}).([]core.Field)
	return fields
}

// WithContext returns a copy of the logger carrying the context's
// fields. A context without fields returns the receiver unchanged.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}
