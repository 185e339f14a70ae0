package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_Ordering(t *testing.T) {
	levels := []Level{DebugLevel, InfoLevel, WarningLevel, ErrorLevel, CriticalLevel}
	for i := 1; i < len(levels); i++ {
		assert.Less(t, levels[i-1], levels[i], "%s must sort below %s", levels[i-1], levels[i])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warn", WarningLevel},
		{"Warning", WarningLevel},
		{"ERROR", ErrorLevel},
		{"critical", CriticalLevel},
		{"fatal", CriticalLevel},
		{"nonsense", InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "ParseLevel(%q)", tt.in)
	}
}

func TestRecord_CloneIsIndependent(t *testing.T) {
	rec := &Record{
		Time:    time.Now(),
		Level:   ErrorLevel,
		Name:    "myapp.views",
		Message: "boom",
		Fields:  []Field{{Key: "user", Type: StringType, Str: "alice"}},
	}

	c := rec.Clone()
	require.Equal(t, rec.Message, c.Message)
	require.Equal(t, rec.Fields, c.Fields)

	c.Fields[0].Str = "bob"
	assert.Equal(t, "alice", rec.Fields[0].Str, "clone must not share field storage")
}

func TestRecord_WithAttachment(t *testing.T) {
	rec := &Record{Level: ErrorLevel, Message: "boom"}
	att := &Attachment{Name: "screenshot.png", ContentType: "image/png", Data: []byte{1, 2, 3}}

	c := rec.WithAttachment(att)
	assert.Nil(t, rec.Attachment, "original record must stay untouched")
	assert.Same(t, att, c.Attachment)
}

func TestErrorTaxonomy(t *testing.T) {
	inner := errors.New("connection refused")

	var te error = &TransportError{Sink: "smtp", Err: inner}
	assert.ErrorIs(t, te, inner)
	assert.Contains(t, te.Error(), "smtp")

	var ce error = &CaptureError{Err: inner}
	assert.ErrorIs(t, ce, inner)

	qe := &QueueFullError{Sink: "mandrill", Timeout: 50 * time.Millisecond}
	assert.Contains(t, qe.Error(), "mandrill")

	cfg := &ConfigError{Component: "syslog", Reason: "missing host"}
	assert.Contains(t, cfg.Error(), "missing host")
}

func TestField_StringValueTotal(t *testing.T) {
	tests := []struct {
		name string
		f    Field
		want string
	}{
		{"string", Field{Key: "k", Type: StringType, Str: "v"}, "v"},
		{"int", Field{Key: "k", Type: IntType, Int64: 42}, "42"},
		{"float", Field{Key: "k", Type: Float64Type, Float64: 1.5}, "1.5"},
		{"bool", Field{Key: "k", Type: BoolType, Int64: 1}, "true"},
		{"duration", Field{Key: "k", Type: DurationType, Int64: int64(time.Second)}, "1s"},
		{"error", Field{Key: "error", Type: ErrorType, Str: "bad"}, "bad"},
		{"any", Field{Key: "k", Type: AnyType, Any: struct{ X int }{7}}, "{7}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.StringValue())
		})
	}
}
