package core

import "time"

// ErrorInfo carries a captured error message and its stack trace.
type ErrorInfo struct {
	Message string
	Stack   string
}

// Attachment is auxiliary evidence attached to a record, typically a
// browser screenshot captured at error time. URL and PageSource are
// optional context from the capture provider.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
	URL         string
	PageSource  []byte
}

// Record represents a single log event. It is created once at emission
// time and must not be mutated afterwards; use Clone when a sink needs
// destination-specific augmentation.
type Record struct {
	Time       time.Time
	Level      Level
	Name       string // dot-delimited hierarchical logger name
	Message    string
	Machine    string // emitting hostname
	Fields     []Field
	Err        *ErrorInfo
	Attachment *Attachment
}

// Clone returns a copy of the record with its own Fields slice. The
// Err and Attachment pointers are shared; both are themselves
// treated as immutable.
func (r *Record) Clone() *Record {
	c := *r
	if len(r.Fields) > 0 {
		c.Fields = make([]Field, len(r.Fields))
		copy(c.Fields, r.Fields)
	}
	return &c
}

// WithAttachment returns a clone of the record carrying the attachment.
func (r *Record) WithAttachment(a *Attachment) *Record {
	c := r.Clone()
	c.Attachment = a
	return c
}
