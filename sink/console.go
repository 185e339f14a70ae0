package sink

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/quarryhill/logway/core"
)

// ConsoleSink writes payloads to a terminal or any io.Writer.
type ConsoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleSink creates a console sink. A nil writer defaults to stderr.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	if w == nil {
		w = os.Stderr
	}
	return &ConsoleSink{w: w}
}

// Kind returns KindConsole.
func (s *ConsoleSink) Kind() Kind { return KindConsole }

// Send writes the payload to the underlying writer.
func (s *ConsoleSink) Send(_ context.Context, payload []byte, _ *core.Record) error {
	s.mu.Lock()
	_, err := s.w.Write(payload)
	s.mu.Unlock()
	return transportErr(KindConsole, err)
}

// Close is a no-op; the writer is owned by the caller.
func (s *ConsoleSink) Close() error { return nil }
