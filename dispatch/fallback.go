package dispatch

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Fallback is the synchronous console writer used for the queue's own
// diagnostics: drop notices, retry exhaustion, shutdown summaries.
// Writing directly to a plain writer instead of re-entering a queue is
// what prevents a failing sink from feeding its own failure reports back
// into itself.
type Fallback struct {
	mu sync.Mutex
	w  io.Writer
}

// NewFallback creates a fallback writer. A nil writer defaults to stderr.
func NewFallback(w io.Writer) *Fallback {
	if w == nil {
		w = os.Stderr
	}
	return &Fallback{w: w}
}

// Warnf writes one formatted diagnostic line.
func (f *Fallback) Warnf(format string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fmt.Fprintf(f.w, "%s logway: %s\n", time.Now().Format("2006-01-02 15:04:05,000"), fmt.Sprintf(format, args...))
}

var defaultFallback = NewFallback(os.Stderr)
