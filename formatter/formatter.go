package formatter

import (
	"bytes"
	"os"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/quarryhill/logway/core"
)

// Formatter renders a log record into the payload handed to a sink.
type Formatter interface {
	Format(rec *core.Record) []byte
}

// Config holds common formatter configuration
type Config struct {
	// TimestampFormat specifies the time layout (empty for the default
	// "2006-01-02 15:04:05,000")
	TimestampFormat string
}

const defaultTimestampFormat = "2006-01-02 15:04:05,000"

// IsTerminal reports whether f is an interactive terminal. Sinks call
// this once at construction time, never per record.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
