package setup

import (
	"context"
	"errors"
	"time"

	"github.com/quarryhill/logway/capture"
	"github.com/quarryhill/logway/core"
	"github.com/quarryhill/logway/dispatch"
	"github.com/quarryhill/logway/formatter"
	"github.com/quarryhill/logway/sink"
)

// boundSink is one activated sink: the sink itself, the queue fronting
// it, its severity threshold, and the formatter rendering its payloads.
type boundSink struct {
	sink     sink.Sink
	queue    *dispatch.Queue
	minLevel core.Level
	fmt      formatter.Formatter
}

// Setup is an immutable named profile: an ordered list of activated
// sinks plus the profile's default minimum severity.
type Setup struct {
	name  string
	level core.Level
	sinks []*boundSink
}

// Name returns the profile name.
func (s *Setup) Name() string { return s.name }

// Level returns the profile's default minimum severity.
func (s *Setup) Level() core.Level { return s.level }

// withLevel returns a copy of the setup sharing the same sinks but
// gating at a different severity.
func (s *Setup) withLevel(level core.Level) *Setup {
	return &Setup{name: s.name, level: level, sinks: s.sinks}
}

// dispatch fans the record out to every sink whose threshold it passes:
// render per sink, capture an attachment for qualifying email
// deliveries, enqueue. Each matching sink receives the record exactly
// once per delivery pass.
func (s *Setup) dispatch(rec *core.Record, provider capture.Provider, fallback *dispatch.Fallback) error {
	if rec.Level < s.level {
		return nil
	}

	// Captured at most once per record, shared by every email sink in
	// the pass. Capture is synchronous: the evidence depends on live
	// external state that may not outlive this call.
	var (
		att      *core.Attachment
		attTried bool
	)

	var errs []error
	for _, bs := range s.sinks {
		if rec.Level < bs.minLevel {
			continue
		}

		out := rec
		if provider != nil && bs.sink.Kind().Email() && rec.Level >= core.ErrorLevel {
			if !attTried {
				attTried = true
				a, err := provider.Capture(context.Background())
				if err != nil {
					fallback.Warnf("delivering without attachment: %v", &core.CaptureError{Err: err})
				} else {
					att = a
				}
			}
			if att != nil {
				out = rec.WithAttachment(att)
			}
		}

		if err := bs.queue.Enqueue(out, bs.fmt.Format(out)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// flush waits for every queue of the setup to empty, sharing the
// timeout across sinks, and returns the number of records still pending.
func (s *Setup) flush(timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	remaining := 0
	for _, bs := range s.sinks {
		left := time.Until(deadline)
		if left < 0 {
			left = 0
		}
		remaining += bs.queue.Flush(left)
	}
	return remaining
}

// close drains and closes every queue of the setup.
func (s *Setup) close() error {
	var errs []error
	for _, bs := range s.sinks {
		if err := bs.queue.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
