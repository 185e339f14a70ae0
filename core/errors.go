package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownSetup is returned when resolving a setup name that has never
// been registered.
var ErrUnknownSetup = errors.New("unknown setup")

// ConfigError reports malformed sink or setup parameters. It is the only
// error class surfaced to callers at configuration time and is never
// produced on the emission path.
type ConfigError struct {
	Component string
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Component, e.Reason)
}

// TransportError wraps a sink delivery failure. It is recovered inside
// the dispatch worker via retry and never propagates to application code.
type TransportError struct {
	Sink string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Sink, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CaptureError wraps an attachment-capture failure. Delivery proceeds
// without the attachment when it occurs.
type CaptureError struct {
	Err error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture: %v", e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// QueueFullError is surfaced only when the Block overflow policy is
// active and the enqueue timeout elapses.
type QueueFullError struct {
	Sink    string
	Timeout time.Duration
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("queue full: %s: enqueue timed out after %s", e.Sink, e.Timeout)
}
