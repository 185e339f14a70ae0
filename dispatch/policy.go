package dispatch

import "time"

// OverflowPolicy defines the back-pressure behavior when a queue is full.
type OverflowPolicy int

const (
	// DropNewest drops the incoming record when the queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest evicts the oldest buffered record to make room
	DropOldest
	// Block waits for space up to the block timeout, then surfaces
	// core.QueueFullError
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// RetryPolicy bounds delivery attempts for a single record.
type RetryPolicy struct {
	// MaxAttempts is the total number of delivery attempts before the
	// record is dropped (default: 3)
	MaxAttempts int
	// InitialBackoff is the first retry delay (default: 100ms)
	InitialBackoff time.Duration
	// MaxBackoff caps the exponential growth (default: 5s)
	MaxBackoff time.Duration
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 3
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = 100 * time.Millisecond
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = 5 * time.Second
	}
	return p
}
