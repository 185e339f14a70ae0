package dispatch

import "sync/atomic"

// Stats tracks per-queue delivery statistics with atomic counters.
type Stats struct {
	delivered       atomic.Uint64
	retries         atomic.Uint64
	blocked         atomic.Uint64
	droppedOverflow atomic.Uint64
	droppedDelivery atomic.Uint64
	droppedShutdown atomic.Uint64
}

// Snapshot is a point-in-time copy of queue statistics.
type Snapshot struct {
	// Delivered counts records the sink accepted
	Delivered uint64
	// Retries counts failed delivery attempts that were retried
	Retries uint64
	// Blocked counts Block-policy enqueues that timed out
	Blocked uint64
	// DroppedOverflow counts records dropped by the overflow policy
	DroppedOverflow uint64
	// DroppedDelivery counts records dropped after the retry ceiling
	DroppedDelivery uint64
	// DroppedShutdown counts records dropped at close, either enqueued
	// after close or left undrained at the drain deadline
	DroppedShutdown uint64
}

// Dropped returns the total records dropped for any reason.
func (s Snapshot) Dropped() uint64 {
	return s.DroppedOverflow + s.DroppedDelivery + s.DroppedShutdown
}

// Snapshot returns a copy of the current counters.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Delivered:       s.delivered.Load(),
		Retries:         s.retries.Load(),
		Blocked:         s.blocked.Load(),
		DroppedOverflow: s.droppedOverflow.Load(),
		DroppedDelivery: s.droppedDelivery.Load(),
		DroppedShutdown: s.droppedShutdown.Load(),
	}
}
