// Package dispatch decouples record emission from sink execution.
//
// Every activated sink is fronted by exactly one Queue: a bounded FIFO
// buffer drained by a pool of worker goroutines that perform the sink's
// blocking delivery call. Enqueue never blocks the caller except under
// the explicitly selected Block policy, so a slow mail server or an
// unreachable syslog collector can never stall request-handling code.
// Queues are fully independent; a dead sink cannot starve the others.
//
// An enqueued item moves Pending -> InFlight -> Delivered, Retrying, or
// Dropped. Transport failures are retried with exponential backoff up to
// the configured attempt ceiling; exhausting the ceiling drops the item
// and emits one diagnostic line to the fallback console writer — never
// back into the failing sink's own queue, which would feed back forever.
//
// When the queue is full the configured OverflowPolicy applies:
// DropNewest (the default, with a one-time fallback warning), DropOldest,
// or Block with a timeout that surfaces core.QueueFullError. Capacity is
// finite and enforced; occupancy never exceeds it even under sustained
// transport failure.
//
// Close marks the queue closed to new enqueues and lets workers drain
// until the drain timeout, after which remaining items are dropped and
// reported as a single summary count. Flush blocks until the queue is
// empty or its timeout elapses.
package dispatch
