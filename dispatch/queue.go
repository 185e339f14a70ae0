package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/quarryhill/logway/core"
	"github.com/quarryhill/logway/sink"
)

// Config holds configuration for a sink's dispatch queue.
type Config struct {
	// Capacity is the bounded buffer size (default: 1000)
	Capacity int
	// Workers is the number of delivery goroutines (default: 1).
	// More than one worker relaxes the per-sink FIFO guarantee.
	Workers int
	// Overflow selects the back-pressure policy (default: DropNewest)
	Overflow OverflowPolicy
	// BlockTimeout bounds a Block-policy enqueue (default: 100ms)
	BlockTimeout time.Duration
	// Retry bounds delivery attempts per record
	Retry RetryPolicy
	// DrainTimeout bounds draining on Close (default: 5s)
	DrainTimeout time.Duration
	// Fallback receives queue diagnostics (default: stderr)
	Fallback *Fallback
}

type item struct {
	rec     *core.Record
	payload []byte
}

// Queue is the bounded FIFO buffer and worker pool fronting one sink.
type Queue struct {
	sink         sink.Sink
	queue        chan item
	closed       chan struct{}
	closeOnce    sync.Once
	wg           sync.WaitGroup
	pending      atomic.Int64
	stats        *Stats
	overflow     OverflowPolicy
	blockTimeout time.Duration
	retry        RetryPolicy
	drainTimeout time.Duration
	fallback     *Fallback
	fullWarnOnce sync.Once

	// ctx is canceled at the drain deadline so backoff sleeps and
	// in-flight transport calls abort promptly at shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a queue for the sink and starts its workers.
func New(s sink.Sink, cfg Config) *Queue {
	if cfg.Capacity <= 0 {
		cfg.Capacity = 1000
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
	if cfg.Fallback == nil {
		cfg.Fallback = defaultFallback
	}

	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		sink:         s,
		queue:        make(chan item, cfg.Capacity),
		closed:       make(chan struct{}),
		stats:        &Stats{},
		overflow:     cfg.Overflow,
		blockTimeout: cfg.BlockTimeout,
		retry:        cfg.Retry.withDefaults(),
		drainTimeout: cfg.DrainTimeout,
		fallback:     cfg.Fallback,
		ctx:          ctx,
		cancel:       cancel,
	}

	q.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go q.worker()
	}
	return q
}

// Sink returns the sink this queue fronts.
func (q *Queue) Sink() sink.Sink { return q.sink }

// Enqueue buffers a (record, payload) pair for delivery. It returns
// immediately under the drop policies; under Block it waits up to the
// block timeout and then surfaces core.QueueFullError. Records enqueued
// after Close are counted as shutdown drops and discarded silently.
func (q *Queue) Enqueue(rec *core.Record, payload []byte) error {
	select {
	case <-q.closed:
		q.stats.droppedShutdown.Add(1)
		return nil
	default:
	}

	it := item{rec: rec, payload: payload}

	switch q.overflow {
	case Block:
		select {
		case q.queue <- it:
			q.pending.Add(1)
			return nil
		default:
		}
		timer := time.NewTimer(q.blockTimeout)
		defer timer.Stop()
		select {
		case q.queue <- it:
			q.pending.Add(1)
			return nil
		case <-timer.C:
			q.stats.blocked.Add(1)
			q.stats.droppedOverflow.Add(1)
			return &core.QueueFullError{Sink: q.sink.Kind().String(), Timeout: q.blockTimeout}
		case <-q.closed:
			q.stats.droppedShutdown.Add(1)
			return nil
		}

	case DropOldest:
		select {
		case q.queue <- it:
			q.pending.Add(1)
			return nil
		default:
		}
		// Queue full: evict the oldest buffered item, then retry once.
		// A worker may win the race for the oldest item; that is fine,
		// it just means room appeared another way.
		select {
		case <-q.queue:
			q.pending.Add(-1)
			q.stats.droppedOverflow.Add(1)
		default:
		}
		select {
		case q.queue <- it:
			q.pending.Add(1)
		default:
			q.stats.droppedOverflow.Add(1)
		}
		return nil

	case DropNewest:
		fallthrough
	default:
		select {
		case q.queue <- it:
			q.pending.Add(1)
		default:
			q.stats.droppedOverflow.Add(1)
			q.fullWarnOnce.Do(func() {
				q.fallback.Warnf("sink %s: queue full (capacity %d), dropping newest records",
					q.sink.Kind(), cap(q.queue))
			})
		}
		return nil
	}
}

// worker pulls items in FIFO order and performs the blocking delivery.
func (q *Queue) worker() {
	defer q.wg.Done()

	for {
		select {
		case it := <-q.queue:
			q.deliver(it)
		case <-q.closed:
			// Drain whatever is buffered, stopping early if the
			// drain deadline canceled the queue context.
			for {
				select {
				case <-q.ctx.Done():
					return
				default:
				}
				select {
				case it := <-q.queue:
					q.deliver(it)
				default:
					return
				}
			}
		}
	}
}

// deliver performs the blocking transport call with exponential backoff
// retry up to the attempt ceiling. Exhausting the ceiling drops the
// record and emits one diagnostic to the fallback console.
func (q *Queue) deliver(it item) {
	defer q.pending.Add(-1)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = q.retry.InitialBackoff
	bo.MaxInterval = q.retry.MaxBackoff
	bo.MaxElapsedTime = 0

	attempts := 0
	op := func() error {
		attempts++
		err := q.sink.Send(q.ctx, it.payload, it.rec)
		if err != nil && attempts < q.retry.MaxAttempts {
			q.stats.retries.Add(1)
		}
		return err
	}

	err := backoff.Retry(op, backoff.WithContext(
		backoff.WithMaxRetries(bo, uint64(q.retry.MaxAttempts-1)), q.ctx))
	if err != nil {
		q.stats.droppedDelivery.Add(1)
		q.fallback.Warnf("sink %s: dropped %s record from %q after %d attempts: %v",
			q.sink.Kind(), it.rec.Level, it.rec.Name, attempts, err)
		return
	}
	q.stats.delivered.Add(1)
}

// Flush blocks until the queue is empty or the timeout elapses and
// returns the number of records still pending.
func (q *Queue) Flush(timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		n := q.pending.Load()
		if n <= 0 {
			return 0
		}
		if time.Now().After(deadline) {
			return int(n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Close marks the queue closed to new enqueues, drains buffered records
// up to the drain timeout, then drops and reports the remainder as a
// summary count. It is idempotent.
func (q *Queue) Close() error {
	q.closeOnce.Do(func() {
		close(q.closed)
		deadline := time.AfterFunc(q.drainTimeout, q.cancel)
		q.wg.Wait()
		deadline.Stop()
		q.cancel()

		if remaining := len(q.queue); remaining > 0 {
			q.stats.droppedShutdown.Add(uint64(remaining))
			q.fallback.Warnf("sink %s: %d records dropped at shutdown", q.sink.Kind(), remaining)
			for i := 0; i < remaining; i++ {
				<-q.queue
				q.pending.Add(-1)
			}
		}
	})
	return q.sink.Close()
}

// Stats returns a snapshot of the queue's counters.
func (q *Queue) Stats() Snapshot {
	return q.stats.Snapshot()
}
