package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarryhill/logway/core"
	"github.com/quarryhill/logway/sink"
)

// stubSink records delivered payloads and can be told to fail, block,
// or fail permanently.
type stubSink struct {
	mu        sync.Mutex
	delivered []string
	attempts  int
	failFirst int  // fail this many initial attempts
	failAll   bool // fail every attempt
	delay     time.Duration
}

func (s *stubSink) Kind() sink.Kind { return sink.KindConsole }

func (s *stubSink) Send(ctx context.Context, payload []byte, _ *core.Record) error {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if s.failAll || s.attempts <= s.failFirst {
		return errors.New("transport down")
	}
	s.delivered = append(s.delivered, string(payload))
	return nil
}

func (s *stubSink) Close() error { return nil }

func (s *stubSink) deliveredCopy() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.delivered))
	copy(out, s.delivered)
	return out
}

func (s *stubSink) attemptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

func rec(level core.Level) *core.Record {
	return &core.Record{Time: time.Now(), Level: level, Name: "test", Message: "m"}
}

func TestQueue_FIFOOrder(t *testing.T) {
	s := &stubSink{}
	q := New(s, Config{Capacity: 128})
	defer q.Close()

	const n = 100
	for i := 0; i < n; i++ {
		require.NoError(t, q.Enqueue(rec(core.InfoLevel), []byte(fmt.Sprintf("%03d", i))))
	}
	require.Equal(t, 0, q.Flush(2*time.Second))

	got := s.deliveredCopy()
	require.Len(t, got, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, fmt.Sprintf("%03d", i), got[i], "delivery order must equal enqueue order")
	}
}

func TestQueue_RetryThenDeliver(t *testing.T) {
	s := &stubSink{failFirst: 2}
	q := New(s, Config{
		Retry: RetryPolicy{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond},
	})
	defer q.Close()

	require.NoError(t, q.Enqueue(rec(core.ErrorLevel), []byte("x")))
	require.Equal(t, 0, q.Flush(2*time.Second))

	st := q.Stats()
	assert.Equal(t, uint64(1), st.Delivered)
	assert.Equal(t, uint64(2), st.Retries)
	assert.Equal(t, uint64(0), st.Dropped())
}

func TestQueue_RetryCeilingDropsWithOneDiagnostic(t *testing.T) {
	var diag bytes.Buffer
	s := &stubSink{failAll: true}
	q := New(s, Config{
		Retry:    RetryPolicy{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond},
		Fallback: NewFallback(&diag),
	})
	defer q.Close()

	require.NoError(t, q.Enqueue(rec(core.ErrorLevel), []byte("x")))
	require.Equal(t, 0, q.Flush(2*time.Second))

	assert.Equal(t, 3, s.attemptCount(), "exactly MaxAttempts transport calls")
	st := q.Stats()
	assert.Equal(t, uint64(1), st.DroppedDelivery)
	assert.Equal(t, uint64(0), st.Delivered)

	lines := strings.Count(diag.String(), "\n")
	assert.Equal(t, 1, lines, "exactly one diagnostic record on the fallback console, got: %q", diag.String())
	assert.Contains(t, diag.String(), "after 3 attempts")
}

func TestQueue_BoundedUnderSustainedFailure(t *testing.T) {
	s := &stubSink{failAll: true, delay: 10 * time.Millisecond}
	q := New(s, Config{
		Capacity: 8,
		Retry:    RetryPolicy{MaxAttempts: 2, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond},
	})
	defer q.Close()

	for i := 0; i < 1000; i++ {
		q.Enqueue(rec(core.InfoLevel), []byte("x"))
	}

	assert.LessOrEqual(t, len(q.queue), 8, "occupancy must never exceed capacity")
	assert.Positive(t, q.Stats().DroppedOverflow, "excess must be dropped, not buffered")
}

func TestQueue_DropNewestKeepsOldest(t *testing.T) {
	var diag bytes.Buffer
	s := &stubSink{delay: 20 * time.Millisecond}
	q := New(s, Config{Capacity: 2, Overflow: DropNewest, Fallback: NewFallback(&diag)})
	defer q.Close()

	for i := 0; i < 10; i++ {
		require.NoError(t, q.Enqueue(rec(core.InfoLevel), []byte(fmt.Sprintf("%d", i))))
	}
	q.Flush(2 * time.Second)

	got := s.deliveredCopy()
	require.NotEmpty(t, got)
	assert.Equal(t, "0", got[0], "oldest record survives under DropNewest")
	assert.Positive(t, q.Stats().DroppedOverflow)
	assert.Equal(t, 1, strings.Count(diag.String(), "queue full"), "full warning is emitted once")
}

func TestQueue_DropOldestKeepsNewest(t *testing.T) {
	// No workers pulling: the sink blocks forever on the first item, so
	// eviction decisions are deterministic for the buffered remainder.
	s := &stubSink{delay: time.Hour}
	q := New(s, Config{Capacity: 2, Overflow: DropOldest, DrainTimeout: 10 * time.Millisecond})
	defer q.Close()

	for i := 0; i < 10; i++ {
		require.NoError(t, q.Enqueue(rec(core.InfoLevel), []byte(fmt.Sprintf("%d", i))))
	}

	assert.Positive(t, q.Stats().DroppedOverflow, "older records evicted to make room")
	assert.LessOrEqual(t, len(q.queue), 2)
}

func TestQueue_BlockPolicySurfacesQueueFull(t *testing.T) {
	s := &stubSink{delay: time.Hour}
	q := New(s, Config{
		Capacity:     1,
		Overflow:     Block,
		BlockTimeout: 20 * time.Millisecond,
		DrainTimeout: 10 * time.Millisecond,
	})
	defer q.Close()

	// First fills the in-flight worker, second fills the buffer, third
	// must block and time out.
	require.NoError(t, q.Enqueue(rec(core.CriticalLevel), []byte("a")))
	require.NoError(t, q.Enqueue(rec(core.CriticalLevel), []byte("b")))

	start := time.Now()
	var err error
	for time.Since(start) < time.Second {
		if err = q.Enqueue(rec(core.CriticalLevel), []byte("c")); err != nil {
			break
		}
	}
	var qfe *core.QueueFullError
	require.ErrorAs(t, err, &qfe)
	assert.Positive(t, q.Stats().Blocked)
}

func TestQueue_FlushTimesOutOnUnreachableSink(t *testing.T) {
	s := &stubSink{delay: time.Hour}
	q := New(s, Config{Capacity: 4, DrainTimeout: 10 * time.Millisecond})
	defer q.Close()

	require.NoError(t, q.Enqueue(rec(core.ErrorLevel), []byte("x")))

	start := time.Now()
	remaining := q.Flush(50 * time.Millisecond)
	assert.Less(t, time.Since(start), time.Second, "flush must return within its timeout bound")
	assert.Equal(t, 1, remaining, "undelivered records are reported, not silently lost")
}

func TestQueue_CloseDropsRemainderWithSummary(t *testing.T) {
	var diag bytes.Buffer
	s := &stubSink{delay: time.Hour}
	q := New(s, Config{
		Capacity:     8,
		DrainTimeout: 20 * time.Millisecond,
		Fallback:     NewFallback(&diag),
	})

	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(rec(core.InfoLevel), []byte("x")))
	}
	require.NoError(t, q.Close())

	assert.Contains(t, diag.String(), "dropped at shutdown")
	assert.Positive(t, q.Stats().DroppedShutdown)
}

func TestQueue_EnqueueAfterCloseIsSilentDrop(t *testing.T) {
	s := &stubSink{}
	q := New(s, Config{})
	require.NoError(t, q.Close())

	require.NoError(t, q.Enqueue(rec(core.ErrorLevel), []byte("late")))
	assert.Positive(t, q.Stats().DroppedShutdown)
	assert.Empty(t, s.deliveredCopy())
}

func TestQueue_IndependentQueues(t *testing.T) {
	dead := &stubSink{delay: time.Hour}
	live := &stubSink{}

	qDead := New(dead, Config{Capacity: 1, DrainTimeout: 10 * time.Millisecond})
	qLive := New(live, Config{Capacity: 16})
	defer qDead.Close()
	defer qLive.Close()

	qDead.Enqueue(rec(core.ErrorLevel), []byte("stuck"))
	for i := 0; i < 10; i++ {
		require.NoError(t, qLive.Enqueue(rec(core.InfoLevel), []byte("ok")))
	}

	assert.Equal(t, 0, qLive.Flush(2*time.Second), "a dead sink must not starve other sinks")
	assert.Len(t, live.deliveredCopy(), 10)
}

func TestQueue_EnqueueIsNonBlocking(t *testing.T) {
	s := &stubSink{delay: time.Hour}
	q := New(s, Config{Capacity: 1, Overflow: DropNewest, DrainTimeout: 10 * time.Millisecond})
	defer q.Close()

	start := time.Now()
	for i := 0; i < 100; i++ {
		q.Enqueue(rec(core.InfoLevel), []byte("x"))
	}
	assert.Less(t, time.Since(start), 500*time.Millisecond,
		"emission path must not stall on a blocked sink")
}
