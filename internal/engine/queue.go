package engine

import (
	"context"
	"sync"

	"github.com/playduel/centum/internal/centum"
)

// eventQueue bridges push-style delivery from the bus (any goroutine) into
// pull-style consumption by exactly one reader. The buffer is unbounded so
// push never blocks a publisher; the cost is that a pathologically slow
// consumer on a busy session grows memory without bound. Sessions are
// short and produce a few dozen events at most.
//
// Exactly one concurrent consumer is supported; the wake signal is
// coalesced and would be lost with more than one.
type eventQueue struct {
	mu     sync.Mutex
	items  []centum.Snapshot
	closed bool
	wake   chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{wake: make(chan struct{}, 1)}
}

// push appends an event. It never blocks and is a no-op on a closed queue.
func (q *eventQueue) push(e centum.Snapshot) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, e)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// close stops accepting events. Items already queued are still drained by
// next before the consumer observes the close.
func (q *eventQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// next returns the oldest queued event, suspending until one arrives, the
// context is cancelled, or the queue is closed and drained.
func (q *eventQueue) next(ctx context.Context) (centum.Snapshot, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			e := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return e, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return centum.Snapshot{}, ErrSubscriptionClosed
		}

		select {
		case <-ctx.Done():
			return centum.Snapshot{}, ctx.Err()
		case <-q.wake:
		}
	}
}
