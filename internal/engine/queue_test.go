package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playduel/centum/internal/centum"
)

func snap(n int) centum.Snapshot {
	return centum.Snapshot{ID: "s1", Accumulator: n}
}

func TestQueueFIFO(t *testing.T) {
	q := newEventQueue()
	for i := 1; i <= 3; i++ {
		q.push(snap(i))
	}

	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		e, err := q.next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if e.Accumulator != i {
			t.Fatalf("expected event %d, got %d", i, e.Accumulator)
		}
	}
}

func TestQueueNextSuspendsUntilPush(t *testing.T) {
	q := newEventQueue()

	go func() {
		time.Sleep(20 * time.Millisecond)
		q.push(snap(42))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	e, err := q.next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if e.Accumulator != 42 {
		t.Fatalf("expected 42, got %d", e.Accumulator)
	}
}

func TestQueueContextCancel(t *testing.T) {
	q := newEventQueue()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := q.next(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestQueueCloseFlushesThenEnds(t *testing.T) {
	q := newEventQueue()
	q.push(snap(1))
	q.push(snap(2))
	q.close()

	ctx := context.Background()
	for i := 1; i <= 2; i++ {
		e, err := q.next(ctx)
		if err != nil {
			t.Fatalf("drain %d: %v", i, err)
		}
		if e.Accumulator != i {
			t.Fatalf("expected event %d, got %d", i, e.Accumulator)
		}
	}

	if _, err := q.next(ctx); !errors.Is(err, ErrSubscriptionClosed) {
		t.Fatalf("expected ErrSubscriptionClosed, got %v", err)
	}
}

func TestQueuePushAfterCloseDropped(t *testing.T) {
	q := newEventQueue()
	q.close()
	q.push(snap(1))

	if _, err := q.next(context.Background()); !errors.Is(err, ErrSubscriptionClosed) {
		t.Fatalf("expected ErrSubscriptionClosed, got %v", err)
	}
}
