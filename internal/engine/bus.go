package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/playduel/centum/internal/centum"
)

// ErrSubscriptionClosed is returned by Subscription.Next once the stream
// has ended and every queued event has been delivered.
var ErrSubscriptionClosed = errors.New("subscription closed")

// Subscription is one consumer's attachment to a session's event stream.
// Callers that stop consuming must Close it, or its queue is never
// reclaimed.
type Subscription struct {
	sessionID string
	bus       *bus
	queue     *eventQueue
	once      sync.Once
}

// Next returns the next event for the session, suspending until one is
// published. It returns ctx.Err on cancellation and ErrSubscriptionClosed
// once the stream has ended.
func (s *Subscription) Next(ctx context.Context) (centum.Snapshot, error) {
	return s.queue.next(ctx)
}

// Close detaches the subscription from the bus and releases its queue.
// Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.unsubscribe(s)
		s.queue.close()
	})
}

// bus is the per-session pub/sub registry. Each subscriber owns its own
// queue, so a slow consumer never stalls publish or its peers.
type bus struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

func newBus() *bus {
	return &bus{subs: make(map[string]map[*Subscription]struct{})}
}

func (b *bus) subscribe(sessionID string) *Subscription {
	sub := &Subscription{
		sessionID: sessionID,
		bus:       b,
		queue:     newEventQueue(),
	}
	b.mu.Lock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[*Subscription]struct{})
	}
	b.subs[sessionID][sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

func (b *bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	delete(b.subs[sub.sessionID], sub)
	if len(b.subs[sub.sessionID]) == 0 {
		delete(b.subs, sub.sessionID)
	}
	b.mu.Unlock()
}

// publish delivers the event to every current subscriber of the session.
// Zero subscribers is a no-op. The handle set is copied before iterating
// so a subscriber detaching mid-publish never corrupts the walk; push
// itself never blocks.
func (b *bus) publish(sessionID string, e centum.Snapshot) {
	b.mu.RLock()
	targets := make([]*Subscription, 0, len(b.subs[sessionID]))
	for sub := range b.subs[sessionID] {
		targets = append(targets, sub)
	}
	b.mu.RUnlock()

	for _, sub := range targets {
		sub.queue.push(e)
	}
}

// closeTopic ends every subscription for the session. Queued events are
// still flushed to their consumers before the close is observed.
func (b *bus) closeTopic(sessionID string) {
	b.mu.Lock()
	set := b.subs[sessionID]
	delete(b.subs, sessionID)
	b.mu.Unlock()

	for sub := range set {
		sub.queue.close()
	}
}

// closeAll ends every subscription on the bus. Used on engine shutdown.
func (b *bus) closeAll() {
	b.mu.Lock()
	all := b.subs
	b.subs = make(map[string]map[*Subscription]struct{})
	b.mu.Unlock()

	for _, set := range all {
		for sub := range set {
			sub.queue.close()
		}
	}
}
