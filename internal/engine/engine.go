// Package engine coordinates short-lived two-player duel sessions and
// fans their state changes out to any number of streaming subscribers.
// All session state is in-memory; nothing survives process termination.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playduel/centum/internal/centum"
)

// Engine is the session API the transport layer talks to. Construct it
// with New and release its timers and streams with Close; there is no
// package-level state.
type Engine struct {
	logger *slog.Logger
	tick   time.Duration

	store *sessionStore
	bus   *bus

	ctx    context.Context
	cancel context.CancelFunc
	timers sync.WaitGroup
}

// JoinResult reports the outcome of a join attempt.
type JoinResult struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}

// New builds an engine. tick is the interval between countdown ticks;
// zero or negative means one second.
func New(logger *slog.Logger, tick time.Duration) *Engine {
	if tick <= 0 {
		tick = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		logger: logger,
		tick:   tick,
		store:  newSessionStore(),
		bus:    newBus(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Close stops every countdown timer and ends every open subscription.
func (e *Engine) Close() {
	e.cancel()
	e.timers.Wait()
	e.bus.closeAll()
}

// CreateSession starts a new session with the caller in seat1.
func (e *Engine) CreateSession(ctx context.Context, callerID string, mode centum.LobbyMode, invitedID string) (centum.Snapshot, error) {
	sess, err := centum.New(uuid.NewString(), callerID, mode, invitedID, time.Now().UTC())
	if err != nil {
		return centum.Snapshot{}, err
	}
	e.store.put(sess)

	e.logger.Info("session created",
		"session_id", sess.ID,
		"lobby_mode", string(mode),
	)
	return sess.Snapshot(), nil
}

// JoinSession seats the caller in seat2. Once both seats are filled the
// countdown is armed exactly once; a racing second join finds the session
// already counting down and arms nothing.
func (e *Engine) JoinSession(ctx context.Context, sessionID, callerID string) (JoinResult, error) {
	entry, ok := e.store.get(sessionID)
	if !ok {
		return JoinResult{}, centum.ErrNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now().UTC()
	next, changed, err := centum.Join(entry.sess, callerID, now)
	if err != nil {
		return JoinResult{}, err
	}
	if !changed {
		// Idempotent re-join: same result, no event.
		return JoinResult{Accepted: true, Message: "already joined"}, nil
	}

	entry.sess = next
	e.bus.publish(sessionID, next.Snapshot())

	if armed, started := centum.StartCountdown(next, now); started {
		entry.sess = armed
		e.bus.publish(sessionID, armed.Snapshot())
		e.runCountdown(sessionID)
	}

	e.logger.Info("player joined", "session_id", sessionID)
	return JoinResult{Accepted: true, Message: "joined"}, nil
}

// runCountdown drives one session from countdown to active. The ticker
// stops itself once the session goes active, disappears, or the engine
// shuts down; an orphaned timer would be a defect.
func (e *Engine) runCountdown(sessionID string) {
	e.timers.Add(1)
	go func() {
		defer e.timers.Done()

		t := time.NewTicker(e.tick)
		defer t.Stop()

		for {
			select {
			case <-e.ctx.Done():
				return
			case <-t.C:
			}

			entry, ok := e.store.get(sessionID)
			if !ok {
				return
			}

			entry.mu.Lock()
			next, ticked := centum.Tick(entry.sess, time.Now().UTC())
			if !ticked {
				entry.mu.Unlock()
				return
			}
			entry.sess = next
			e.bus.publish(sessionID, next.Snapshot())
			active := next.Status == centum.StatusActive
			entry.mu.Unlock()

			if active {
				e.logger.Info("session active", "session_id", sessionID)
				return
			}
		}
	}()
}

// ApplyMove applies one move for the caller. The final move of a game
// closes every subscription to the session after its event is flushed.
func (e *Engine) ApplyMove(ctx context.Context, sessionID, callerID string, value int) (centum.Snapshot, error) {
	entry, ok := e.store.get(sessionID)
	if !ok {
		return centum.Snapshot{}, centum.ErrNotFound
	}

	entry.mu.Lock()
	next, err := centum.Move(entry.sess, callerID, value, time.Now().UTC())
	if err != nil {
		entry.mu.Unlock()
		return centum.Snapshot{}, err
	}
	entry.sess = next
	snap := next.Snapshot()
	e.bus.publish(sessionID, snap)
	entry.mu.Unlock()

	if next.Status == centum.StatusFinished {
		e.logger.Info("session finished",
			"session_id", sessionID,
			"winner", next.Winner,
		)
		e.bus.closeTopic(sessionID)
	}
	return snap, nil
}

// GetSnapshot returns the current external projection of a session.
func (e *Engine) GetSnapshot(ctx context.Context, sessionID string) (centum.Snapshot, error) {
	entry, ok := e.store.get(sessionID)
	if !ok {
		return centum.Snapshot{}, centum.ErrNotFound
	}
	entry.mu.Lock()
	snap := entry.sess.Snapshot()
	entry.mu.Unlock()
	return snap, nil
}

// Subscribe attaches a consumer to a session's event stream. If the
// session exists its current snapshot is the first event, so a late
// joiner never waits for the next mutation to see state; a finished
// session yields that one snapshot and then ends the stream. Consumers
// must Close the subscription when they stop reading.
func (e *Engine) Subscribe(sessionID string) *Subscription {
	entry, ok := e.store.get(sessionID)
	if !ok {
		return e.bus.subscribe(sessionID)
	}

	// Registering and seeding under the session lock keeps the initial
	// snapshot strictly ordered against concurrent publishes.
	entry.mu.Lock()
	sub := e.bus.subscribe(sessionID)
	sub.queue.push(entry.sess.Snapshot())
	finished := entry.sess.Status == centum.StatusFinished
	entry.mu.Unlock()

	if finished {
		sub.Close()
	}
	return sub
}
