// Package centum defines the core domain types and transition rules for
// the race-to-100 duel. It has zero external dependencies and no locking;
// every transition is a pure function from a session value to a new
// session value, so concurrency is entirely the caller's concern.
package centum

import (
	"errors"
	"math/rand/v2"
	"time"
)

const (
	// WinThreshold ends the game once the accumulator reaches it.
	WinThreshold = 100

	// MinMoveValue and MaxMoveValue bound a single move.
	MinMoveValue = 1
	MaxMoveValue = 10

	// CountdownStart is the number of ticks between a full lobby and an
	// active game.
	CountdownStart = 5
)

type Status string

const (
	StatusLobby     Status = "lobby"
	StatusCountdown Status = "countdown"
	StatusActive    Status = "active"
	StatusFinished  Status = "finished"
)

type LobbyMode string

const (
	LobbyOpen   LobbyMode = "open"
	LobbyInvite LobbyMode = "invite"
)

// Turn names the seat that must supply the next move.
type Turn string

const (
	TurnSeat1 Turn = "seat1"
	TurnSeat2 Turn = "seat2"
)

func (t Turn) other() Turn {
	if t == TurnSeat1 {
		return TurnSeat2
	}
	return TurnSeat1
}

// Seats holds the two player slots. Seat1 is always the creator; Seat2 is
// empty until a second player joins and never empties again afterwards.
type Seats struct {
	Seat1 string `json:"seat1"`
	Seat2 string `json:"seat2,omitempty"`
}

func (s Seats) at(t Turn) string {
	if t == TurnSeat1 {
		return s.Seat1
	}
	return s.Seat2
}

func (s Seats) occupiedBy(playerID string) bool {
	return playerID != "" && (s.Seat1 == playerID || s.Seat2 == playerID)
}

// Session is the full internal state of one duel. Status only ever moves
// forward: lobby -> countdown -> active -> finished.
type Session struct {
	ID          string
	Creator     string
	Invited     string
	Seats       Seats
	LobbyMode   LobbyMode
	Turn        Turn
	Accumulator int
	Status      Status
	Winner      string
	Countdown   int // meaningful only while Status == StatusCountdown
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Snapshot is the externally visible projection of a session. Creator,
// lobby mode, version and timestamps stay internal.
type Snapshot struct {
	ID          string `json:"id"`
	Seats       Seats  `json:"seats"`
	Status      Status `json:"status"`
	Turn        Turn   `json:"turn"`
	Accumulator int    `json:"accumulator"`
	Winner      string `json:"winner,omitempty"`
	Countdown   *int   `json:"countdown,omitempty"`
}

// Snapshot returns an independently owned projection of s. Nothing in the
// result aliases the session, so publishing it is safe even while the
// session keeps mutating.
func (s Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:          s.ID,
		Seats:       s.Seats,
		Status:      s.Status,
		Turn:        s.Turn,
		Accumulator: s.Accumulator,
		Winner:      s.Winner,
	}
	if s.Status == StatusCountdown {
		c := s.Countdown
		snap.Countdown = &c
	}
	return snap
}

// Caller-facing error taxonomy. All of these are recoverable; none
// represent an engine fault.
var (
	ErrNotFound     = errors.New("session not found")
	ErrForbidden    = errors.New("forbidden")
	ErrLobbyFull    = errors.New("lobby is full")
	ErrNotActive    = errors.New("session is not active")
	ErrInvalidMove  = errors.New("move value out of range")
	ErrInvalidInput = errors.New("invalid input")
)

// New creates a session with the creator in seat1 and a uniformly random
// first turn. Invite lobbies must name the invited player.
func New(id, creator string, mode LobbyMode, invited string, now time.Time) (Session, error) {
	if id == "" || creator == "" {
		return Session{}, ErrInvalidInput
	}
	switch mode {
	case LobbyOpen:
	case LobbyInvite:
		if invited == "" {
			return Session{}, ErrInvalidInput
		}
	default:
		return Session{}, ErrInvalidInput
	}

	turn := TurnSeat1
	if rand.IntN(2) == 1 {
		turn = TurnSeat2
	}

	return Session{
		ID:        id,
		Creator:   creator,
		Invited:   invited,
		Seats:     Seats{Seat1: creator},
		LobbyMode: mode,
		Turn:      turn,
		Status:    StatusLobby,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Join seats the caller in seat2. Joining a session the caller already
// occupies is an idempotent no-op: the current state comes back with
// changed=false and the caller must not publish an event for it.
func Join(s Session, callerID string, now time.Time) (Session, bool, error) {
	if callerID == "" {
		return s, false, ErrInvalidInput
	}
	if s.Seats.occupiedBy(callerID) {
		return s, false, nil
	}
	if s.Seats.Seat2 != "" {
		return s, false, ErrLobbyFull
	}
	if s.LobbyMode == LobbyInvite && callerID != s.Invited {
		return s, false, ErrForbidden
	}

	s.Seats.Seat2 = callerID
	s.Version++
	s.UpdatedAt = now
	return s, true, nil
}

// StartCountdown arms the countdown once both seats are filled while the
// session is still in the lobby. Any other state is a no-op with
// started=false, which is what makes a racing second join attempt safe.
func StartCountdown(s Session, now time.Time) (Session, bool) {
	if s.Status != StatusLobby || s.Seats.Seat2 == "" {
		return s, false
	}
	s.Status = StatusCountdown
	s.Countdown = CountdownStart
	s.Version++
	s.UpdatedAt = now
	return s, true
}

// Tick decrements the countdown. At zero the session goes active and the
// countdown field is cleared. Ticking a session that is not counting down
// is a no-op with ticked=false.
func Tick(s Session, now time.Time) (Session, bool) {
	if s.Status != StatusCountdown {
		return s, false
	}
	s.Countdown--
	if s.Countdown <= 0 {
		s.Countdown = 0
		s.Status = StatusActive
	}
	s.Version++
	s.UpdatedAt = now
	return s, true
}

// Move applies one accepted move: the accumulator grows by value and
// either the turn flips or, at the threshold, the mover wins. The checks
// run in contract order: active status, then turn ownership, then range.
func Move(s Session, callerID string, value int, now time.Time) (Session, error) {
	if s.Status != StatusActive {
		return s, ErrNotActive
	}
	if s.Seats.at(s.Turn) != callerID {
		return s, ErrForbidden
	}
	if value < MinMoveValue || value > MaxMoveValue {
		return s, ErrInvalidMove
	}

	s.Accumulator += value
	if s.Accumulator >= WinThreshold {
		s.Status = StatusFinished
		s.Winner = callerID
	} else {
		s.Turn = s.Turn.other()
	}
	s.Version++
	s.UpdatedAt = now
	return s, nil
}
