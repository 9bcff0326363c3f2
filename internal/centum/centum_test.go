package centum

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newLobby(t *testing.T, mode LobbyMode, invited string) Session {
	t.Helper()
	s, err := New("s1", "p1", mode, invited, testNow)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// active returns a session mid-game with a known turn.
func active(turn Turn) Session {
	return Session{
		ID:        "s1",
		Creator:   "p1",
		Seats:     Seats{Seat1: "p1", Seat2: "p2"},
		LobbyMode: LobbyOpen,
		Turn:      turn,
		Status:    StatusActive,
		Version:   9,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func TestNewOpenSession(t *testing.T) {
	s := newLobby(t, LobbyOpen, "")

	if s.Status != StatusLobby {
		t.Errorf("expected status lobby, got %q", s.Status)
	}
	if s.Seats.Seat1 != "p1" || s.Seats.Seat2 != "" {
		t.Errorf("expected creator alone in seat1, got %+v", s.Seats)
	}
	if s.Accumulator != 0 {
		t.Errorf("expected accumulator 0, got %d", s.Accumulator)
	}
	if s.Version != 1 {
		t.Errorf("expected version 1, got %d", s.Version)
	}
	if s.Turn != TurnSeat1 && s.Turn != TurnSeat2 {
		t.Errorf("expected a seat turn, got %q", s.Turn)
	}
}

func TestNewInviteRequiresInvitee(t *testing.T) {
	if _, err := New("s1", "p1", LobbyInvite, "", testNow); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNewRejectsUnknownMode(t *testing.T) {
	if _, err := New("s1", "p1", LobbyMode("ranked"), "", testNow); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestJoinFillsSeat2(t *testing.T) {
	s := newLobby(t, LobbyOpen, "")

	next, changed, err := Join(s, "p2", testNow)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if !changed {
		t.Fatal("expected changed=true")
	}
	if next.Seats.Seat2 != "p2" {
		t.Errorf("expected p2 in seat2, got %q", next.Seats.Seat2)
	}
	if next.Version != s.Version+1 {
		t.Errorf("expected version bump, got %d", next.Version)
	}
}

func TestJoinIdempotent(t *testing.T) {
	s := newLobby(t, LobbyOpen, "")
	s, _, _ = Join(s, "p2", testNow)

	for _, caller := range []string{"p1", "p2"} {
		next, changed, err := Join(s, caller, testNow)
		if err != nil {
			t.Fatalf("rejoin by %s: %v", caller, err)
		}
		if changed {
			t.Errorf("rejoin by %s: expected no change", caller)
		}
		if next.Version != s.Version {
			t.Errorf("rejoin by %s: expected version unchanged", caller)
		}
	}
}

func TestJoinLobbyFull(t *testing.T) {
	s := newLobby(t, LobbyOpen, "")
	s, _, _ = Join(s, "p2", testNow)

	if _, _, err := Join(s, "p3", testNow); !errors.Is(err, ErrLobbyFull) {
		t.Fatalf("expected ErrLobbyFull, got %v", err)
	}
}

func TestJoinInviteLobby(t *testing.T) {
	s := newLobby(t, LobbyInvite, "p3")

	if _, _, err := Join(s, "p2", testNow); !errors.Is(err, ErrForbidden) {
		t.Fatalf("uninvited join: expected ErrForbidden, got %v", err)
	}

	next, changed, err := Join(s, "p3", testNow)
	if err != nil || !changed {
		t.Fatalf("invited join: changed=%v err=%v", changed, err)
	}
	if next.Seats.Seat2 != "p3" {
		t.Errorf("expected p3 in seat2, got %q", next.Seats.Seat2)
	}
}

func TestStartCountdown(t *testing.T) {
	s := newLobby(t, LobbyOpen, "")

	// Half-empty lobby must not arm.
	if _, started := StartCountdown(s, testNow); started {
		t.Fatal("expected no countdown with an empty seat2")
	}

	s, _, _ = Join(s, "p2", testNow)
	armed, started := StartCountdown(s, testNow)
	if !started {
		t.Fatal("expected countdown to start")
	}
	if armed.Status != StatusCountdown || armed.Countdown != CountdownStart {
		t.Fatalf("expected countdown %d, got status=%q countdown=%d",
			CountdownStart, armed.Status, armed.Countdown)
	}

	// Arming again is a no-op; this is the duplicate-timer guard.
	if _, started := StartCountdown(armed, testNow); started {
		t.Fatal("expected re-arm to be a no-op")
	}
}

func TestTickSequence(t *testing.T) {
	s := newLobby(t, LobbyOpen, "")
	s, _, _ = Join(s, "p2", testNow)
	s, _ = StartCountdown(s, testNow)

	for want := CountdownStart - 1; want >= 1; want-- {
		var ticked bool
		s, ticked = Tick(s, testNow)
		if !ticked {
			t.Fatalf("tick at countdown %d: expected ticked", want+1)
		}
		if s.Status != StatusCountdown || s.Countdown != want {
			t.Fatalf("expected countdown %d, got status=%q countdown=%d", want, s.Status, s.Countdown)
		}
		if snap := s.Snapshot(); snap.Countdown == nil || *snap.Countdown != want {
			t.Fatalf("snapshot countdown mismatch at %d", want)
		}
	}

	s, ticked := Tick(s, testNow)
	if !ticked {
		t.Fatal("final tick: expected ticked")
	}
	if s.Status != StatusActive {
		t.Fatalf("expected active, got %q", s.Status)
	}
	if snap := s.Snapshot(); snap.Countdown != nil {
		t.Fatal("expected countdown cleared from active snapshot")
	}

	// Ticking an active session does nothing.
	if _, ticked := Tick(s, testNow); ticked {
		t.Fatal("expected tick on active session to be a no-op")
	}
}

func TestMoveGating(t *testing.T) {
	lobby := newLobby(t, LobbyOpen, "")
	if _, err := Move(lobby, "p1", 5, testNow); !errors.Is(err, ErrNotActive) {
		t.Fatalf("lobby move: expected ErrNotActive, got %v", err)
	}

	s := active(TurnSeat1)
	if _, err := Move(s, "p2", 5, testNow); !errors.Is(err, ErrForbidden) {
		t.Fatalf("out-of-turn move: expected ErrForbidden, got %v", err)
	}

	for _, value := range []int{0, -3, 11} {
		if _, err := Move(s, "p1", value, testNow); !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("value %d: expected ErrInvalidMove, got %v", value, err)
		}
	}
}

func TestMoveAlternatesAndAccumulates(t *testing.T) {
	s := active(TurnSeat1)
	movers := []struct {
		caller string
		value  int
	}{
		{"p1", 5}, {"p2", 7}, {"p1", 10}, {"p2", 1},
	}

	sum := 0
	for _, m := range movers {
		var err error
		s, err = Move(s, m.caller, m.value, testNow)
		if err != nil {
			t.Fatalf("move by %s: %v", m.caller, err)
		}
		sum += m.value
		if s.Accumulator != sum {
			t.Fatalf("expected accumulator %d, got %d", sum, s.Accumulator)
		}
		if s.Status != StatusActive {
			t.Fatalf("expected active below threshold, got %q", s.Status)
		}
	}
	if s.Turn != TurnSeat1 {
		t.Errorf("expected turn back at seat1 after four moves, got %q", s.Turn)
	}
}

func TestMoveThresholdBoundary(t *testing.T) {
	s := active(TurnSeat2)
	s.Accumulator = 94

	// 94 + 5 = 99: still active.
	s, err := Move(s, "p2", 5, testNow)
	if err != nil {
		t.Fatalf("move to 99: %v", err)
	}
	if s.Status != StatusActive || s.Winner != "" {
		t.Fatalf("at 99: expected active with no winner, got status=%q winner=%q", s.Status, s.Winner)
	}

	// 99 + 1 = 100: finished, mover wins, turn marker stays.
	s, err = Move(s, "p1", 1, testNow)
	if err != nil {
		t.Fatalf("move to 100: %v", err)
	}
	if s.Status != StatusFinished {
		t.Fatalf("at 100: expected finished, got %q", s.Status)
	}
	if s.Winner != "p1" {
		t.Fatalf("expected winner p1, got %q", s.Winner)
	}
	if s.Turn != TurnSeat1 {
		t.Errorf("expected turn marker unchanged on the winning move, got %q", s.Turn)
	}

	if _, err := Move(s, "p2", 2, testNow); !errors.Is(err, ErrNotActive) {
		t.Fatalf("move after finish: expected ErrNotActive, got %v", err)
	}
}

func TestSnapshotOmitsInternalFields(t *testing.T) {
	s := active(TurnSeat1)
	snap := s.Snapshot()

	if snap.ID != s.ID || snap.Accumulator != s.Accumulator || snap.Turn != s.Turn {
		t.Fatalf("snapshot projection mismatch: %+v", snap)
	}
	if snap.Countdown != nil {
		t.Error("expected no countdown outside countdown status")
	}

	// The snapshot must be an independent copy.
	s.Seats.Seat1 = "someone-else"
	if snap.Seats.Seat1 != "p1" {
		t.Error("snapshot aliases session state")
	}
}
