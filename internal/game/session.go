package game

import (
	"context"
	"time"

	"github.com/looplab/fsm"
)

// Session states.
const (
	StateRunning  = "running"
	StateWon      = "won"
	StateTimedOut = "timed_out"
)

// Timing holds the fixed delays of a level.
type Timing struct {
	MismatchDelay time.Duration // how long a mismatched pair stays visible
	NameReveal    time.Duration // how long a matched item's name is shown
	Popup         time.Duration // how long an achievement popup is shown
}

// DefaultTiming returns the stock delays.
func DefaultTiming() Timing {
	return Timing{
		MismatchDelay: 500 * time.Millisecond,
		NameReveal:    1500 * time.Millisecond,
		Popup:         3 * time.Second,
	}
}

// NameReveal is the name of a just-matched item and where to show it.
type NameReveal struct {
	ItemID    string
	X, Y      int
	Remaining time.Duration
}

// LevelSession tracks the timing and counters of one level attempt.
type LevelSession struct {
	Spec         LevelSpec
	Board        *Board
	TotalPairs   int
	MatchedPairs int
	Attempts     int
	Mistakes     int
	Elapsed      time.Duration
	TimeLimit    time.Duration

	timing          Timing
	mismatchPending bool
	mismatchLeft    time.Duration
	reveal          *NameReveal
	fsm             *fsm.FSM
}

// SessionSnapshot is a read-only view of a session for rendering.
type SessionSnapshot struct {
	State           string
	TotalPairs      int
	MatchedPairs    int
	Attempts        int
	Mistakes        int
	Elapsed         time.Duration
	TimeLimit       time.Duration
	Remaining       time.Duration // zero when unlimited
	MismatchPending bool
	Reveal          *NameReveal
}

// NewLevelSession starts a running session over board.
func NewLevelSession(spec LevelSpec, board *Board, timing Timing) *LevelSession {
	s := &LevelSession{
		Spec:       spec,
		Board:      board,
		TotalPairs: spec.TotalPairs(),
		TimeLimit:  spec.TimeLimit,
		timing:     timing,
	}
	s.fsm = fsm.NewFSM(
		StateRunning,
		fsm.Events{
			{Name: "win", Src: []string{StateRunning}, Dst: StateWon},
			{Name: "timeout", Src: []string{StateRunning}, Dst: StateTimedOut},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				// Terminal states drop every pending countdown.
				s.mismatchPending = false
				s.mismatchLeft = 0
			},
		},
	)
	return s
}

// State returns the current session state.
func (s *LevelSession) State() string {
	return s.fsm.Current()
}

func (s *LevelSession) Running() bool {
	return s.fsm.Is(StateRunning)
}

func (s *LevelSession) Won() bool {
	return s.fsm.Is(StateWon)
}

func (s *LevelSession) TimedOut() bool {
	return s.fsm.Is(StateTimedOut)
}

// AcceptingFlips reports whether a click may flip a card.
func (s *LevelSession) AcceptingFlips() bool {
	return s.Running() && !s.mismatchPending
}

// Tick advances the session clock by dt. The timeout check runs first; if it
// fires, no countdown is processed in the same tick.
func (s *LevelSession) Tick(dt time.Duration) {
	if !s.Running() || dt < 0 {
		return
	}
	s.Elapsed += dt
	if s.TimeLimit > 0 && s.Elapsed > s.TimeLimit {
		_ = s.fsm.Event(context.Background(), "timeout")
		return
	}

	if s.reveal != nil {
		s.reveal.Remaining = max(s.reveal.Remaining-dt, 0)
		if s.reveal.Remaining <= 0 {
			s.reveal = nil
		}
	}

	if s.mismatchPending {
		s.mismatchLeft = max(s.mismatchLeft-dt, 0)
		if s.mismatchLeft <= 0 {
			s.Board.UnflipPending()
			s.mismatchPending = false
		}
	}
}

// OnSecondFlipSelected counts one attempt per completed two-card selection.
func (s *LevelSession) OnSecondFlipSelected() {
	if !s.Running() {
		return
	}
	s.Attempts++
}

// OnResolution applies the outcome of comparing a pair.
func (s *LevelSession) OnResolution(r Resolution) {
	if !s.Running() {
		return
	}
	if !r.Matched {
		s.Mistakes++
		s.mismatchPending = true
		s.mismatchLeft = s.timing.MismatchDelay
		return
	}

	s.MatchedPairs++
	s.reveal = &NameReveal{
		ItemID:    r.ItemID,
		X:         r.RevealX,
		Y:         r.RevealY,
		Remaining: s.timing.NameReveal,
	}
	if s.MatchedPairs == s.TotalPairs {
		_ = s.fsm.Event(context.Background(), "win")
	}
}

// Remaining returns the time left before timeout, or 0 if the level is unlimited.
func (s *LevelSession) Remaining() time.Duration {
	if s.TimeLimit <= 0 {
		return 0
	}
	return max(s.TimeLimit-s.Elapsed, 0)
}

// Reveal returns a copy of the active name reveal, or nil.
func (s *LevelSession) Reveal() *NameReveal {
	if s.reveal == nil {
		return nil
	}
	r := *s.reveal
	return &r
}

func (s *LevelSession) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		State:           s.State(),
		TotalPairs:      s.TotalPairs,
		MatchedPairs:    s.MatchedPairs,
		Attempts:        s.Attempts,
		Mistakes:        s.Mistakes,
		Elapsed:         s.Elapsed,
		TimeLimit:       s.TimeLimit,
		Remaining:       s.Remaining(),
		MismatchPending: s.mismatchPending,
		Reveal:          s.Reveal(),
	}
}
