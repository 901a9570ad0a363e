package records

import (
	"errors"
	"testing"
	"time"
)

// MockStorage is an in-memory Storage.
type MockStorage struct {
	Entries   []Entry
	LoadErr   error
	AppendErr error
}

func (m *MockStorage) LoadAll() ([]Entry, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make([]Entry, len(m.Entries))
	copy(out, m.Entries)
	return out, nil
}

func (m *MockStorage) Append(e Entry) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Entries = append(m.Entries, e)
	return nil
}

func (m *MockStorage) Close() error { return nil }

func TestTracker_Record(t *testing.T) {
	storage := &MockStorage{}
	tracker := NewTracker(storage)
	tracker.now = func() time.Time { return time.Date(2026, 3, 20, 8, 0, 0, 0, time.UTC) }

	if tracker.RunID() == "" {
		t.Fatalf("Expected a run id")
	}

	err := tracker.Record(Result{LevelID: 1, Theme: "spring", Won: true, Elapsed: 12 * time.Second, Attempts: 7, Mistakes: 1})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	err = tracker.Record(Result{LevelID: 2, Theme: "summer", Elapsed: 31 * time.Second})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if len(storage.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(storage.Entries))
	}
	first := storage.Entries[0]
	if first.Outcome != OutcomeWon || first.RunID != tracker.RunID() || first.Timestamp != "2026-03-20T08:00:00Z" {
		t.Errorf("Unexpected entry %+v", first)
	}
	if storage.Entries[1].Outcome != OutcomeTimedOut {
		t.Errorf("Expected timed_out, got %s", storage.Entries[1].Outcome)
	}
}

func TestTracker_RecordError(t *testing.T) {
	boom := errors.New("disk full")
	tracker := NewTracker(&MockStorage{AppendErr: boom})
	if err := tracker.Record(Result{LevelID: 1}); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped storage error, got %v", err)
	}
}

func TestTracker_Best(t *testing.T) {
	storage := &MockStorage{Entries: []Entry{
		{LevelID: 1, Outcome: OutcomeWon, Elapsed: 25 * time.Second},
		{LevelID: 1, Outcome: OutcomeTimedOut, Elapsed: 5 * time.Second},
		{LevelID: 1, Outcome: OutcomeWon, Elapsed: 18 * time.Second},
		{LevelID: 2, Outcome: OutcomeWon, Elapsed: time.Second},
	}}
	tracker := NewTracker(storage)

	best, ok, err := tracker.Best(1)
	if err != nil || !ok {
		t.Fatalf("Expected a best entry, got ok=%v err=%v", ok, err)
	}
	if best.Elapsed != 18*time.Second {
		t.Errorf("Expected 18s, got %v", best.Elapsed)
	}

	if _, ok, _ := tracker.Best(3); ok {
		t.Errorf("Expected no best for an unplayed level")
	}

	storage.LoadErr = errors.New("locked")
	if _, _, err := tracker.Best(1); err == nil {
		t.Errorf("Expected load error")
	}
}

func TestHistory(t *testing.T) {
	all := []Entry{
		{LevelID: 1, Outcome: OutcomeWon, Elapsed: 25 * time.Second},
		{LevelID: 1, Outcome: OutcomeTimedOut, Elapsed: 31 * time.Second},
		{LevelID: 1, Outcome: OutcomeWon, Elapsed: 18 * time.Second},
		{LevelID: 1, Outcome: OutcomeWon, Elapsed: 22 * time.Second},
		{LevelID: 2, Outcome: OutcomeWon, Elapsed: time.Second},
	}
	h := NewHistory(1, all)

	if h.Plays != 4 || h.Wins != 3 {
		t.Errorf("Expected 4 plays and 3 wins, got %d and %d", h.Plays, h.Wins)
	}
	top := h.GetNBestEntries(2)
	if len(top) != 2 || top[0].Elapsed != 18*time.Second || top[1].Elapsed != 22*time.Second {
		t.Errorf("Unexpected top entries %+v", top)
	}
	if got := h.GetNBestEntries(10); len(got) != 3 {
		t.Errorf("Expected all 3 wins, got %d", len(got))
	}
	if !h.GotBestTime(18 * time.Second) {
		t.Errorf("Tying the best should count")
	}
	if h.GotBestTime(19 * time.Second) {
		t.Errorf("Slower time reported as best")
	}
	if !NewHistory(9, all).GotBestTime(time.Hour) {
		t.Errorf("Any time is best for a level never won")
	}
}
