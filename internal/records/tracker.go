package records

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Result is what a finished level reports to the tracker.
type Result struct {
	LevelID  int
	Theme    string
	Won      bool
	Elapsed  time.Duration
	Attempts int
	Mistakes int
}

// Tracker records the results of one play run and answers history queries.
type Tracker struct {
	storage Storage
	runID   string
	now     func() time.Time
}

// NewTracker creates a tracker with a fresh run id.
func NewTracker(storage Storage) *Tracker {
	return &Tracker{
		storage: storage,
		runID:   uuid.NewString(),
		now:     time.Now,
	}
}

// RunID identifies every entry this tracker writes.
func (t *Tracker) RunID() string {
	return t.runID
}

// Record persists the result of a finished level.
func (t *Tracker) Record(r Result) error {
	outcome := OutcomeTimedOut
	if r.Won {
		outcome = OutcomeWon
	}
	entry := Entry{
		RunID:     t.runID,
		LevelID:   r.LevelID,
		Theme:     r.Theme,
		Outcome:   outcome,
		Elapsed:   r.Elapsed,
		Attempts:  r.Attempts,
		Mistakes:  r.Mistakes,
		Timestamp: t.now().Format(time.RFC3339),
	}
	if err := t.storage.Append(entry); err != nil {
		return fmt.Errorf("could not record level %d: %w", r.LevelID, err)
	}
	return nil
}

// History loads the recorded history of one level.
func (t *Tracker) History(levelID int) (History, error) {
	all, err := t.storage.LoadAll()
	if err != nil {
		return History{}, fmt.Errorf("could not load records: %w", err)
	}
	return NewHistory(levelID, all), nil
}

// Best returns the fastest recorded win of the level.
func (t *Tracker) Best(levelID int) (Entry, bool, error) {
	h, err := t.History(levelID)
	if err != nil {
		return Entry{}, false, err
	}
	if h.Best == nil {
		return Entry{}, false, nil
	}
	return *h.Best, true, nil
}
