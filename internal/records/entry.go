package records

import (
	"sort"
	"time"
)

// Outcome values stored with an entry.
const (
	OutcomeWon      = "won"
	OutcomeTimedOut = "timed_out"
)

// Entry is one finished level attempt.
type Entry struct {
	RunID     string        `json:"run_id"`
	LevelID   int           `json:"level_id"`
	Theme     string        `json:"theme"`
	Outcome   string        `json:"outcome"`
	Elapsed   time.Duration `json:"elapsed"`
	Attempts  int           `json:"attempts"`
	Mistakes  int           `json:"mistakes"`
	Timestamp string        `json:"timestamp"`
}

// Won reports whether the attempt cleared the level.
func (e Entry) Won() bool {
	return e.Outcome == OutcomeWon
}

// History holds the entries recorded for one level.
type History struct {
	LevelID int
	Entries []Entry
	Best    *Entry // fastest win, nil if the level was never won
	Plays   int
	Wins    int
}

// NewHistory builds the history of levelID from all entries.
func NewHistory(levelID int, all []Entry) History {
	h := History{LevelID: levelID}
	for _, e := range all {
		if e.LevelID != levelID {
			continue
		}
		h.Entries = append(h.Entries, e)
		h.Plays++
		if !e.Won() {
			continue
		}
		h.Wins++
		if h.Best == nil || e.Elapsed < h.Best.Elapsed {
			best := e
			h.Best = &best
		}
	}
	return h
}

// GetNBestEntries returns the n fastest wins, fastest first.
func (h History) GetNBestEntries(n int) []Entry {
	wins := make([]Entry, 0, h.Wins)
	for _, e := range h.Entries {
		if e.Won() {
			wins = append(wins, e)
		}
	}

	sort.SliceStable(wins, func(i, j int) bool {
		return wins[i].Elapsed < wins[j].Elapsed
	})

	if len(wins) < n {
		return wins
	}
	return wins[:n]
}

// GotBestTime checks if elapsed beats or ties the recorded best.
func (h History) GotBestTime(elapsed time.Duration) bool {
	if h.Best == nil {
		// No previous win, so any win is the best.
		return true
	}
	return elapsed <= h.Best.Elapsed
}
