package game

import (
	"fmt"
	"time"
)

// LevelSpec is the immutable configuration of one level in the progression.
type LevelSpec struct {
	ID        int
	Rows      int
	Cols      int
	Theme     string
	TimeLimit time.Duration // 0 means unlimited
}

// TotalPairs is the number of pairs the level's grid holds.
func (l LevelSpec) TotalPairs() int {
	return l.Rows * l.Cols / 2
}

// Validate checks that the grid can be filled with pairs.
func (l LevelSpec) Validate() error {
	if l.Rows <= 0 || l.Cols <= 0 {
		return fmt.Errorf("%w: level %d has grid %dx%d", ErrConfiguration, l.ID, l.Rows, l.Cols)
	}
	if (l.Rows*l.Cols)%2 != 0 {
		return fmt.Errorf("%w: level %d grid %dx%d has an odd number of cells", ErrConfiguration, l.ID, l.Rows, l.Cols)
	}
	if l.Theme == "" {
		return fmt.Errorf("%w: level %d has no theme", ErrConfiguration, l.ID)
	}
	if l.TimeLimit < 0 {
		return fmt.Errorf("%w: level %d has a negative time limit", ErrConfiguration, l.ID)
	}
	return nil
}

// Unlimited reports whether the level has no time limit.
func (l LevelSpec) Unlimited() bool {
	return l.TimeLimit <= 0
}
