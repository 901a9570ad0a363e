package game

import (
	"errors"
	"fmt"
)

// ErrConfiguration is returned when a grid does not fit the items supplied for it.
var ErrConfiguration = errors.New("invalid board configuration")

// ErrSelectionIncomplete is returned by ResolveSelection when fewer than two cards are selected.
var ErrSelectionIncomplete = errors.New("selection does not hold two cards")

// InsufficientAssetsError reports a theme whose item pool cannot fill a level.
type InsufficientAssetsError struct {
	Theme     string
	Available int
	Required  int
}

func (e *InsufficientAssetsError) Error() string {
	return fmt.Sprintf("theme %q has %d items, level needs %d", e.Theme, e.Available, e.Required)
}
