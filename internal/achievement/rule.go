package achievement

import (
	"time"
)

// Event names the moment a rule is evaluated at.
type Event string

const (
	EventLevelWon    Event = "level_won"
	EventCompleteAll Event = "complete_all"
)

// Outcome is the result of a won level as seen by the rules.
type Outcome struct {
	LevelID  int
	Theme    string
	Elapsed  time.Duration
	Mistakes int
	Attempts int
}

// Rule unlocks one achievement. Zero-valued criteria match anything.
type Rule struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Event       Event         `yaml:"event"`
	Theme       string        `yaml:"theme,omitempty"`
	LevelID     int           `yaml:"level,omitempty"`
	MaxElapsed  time.Duration `yaml:"max_elapsed,omitempty"`
	MaxMistakes *int          `yaml:"max_mistakes,omitempty"`
	MaxAttempts *int          `yaml:"max_attempts,omitempty"`
}

// Matches reports whether a level-won outcome satisfies the rule.
func (r Rule) Matches(o Outcome) bool {
	if r.Event != EventLevelWon {
		return false
	}
	if r.Theme != "" && r.Theme != o.Theme {
		return false
	}
	if r.LevelID != 0 && r.LevelID != o.LevelID {
		return false
	}
	if r.MaxElapsed > 0 && o.Elapsed > r.MaxElapsed {
		return false
	}
	if r.MaxMistakes != nil && o.Mistakes > *r.MaxMistakes {
		return false
	}
	if r.MaxAttempts != nil && o.Attempts > *r.MaxAttempts {
		return false
	}
	return true
}

func intPtr(n int) *int {
	return &n
}

// DefaultRules returns the stock seasonal achievements.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID: "complete_spring", Name: "Spring Awakening",
			Description: "Complete the spring level",
			Event:       EventLevelWon, Theme: "spring",
		},
		{
			ID: "fast_summer", Name: "Summer Sprint",
			Description: "Complete the summer level within 45 seconds",
			Event:       EventLevelWon, Theme: "summer", MaxElapsed: 45 * time.Second,
		},
		{
			ID: "perfect_autumn", Name: "Flawless Autumn",
			Description: "Complete the autumn level without a mistake",
			Event:       EventLevelWon, Theme: "autumn", MaxMistakes: intPtr(0),
		},
		{
			ID: "complete_all", Name: "Master of the Seasons",
			Description: "Complete every level",
			Event:       EventCompleteAll,
		},
	}
}
