// Package config loads the level table, themes, timing and achievement rules.
package config

import (
	"fmt"
	"time"

	"go-match/internal/achievement"
	"go-match/internal/game"
)

// Config is the whole game configuration.
type Config struct {
	Timing       TimingConfig       `yaml:"timing"`
	Board        BoardConfig        `yaml:"board"`
	Levels       []LevelConfig      `yaml:"levels"`
	Themes       []ThemeConfig      `yaml:"themes"`
	Achievements []achievement.Rule `yaml:"achievements"`
}

// TimingConfig holds the fixed delays and the frame rate.
type TimingConfig struct {
	MismatchDelay time.Duration `yaml:"mismatch_delay"`
	NameReveal    time.Duration `yaml:"name_reveal"`
	Popup         time.Duration `yaml:"popup"`
	TickRate      time.Duration `yaml:"tick_rate"`
}

// BoardConfig controls how the grid is laid out on screen.
type BoardConfig struct {
	Padding    int `yaml:"padding"`
	TopMargin  int `yaml:"top_margin"`
	NameOffset int `yaml:"name_offset"`
	Aspect     int `yaml:"aspect"` // 2 = terminal cells are twice as tall as wide
}

// LevelConfig is one entry of the level progression.
type LevelConfig struct {
	ID        int           `yaml:"id"`
	Rows      int           `yaml:"rows"`
	Cols      int           `yaml:"cols"`
	Theme     string        `yaml:"theme"`
	TimeLimit time.Duration `yaml:"time_limit"` // 0 = unlimited
}

// ThemeConfig is a named pool of items.
type ThemeConfig struct {
	ID    string       `yaml:"id"`
	Name  string       `yaml:"name"`
	Items []ItemConfig `yaml:"items"`
}

// ItemConfig is one pairable item.
type ItemConfig struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph,omitempty"`
}

// GameTiming converts the timing section for a level session.
func (c Config) GameTiming() game.Timing {
	return game.Timing{
		MismatchDelay: c.Timing.MismatchDelay,
		NameReveal:    c.Timing.NameReveal,
		Popup:         c.Timing.Popup,
	}
}

// Layout returns the board layout for a draw area of width x height cells.
func (c Config) Layout(width, height int) game.Layout {
	return game.Layout{
		Width:      width,
		Height:     height,
		TopMargin:  c.Board.TopMargin,
		Padding:    c.Board.Padding,
		Aspect:     c.Board.Aspect,
		NameOffset: c.Board.NameOffset,
	}
}

// LevelSpecs returns the level progression in order.
func (c Config) LevelSpecs() []game.LevelSpec {
	specs := make([]game.LevelSpec, len(c.Levels))
	for i, l := range c.Levels {
		specs[i] = game.LevelSpec{ID: l.ID, Rows: l.Rows, Cols: l.Cols, Theme: l.Theme, TimeLimit: l.TimeLimit}
	}
	return specs
}

// Theme looks up a theme by id.
func (c Config) Theme(id string) (ThemeConfig, bool) {
	for _, t := range c.Themes {
		if t.ID == id {
			return t, true
		}
	}
	return ThemeConfig{}, false
}

// ThemeName returns the display name of a theme, falling back to its id.
func (c Config) ThemeName(id string) string {
	if t, ok := c.Theme(id); ok && t.Name != "" {
		return t.Name
	}
	return id
}

// ItemName returns the display name of an item, falling back to its id.
func (c Config) ItemName(theme, item string) string {
	t, ok := c.Theme(theme)
	if !ok {
		return item
	}
	for _, it := range t.Items {
		if it.ID == item && it.Name != "" {
			return it.Name
		}
	}
	return item
}

// Catalog returns a catalog serving the configured items. An item's visual is
// its glyph, or its name when it has none.
func (c Config) Catalog() *game.StaticCatalog {
	cat := &game.StaticCatalog{
		Themes:  make(map[string][]string, len(c.Themes)),
		Visuals: make(map[string]string),
	}
	for _, t := range c.Themes {
		for _, it := range t.Items {
			cat.Themes[t.ID] = append(cat.Themes[t.ID], it.ID)
			visual := it.Glyph
			if visual == "" {
				visual = it.Name
			}
			cat.Visuals[it.ID] = visual
		}
	}
	return cat
}

// Validate checks the configuration for inconsistencies.
func (c Config) Validate() error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("%w: no levels", game.ErrConfiguration)
	}
	if c.Timing.MismatchDelay < 0 || c.Timing.NameReveal < 0 || c.Timing.Popup < 0 {
		return fmt.Errorf("%w: negative delay", game.ErrConfiguration)
	}
	if c.Timing.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be positive", game.ErrConfiguration)
	}

	themes := make(map[string]ThemeConfig, len(c.Themes))
	for _, t := range c.Themes {
		if t.ID == "" {
			return fmt.Errorf("%w: theme without id", game.ErrConfiguration)
		}
		if _, dup := themes[t.ID]; dup {
			return fmt.Errorf("%w: duplicate theme %q", game.ErrConfiguration, t.ID)
		}
		themes[t.ID] = t
	}

	ids := make(map[int]bool, len(c.Levels))
	for _, l := range c.LevelSpecs() {
		if err := l.Validate(); err != nil {
			return err
		}
		if ids[l.ID] {
			return fmt.Errorf("%w: duplicate level id %d", game.ErrConfiguration, l.ID)
		}
		ids[l.ID] = true

		t, ok := themes[l.Theme]
		if !ok {
			return fmt.Errorf("%w: level %d uses unknown theme %q", game.ErrConfiguration, l.ID, l.Theme)
		}
		if len(t.Items) < l.TotalPairs() {
			return fmt.Errorf("%w: %w", game.ErrConfiguration,
				&game.InsufficientAssetsError{Theme: t.ID, Available: len(t.Items), Required: l.TotalPairs()})
		}
	}

	seen := make(map[string]bool, len(c.Achievements))
	for _, r := range c.Achievements {
		if r.ID == "" {
			return fmt.Errorf("%w: achievement without id", game.ErrConfiguration)
		}
		if seen[r.ID] {
			return fmt.Errorf("%w: duplicate achievement %q", game.ErrConfiguration, r.ID)
		}
		seen[r.ID] = true
		if r.Event != achievement.EventLevelWon && r.Event != achievement.EventCompleteAll {
			return fmt.Errorf("%w: achievement %q has unknown event %q", game.ErrConfiguration, r.ID, r.Event)
		}
	}
	return nil
}
