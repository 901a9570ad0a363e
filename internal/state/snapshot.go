package state

import (
	"go-match/internal/achievement"
	"go-match/internal/game"
	"go-match/internal/records"
)

// CardView is a card plus the visual resolved for its item.
type CardView struct {
	game.Card
	Visual string
}

// Snapshot is a read-only view of the controller for rendering.
type Snapshot struct {
	State      string
	LevelIndex int
	LevelCount int
	Level      *game.LevelSpec
	NextLevel  *game.LevelSpec

	Cards     []CardView
	Selection []int
	Session   *game.SessionSnapshot

	Popup         *Popup
	NewlyUnlocked []achievement.Record
	Achievements  []achievement.Record
	Unlocked      int
	Total         int

	Best    *records.Entry // best win before this attempt
	NewBest bool

	LastError error
	Quitting  bool
}

// Snapshot copies everything the presentation layer needs.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		State:        c.FSM.Current(),
		LevelIndex:   c.levelIndex,
		LevelCount:   len(c.levels),
		Achievements: c.store.Records(),
		Unlocked:     c.store.UnlockedCount(),
		Total:        c.store.Total(),
		NewBest:      c.newBest,
		LastError:    c.lastErr,
		Quitting:     c.quitting,
	}

	if c.session != nil {
		spec := c.session.Spec
		snap.Level = &spec
		if c.levelIndex+1 < len(c.levels) {
			next := c.levels[c.levelIndex+1]
			snap.NextLevel = &next
		}
		ss := c.session.Snapshot()
		snap.Session = &ss
	}
	if c.deal != nil {
		cards := c.deal.Board.Cards()
		snap.Cards = make([]CardView, len(cards))
		for i, card := range cards {
			snap.Cards[i] = CardView{Card: card, Visual: c.deal.Visual(card.ItemID)}
		}
		snap.Selection = c.deal.Board.Selection()
	}
	if c.popup != nil {
		p := *c.popup
		snap.Popup = &p
	}
	if len(c.newlyUnlocked) > 0 {
		snap.NewlyUnlocked = make([]achievement.Record, len(c.newlyUnlocked))
		copy(snap.NewlyUnlocked, c.newlyUnlocked)
	}
	if c.best != nil {
		b := *c.best
		snap.Best = &b
	}
	return snap
}
