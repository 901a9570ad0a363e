package game

import (
	"fmt"
)

// Layout describes the draw area a board is centered in.
type Layout struct {
	Width      int
	Height     int
	TopMargin  int // rows reserved above the grid for the HUD
	Padding    int
	Aspect     int // horizontal cells per vertical cell; 2 for most terminals
	NameOffset int // rows between a matched pair and its name reveal
}

// FlipResult is the outcome of a TryFlip call.
type FlipResult int

const (
	FlipIgnored FlipResult = iota
	FlipFirst
	FlipSecond
)

func (f FlipResult) String() string {
	switch f {
	case FlipFirst:
		return "first"
	case FlipSecond:
		return "second"
	default:
		return "ignored"
	}
}

// Resolution is the outcome of comparing the two selected cards.
type Resolution struct {
	Matched bool
	ItemID  string
	Indexes [2]int
	// Anchor for the name reveal: midpoint of the pair, above the higher card.
	RevealX int
	RevealY int
}

// Board holds the cards of the active level and the current selection.
type Board struct {
	Rows int
	Cols int

	cards     []Card
	selection []int
	layout    Layout
}

// Build lays out one card per item row-major and centers the grid in the layout.
// items must hold every item id exactly twice.
func Build(items []string, rows, cols int, layout Layout) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrConfiguration, rows, cols)
	}
	if (rows*cols)%2 != 0 {
		return nil, fmt.Errorf("%w: grid %dx%d has an odd number of cells", ErrConfiguration, rows, cols)
	}
	if len(items) != rows*cols {
		return nil, fmt.Errorf("%w: %d items for a %dx%d grid", ErrConfiguration, len(items), rows, cols)
	}

	counts := make(map[string]int, len(items)/2)
	for _, id := range items {
		counts[id]++
	}
	for id, n := range counts {
		if n != 2 {
			return nil, fmt.Errorf("%w: item %q occurs %d times", ErrConfiguration, id, n)
		}
	}

	b := &Board{
		Rows:      rows,
		Cols:      cols,
		cards:     make([]Card, len(items)),
		selection: make([]int, 0, 2),
	}
	for i, id := range items {
		b.cards[i] = Card{ItemID: id, Face: FaceDown}
	}
	b.Relayout(layout)
	return b, nil
}

// Relayout recomputes card positions for a new draw area. Card order and state are untouched.
func (b *Board) Relayout(layout Layout) {
	if layout.Aspect < 1 {
		layout.Aspect = 1
	}
	if layout.Padding < 0 {
		layout.Padding = 0
	}
	b.layout = layout

	pad := layout.Padding
	availW := layout.Width - (b.Cols+1)*pad
	availH := layout.Height - layout.TopMargin - (b.Rows+1)*pad

	size := min(availW/(b.Cols*layout.Aspect), availH/b.Rows)
	if size < 1 {
		size = 1
	}
	cellW := size * layout.Aspect
	cellH := size

	totalW := b.Cols*cellW + (b.Cols-1)*pad
	totalH := b.Rows*cellH + (b.Rows-1)*pad
	// A grid larger than the draw area starts at its top-left corner.
	startX := max((layout.Width-totalW)/2, 0)
	startY := max(layout.TopMargin+(availH-totalH)/2, max(layout.TopMargin, 0))

	for i := range b.cards {
		row, col := i/b.Cols, i%b.Cols
		b.cards[i].Position = Rect{
			X: startX + col*(cellW+pad),
			Y: startY + row*(cellH+pad),
			W: cellW,
			H: cellH,
		}
	}
}

// Layout returns the layout the board was last positioned with.
func (b *Board) Layout() Layout {
	return b.layout
}

// CardAt returns the index of the card under (x, y), or -1.
func (b *Board) CardAt(x, y int) int {
	for i, c := range b.cards {
		if c.Position.Contains(x, y) {
			return i
		}
	}
	return -1
}

// TryFlip turns over the face-down card under (x, y) and adds it to the selection.
func (b *Board) TryFlip(x, y int) FlipResult {
	if len(b.selection) >= 2 {
		return FlipIgnored
	}
	idx := b.CardAt(x, y)
	if idx < 0 || !b.cards[idx].flippable() {
		return FlipIgnored
	}

	b.cards[idx].flip()
	b.selection = append(b.selection, idx)
	if len(b.selection) == 2 {
		return FlipSecond
	}
	return FlipFirst
}

// ResolveSelection compares the two selected cards. A match marks both cards and
// clears the selection; a mismatch leaves them face-up and selected until UnflipPending.
func (b *Board) ResolveSelection() (Resolution, error) {
	if len(b.selection) != 2 {
		return Resolution{}, fmt.Errorf("%w: %d selected", ErrSelectionIncomplete, len(b.selection))
	}

	i, j := b.selection[0], b.selection[1]
	first, second := &b.cards[i], &b.cards[j]
	r := Resolution{Indexes: [2]int{i, j}}
	if first.ItemID != second.ItemID {
		return r, nil
	}

	first.Matched = true
	second.Matched = true
	b.selection = b.selection[:0]

	x1, _ := first.Position.Center()
	x2, _ := second.Position.Center()
	r.Matched = true
	r.ItemID = first.ItemID
	r.RevealX = (x1 + x2) / 2
	r.RevealY = min(first.Position.Y, second.Position.Y) - b.layout.NameOffset
	if r.RevealY < 0 {
		r.RevealY = 0
	}
	return r, nil
}

// UnflipPending turns the selected cards face-down again and clears the selection.
// Matched cards are never turned back.
func (b *Board) UnflipPending() {
	for _, idx := range b.selection {
		c := &b.cards[idx]
		if !c.Matched && c.Face == FaceUp {
			c.Face = FaceDown
		}
	}
	b.selection = b.selection[:0]
}

// AllMatched reports whether every card on the board is matched.
func (b *Board) AllMatched() bool {
	for _, c := range b.cards {
		if !c.Matched {
			return false
		}
	}
	return true
}

// Cards returns a copy of the cards in row-major order.
func (b *Board) Cards() []Card {
	out := make([]Card, len(b.cards))
	copy(out, b.cards)
	return out
}

// Selection returns a copy of the selected card indexes.
func (b *Board) Selection() []int {
	out := make([]int, len(b.selection))
	copy(out, b.selection)
	return out
}

// Len returns the number of cards on the board.
func (b *Board) Len() int {
	return len(b.cards)
}
