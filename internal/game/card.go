package game

// Face is the visible side of a card.
type Face int

const (
	FaceDown Face = iota
	FaceUp
)

func (f Face) String() string {
	if f == FaceUp {
		return "up"
	}
	return "down"
}

// Card is a single grid cell holding one instance of an item.
// A matched card is always face-up and is never flipped again.
type Card struct {
	ItemID   string
	Position Rect
	Face     Face
	Matched  bool
}

// IsFaceUp reports whether the card is showing its item.
func (c Card) IsFaceUp() bool {
	return c.Face == FaceUp
}

// flippable reports whether a click may turn this card over.
func (c Card) flippable() bool {
	return !c.Matched && c.Face == FaceDown
}

func (c *Card) flip() {
	if c.Matched {
		return
	}
	if c.Face == FaceUp {
		c.Face = FaceDown
	} else {
		c.Face = FaceUp
	}
}
