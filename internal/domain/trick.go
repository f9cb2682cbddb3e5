package domain

// Trick holds one card per seat, filled in clockwise play order from the leader.
type Trick struct {
	Leader Seat
	Cards  [NumSeats]*Card // indexed by absolute seat; nil until played

	winner *Seat // computed once on completion, immutable after
}

// NewTrick starts an empty trick led by the given seat.
func NewTrick(leader Seat) *Trick {
	return &Trick{Leader: leader}
}

// LedSuit returns the suit of the leader's card, if it has been played.
func (t *Trick) LedSuit() (Suit, bool) {
	c := t.Cards[t.Leader]
	if c == nil {
		return 0, false
	}
	return c.Suit, true
}

// Size returns how many cards have been played to the trick.
func (t *Trick) Size() int {
	n := 0
	for _, c := range t.Cards {
		if c != nil {
			n++
		}
	}
	return n
}

// Complete reports whether all four seats have played.
func (t *Trick) Complete() bool {
	return t.Size() == NumSeats
}

// Play records a card for a seat. The slot must be empty.
func (t *Trick) Play(seat Seat, card Card) {
	if t.Cards[seat] != nil {
		return
	}
	c := card
	t.Cards[seat] = &c
}

// IsLegalPlay validates a card against the hand and the led suit. Any held
// card is legal when leading or when the hand is void in the led suit;
// otherwise the card must follow suit.
func IsLegalPlay(card Card, hand []Card, ledSuit *Suit) bool {
	held := false
	hasLed := false
	for _, c := range hand {
		if c == card {
			held = true
		}
		if ledSuit != nil && c.Suit == *ledSuit {
			hasLed = true
		}
	}
	if !held {
		return false
	}
	if ledSuit == nil || !hasLed {
		return true
	}
	return card.Suit == *ledSuit
}

// ResolveTrickWinner determines the winning seat among the cards played so
// far under the given trump strain; on a complete trick this is the trick
// winner. A trump card beats any non-trump; within trump or within the led
// suit the higher rank wins; an off-suit non-trump card never wins. Ranks
// within a suit are unique, so ties are impossible. The leader must have
// played.
func ResolveTrickWinner(t *Trick, trump Strain) Seat {
	ledSuit, _ := t.LedSuit()

	best := t.Leader
	seat := t.Leader.Next()
	for i := 1; i < NumSeats; i++ {
		c := t.Cards[seat]
		b := t.Cards[best]
		if c != nil && beats(*c, *b, ledSuit, trump) {
			best = seat
		}
		seat = seat.Next()
	}

	return best
}

// Winner returns the trick winner, computing it once on first call after
// completion.
func (t *Trick) Winner(trump Strain) (Seat, bool) {
	if t.winner != nil {
		return *t.winner, true
	}
	if !t.Complete() {
		return 0, false
	}
	w := ResolveTrickWinner(t, trump)
	t.winner = &w
	return w, true
}

// beats reports whether the challenger takes precedence over the current best.
func beats(c, best Card, ledSuit Suit, trump Strain) bool {
	if trump.IsSuit() {
		ts := trump.TrumpSuit()
		switch {
		case c.Suit == ts && best.Suit != ts:
			return true
		case c.Suit != ts && best.Suit == ts:
			return false
		case c.Suit == ts && best.Suit == ts:
			return c.Rank > best.Rank
		}
	}
	// No trump involved: only a led-suit card can take the trick.
	if c.Suit != ledSuit {
		return false
	}
	if best.Suit != ledSuit {
		return true
	}
	return c.Rank > best.Rank
}
