package domain

import "testing"

func TestIsLegalPlay(t *testing.T) {
	hand := []Card{
		{Suit: SuitHearts, Rank: RankK},
		{Suit: SuitClubs, Rank: Rank3},
	}
	hearts := SuitHearts
	spades := SuitSpades

	tests := []struct {
		name    string
		card    Card
		ledSuit *Suit
		want    bool
	}{
		{"must follow suit when held", Card{Suit: SuitHearts, Rank: RankK}, &hearts, true},
		{"off-suit illegal when led suit held", Card{Suit: SuitClubs, Rank: Rank3}, &hearts, false},
		{"anything legal when void in led suit", Card{Suit: SuitClubs, Rank: Rank3}, &spades, true},
		{"anything legal when leading", Card{Suit: SuitClubs, Rank: Rank3}, nil, true},
		{"card not in hand never legal", Card{Suit: SuitHearts, Rank: Rank2}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLegalPlay(tt.card, hand, tt.ledSuit); got != tt.want {
				t.Errorf("IsLegalPlay(%v) = %v, want %v", tt.card, got, tt.want)
			}
		})
	}
}

func trickOf(leader Seat, cards map[Seat]Card) *Trick {
	tr := NewTrick(leader)
	seat := leader
	for i := 0; i < NumSeats; i++ {
		tr.Play(seat, cards[seat])
		seat = seat.Next()
	}
	return tr
}

func TestResolveTrickWinner(t *testing.T) {
	tests := []struct {
		name   string
		leader Seat
		cards  map[Seat]Card
		trump  Strain
		want   Seat
	}{
		{
			name:   "highest led suit card wins at notrump",
			leader: SeatNorth,
			cards: map[Seat]Card{
				SeatNorth: {Suit: SuitSpades, Rank: RankA},
				SeatEast:  {Suit: SuitSpades, Rank: RankJ},
				SeatSouth: {Suit: SuitSpades, Rank: Rank8},
				SeatWest:  {Suit: SuitSpades, Rank: Rank5},
			},
			trump: StrainNoTrump,
			want:  SeatNorth,
		},
		{
			name:   "lone trump beats led suit",
			leader: SeatNorth,
			cards: map[Seat]Card{
				SeatNorth: {Suit: SuitSpades, Rank: RankA},
				SeatEast:  {Suit: SuitClubs, Rank: Rank2},
				SeatSouth: {Suit: SuitSpades, Rank: Rank8},
				SeatWest:  {Suit: SuitSpades, Rank: Rank5},
			},
			trump: StrainClubs,
			want:  SeatEast,
		},
		{
			name:   "higher trump beats lower trump",
			leader: SeatWest,
			cards: map[Seat]Card{
				SeatWest:  {Suit: SuitDiamonds, Rank: RankQ},
				SeatNorth: {Suit: SuitHearts, Rank: Rank4},
				SeatEast:  {Suit: SuitHearts, Rank: RankT},
				SeatSouth: {Suit: SuitDiamonds, Rank: RankA},
			},
			trump: StrainHearts,
			want:  SeatEast,
		},
		{
			name:   "off-suit discard never wins at notrump",
			leader: SeatSouth,
			cards: map[Seat]Card{
				SeatSouth: {Suit: SuitDiamonds, Rank: Rank3},
				SeatWest:  {Suit: SuitSpades, Rank: RankA},
				SeatNorth: {Suit: SuitDiamonds, Rank: Rank7},
				SeatEast:  {Suit: SuitHearts, Rank: RankA},
			},
			trump: StrainNoTrump,
			want:  SeatNorth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := trickOf(tt.leader, tt.cards)
			if got := ResolveTrickWinner(tr, tt.trump); got != tt.want {
				t.Errorf("winner = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrickWinnerImmutable(t *testing.T) {
	tr := trickOf(SeatNorth, map[Seat]Card{
		SeatNorth: {Suit: SuitSpades, Rank: RankA},
		SeatEast:  {Suit: SuitSpades, Rank: RankJ},
		SeatSouth: {Suit: SuitSpades, Rank: Rank8},
		SeatWest:  {Suit: SuitSpades, Rank: Rank5},
	})

	w1, ok := tr.Winner(StrainNoTrump)
	if !ok {
		t.Fatalf("winner not available on complete trick")
	}
	// A different trump on a later call must not change the cached winner.
	w2, _ := tr.Winner(StrainClubs)
	if w1 != w2 {
		t.Fatalf("winner changed after first computation: %v then %v", w1, w2)
	}
}

func TestTrickIncompleteHasNoWinner(t *testing.T) {
	tr := NewTrick(SeatNorth)
	tr.Play(SeatNorth, Card{Suit: SuitSpades, Rank: RankA})
	if _, ok := tr.Winner(StrainNoTrump); ok {
		t.Fatalf("incomplete trick should have no winner")
	}
}
