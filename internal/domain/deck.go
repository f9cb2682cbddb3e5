package domain

import (
	"math/rand"
	"sort"
)

// NewDeck returns an ordered 52-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range Suits {
		for r := Rank2; r <= RankA; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the deck using the provided source.
func ShuffleDeck(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal distributes a 52-card deck into four 13-card hands, one card at a
// time in clockwise seat order starting from the seat after the dealer.
func Deal(deck []Card, dealer Seat) [NumSeats][]Card {
	var hands [NumSeats][]Card
	for i := range hands {
		hands[i] = make([]Card, 0, 13)
	}
	seat := dealer.Next()
	for _, c := range deck {
		hands[seat] = append(hands[seat], c)
		seat = seat.Next()
	}
	return hands
}

// SortHand orders a hand by suit (spades first) then descending rank, the
// conventional display order.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Suit != cards[j].Suit {
			return cards[i].Suit > cards[j].Suit
		}
		return cards[i].Rank > cards[j].Rank
	})
}

// RemoveCard removes the first occurrence of the card from a hand and
// returns the updated hand.
func RemoveCard(hand []Card, card Card) []Card {
	for i, c := range hand {
		if c == card {
			return append(hand[:i:i], hand[i+1:]...)
		}
	}
	return hand
}
