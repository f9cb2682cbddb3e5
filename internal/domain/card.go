package domain

import "fmt"

// Suit of a card in the standard 52-card deck.
type Suit int

const (
	SuitClubs Suit = iota
	SuitDiamonds
	SuitHearts
	SuitSpades
)

// Suits lists all four suits in ascending strain order.
var Suits = [4]Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}

func (s Suit) String() string {
	switch s {
	case SuitClubs:
		return "C"
	case SuitDiamonds:
		return "D"
	case SuitHearts:
		return "H"
	case SuitSpades:
		return "S"
	default:
		return "?"
	}
}

// ParseSuit decodes a one-character suit code.
func ParseSuit(code string) (Suit, error) {
	switch code {
	case "C":
		return SuitClubs, nil
	case "D":
		return SuitDiamonds, nil
	case "H":
		return SuitHearts, nil
	case "S":
		return SuitSpades, nil
	default:
		return 0, fmt.Errorf("unknown suit code %q", code)
	}
}

// Rank of a card, 2 through ace. The numeric value doubles as the
// comparison value: a higher Rank always outranks a lower one.
type Rank int

const (
	Rank2 Rank = iota + 2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	RankT
	RankJ
	RankQ
	RankK
	RankA
)

func (r Rank) String() string {
	switch {
	case r >= Rank2 && r <= Rank9:
		return string(rune('0' + r))
	case r == RankT:
		return "T"
	case r == RankJ:
		return "J"
	case r == RankQ:
		return "Q"
	case r == RankK:
		return "K"
	case r == RankA:
		return "A"
	default:
		return "?"
	}
}

// ParseRank decodes a one-character rank code, with "T" denoting ten.
func ParseRank(code string) (Rank, error) {
	switch code {
	case "2", "3", "4", "5", "6", "7", "8", "9":
		return Rank(code[0] - '0'), nil
	case "T":
		return RankT, nil
	case "J":
		return RankJ, nil
	case "Q":
		return RankQ, nil
	case "K":
		return RankK, nil
	case "A":
		return RankA, nil
	default:
		return 0, fmt.Errorf("unknown rank code %q", code)
	}
}

// Card is a single playing card.
type Card struct {
	Suit Suit
	Rank Rank
}

// Code returns the two-character wire encoding, rank then suit ("TH" = ten of hearts).
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.String()
}

func (c Card) String() string {
	return c.Code()
}

// ParseCard decodes a two-character card code.
func ParseCard(code string) (Card, error) {
	if len(code) != 2 {
		return Card{}, fmt.Errorf("invalid card code %q", code)
	}
	r, err := ParseRank(code[:1])
	if err != nil {
		return Card{}, err
	}
	s, err := ParseSuit(code[1:])
	if err != nil {
		return Card{}, err
	}
	return Card{Suit: s, Rank: r}, nil
}

// Seat is one of the four table positions in fixed clockwise order.
type Seat int

const (
	SeatNorth Seat = iota
	SeatEast
	SeatSouth
	SeatWest

	// NumSeats is the table size; seats form a 4-cycle.
	NumSeats = 4
)

// Seats lists all seats in clockwise order starting from North.
var Seats = [NumSeats]Seat{SeatNorth, SeatEast, SeatSouth, SeatWest}

func (s Seat) String() string {
	switch s {
	case SeatNorth:
		return "N"
	case SeatEast:
		return "E"
	case SeatSouth:
		return "S"
	case SeatWest:
		return "W"
	default:
		return "?"
	}
}

// ParseSeat decodes a one-character seat code.
func ParseSeat(code string) (Seat, error) {
	switch code {
	case "N":
		return SeatNorth, nil
	case "E":
		return SeatEast, nil
	case "S":
		return SeatSouth, nil
	case "W":
		return SeatWest, nil
	default:
		return 0, fmt.Errorf("unknown seat code %q", code)
	}
}

// Valid reports whether the seat is one of the four table positions.
func (s Seat) Valid() bool {
	return s >= SeatNorth && s <= SeatWest
}

// Next returns the seat immediately clockwise.
func (s Seat) Next() Seat {
	return (s + 1) % NumSeats
}

// Partner returns the seat directly across the table.
func (s Seat) Partner() Seat {
	return (s + 2) % NumSeats
}

// IsOpponent reports whether o sits on the other partnership.
func (s Seat) IsOpponent(o Seat) bool {
	return s%2 != o%2
}

// Partnership is one of the two sides at the table.
type Partnership int

const (
	PartnershipNS Partnership = iota
	PartnershipEW
)

func (p Partnership) String() string {
	if p == PartnershipNS {
		return "NS"
	}
	return "EW"
}

// Side returns the partnership the seat belongs to.
func (s Seat) Side() Partnership {
	if s == SeatNorth || s == SeatSouth {
		return PartnershipNS
	}
	return PartnershipEW
}
