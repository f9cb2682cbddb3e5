package domain

import (
	"fmt"
	"strconv"
)

// Strain is the denomination of a suit bid: one of the four suits or notrump.
type Strain int

const (
	StrainClubs Strain = iota
	StrainDiamonds
	StrainHearts
	StrainSpades
	StrainNoTrump
)

func (s Strain) String() string {
	if s == StrainNoTrump {
		return "NT"
	}
	return Suit(s).String()
}

// IsSuit reports whether the strain names a trump suit.
func (s Strain) IsSuit() bool {
	return s >= StrainClubs && s <= StrainSpades
}

// TrumpSuit returns the suit named by the strain. Only valid when IsSuit is true.
func (s Strain) TrumpSuit() Suit {
	return Suit(s)
}

// ParseStrain decodes a strain code: C/D/H/S/NT.
func ParseStrain(code string) (Strain, error) {
	if code == "NT" {
		return StrainNoTrump, nil
	}
	s, err := ParseSuit(code)
	if err != nil {
		return 0, fmt.Errorf("unknown strain code %q", code)
	}
	return Strain(s), nil
}

// BidKind discriminates the closed set of auction calls.
type BidKind int

const (
	BidPass BidKind = iota
	BidDouble
	BidRedouble
	BidSuit
)

// Bid is a single auction call. Level and Strain are meaningful only when
// Kind is BidSuit; the constructors keep illegal combinations unrepresentable.
type Bid struct {
	Kind   BidKind
	Level  int
	Strain Strain
}

// Pass returns the pass call.
func Pass() Bid { return Bid{Kind: BidPass} }

// Double returns the double call.
func Double() Bid { return Bid{Kind: BidDouble} }

// Redouble returns the redouble call.
func Redouble() Bid { return Bid{Kind: BidRedouble} }

// SuitBid returns a contract bid of the given level (1..7) and strain.
func SuitBid(level int, strain Strain) Bid {
	return Bid{Kind: BidSuit, Level: level, Strain: strain}
}

// Valid reports whether the bid is structurally well formed.
func (b Bid) Valid() bool {
	switch b.Kind {
	case BidPass, BidDouble, BidRedouble:
		return b.Level == 0
	case BidSuit:
		return b.Level >= 1 && b.Level <= 7 && b.Strain >= StrainClubs && b.Strain <= StrainNoTrump
	default:
		return false
	}
}

// Higher reports whether b outranks o. Both must be suit bids; a bid is
// higher when its level is greater, or the level is equal and the strain
// ranks above (C < D < H < S < NT).
func (b Bid) Higher(o Bid) bool {
	if b.Kind != BidSuit || o.Kind != BidSuit {
		return false
	}
	if b.Level != o.Level {
		return b.Level > o.Level
	}
	return b.Strain > o.Strain
}

// Code returns the wire encoding: level digit plus strain code for suit bids,
// or the literal tokens pass/double/redouble.
func (b Bid) Code() string {
	switch b.Kind {
	case BidPass:
		return "pass"
	case BidDouble:
		return "double"
	case BidRedouble:
		return "redouble"
	case BidSuit:
		return strconv.Itoa(b.Level) + b.Strain.String()
	default:
		return "?"
	}
}

func (b Bid) String() string {
	return b.Code()
}

// ParseBid decodes a bid wire code.
func ParseBid(code string) (Bid, error) {
	switch code {
	case "pass":
		return Pass(), nil
	case "double":
		return Double(), nil
	case "redouble":
		return Redouble(), nil
	}
	if len(code) < 2 {
		return Bid{}, fmt.Errorf("invalid bid code %q", code)
	}
	level := int(code[0] - '0')
	if level < 1 || level > 7 {
		return Bid{}, fmt.Errorf("invalid bid level in %q", code)
	}
	strain, err := ParseStrain(code[1:])
	if err != nil {
		return Bid{}, fmt.Errorf("invalid bid code %q", code)
	}
	return SuitBid(level, strain), nil
}
