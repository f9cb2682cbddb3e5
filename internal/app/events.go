package app

import "bridge/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventGameStarted EventKind = "game_started"
	EventHandDealt   EventKind = "hand_dealt"
	EventBidMade     EventKind = "bid_made"
	EventCardPlayed  EventKind = "card_played"
	EventGameEnded   EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipient seats.
type Event struct {
	Kind           EventKind
	Payload        any
	RecipientSeats []domain.Seat // empty means broadcast
}

type GameStartedPayload struct {
	Board   int
	Dealer  domain.Seat
	Version uint64
}

type HandDealtPayload struct {
	Seat domain.Seat
	Hand []domain.Card
}

type BidMadePayload struct {
	Seat     domain.Seat
	Bid      domain.Bid
	NextTurn domain.Seat
	Version  uint64
}

type CardPlayedPayload struct {
	Seat        domain.Seat
	Card        domain.Card
	NextTurn    domain.Seat
	TrickWinner *domain.Seat // set on the fourth card of a trick
	Version     uint64
}

type GameEndedPayload struct {
	TricksNS int
	TricksEW int
	Version  uint64
}
