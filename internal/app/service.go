package app

import (
	"errors"
	"math/rand"
	"time"

	"bridge/internal/domain"

	"github.com/google/uuid"
)

// Service contains the bridge use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrGameInProgress = errors.New("a deal is already in progress")
	ErrGameNotOver    = errors.New("deal is not completed")
	ErrNoGame         = errors.New("no active deal")
)

// StartGame creates a new deal on the given board with the given dealer,
// shuffles, deals and opens the auction.
func (s *Service) StartGame(board int, dealer domain.Seat) (*domain.Game, []Event, error) {
	game := domain.NewGame(board, dealer)
	events, err := s.deal(game)
	if err != nil {
		return nil, nil, err
	}
	return game, events, nil
}

// NewDeal starts the next board after a completed deal, rotating the dealer.
// The snapshot version continues from the previous deal so clients can keep
// a single monotonic ordering across games.
func (s *Service) NewDeal(prev *domain.Game) (*domain.Game, []Event, error) {
	if prev == nil {
		return nil, nil, ErrNoGame
	}
	if prev.Phase != domain.PhaseCompleted {
		return nil, nil, ErrGameNotOver
	}
	game := domain.NewGame(prev.Board+1, prev.Dealer.Next())
	game.Version = prev.Version
	events, err := s.deal(game)
	if err != nil {
		return nil, nil, err
	}
	return game, events, nil
}

// deal shuffles and distributes hands for a game in the setup phase.
func (s *Service) deal(game *domain.Game) ([]Event, error) {
	deck := domain.ShuffleDeck(s.rng, domain.NewDeck())
	hands := domain.Deal(deck, game.Dealer)
	for i := range hands {
		domain.SortHand(hands[i])
	}
	if err := game.DealHands(uuid.NewString(), hands); err != nil {
		return nil, err
	}

	events := make([]Event, 0, domain.NumSeats+1)
	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			Board:   game.Board,
			Dealer:  game.Dealer,
			Version: game.Version,
		},
	})
	for _, seat := range domain.Seats {
		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				Seat: seat,
				Hand: game.Hands[seat],
			},
			RecipientSeats: []domain.Seat{seat},
		})
	}
	return events, nil
}

// MakeBid applies a call from a seat. On a passed-out auction the deal is
// immediately re-dealt on the next board and the new hands are emitted.
func (s *Service) MakeBid(game *domain.Game, seat domain.Seat, bid domain.Bid) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	if err := game.ApplyBid(seat, bid); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventBidMade,
		Payload: BidMadePayload{
			Seat:     seat,
			Bid:      bid,
			NextTurn: game.CurrentTurn,
			Version:  game.Version,
		},
	}}

	if game.Phase == domain.PhaseSetup {
		// Passed out: the state machine already rotated dealer and board.
		redealEvents, err := s.deal(game)
		if err != nil {
			return nil, err
		}
		events = append(events, redealEvents...)
	}

	return events, nil
}

// PlayCard applies a card played by the actor seat. The actor must control
// the seat whose turn it is (the declarer controls the dummy).
func (s *Service) PlayCard(game *domain.Game, actor domain.Seat, card domain.Card) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}

	seat := game.CurrentTurn
	trick := game.CurrentTrick
	if err := game.ApplyPlay(actor, card); err != nil {
		return nil, err
	}

	payload := CardPlayedPayload{
		Seat:     seat,
		Card:     card,
		NextTurn: game.CurrentTurn,
		Version:  game.Version,
	}
	if trick != nil && trick.Complete() {
		if winner, ok := trick.Winner(game.Contract.Strain); ok {
			payload.TrickWinner = &winner
		}
	}
	events := []Event{{Kind: EventCardPlayed, Payload: payload}}

	if game.Phase == domain.PhaseCompleted {
		events = append(events, Event{
			Kind: EventGameEnded,
			Payload: GameEndedPayload{
				TricksNS: game.TricksWon[domain.PartnershipNS],
				TricksEW: game.TricksWon[domain.PartnershipEW],
				Version:  game.Version,
			},
		})
	}

	return events, nil
}
