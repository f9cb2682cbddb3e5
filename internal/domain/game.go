package domain

import "errors"

// Phase represents the lifecycle stage of a deal.
type Phase string

const (
	// PhaseSetup is the pre-deal state, before hands are distributed.
	PhaseSetup Phase = "setup"
	// PhaseBidding is the auction.
	PhaseBidding Phase = "bidding"
	// PhasePlaying is trick play under the settled contract.
	PhasePlaying Phase = "playing"
	// PhaseCompleted is the terminal state after thirteen tricks.
	PhaseCompleted Phase = "completed"
)

var (
	ErrWrongPhase  = errors.New("action not valid in current phase")
	ErrOutOfTurn   = errors.New("not this seat's turn")
	ErrIllegalBid  = errors.New("bid not legal in current auction")
	ErrIllegalPlay = errors.New("card not legal to play")
	ErrNotInHand   = errors.New("card not held by seat")
)

// Vulnerability flags the partnerships exposed to higher scoring swings.
// Carried on the snapshot for downstream scoring; never computed here.
type Vulnerability struct {
	NS bool
	EW bool
}

// VulnerabilityForBoard returns the standard 16-board vulnerability cycle.
func VulnerabilityForBoard(board int) Vulnerability {
	switch ((board - 1) + (board-1)/4) % 4 {
	case 1:
		return Vulnerability{NS: true}
	case 2:
		return Vulnerability{EW: true}
	case 3:
		return Vulnerability{NS: true, EW: true}
	default:
		return Vulnerability{}
	}
}

// Game is the authoritative state of a single deal. It is mutated only
// through DealHands, ApplyBid and ApplyPlay, each of which either rejects
// the action with no state change or applies it and bumps Version.
type Game struct {
	DealID  string
	Version uint64
	Board   int

	Phase       Phase
	Dealer      Seat
	CurrentTurn Seat

	Hands   [NumSeats][]Card
	Auction Auction

	Contract        *Contract
	Dummy           *Seat
	FirstCardPlayed bool

	CurrentTrick *Trick
	TrickHistory []*Trick
	TricksWon    [2]int // indexed by Partnership

	Vulnerable Vulnerability
}

// NewGame creates a deal in the setup phase.
func NewGame(board int, dealer Seat) *Game {
	return &Game{
		Board:      board,
		Phase:      PhaseSetup,
		Dealer:     dealer,
		Vulnerable: VulnerabilityForBoard(board),
	}
}

// DealHands installs the dealt hands and opens the auction. Bidding starts
// with the seat immediately clockwise of the dealer.
func (g *Game) DealHands(dealID string, hands [NumSeats][]Card) error {
	if g.Phase != PhaseSetup {
		return ErrWrongPhase
	}
	g.DealID = dealID
	g.Hands = hands
	g.Phase = PhaseBidding
	g.CurrentTurn = g.Dealer.Next()
	g.Version++
	return nil
}

// ApplyBid validates and applies a call from the given seat. On auction
// completion it either settles the contract and opens play, or, when the
// deal is passed out, returns the game to setup with the dealer rotated so
// the next deal can be distributed.
func (g *Game) ApplyBid(seat Seat, bid Bid) error {
	if g.Phase != PhaseBidding {
		return ErrWrongPhase
	}
	if seat != g.CurrentTurn {
		return ErrOutOfTurn
	}
	call := Call{Seat: seat, Bid: bid}
	if !IsLegalBid(call, g.Auction) {
		return ErrIllegalBid
	}

	g.Auction = append(g.Auction, call)
	g.CurrentTurn = g.CurrentTurn.Next()
	g.Version++

	if !IsAuctionComplete(g.Auction) {
		return nil
	}

	contract := ResolveContract(g.Auction)
	if contract == nil {
		// Passed out: back to setup for a re-deal on the next board.
		g.resetForRedeal()
		return nil
	}

	dummy := contract.Declarer.Partner()
	g.Contract = contract
	g.Dummy = &dummy
	g.Phase = PhasePlaying
	g.CurrentTurn = contract.Declarer.Next() // opening leader
	g.CurrentTrick = NewTrick(g.CurrentTurn)
	return nil
}

func (g *Game) resetForRedeal() {
	g.Phase = PhaseSetup
	g.Dealer = g.Dealer.Next()
	g.Board++
	g.Vulnerable = VulnerabilityForBoard(g.Board)
	g.Auction = nil
	g.Hands = [NumSeats][]Card{}
	g.DealID = ""
}

// Controller returns the seat whose connection is entitled to act for the
// given seat: the declarer plays the dummy's cards, everyone else plays
// their own.
func (g *Game) Controller(seat Seat) Seat {
	if g.Dummy != nil && seat == *g.Dummy && g.Contract != nil {
		return g.Contract.Declarer
	}
	return seat
}

// LedSuit returns the suit led to the current trick, or nil when leading.
func (g *Game) LedSuit() *Suit {
	if g.CurrentTrick == nil {
		return nil
	}
	s, ok := g.CurrentTrick.LedSuit()
	if !ok {
		return nil
	}
	return &s
}

// LegalCards returns the cards the seat may legally play right now.
func (g *Game) LegalCards(seat Seat) []Card {
	if g.Phase != PhasePlaying || seat != g.CurrentTurn {
		return nil
	}
	led := g.LedSuit()
	var out []Card
	for _, c := range g.Hands[seat] {
		if IsLegalPlay(c, g.Hands[seat], led) {
			out = append(out, c)
		}
	}
	return out
}

// ApplyPlay validates and applies a card played by actor for the seat whose
// turn it is. The actor must be the controller of that seat. A rejected play
// leaves the state untouched.
func (g *Game) ApplyPlay(actor Seat, card Card) error {
	if g.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	seat := g.CurrentTurn
	if actor != g.Controller(seat) {
		return ErrOutOfTurn
	}
	held := false
	for _, c := range g.Hands[seat] {
		if c == card {
			held = true
			break
		}
	}
	if !held {
		return ErrNotInHand
	}
	if !IsLegalPlay(card, g.Hands[seat], g.LedSuit()) {
		return ErrIllegalPlay
	}

	g.Hands[seat] = RemoveCard(g.Hands[seat], card)
	g.CurrentTrick.Play(seat, card)
	g.FirstCardPlayed = true
	g.Version++

	if !g.CurrentTrick.Complete() {
		g.CurrentTurn = seat.Next()
		return nil
	}

	winner, _ := g.CurrentTrick.Winner(g.Contract.Strain)
	g.TricksWon[winner.Side()]++
	g.TrickHistory = append(g.TrickHistory, g.CurrentTrick)

	if len(g.TrickHistory) == 13 {
		g.Phase = PhaseCompleted
		g.CurrentTrick = nil
		return nil
	}

	g.CurrentTurn = winner
	g.CurrentTrick = NewTrick(winner)
	return nil
}
