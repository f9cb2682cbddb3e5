package bot

import (
	"errors"
	"testing"

	"bridge/internal/domain"
)

// playingGame deals fixed hands, runs a 1S-by-North auction, and returns the
// game with South on lead.
func playingGame(t *testing.T, hands [domain.NumSeats][]domain.Card) *domain.Game {
	t.Helper()
	g := domain.NewGame(1, domain.SeatNorth)
	if err := g.DealHands("test-deal", hands); err != nil {
		t.Fatalf("deal error: %v", err)
	}
	calls := []struct {
		seat domain.Seat
		bid  domain.Bid
	}{
		{domain.SeatEast, domain.SuitBid(1, domain.StrainSpades)},
		{domain.SeatSouth, domain.Pass()},
		{domain.SeatWest, domain.Pass()},
		{domain.SeatNorth, domain.Pass()},
	}
	for _, c := range calls {
		if err := g.ApplyBid(c.seat, c.bid); err != nil {
			t.Fatalf("ApplyBid(%v, %v): %v", c.seat, c.bid, err)
		}
	}
	if g.Phase != domain.PhasePlaying {
		t.Fatalf("phase = %v, want playing", g.Phase)
	}
	return g
}

func fixedHands(t *testing.T) [domain.NumSeats][]domain.Card {
	t.Helper()
	deck := domain.NewDeck()
	var hands [domain.NumSeats][]domain.Card
	for i := range hands {
		hands[i] = append([]domain.Card(nil), deck[i*13:(i+1)*13]...)
		domain.SortHand(hands[i])
	}
	return hands
}

func TestAgentBidsLegally(t *testing.T) {
	hands := fixedHands(t)
	g := domain.NewGame(1, domain.SeatNorth)
	if err := g.DealHands("test-deal", hands); err != nil {
		t.Fatalf("deal error: %v", err)
	}

	agent := &Agent{ID: "bot-1", Brain: &RuleBrain{}}
	action, err := agent.Act(g, g.CurrentTurn)
	if err != nil {
		t.Fatalf("Act error: %v", err)
	}
	if action.Bid == nil {
		t.Fatal("expected a bid action in the bidding phase")
	}
	call := domain.Call{Seat: g.CurrentTurn, Bid: *action.Bid}
	if !domain.IsLegalBid(call, g.Auction) {
		t.Fatalf("agent bid %v is illegal", *action.Bid)
	}
}

func TestAgentPlaysLegalCard(t *testing.T) {
	g := playingGame(t, fixedHands(t))

	agent := &Agent{ID: "bot-1", Brain: &RuleBrain{}}
	action, err := agent.Act(g, g.CurrentTurn)
	if err != nil {
		t.Fatalf("Act error: %v", err)
	}
	if action.Card == nil {
		t.Fatal("expected a card action in the playing phase")
	}
	if !domain.IsLegalPlay(*action.Card, g.Hands[g.CurrentTurn], g.LedSuit()) {
		t.Fatalf("agent card %v is illegal", *action.Card)
	}
}

func TestAgentFollowsSuit(t *testing.T) {
	g := playingGame(t, fixedHands(t))

	leader := g.CurrentTurn
	lead := g.LegalCards(leader)[0]
	if err := g.ApplyPlay(leader, lead); err != nil {
		t.Fatalf("ApplyPlay: %v", err)
	}

	next := g.CurrentTurn
	agent := &Agent{ID: "bot-1", Brain: &RuleBrain{}}
	action, err := agent.Act(g, next)
	if err != nil {
		t.Fatalf("Act error: %v", err)
	}

	holdsLedSuit := false
	for _, c := range g.Hands[next] {
		if c.Suit == lead.Suit {
			holdsLedSuit = true
			break
		}
	}
	if holdsLedSuit && action.Card.Suit != lead.Suit {
		t.Fatalf("agent discarded %v while holding %v", *action.Card, lead.Suit)
	}
}

func TestAgentFallsBackWhenSolverFails(t *testing.T) {
	g := playingGame(t, fixedHands(t))

	solver := SolverFunc(func(*domain.Game, domain.Seat) ([]RankedCard, error) {
		return nil, errors.New("oracle unavailable")
	})
	agent := &Agent{ID: "bot-1", Brain: &RuleBrain{}, Solver: solver}

	action, err := agent.Act(g, g.CurrentTurn)
	if err != nil {
		t.Fatalf("Act error: %v", err)
	}
	if action.Card == nil {
		t.Fatal("expected a card despite solver failure")
	}
	if !domain.IsLegalPlay(*action.Card, g.Hands[g.CurrentTurn], g.LedSuit()) {
		t.Fatalf("fallback card %v is illegal", *action.Card)
	}
}

func TestAgentPrefersSolverRanking(t *testing.T) {
	g := playingGame(t, fixedHands(t))
	seat := g.CurrentTurn
	want := g.LegalCards(seat)[len(g.LegalCards(seat))-1]

	solver := SolverFunc(func(*domain.Game, domain.Seat) ([]RankedCard, error) {
		return []RankedCard{{Card: want, ExpectedTricks: 7.5}}, nil
	})
	agent := &Agent{ID: "bot-1", Brain: &RuleBrain{}, Solver: solver}

	action, err := agent.Act(g, seat)
	if err != nil {
		t.Fatalf("Act error: %v", err)
	}
	if *action.Card != want {
		t.Fatalf("card = %v, want solver pick %v", *action.Card, want)
	}
}
