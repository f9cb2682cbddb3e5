package domain

import (
	"math/rand"
	"testing"
)

func dealtGame(t *testing.T, seed int64, dealer Seat) *Game {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g := NewGame(1, dealer)
	deck := ShuffleDeck(rng, NewDeck())
	if err := g.DealHands("deal-1", Deal(deck, dealer)); err != nil {
		t.Fatalf("deal hands error: %v", err)
	}
	return g
}

func mustBid(t *testing.T, g *Game, seat Seat, bid Bid) {
	t.Helper()
	if err := g.ApplyBid(seat, bid); err != nil {
		t.Fatalf("bid %v by %v error: %v", bid, seat, err)
	}
}

func TestDealOpensBidding(t *testing.T) {
	g := dealtGame(t, 42, SeatNorth)

	if g.Phase != PhaseBidding {
		t.Fatalf("phase = %s, want bidding", g.Phase)
	}
	if g.CurrentTurn != SeatEast {
		t.Fatalf("current turn = %v, want seat after dealer", g.CurrentTurn)
	}

	total := 0
	for _, h := range g.Hands {
		if len(h) != 13 {
			t.Fatalf("hand size = %d, want 13", len(h))
		}
		total += len(h)
	}
	if total != 52 {
		t.Fatalf("total cards = %d, want 52", total)
	}

	seen := map[Card]int{}
	for _, h := range g.Hands {
		for _, c := range h {
			seen[c]++
		}
	}
	for c, n := range seen {
		if n != 1 {
			t.Fatalf("card %v dealt %d times", c, n)
		}
	}
}

func TestAuctionToPlayTransition(t *testing.T) {
	g := dealtGame(t, 7, SeatNorth)

	mustBid(t, g, SeatEast, SuitBid(1, StrainSpades))
	mustBid(t, g, SeatSouth, Pass())
	mustBid(t, g, SeatWest, Pass())
	mustBid(t, g, SeatNorth, Pass())

	if g.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want playing", g.Phase)
	}
	if g.Contract == nil || g.Contract.Declarer != SeatEast {
		t.Fatalf("contract = %+v, want declarer East", g.Contract)
	}
	if g.Dummy == nil || *g.Dummy != SeatWest {
		t.Fatalf("dummy = %v, want West", g.Dummy)
	}
	if g.CurrentTurn != SeatSouth {
		t.Fatalf("opening leader = %v, want seat after declarer", g.CurrentTurn)
	}
	if g.FirstCardPlayed {
		t.Fatalf("first card flag set before any play")
	}
}

func TestIllegalActionsLeaveStateUntouched(t *testing.T) {
	g := dealtGame(t, 9, SeatNorth)
	before := g.Version

	if err := g.ApplyBid(SeatSouth, Pass()); err != ErrOutOfTurn {
		t.Fatalf("out-of-turn bid error = %v, want ErrOutOfTurn", err)
	}
	if err := g.ApplyBid(SeatEast, Double()); err != ErrIllegalBid {
		t.Fatalf("opening double error = %v, want ErrIllegalBid", err)
	}
	if err := g.ApplyPlay(SeatEast, Card{Suit: SuitSpades, Rank: RankA}); err != ErrWrongPhase {
		t.Fatalf("play during bidding error = %v, want ErrWrongPhase", err)
	}
	if g.Version != before {
		t.Fatalf("version advanced on rejected actions: %d -> %d", before, g.Version)
	}
	if len(g.Auction) != 0 {
		t.Fatalf("auction mutated on rejected actions")
	}
}

func TestPassOutTriggersRedeal(t *testing.T) {
	g := dealtGame(t, 11, SeatNorth)

	for _, s := range []Seat{SeatEast, SeatSouth, SeatWest, SeatNorth} {
		mustBid(t, g, s, Pass())
	}

	if g.Phase != PhaseSetup {
		t.Fatalf("phase = %s, want setup after pass-out", g.Phase)
	}
	if g.Dealer != SeatEast {
		t.Fatalf("dealer = %v, want rotated to East", g.Dealer)
	}
	if g.Board != 2 {
		t.Fatalf("board = %d, want 2", g.Board)
	}
	if len(g.Auction) != 0 {
		t.Fatalf("auction not cleared after pass-out")
	}
}

func TestFullDealPlaysThirteenTricks(t *testing.T) {
	g := dealtGame(t, 1234, SeatNorth)

	mustBid(t, g, SeatEast, SuitBid(1, StrainNoTrump))
	mustBid(t, g, SeatSouth, Pass())
	mustBid(t, g, SeatWest, Pass())
	mustBid(t, g, SeatNorth, Pass())

	plays := 0
	for g.Phase == PhasePlaying {
		seat := g.CurrentTurn
		legal := g.LegalCards(seat)
		if len(legal) == 0 {
			t.Fatalf("no legal cards for %v with %d in hand", seat, len(g.Hands[seat]))
		}
		if err := g.ApplyPlay(g.Controller(seat), legal[0]); err != nil {
			t.Fatalf("play %v error: %v", legal[0], err)
		}
		plays++
		if plays > 52 {
			t.Fatalf("play did not terminate")
		}

		// Card conservation: 52 minus 4 per completed trick, minus the
		// cards sitting in the open trick.
		held := 0
		for _, h := range g.Hands {
			held += len(h)
		}
		open := 0
		if g.CurrentTrick != nil {
			open = g.CurrentTrick.Size()
		}
		if held+open+4*len(g.TrickHistory) != 52 {
			t.Fatalf("card conservation broken: held=%d open=%d tricks=%d", held, open, len(g.TrickHistory))
		}
	}

	if g.Phase != PhaseCompleted {
		t.Fatalf("phase = %s, want completed", g.Phase)
	}
	if plays != 52 {
		t.Fatalf("plays = %d, want 52", plays)
	}
	if got := g.TricksWon[PartnershipNS] + g.TricksWon[PartnershipEW]; got != 13 {
		t.Fatalf("tricks tallied = %d, want 13", got)
	}
}

func TestDummyControlledByDeclarer(t *testing.T) {
	g := dealtGame(t, 55, SeatNorth)

	mustBid(t, g, SeatEast, SuitBid(1, StrainHearts))
	mustBid(t, g, SeatSouth, Pass())
	mustBid(t, g, SeatWest, Pass())
	mustBid(t, g, SeatNorth, Pass())

	// Opening lead by South, then it is dummy's (West's) turn.
	lead := g.LegalCards(SeatSouth)[0]
	if err := g.ApplyPlay(SeatSouth, lead); err != nil {
		t.Fatalf("opening lead error: %v", err)
	}
	if !g.FirstCardPlayed {
		t.Fatalf("first card flag not set after opening lead")
	}
	if g.CurrentTurn != SeatWest {
		t.Fatalf("turn = %v, want dummy West", g.CurrentTurn)
	}

	dummyCard := g.LegalCards(SeatWest)[0]
	if err := g.ApplyPlay(SeatWest, dummyCard); err != ErrOutOfTurn {
		t.Fatalf("dummy acting for itself error = %v, want ErrOutOfTurn", err)
	}
	if err := g.ApplyPlay(SeatEast, dummyCard); err != nil {
		t.Fatalf("declarer playing dummy card error: %v", err)
	}
}

func TestPlayRejectsCardNotHeld(t *testing.T) {
	g := dealtGame(t, 13, SeatNorth)

	mustBid(t, g, SeatEast, SuitBid(1, StrainClubs))
	mustBid(t, g, SeatSouth, Pass())
	mustBid(t, g, SeatWest, Pass())
	mustBid(t, g, SeatNorth, Pass())

	// Find a card South does not hold.
	held := map[Card]bool{}
	for _, c := range g.Hands[SeatSouth] {
		held[c] = true
	}
	var absent Card
	for _, c := range NewDeck() {
		if !held[c] {
			absent = c
			break
		}
	}

	before := g.Version
	if err := g.ApplyPlay(SeatSouth, absent); err != ErrNotInHand {
		t.Fatalf("playing unheld card error = %v, want ErrNotInHand", err)
	}
	if g.Version != before {
		t.Fatalf("version advanced on rejected play: %d -> %d", before, g.Version)
	}
	if len(g.Hands[SeatSouth]) != 13 {
		t.Fatalf("hand mutated on rejected play")
	}
}

func TestVulnerabilityForBoard(t *testing.T) {
	tests := []struct {
		board int
		want  Vulnerability
	}{
		{1, Vulnerability{}},
		{2, Vulnerability{NS: true}},
		{3, Vulnerability{EW: true}},
		{4, Vulnerability{NS: true, EW: true}},
		{8, Vulnerability{}},
		{9, Vulnerability{EW: true}},
		{16, Vulnerability{EW: true}},
		{17, Vulnerability{}}, // cycle repeats
	}
	for _, tt := range tests {
		if got := VulnerabilityForBoard(tt.board); got != tt.want {
			t.Errorf("board %d vulnerability = %+v, want %+v", tt.board, got, tt.want)
		}
	}
}
