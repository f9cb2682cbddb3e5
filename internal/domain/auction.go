package domain

// Call is a bid tagged with the seat that made it.
type Call struct {
	Seat Seat
	Bid  Bid
}

// Auction is the ordered sequence of calls made so far.
type Auction []Call

// HighestSuitBid returns the most recent (and therefore highest) suit bid.
func (a Auction) HighestSuitBid() (Call, bool) {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i].Bid.Kind == BidSuit {
			return a[i], true
		}
	}
	return Call{}, false
}

// IsLegalBid validates a candidate call against the auction so far.
//
// Pass is always legal. Double requires the most recent call to be a suit bid
// by an opponent; Redouble requires the most recent call to be an opponent's
// double. A suit bid must be strictly higher than every prior suit bid.
func IsLegalBid(candidate Call, auction Auction) bool {
	if !candidate.Bid.Valid() || !candidate.Seat.Valid() {
		return false
	}

	switch candidate.Bid.Kind {
	case BidPass:
		return true

	case BidDouble:
		if len(auction) == 0 {
			return false
		}
		last := auction[len(auction)-1]
		return last.Bid.Kind == BidSuit && candidate.Seat.IsOpponent(last.Seat)

	case BidRedouble:
		if len(auction) == 0 {
			return false
		}
		last := auction[len(auction)-1]
		return last.Bid.Kind == BidDouble && candidate.Seat.IsOpponent(last.Seat)

	case BidSuit:
		highest, ok := auction.HighestSuitBid()
		if !ok {
			return true // opening bid
		}
		return candidate.Bid.Higher(highest.Bid)
	}

	return false
}

// IsAuctionComplete reports whether the auction has ended: at least four
// calls, with the trailing three all passes.
func IsAuctionComplete(auction Auction) bool {
	if len(auction) < 4 {
		return false
	}
	for _, c := range auction[len(auction)-3:] {
		if c.Bid.Kind != BidPass {
			return false
		}
	}
	return true
}

// Contract is the settled outcome of a completed auction.
type Contract struct {
	Level     int
	Strain    Strain
	Declarer  Seat
	Doubled   bool
	Redoubled bool
}

// ResolveContract derives the contract from a completed auction. It returns
// nil when no suit bid was ever made (a passed-out deal, which triggers a
// re-deal upstream). Doubled/redoubled reflect the most recent double or
// redouble not superseded by a later suit bid.
func ResolveContract(auction Auction) *Contract {
	final, ok := auction.HighestSuitBid()
	if !ok {
		return nil
	}

	c := &Contract{
		Level:    final.Bid.Level,
		Strain:   final.Bid.Strain,
		Declarer: final.Seat,
	}

	for i := len(auction) - 1; i >= 0; i-- {
		switch auction[i].Bid.Kind {
		case BidSuit:
			// Any double/redouble before this point applied to an earlier bid.
			return c
		case BidDouble:
			c.Doubled = true
			return c
		case BidRedouble:
			c.Doubled = true
			c.Redoubled = true
			return c
		}
	}
	return c
}
