package bot

import "bridge/internal/domain"

// RuleBrain is a small rule-based policy loosely following Standard American
// openings and responses. It walks an ordered rule list and returns the
// first call that is legal in the current auction; with no match it passes.
type RuleBrain struct{}

// ChooseBid never returns an illegal call: every candidate is checked
// against the auction and replaced with Pass when it does not apply.
func (b *RuleBrain) ChooseBid(game *domain.Game, seat domain.Seat) domain.Bid {
	p := profileHand(game.Hands[seat])

	for _, candidate := range b.candidates(game, seat, p) {
		if domain.IsLegalBid(domain.Call{Seat: seat, Bid: candidate}, game.Auction) {
			return candidate
		}
	}
	return domain.Pass()
}

func (b *RuleBrain) candidates(game *domain.Game, seat domain.Seat, p handProfile) []domain.Bid {
	partnerSuit, partnerBid := lastSuitBidBy(game.Auction, seat.Partner())
	_, opened := game.Auction.HighestSuitBid()

	var out []domain.Bid

	switch {
	case !opened:
		// Opening seat.
		if p.hcp >= 22 {
			out = append(out, domain.SuitBid(2, domain.StrainClubs))
		}
		if p.hcp >= 15 && p.hcp <= 17 && p.balanced {
			out = append(out, domain.SuitBid(1, domain.StrainNoTrump))
		}
		if p.hcp >= 13 {
			suit, _ := p.longestSuit()
			out = append(out, domain.SuitBid(1, domain.Strain(suit)))
		}

	case partnerBid:
		// Responding to partner.
		if p.hcp >= 6 && partnerSuit.IsSuit() && p.lengths[partnerSuit.TrumpSuit()] >= 3 {
			out = append(out, domain.SuitBid(2, partnerSuit))
		}
		if p.hcp >= 6 {
			suit, n := p.longestSuit()
			if n >= 4 {
				out = append(out,
					domain.SuitBid(1, domain.Strain(suit)),
					domain.SuitBid(2, domain.Strain(suit)))
			}
		}
		if p.hcp >= 10 && p.balanced {
			out = append(out, domain.SuitBid(1, domain.StrainNoTrump))
		}

	default:
		// Competing against an opponent's opening.
		if suit, n := p.longestSuit(); n >= 5 && p.hcp >= 8 {
			out = append(out,
				domain.SuitBid(1, domain.Strain(suit)),
				domain.SuitBid(2, domain.Strain(suit)))
		}
	}

	return out
}

// lastSuitBidBy finds the most recent suit bid made by the given seat.
func lastSuitBidBy(auction domain.Auction, seat domain.Seat) (domain.Strain, bool) {
	for i := len(auction) - 1; i >= 0; i-- {
		if auction[i].Seat == seat && auction[i].Bid.Kind == domain.BidSuit {
			return auction[i].Bid.Strain, true
		}
	}
	return 0, false
}
