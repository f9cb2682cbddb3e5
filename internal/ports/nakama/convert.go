package nakama

import (
	"bridge/internal/domain"
	"bridge/internal/wire"
)

// handVisibleTo reports whether the viewer is entitled to see the cards of
// the given seat. A viewer always sees its own hand; the dummy's hand is
// public to the whole table once the opening lead has been made.
func handVisibleTo(g *domain.Game, viewer, seat domain.Seat) bool {
	if viewer == seat {
		return true
	}
	return g.Phase == domain.PhasePlaying &&
		g.FirstCardPlayed &&
		g.Dummy != nil &&
		seat == *g.Dummy
}

// BuildSnapshot renders the authoritative game state as the given viewer is
// entitled to see it. Hidden hands carry only a card count.
func BuildSnapshot(g *domain.Game, viewer domain.Seat) wire.Snapshot {
	snap := wire.Snapshot{
		DealID:          g.DealID,
		Version:         g.Version,
		Board:           g.Board,
		Phase:           string(g.Phase),
		Dealer:          g.Dealer.String(),
		CurrentTurn:     g.CurrentTurn.String(),
		Auction:         toCallDTOs(g.Auction),
		Contract:        toContractDTO(g.Contract),
		FirstCardPlayed: g.FirstCardPlayed,
		Hands:           make(map[string]wire.HandDTO, domain.NumSeats),
		CurrentTrick:    toTrickDTO(g.CurrentTrick),
		TricksNS:        g.TricksWon[domain.PartnershipNS],
		TricksEW:        g.TricksWon[domain.PartnershipEW],
		VulnerableNS:    g.Vulnerable.NS,
		VulnerableEW:    g.Vulnerable.EW,
	}
	if g.Dummy != nil {
		snap.Dummy = g.Dummy.String()
	}

	for _, seat := range domain.Seats {
		hand := g.Hands[seat]
		dto := wire.HandDTO{Count: len(hand)}
		if handVisibleTo(g, viewer, seat) {
			dto.Cards = toCardCodes(hand)
		}
		snap.Hands[seat.String()] = dto
	}
	return snap
}

func toCardCodes(cards []domain.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Code()
	}
	return out
}

func toCallDTOs(auction domain.Auction) []wire.CallDTO {
	if len(auction) == 0 {
		return nil
	}
	out := make([]wire.CallDTO, len(auction))
	for i, call := range auction {
		out[i] = wire.CallDTO{Seat: call.Seat.String(), Bid: call.Bid.Code()}
	}
	return out
}

func toContractDTO(c *domain.Contract) *wire.ContractDTO {
	if c == nil {
		return nil
	}
	return &wire.ContractDTO{
		Level:     c.Level,
		Strain:    c.Strain.String(),
		Declarer:  c.Declarer.String(),
		Doubled:   c.Doubled,
		Redoubled: c.Redoubled,
	}
}

func toTrickDTO(t *domain.Trick) *wire.TrickDTO {
	if t == nil {
		return nil
	}
	dto := &wire.TrickDTO{
		Leader: t.Leader.String(),
		Cards:  make(map[string]string, domain.NumSeats),
	}
	for _, seat := range domain.Seats {
		if c := t.Cards[seat]; c != nil {
			dto.Cards[seat.String()] = c.Code()
		}
	}
	return dto
}
