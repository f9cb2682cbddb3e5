package bot

import "bridge/internal/domain"

// handProfile is a static evaluation of a 13-card hand.
type handProfile struct {
	hcp      int
	lengths  [4]int // indexed by Suit
	balanced bool
}

// profileHand computes high-card points (A=4 K=3 Q=2 J=1), suit lengths and
// shape. A hand is balanced with no void, no singleton and at most one
// doubleton.
func profileHand(hand []domain.Card) handProfile {
	var p handProfile
	for _, c := range hand {
		p.lengths[c.Suit]++
		switch c.Rank {
		case domain.RankA:
			p.hcp += 4
		case domain.RankK:
			p.hcp += 3
		case domain.RankQ:
			p.hcp += 2
		case domain.RankJ:
			p.hcp++
		}
	}

	doubletons := 0
	p.balanced = true
	for _, n := range p.lengths {
		switch {
		case n <= 1:
			p.balanced = false
		case n == 2:
			doubletons++
		}
	}
	if doubletons > 1 {
		p.balanced = false
	}
	return p
}

// longestSuit returns the longest suit, preferring the higher-ranking suit
// on ties.
func (p handProfile) longestSuit() (domain.Suit, int) {
	best := domain.SuitClubs
	for _, s := range domain.Suits {
		if p.lengths[s] >= p.lengths[best] {
			best = s
		}
	}
	return best, p.lengths[best]
}
