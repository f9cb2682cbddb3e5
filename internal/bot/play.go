package bot

import (
	"errors"

	"bridge/internal/domain"
)

var errNoLegalCard = errors.New("no legal card to play")

// ChoosePlay picks a card with simple single-dummy heuristics: lead low from
// the longest suit, try to win a trick as cheaply as possible, otherwise
// discard the lowest legal card.
func (b *RuleBrain) ChoosePlay(game *domain.Game, seat domain.Seat) (domain.Card, error) {
	legal := game.LegalCards(seat)
	if len(legal) == 0 {
		return domain.Card{}, errNoLegalCard
	}

	trick := game.CurrentTrick
	if trick == nil || trick.Size() == 0 {
		return b.lead(game, seat, legal), nil
	}

	trump := game.Contract.Strain
	winningSeat := domain.ResolveTrickWinner(trick, trump)

	// Partner already has the trick: contribute the cheapest card.
	if winningSeat == seat.Partner() {
		return lowest(legal), nil
	}

	// Win as cheaply as possible, else throw the lowest legal card.
	ledSuit, _ := trick.LedSuit()
	var cheapestWinner *domain.Card
	for i := range legal {
		c := legal[i]
		if !beatsCurrent(c, *trick.Cards[winningSeat], ledSuit, trump) {
			continue
		}
		if cheapestWinner == nil || c.Rank < cheapestWinner.Rank {
			cheapestWinner = &legal[i]
		}
	}
	if cheapestWinner != nil {
		return *cheapestWinner, nil
	}
	return lowest(legal), nil
}

// lead opens a trick from the hand's longest suit.
func (b *RuleBrain) lead(game *domain.Game, seat domain.Seat, legal []domain.Card) domain.Card {
	p := profileHand(game.Hands[seat])
	suit, _ := p.longestSuit()

	var inSuit []domain.Card
	for _, c := range legal {
		if c.Suit == suit {
			inSuit = append(inSuit, c)
		}
	}
	if len(inSuit) == 0 {
		return lowest(legal)
	}
	return lowest(inSuit)
}

func lowest(cards []domain.Card) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank < best.Rank {
			best = c
		}
	}
	return best
}

// beatsCurrent reports whether the candidate would take the trick from the
// currently winning card.
func beatsCurrent(c, winning domain.Card, ledSuit domain.Suit, trump domain.Strain) bool {
	if trump.IsSuit() {
		ts := trump.TrumpSuit()
		if c.Suit == ts && winning.Suit != ts {
			return true
		}
		if c.Suit != ts && winning.Suit == ts {
			return false
		}
		if c.Suit == ts && winning.Suit == ts {
			return c.Rank > winning.Rank
		}
	}
	if c.Suit != ledSuit {
		return false
	}
	if winning.Suit != ledSuit {
		return true
	}
	return c.Rank > winning.Rank
}
