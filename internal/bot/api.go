package bot

import "bridge/internal/domain"

// Action is the decision made by an agent on its turn: exactly one of Bid
// or Card is set, matching the game phase.
type Action struct {
	Bid  *domain.Bid
	Card *domain.Card
}

// Brain is the policy interface all bot strategies implement. ChooseBid
// never fails; a policy with no matching rule returns Pass. ChoosePlay may
// fail, in which case the agent falls back to the first legal card.
type Brain interface {
	ChooseBid(game *domain.Game, seat domain.Seat) domain.Bid
	ChoosePlay(game *domain.Game, seat domain.Seat) (domain.Card, error)
}

// FirstLegalCard returns the lowest-indexed card the seat may legally play.
// It is the universal fallback when a policy or solver fails.
func FirstLegalCard(game *domain.Game, seat domain.Seat) (domain.Card, bool) {
	legal := game.LegalCards(seat)
	if len(legal) == 0 {
		return domain.Card{}, false
	}
	return legal[0], true
}
