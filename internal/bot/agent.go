package bot

import "bridge/internal/domain"

// Agent represents an autonomous bot player. A Solver is optional; when set
// it is consulted first for card plays, with the Brain and finally the first
// legal card as fallbacks.
type Agent struct {
	ID     string
	Name   string
	Brain  Brain
	Solver Solver
}

// Act asks the agent for its decision on the current turn. Oracle failures
// never surface: bidding degrades to Pass and play degrades to the first
// legal card.
func (a *Agent) Act(game *domain.Game, seat domain.Seat) (Action, error) {
	switch game.Phase {
	case domain.PhaseBidding:
		bid := a.Brain.ChooseBid(game, seat)
		if !domain.IsLegalBid(domain.Call{Seat: seat, Bid: bid}, game.Auction) {
			bid = domain.Pass()
		}
		return Action{Bid: &bid}, nil

	case domain.PhasePlaying:
		card, ok := a.choosePlay(game, seat)
		if !ok {
			return Action{}, domain.ErrWrongPhase
		}
		return Action{Card: &card}, nil

	default:
		return Action{}, domain.ErrWrongPhase
	}
}

func (a *Agent) choosePlay(game *domain.Game, seat domain.Seat) (domain.Card, bool) {
	if a.Solver != nil {
		if ranked, err := a.Solver.Solve(game, seat); err == nil {
			led := game.LedSuit()
			for _, rc := range ranked {
				if domain.IsLegalPlay(rc.Card, game.Hands[seat], led) {
					return rc.Card, true
				}
			}
		}
	}

	if card, err := a.Brain.ChoosePlay(game, seat); err == nil {
		led := game.LedSuit()
		if domain.IsLegalPlay(card, game.Hands[seat], led) {
			return card, true
		}
	}

	return FirstLegalCard(game, seat)
}
