package bot

import "bridge/internal/domain"

// RankedCard is one entry of a solver suggestion, best first.
type RankedCard struct {
	Card           domain.Card
	ExpectedTricks float64
}

// Solver is the double-dummy oracle boundary. Implementations may consult an
// external process or service and are allowed to fail; callers must degrade
// to a legal fallback card.
type Solver interface {
	Solve(game *domain.Game, leader domain.Seat) ([]RankedCard, error)
}

// SolverFunc adapts a plain function to the Solver interface.
type SolverFunc func(game *domain.Game, leader domain.Seat) ([]RankedCard, error)

func (f SolverFunc) Solve(game *domain.Game, leader domain.Seat) ([]RankedCard, error) {
	return f(game, leader)
}
