package client

import (
	"bridge/internal/domain"
	"bridge/internal/wire"
)

// SeatView is one seat as rendered on screen. Position is the screen slot
// (the viewer always renders at South); Seat is the absolute seat the rules
// speak about. Hidden hands carry CardCount only.
type SeatView struct {
	Position  string
	Seat      string
	Cards     []string
	CardCount int
	IsDummy   bool
	IsTurn    bool
}

// TableView is the viewer-relative rendering of a snapshot.
type TableView struct {
	Board   int
	Phase   string
	Version uint64

	Seats    map[string]SeatView // keyed by screen position: "S" is the viewer
	Auction  []wire.CallDTO
	Contract *wire.ContractDTO

	CurrentTrick *wire.TrickDTO
	TricksNS     int
	TricksEW     int
}

// Project rotates the snapshot into the viewer's frame. The viewer lands at
// the bottom of the screen; partners face each other and clockwise order is
// preserved.
func Project(snap wire.Snapshot, viewer domain.Seat) TableView {
	view := TableView{
		Board:        snap.Board,
		Phase:        snap.Phase,
		Version:      snap.Version,
		Seats:        make(map[string]SeatView, domain.NumSeats),
		Auction:      snap.Auction,
		Contract:     snap.Contract,
		CurrentTrick: snap.CurrentTrick,
		TricksNS:     snap.TricksNS,
		TricksEW:     snap.TricksEW,
	}

	for _, seat := range domain.Seats {
		hand := snap.Hands[seat.String()]
		position := domain.RelativeSeat(seat, viewer)
		view.Seats[position.String()] = SeatView{
			Position:  position.String(),
			Seat:      seat.String(),
			Cards:     hand.Cards,
			CardCount: hand.Count,
			IsDummy:   snap.Dummy == seat.String(),
			IsTurn:    snap.CurrentTurn == seat.String(),
		}
	}
	return view
}
