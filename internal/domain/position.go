package domain

// Seat rotation for rendering. Every viewer draws themselves at the bottom
// of the table, which this codebase fixes as South. The mapping is the
// single 4-cycle rotation that sends the viewer to South and preserves
// clockwise order:
//
//	viewer N:  N->S  E->W  S->N  W->E
//	viewer E:  E->S  S->W  W->N  N->E
//	viewer S:  identity
//	viewer W:  W->S  N->W  E->N  S->E
//
// For a fixed viewer, RelativeSeat and AbsoluteSeat are mutual inverses.
// Rotation is strictly a rendering concern; game rules always operate on
// absolute seats.

// RelativeSeat maps an absolute seat to the position it occupies on screen
// for the given viewer.
func RelativeSeat(absolute, viewer Seat) Seat {
	return (absolute - viewer + SeatSouth + NumSeats) % NumSeats
}

// AbsoluteSeat maps a screen position back to the absolute seat it shows
// for the given viewer. It is the inverse of RelativeSeat.
func AbsoluteSeat(relative, viewer Seat) Seat {
	return (relative + viewer - SeatSouth + NumSeats) % NumSeats
}
