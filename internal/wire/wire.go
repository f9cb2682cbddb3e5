// Package wire defines the opcodes and JSON payloads exchanged between the
// authoritative match handler and clients over Nakama match data.
package wire

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame      int64 = 1
	OpMakeBid        int64 = 2
	OpPlayCard       int64 = 3
	OpRequestNewGame int64 = 4

	// Server -> Client events
	OpTableUpdated  int64 = 101
	OpGameStarted   int64 = 102
	OpHandDealt     int64 = 103 // sent privately
	OpBidMade       int64 = 104
	OpCardPlayed    int64 = 105
	OpGameCompleted int64 = 106
	OpGameError     int64 = 107
	OpSnapshot      int64 = 108 // per-seat redacted snapshot
)

// MakeBidRequest carries a bid wire code: "1C".."7NT", "pass", "double",
// "redouble". The authority infers the seat from the sender's connection.
type MakeBidRequest struct {
	Bid string `json:"bid"`
}

// PlayCardRequest carries a two-character card code, rank then suit ("TH").
type PlayCardRequest struct {
	Card string `json:"card"`
}

// SeatInfo describes one seat for lobby/table rendering.
type SeatInfo struct {
	Seat           string `json:"seat"`
	UserID         string `json:"user_id,omitempty"`
	DisplayName    string `json:"display_name,omitempty"`
	IsOwner        bool   `json:"is_owner,omitempty"`
	IsBot          bool   `json:"is_bot,omitempty"`
	CardsRemaining int    `json:"cards_remaining,omitempty"`
}

// TableUpdated is broadcast whenever table membership changes.
type TableUpdated struct {
	Seats     []SeatInfo `json:"seats"`
	OwnerSeat string     `json:"owner_seat,omitempty"`
	Phase     string     `json:"phase"`
}

// CallDTO is one auction call.
type CallDTO struct {
	Seat string `json:"seat"`
	Bid  string `json:"bid"`
}

// ContractDTO is the settled contract.
type ContractDTO struct {
	Level     int    `json:"level"`
	Strain    string `json:"strain"`
	Declarer  string `json:"declarer"`
	Doubled   bool   `json:"doubled,omitempty"`
	Redoubled bool   `json:"redoubled,omitempty"`
}

// TrickDTO is the trick in progress: seat code -> card code.
type TrickDTO struct {
	Leader string            `json:"leader"`
	Cards  map[string]string `json:"cards"`
}

// HandDTO is a per-seat hand as the viewer is entitled to see it: card codes
// when visible, a count only when hidden.
type HandDTO struct {
	Cards []string `json:"cards,omitempty"`
	Count int      `json:"count"`
}

// Snapshot is the seat-redacted authoritative game state. Version increases
// monotonically with every accepted action; clients must discard snapshots
// that do not advance it.
type Snapshot struct {
	DealID  string `json:"deal_id"`
	Version uint64 `json:"version"`
	Board   int    `json:"board"`

	Phase       string `json:"phase"`
	Dealer      string `json:"dealer"`
	CurrentTurn string `json:"current_turn"`

	Auction         []CallDTO    `json:"auction,omitempty"`
	Contract        *ContractDTO `json:"contract,omitempty"`
	Dummy           string       `json:"dummy,omitempty"`
	FirstCardPlayed bool         `json:"first_card_played,omitempty"`

	Hands        map[string]HandDTO `json:"hands"`
	CurrentTrick *TrickDTO          `json:"current_trick,omitempty"`
	TricksNS     int                `json:"tricks_ns"`
	TricksEW     int                `json:"tricks_ew"`

	VulnerableNS bool `json:"vulnerable_ns,omitempty"`
	VulnerableEW bool `json:"vulnerable_ew,omitempty"`
}

// GameStarted announces a new deal. The full state follows as a per-seat
// Snapshot event.
type GameStarted struct {
	Board   int    `json:"board"`
	Dealer  string `json:"dealer"`
	Version uint64 `json:"version"`
}

// HandDealt delivers a hand privately to one seat.
type HandDealt struct {
	Seat  string   `json:"seat"`
	Cards []string `json:"cards"`
}

// BidMade is broadcast after every accepted call.
type BidMade struct {
	Seat     string `json:"seat"`
	Bid      string `json:"bid"`
	NextTurn string `json:"next_turn"`
	Version  uint64 `json:"version"`
}

// CardPlayed is broadcast after every accepted play. TrickWinner is set only
// on the fourth card of a trick.
type CardPlayed struct {
	Seat        string `json:"seat"`
	Card        string `json:"card"`
	NextTurn    string `json:"next_turn"`
	TrickWinner string `json:"trick_winner,omitempty"`
	Version     uint64 `json:"version"`
}

// GameCompleted announces the end of a deal with the partnership tallies.
type GameCompleted struct {
	TricksNS int    `json:"tricks_ns"`
	TricksEW int    `json:"tricks_ew"`
	Version  uint64 `json:"version"`
}

// GameError is sent to a single user when an action is rejected.
type GameError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
