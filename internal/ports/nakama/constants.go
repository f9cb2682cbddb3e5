package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a table with an open seat.
	RpcQuickMatch = "quick_match"

	// RpcSeatToken is the Nakama RPC id clients call to obtain a signed rejoin token for their seat.
	RpcSeatToken = "seat_token"

	// MatchNameBridge is the authoritative match handler name registered with Nakama.
	MatchNameBridge = "bridge_match"

	// MatchLabelKey_OpenSeats is the key for the open seats count in the match label.
	MatchLabelKey_OpenSeats = "open"
)
