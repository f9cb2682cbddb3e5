package app

// PlayersPerTable is the number of occupied seats required to start a deal.
// Bridge is strictly a four-player game; empty seats are filled with bots
// before the owner can start.
const PlayersPerTable = 4
