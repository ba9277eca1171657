package nakama

const (
	// RpcFindMatch is the Nakama RPC id clients call to find or create a public room.
	RpcFindMatch = "catalyst_find_match"
	// RpcCreatePrivate creates a private room and returns its join code.
	RpcCreatePrivate = "catalyst_create_private"
	// RpcJoinPrivate resolves a private room code to a match id.
	RpcJoinPrivate = "catalyst_join_private"

	// MatchNameCatalyst is the authoritative match handler name registered with Nakama.
	MatchNameCatalyst = "catalyst_match"

	// LeaderboardWins is the leaderboard fed by match victories.
	LeaderboardWins = "catalyst_wins"

	// StorageCollectionHistory holds per-player archived match records.
	StorageCollectionHistory = "match_history"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpGameAction int64 = 1
	OpSurrender  int64 = 2

	// Server -> Client events
	OpPlayerJoined int64 = 101
	OpMatchStart   int64 = 102
	OpActionResult int64 = 103
	OpMatchEnd     int64 = 104
	OpError        int64 = 105
)
