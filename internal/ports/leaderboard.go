package ports

import "context"

// LeaderboardPort feeds the win leaderboard.
type LeaderboardPort interface {
	// SubmitWin increments the winner's leaderboard score.
	SubmitWin(ctx context.Context, userID, username string) error
}
