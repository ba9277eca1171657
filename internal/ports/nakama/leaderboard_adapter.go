package nakama

import (
	"context"
	"fmt"

	"catalyst/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaLeaderboardAdapter implements ports.LeaderboardPort on the Nakama
// leaderboard API. Wins are incremented by one on the persistent
// catalyst_wins board.
type NakamaLeaderboardAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaLeaderboardAdapter creates a new leaderboard adapter.
func NewNakamaLeaderboardAdapter(nk runtime.NakamaModule) *NakamaLeaderboardAdapter {
	return &NakamaLeaderboardAdapter{nk: nk}
}

// SubmitWin increments the player's win count.
func (a *NakamaLeaderboardAdapter) SubmitWin(ctx context.Context, userID, username string) error {
	if _, err := a.nk.LeaderboardRecordWrite(ctx, LeaderboardWins, userID, username, 1, 0, nil, nil); err != nil {
		return fmt.Errorf("failed to write leaderboard record: %w", err)
	}
	return nil
}

// EnsureLeaderboard creates the wins leaderboard if it does not exist yet.
// Safe to call on every module init.
func EnsureLeaderboard(ctx context.Context, nk runtime.NakamaModule) error {
	if err := nk.LeaderboardCreate(ctx, LeaderboardWins, true, "desc", "incr", "", nil, true); err != nil {
		return fmt.Errorf("failed to create leaderboard: %w", err)
	}
	return nil
}

var _ ports.LeaderboardPort = (*NakamaLeaderboardAdapter)(nil)
