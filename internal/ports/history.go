package ports

import (
	"context"
	"time"
)

// MatchRecord is the archived summary of one finished match.
type MatchRecord struct {
	RoomID       string    `json:"room_id"`
	Player1ID    string    `json:"player1_id"`
	Player2ID    string    `json:"player2_id"`
	Player1Score int       `json:"player1_score"`
	Player2Score int       `json:"player2_score"`
	Winner       string    `json:"winner"` // player1 | player2 | draw
	Reason       string    `json:"reason"` // victory | surrender | disconnect
	Turns        int       `json:"turns"`
	FinishedAt   time.Time `json:"finished_at"`
}

// HistoryPort archives finished matches for the game-history views.
type HistoryPort interface {
	// RecordMatch persists one match record per participant.
	RecordMatch(ctx context.Context, record MatchRecord) error
}
