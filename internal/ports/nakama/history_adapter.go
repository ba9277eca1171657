package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"catalyst/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaHistoryAdapter implements ports.HistoryPort on Nakama storage: one
// owner-scoped record per participant so each player can list their own
// history.
type NakamaHistoryAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaHistoryAdapter creates a new history adapter.
func NewNakamaHistoryAdapter(nk runtime.NakamaModule) *NakamaHistoryAdapter {
	return &NakamaHistoryAdapter{nk: nk}
}

// RecordMatch archives the finished match for both participants.
func (a *NakamaHistoryAdapter) RecordMatch(ctx context.Context, record ports.MatchRecord) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal match record: %w", err)
	}

	writes := make([]*runtime.StorageWrite, 0, 2)
	for _, userID := range []string{record.Player1ID, record.Player2ID} {
		if userID == "" {
			continue
		}
		writes = append(writes, &runtime.StorageWrite{
			Collection:      StorageCollectionHistory,
			Key:             record.RoomID,
			UserID:          userID,
			Value:           string(value),
			PermissionRead:  1, // owner only
			PermissionWrite: 0, // server only
		})
	}

	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write match history: %w", err)
	}
	return nil
}

var _ ports.HistoryPort = (*NakamaHistoryAdapter)(nil)
