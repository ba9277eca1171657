package nakama

import (
	"context"
	"fmt"

	"catalyst/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaAccountAdapter implements ports.AccountPort using the Nakama account
// API.
type NakamaAccountAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaAccountAdapter creates a new account adapter.
func NewNakamaAccountAdapter(nk runtime.NakamaModule) *NakamaAccountAdapter {
	return &NakamaAccountAdapter{nk: nk}
}

// UpdateProfile sets the username and display name on the user's account.
func (a *NakamaAccountAdapter) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	if err := a.nk.AccountUpdateId(ctx, userID, username, nil, displayName, "", "", "", ""); err != nil {
		return fmt.Errorf("failed to update account %s: %w", userID, err)
	}
	return nil
}

var _ ports.AccountPort = (*NakamaAccountAdapter)(nil)
