package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

var errRoomNotFound = errors.New("room not found")

// FindMatchResponse is returned by the matchmaking RPCs.
type FindMatchResponse struct {
	MatchID  string `json:"match_id"`
	IsNew    bool   `json:"is_new"`
	RoomCode string `json:"room_code,omitempty"`
}

// JoinPrivateRequest carries the room code for a private match.
type JoinPrivateRequest struct {
	RoomCode string `json:"room_code"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcFindMatch, rpcFindMatch); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcCreatePrivate, rpcCreatePrivate); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcJoinPrivate, rpcJoinPrivate)
}

// rpcFindMatch joins an open public match with a free seat, creating one when
// none exists.
func rpcFindMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	query := "+label.game:catalyst +label.open:>=1 +label.private:false"

	limit := 1
	authoritative := true
	minSize := 0
	maxSize := 2

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("rpcFindMatch [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}

	if len(matches) > 0 {
		resp := FindMatchResponse{MatchID: matches[0].MatchId, IsNew: false}
		b, _ := json.Marshal(resp)
		logger.Info("rpcFindMatch [User:%s]: Found existing match %s", userID, resp.MatchID)
		return string(b), nil
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameCatalyst, map[string]interface{}{"private": false})
	if err != nil {
		logger.Error("rpcFindMatch [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	resp := FindMatchResponse{MatchID: matchID, IsNew: true}
	b, _ := json.Marshal(resp)
	logger.Info("rpcFindMatch [User:%s]: Created new match %s", userID, matchID)
	return string(b), nil
}

// rpcCreatePrivate creates a code-gated room and returns the code to share.
func rpcCreatePrivate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	code := newRoomCode()
	matchID, err := nk.MatchCreate(ctx, MatchNameCatalyst, map[string]interface{}{
		"private":   true,
		"room_code": code,
	})
	if err != nil {
		logger.Error("rpcCreatePrivate [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	resp := FindMatchResponse{MatchID: matchID, IsNew: true, RoomCode: code}
	b, _ := json.Marshal(resp)
	logger.Info("rpcCreatePrivate [User:%s]: Created private match %s (code %s)", userID, matchID, code)
	return string(b), nil
}

// rpcJoinPrivate resolves a room code to the match id of an open private room.
func rpcJoinPrivate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req JoinPrivateRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
	}
	code := strings.ToUpper(strings.TrimSpace(req.RoomCode))
	if code == "" {
		return "", runtime.NewError("room code required", 3)
	}

	query := "+label.game:catalyst +label.code:" + code

	limit := 1
	authoritative := true
	minSize := 0
	maxSize := 2

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("rpcJoinPrivate [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}
	if len(matches) == 0 {
		logger.Info("rpcJoinPrivate [User:%s]: No room with code %s", userID, code)
		return "", runtime.NewError(errRoomNotFound.Error(), 5) // NOT_FOUND
	}

	resp := FindMatchResponse{MatchID: matches[0].MatchId, RoomCode: code}
	b, _ := json.Marshal(resp)
	return string(b), nil
}

// newRoomCode derives a short shareable code from a fresh UUID.
func newRoomCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return raw[:6]
}
