package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"

	"catalyst/internal/app"
	"catalyst/internal/bot"
	"catalyst/internal/catalog"
	"catalyst/internal/config"
	"catalyst/internal/domain"
	"catalyst/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchLabel is the JSON match label indexed by Nakama for matchmaking
// queries.
type MatchLabel struct {
	Game    string `json:"game"`
	Open    int    `json:"open"`
	Phase   string `json:"phase"`
	Private string `json:"private"` // "true" | "false"
	Code    string `json:"code,omitempty"`
}

// MatchState holds the authoritative runtime state for the Catalyst match
// handler.
type MatchState struct {
	Seats        [2]string                   `json:"seats"` // user IDs, "" means the seat is empty
	Presences    map[string]runtime.Presence `json:"-"`
	App          *app.Service                `json:"-"`
	Game         *domain.Game                `json:"-"` // nil until both seats are taken
	Cfg          config.Config               `json:"-"`
	Catalog      *catalog.Catalog            `json:"-"`
	Bots         map[string]*bot.Agent       `json:"-"`
	Tick         int64                       `json:"tick"`
	TurnDeadline int64                       `json:"turn_deadline"` // tick after which the current turn is auto-resolved
	BotWaitUntil int64                       `json:"bot_wait_until"`
	LastSoloTick int64                       `json:"last_solo_tick"` // tick when a lone human started waiting
	Private      bool                        `json:"private"`
	RoomCode     string                      `json:"room_code"`
	Finalized    bool                        `json:"finalized"`
	History      ports.HistoryPort           `json:"-"`
	Leaderboard  ports.LeaderboardPort       `json:"-"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !bot.IsBot(seat) {
			count++
		}
	}
	return count
}

// seatOf returns the seat index of the given user, or -1.
func (ms *MatchState) seatOf(userID string) int {
	for i, seat := range ms.Seats {
		if seat == userID {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	for _, userID := range seats {
		if userID != "" && !bot.IsBot(userID) {
			return false
		}
	}
	return true
}

// humanPresenceCount counts the connected presences belonging to humans.
func humanPresenceCount(presences map[string]runtime.Presence) int {
	count := 0
	for userID := range presences {
		if !bot.IsBot(userID) {
			count++
		}
	}
	return count
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created. Params may carry "private"
// and "room_code" for code-gated rooms.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	cfg, err := config.FromEnv(env)
	if err != nil {
		logger.Warn("MatchInit: Falling back to default config: %v", err)
		cfg, _ = config.FromEnv(nil)
	}

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Warn("MatchInit: Could not load catalog from %s, using built-in set: %v", cfg.CatalogPath, err)
		cat = catalog.Default()
	}

	state := &MatchState{
		Presences: make(map[string]runtime.Presence),
		App: app.NewService(nil, app.Options{
			MaxTurns:          cfg.MaxTurns,
			SituationHandSize: cfg.SituationHandSize,
		}),
		Cfg:         cfg,
		Catalog:     cat,
		Bots:        make(map[string]*bot.Agent),
		History:     NewNakamaHistoryAdapter(nk),
		Leaderboard: NewNakamaLeaderboardAdapter(nk),
	}

	if v, ok := params["private"].(bool); ok {
		state.Private = v
	}
	if v, ok := params["room_code"].(string); ok {
		state.RoomCode = v
	}

	labelBytes, err := json.Marshal(mh.buildLabel(state))
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Reconnecting players keep their seat.
	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}

	// Allow join if there is an empty seat OR a bot to replace before the deal.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Game == nil {
			for _, seat := range matchState.Seats {
				if bot.IsBot(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if seat := matchState.seatOf(p.GetUserId()); seat >= 0 {
			// Reconnect: resend the authoritative snapshot.
			if matchState.Game != nil {
				mh.sendMatchStart(matchState, dispatcher, logger, p.GetUserId())
			}
			continue
		}

		assigned := false
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Game == nil {
			for i, seatUserID := range matchState.Seats {
				if bot.IsBot(seatUserID) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserID, p.GetUserId(), i)
					delete(matchState.Bots, seatUserID)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", p.GetUserId())
			continue
		}

		joined := PlayerJoinedDTO{
			UserID:   p.GetUserId(),
			Username: p.GetUsername(),
			Seat:     matchState.seatOf(p.GetUserId()),
		}
		if data, err := json.Marshal(joined); err == nil {
			dispatcher.BroadcastMessage(OpPlayerJoined, data, nil, nil, true)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)

	if matchState.Game == nil && matchState.GetOpenSeatsCount() == 0 {
		mh.startGame(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

// MatchLeave is called when one or more players leave the match. A leaving
// participant forfeits an in-progress game.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		seat := matchState.seatOf(p.GetUserId())
		if seat < 0 {
			continue
		}

		if matchState.Game != nil && !matchState.Game.IsOver() {
			events, err := matchState.App.Disconnect(matchState.Game, p.GetUserId())
			if err != nil {
				logger.Error("MatchLeave: Failed to forfeit for %s: %v", p.GetUserId(), err)
			} else {
				mh.broadcastActionResult(ctx, matchState, dispatcher, logger, events)
			}
		}

		if matchState.Game == nil {
			matchState.Seats[seat] = ""
			logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), seat)
		}
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	// Seats stay assigned once the game is dealt, so also terminate when the
	// last connected human is gone.
	if matchState.Game != nil && humanPresenceCount(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating dealt match with no humans connected.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	// Surrenders take priority over any game action queued the same tick.
	for _, msg := range messages {
		if msg.GetOpCode() == OpSurrender {
			mh.handleSurrender(ctx, matchState, dispatcher, logger, msg)
		}
	}
	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpSurrender:
			// handled above
		case OpGameAction:
			mh.handleGameAction(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	// Turn timer: auto-resolve the current phase when the deadline passes.
	if matchState.Game != nil && !matchState.Game.IsOver() &&
		matchState.TurnDeadline > 0 && tick >= matchState.TurnDeadline {
		logger.Debug("MatchLoop: Turn deadline reached for %s.", matchState.Game.CurrentPlayer)
		events, err := matchState.App.ResolveTimeout(matchState.Game)
		if err != nil {
			logger.Error("MatchLoop: Timeout resolution failed: %v", err)
			matchState.TurnDeadline = tick + int64(matchState.Cfg.TurnDurationSec)
		} else {
			mh.broadcastActionResult(ctx, matchState, dispatcher, logger, events)
		}
	}

	if matchState.Cfg.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

// startGame deals a fresh game once both seats are taken.
func (mh *matchHandler) startGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	roomID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	if state.RoomCode != "" {
		roomID = state.RoomCode
	}

	p1 := app.PlayerInfo{UserID: state.Seats[0], Username: mh.usernameFor(state, state.Seats[0])}
	p2 := app.PlayerInfo{UserID: state.Seats[1], Username: mh.usernameFor(state, state.Seats[1])}

	game, events, err := state.App.StartMatch(roomID, p1, p2, state.Catalog.BuildSituationDeck(), state.Catalog.BuildEnergyDeck())
	if err != nil {
		logger.Error("startGame: Failed to deal: %v", err)
		return
	}

	state.Game = game
	state.Finalized = false
	state.TurnDeadline = state.Tick + int64(state.Cfg.TurnDurationSec)

	for _, userID := range state.Seats {
		mh.sendMatchStart(state, dispatcher, logger, userID)
	}

	mh.updateLabel(state, dispatcher, logger)
	logger.Info("startGame: Game dealt in room %s, first player %s.", roomID, game.CurrentPlayer)

	// The deal already emitted a match_start event; nothing else to broadcast.
	_ = events
}

// sendMatchStart sends the per-player deal snapshot to one seat.
func (mh *matchHandler) sendMatchStart(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	role, ok := state.Game.RoleOf(userID)
	if !ok {
		return
	}
	opponent := state.Game.Player(role.Opponent())

	payload := MatchStartDTO{
		RoomID:    state.Game.RoomID,
		YourTurn:  state.Game.CurrentPlayer == role,
		Opponent:  OpponentDTO{ID: opponent.UserID, Username: opponent.Username},
		IsPrivate: state.Private,
		GameState: *gameToDTO(state.Game),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("sendMatchStart: Failed to marshal: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpMatchStart, data, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) handleGameAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if state.Game == nil {
		mh.sendError(state, dispatcher, logger, senderID, domain.ErrMatchOver)
		return
	}

	action, err := domain.DecodeAction(msg.GetData())
	if err != nil {
		logger.Warn("handleGameAction: Bad action from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	events, err := state.App.HandleAction(state.Game, senderID, action)
	if err != nil {
		logger.Warn("handleGameAction: User %s failed %s: %v", senderID, action.Type, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	mh.broadcastActionResult(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleSurrender(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if state.Game == nil || state.Game.IsOver() {
		return
	}

	events, err := state.App.Surrender(state.Game, senderID)
	if err != nil {
		logger.Warn("handleSurrender: User %s failed to surrender: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	logger.Info("handleSurrender: User %s surrendered.", senderID)
	mh.broadcastActionResult(ctx, state, dispatcher, logger, events)
}

// broadcastActionResult sends the post-action snapshot plus events to both
// participants, resets the turn timer, and finalizes the match if it ended.
func (mh *matchHandler) broadcastActionResult(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	result := ActionResultDTO{
		Success:   true,
		GameState: gameToDTO(state.Game),
		Events:    eventsToDTO(events),
	}
	data, err := json.Marshal(result)
	if err != nil {
		logger.Error("broadcastActionResult: Failed to marshal: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpActionResult, data, nil, nil, true)

	state.TurnDeadline = state.Tick + int64(state.Cfg.TurnDurationSec)

	if state.Game.IsOver() {
		mh.finalizeGame(ctx, state, dispatcher, logger)
	}
}

// finalizeGame archives the result, credits the winner, and announces the end.
func (mh *matchHandler) finalizeGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Finalized || state.Game == nil || state.Game.Result == nil {
		return
	}
	state.Finalized = true
	state.TurnDeadline = 0

	result := state.Game.Result

	end := MatchEndDTO{
		Winner:       string(result.Winner),
		Reason:       string(result.Reason),
		Player1Score: result.Player1Score,
		Player2Score: result.Player2Score,
	}
	if data, err := json.Marshal(end); err == nil {
		dispatcher.BroadcastMessage(OpMatchEnd, data, nil, nil, true)
	}

	record := ports.MatchRecord{
		RoomID:       state.Game.RoomID,
		Player1ID:    state.Game.Player1.UserID,
		Player2ID:    state.Game.Player2.UserID,
		Player1Score: result.Player1Score,
		Player2Score: result.Player2Score,
		Winner:       string(result.Winner),
		Reason:       string(result.Reason),
		Turns:        state.Game.CurrentTurn,
		FinishedAt:   state.Game.FinishedAt,
	}
	// Bots have no account to archive against.
	if bot.IsBot(record.Player1ID) {
		record.Player1ID = ""
	}
	if bot.IsBot(record.Player2ID) {
		record.Player2ID = ""
	}
	if err := state.History.RecordMatch(ctx, record); err != nil {
		logger.Error("finalizeGame: Failed to record history: %v", err)
	}

	if winner := result.Winner; winner == domain.WinnerPlayer1 || winner == domain.WinnerPlayer2 {
		player := state.Game.Player(domain.Role(winner))
		if !bot.IsBot(player.UserID) {
			if err := state.Leaderboard.SubmitWin(ctx, player.UserID, player.Username); err != nil {
				logger.Error("finalizeGame: Failed to submit win: %v", err)
			}
		}
	}

	mh.updateLabel(state, dispatcher, logger)
	logger.Info("finalizeGame: Room %s finished, winner=%s reason=%s.", state.Game.RoomID, result.Winner, result.Reason)
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill the second seat with a bot when a lone human has waited
	// long enough. Private rooms are never filled.
	if state.Game == nil && !state.Private {
		if state.GetHumanPlayerCount() == 1 && state.GetOpenSeatsCount() > 0 {
			if state.LastSoloTick == 0 {
				state.LastSoloTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSoloTick >= int64(state.Cfg.BotFillDelaySec) {
				for i, seat := range state.Seats {
					if seat != "" {
						continue
					}
					identity := bot.GetBotIdentity(i)
					agent, err := bot.NewAgent(identity.UserID)
					if err != nil {
						logger.Error("processBots: Failed to create bot agent for %s: %v", identity.UserID, err)
						continue
					}
					state.Seats[i] = identity.UserID
					state.Bots[identity.UserID] = agent
					logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, identity.UserID, i)
				}
				state.LastSoloTick = 0
				mh.updateLabel(state, dispatcher, logger)
				if state.GetOpenSeatsCount() == 0 {
					mh.startGame(ctx, state, dispatcher, logger)
				}
			}
		} else {
			state.LastSoloTick = 0
		}
	}

	// 2. Handle bot turns in-game.
	if state.Game == nil || state.Game.IsOver() {
		state.BotWaitUntil = 0
		return
	}

	currentUserID := state.Game.Player(state.Game.CurrentPlayer).UserID
	if !bot.IsBot(currentUserID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.Cfg.BotMaxDelaySec-state.Cfg.BotMinDelaySec+1) + state.Cfg.BotMinDelaySec
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s will act at tick %d (current %d)", currentUserID, state.BotWaitUntil, state.Tick)
		return
	}

	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[currentUserID]
	if !exists {
		var err error
		agent, err = bot.NewAgent(currentUserID)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[currentUserID] = agent
	}

	move, err := agent.Play(state.Game)
	if err != nil {
		logger.Error("processBots: Bot %s failed to calculate move: %v", currentUserID, err)
		return
	}

	events, err := state.App.HandleAction(state.Game, currentUserID, move)
	if err != nil {
		logger.Error("processBots: Bot %s move %s rejected: %v", currentUserID, move.Type, err)
		return
	}
	mh.broadcastActionResult(ctx, state, dispatcher, logger, events)
}

// sendError sends an error payload to a specific user only.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, cause error) {
	payload := ErrorDTO{
		Message: cause.Error(),
		Code:    errorCode(cause),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("sendError: Failed to marshal: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	dispatcher.BroadcastMessage(OpError, data, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) usernameFor(state *MatchState, userID string) string {
	if p, exists := state.Presences[userID]; exists {
		return p.GetUsername()
	}
	if name := bot.GetBotUsername(userID); name != "" {
		return name
	}
	return userID
}

func (mh *matchHandler) buildLabel(state *MatchState) *MatchLabel {
	phase := "lobby"
	if state.Game != nil {
		phase = string(state.Game.Phase)
	}
	private := "false"
	if state.Private {
		private = "true"
	}
	return &MatchLabel{
		Game:    "catalyst",
		Open:    state.GetOpenSeatsCount(),
		Phase:   phase,
		Private: private,
		Code:    state.RoomCode,
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(mh.buildLabel(state))
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
