package domain

import "time"

// Phase is the current stage of the per-turn protocol.
type Phase string

const (
	PhaseSetup              Phase = "setup"
	PhaseDrawingEnergy      Phase = "drawing_energie"
	PhasePlacingEnergy      Phase = "placing_energie"
	PhaseWaitingEffect      Phase = "waiting_effect"
	PhaseWaitingReplacement Phase = "waiting_replacement"
	PhaseGameOver           Phase = "game_over"
)

// Role identifies one of the two seats in a match.
type Role string

const (
	RolePlayer1 Role = "player1"
	RolePlayer2 Role = "player2"
	// RoleNone marks "no player yet", e.g. before anyone scored.
	RoleNone Role = ""
)

// Opponent returns the other seat.
func (r Role) Opponent() Role {
	if r == RolePlayer1 {
		return RolePlayer2
	}
	return RolePlayer1
}

// Winner is the outcome of a finished match.
type Winner string

const (
	WinnerPlayer1 Winner = "player1"
	WinnerPlayer2 Winner = "player2"
	WinnerDraw    Winner = "draw"
)

// EndReason records why a match finished.
type EndReason string

const (
	ReasonVictory    EndReason = "victory"
	ReasonSurrender  EndReason = "surrender"
	ReasonDisconnect EndReason = "disconnect"
)

// CompletedSituation carries the payload of the waiting_effect and
// waiting_replacement phases: the slot that was completed and its card.
// It is nil outside those phases.
type CompletedSituation struct {
	Type CompletedSituationType
	Card SituationCardWithEnergies
}

// Result summarizes a finished match.
type Result struct {
	Winner       Winner
	Reason       EndReason
	Player1Score int
	Player2Score int
}

// Game is the aggregate root for one match room. A single Game is owned by
// exactly one room actor; actions for the room are applied strictly in
// receipt order.
type Game struct {
	RoomID string

	Player1 *PlayerState
	Player2 *PlayerState

	CommonSituation *PlayedSituationCard

	SituationDeck *Deck[SituationCardWithEnergies]
	EnergyDeck    *Deck[Energy]

	CurrentTurn   int
	MaxTurns      int
	CurrentPlayer Role
	Phase         Phase

	FirstPlayerToScore Role
	Completed          *CompletedSituation
	Result             *Result

	CreatedAt  time.Time
	StartedAt  time.Time
	FinishedAt time.Time
}

// Player returns the state for the given seat.
func (g *Game) Player(r Role) *PlayerState {
	if r == RolePlayer1 {
		return g.Player1
	}
	return g.Player2
}

// RoleOf resolves a user id to its seat.
func (g *Game) RoleOf(userID string) (Role, bool) {
	switch userID {
	case g.Player1.UserID:
		return RolePlayer1, true
	case g.Player2.UserID:
		return RolePlayer2, true
	default:
		return RoleNone, false
	}
}

// SituationFor resolves a placement target, relative to the acting seat, to
// the situation currently occupying that slot. Returns nil for empty slots.
func (g *Game) SituationFor(actor Role, target SituationTarget) *PlayedSituationCard {
	switch target {
	case TargetCommon:
		return g.CommonSituation
	case TargetMyPrivate:
		return g.Player(actor).PrivateSituation
	case TargetOpponentPrivate:
		return g.Player(actor.Opponent()).PrivateSituation
	default:
		return nil
	}
}

// CompletedTypeFor maps a relative placement target to the absolute slot type
// recorded in CompletedSituation.
func (g *Game) CompletedTypeFor(actor Role, target SituationTarget) CompletedSituationType {
	switch target {
	case TargetCommon:
		return CompletedCommon
	case TargetMyPrivate:
		if actor == RolePlayer1 {
			return CompletedPlayer1Private
		}
		return CompletedPlayer2Private
	default:
		if actor == RolePlayer1 {
			return CompletedPlayer2Private
		}
		return CompletedPlayer1Private
	}
}

// OwnerOfSlot returns the seat owning an absolute slot type, or RoleNone for
// the common slot.
func OwnerOfSlot(t CompletedSituationType) Role {
	switch t {
	case CompletedPlayer1Private:
		return RolePlayer1
	case CompletedPlayer2Private:
		return RolePlayer2
	default:
		return RoleNone
	}
}

// IsOver reports whether the match has finished.
func (g *Game) IsOver() bool {
	return g.Phase == PhaseGameOver
}
