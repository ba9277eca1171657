package app

import "catalyst/internal/domain"

// EventKind identifies emitted engine events for transport dispatch.
type EventKind string

const (
	EventMatchStarted       EventKind = "match_start"
	EventEnergyDrawn        EventKind = "energie_drawn"
	EventEnergyPlaced       EventKind = "energie_placed"
	EventEnergyDiscarded    EventKind = "energie_discarded"
	EventSituationCompleted EventKind = "situation_completed"
	EventEffectApplied      EventKind = "effect_applied"
	EventSituationReplaced  EventKind = "situation_replaced"
	EventTurnChanged        EventKind = "turn_changed"
	EventGameOver           EventKind = "game_over"
)

// Event is an engine event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type MatchStartedPayload struct {
	RoomID      string
	FirstPlayer domain.Role
}

type EnergyDrawnPayload struct {
	Player      domain.Role
	FromDiscard bool
	Energy      domain.Energy
}

type EnergyPlacedPayload struct {
	Player domain.Role
	Target domain.SituationTarget
	Energy domain.Energy
}

type EnergyDiscardedPayload struct {
	Player domain.Role
	Energy domain.Energy
}

type SituationCompletedPayload struct {
	Type domain.CompletedSituationType
	Card domain.SituationCardWithEnergies
}

type EffectAppliedPayload struct {
	Source domain.Role
	Target domain.Role
	Effect domain.Effect
}

type SituationReplacedPayload struct {
	Type    domain.CompletedSituationType
	NewCard domain.SituationCardWithEnergies
}

type TurnChangedPayload struct {
	Turn          int
	CurrentPlayer domain.Role
	Phase         domain.Phase
}

type GameOverPayload struct {
	Result domain.Result
}
