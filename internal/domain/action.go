package domain

import (
	"encoding/json"
	"fmt"
)

// ActionType tags a game action wire payload.
type ActionType string

const (
	ActionDrawEnergy       ActionType = "draw_energie"
	ActionPlaceEnergy      ActionType = "place_energie"
	ActionDiscardEnergy    ActionType = "discard_energie"
	ActionApplyEffect      ActionType = "apply_effect"
	ActionReplaceSituation ActionType = "replace_situation"
)

// DrawEnergyPayload selects the pile to draw from.
type DrawEnergyPayload struct {
	FromDiscard bool `json:"fromDiscard"`
}

// PlaceEnergyPayload places one hand energy onto a target situation.
type PlaceEnergyPayload struct {
	EnergyCardIndex int             `json:"energieCardIndex"`
	TargetSituation SituationTarget `json:"targetSituation"`
}

// DiscardEnergyPayload discards one hand energy.
type DiscardEnergyPayload struct {
	EnergyCardIndex int `json:"energieCardIndex"`
}

// ApplyEffectPayload chooses which player the completed situation's effect hits.
type ApplyEffectPayload struct {
	SituationType SituationTarget `json:"situationType"`
	TargetPlayer  Role            `json:"targetPlayer"`
}

// ReplaceSituationPayload refills the completed slot from the acting player's hand.
type ReplaceSituationPayload struct {
	SituationType         SituationTarget `json:"situationType"`
	NewSituationCardIndex int             `json:"newSituationCardIndex"`
}

// Action is the decoded form of the client's {type, payload} envelope.
// Exactly one payload field matching Type is set.
type Action struct {
	Type    ActionType
	Draw    *DrawEnergyPayload
	Place   *PlaceEnergyPayload
	Discard *DiscardEnergyPayload
	Effect  *ApplyEffectPayload
	Replace *ReplaceSituationPayload
}

type actionEnvelope struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DecodeAction parses a wire game action. The payload is only interpreted
// according to the declared type tag; unknown tags fail with ErrUnknownAction.
func DecodeAction(data []byte) (Action, error) {
	var env actionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Action{}, fmt.Errorf("malformed action envelope: %w", err)
	}

	action := Action{Type: env.Type}
	payload := env.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	var err error
	switch env.Type {
	case ActionDrawEnergy:
		action.Draw = &DrawEnergyPayload{}
		err = json.Unmarshal(payload, action.Draw)
	case ActionPlaceEnergy:
		action.Place = &PlaceEnergyPayload{}
		err = json.Unmarshal(payload, action.Place)
	case ActionDiscardEnergy:
		action.Discard = &DiscardEnergyPayload{}
		err = json.Unmarshal(payload, action.Discard)
	case ActionApplyEffect:
		action.Effect = &ApplyEffectPayload{}
		err = json.Unmarshal(payload, action.Effect)
	case ActionReplaceSituation:
		action.Replace = &ReplaceSituationPayload{}
		err = json.Unmarshal(payload, action.Replace)
	default:
		return Action{}, ErrUnknownAction
	}
	if err != nil {
		return Action{}, fmt.Errorf("malformed %s payload: %w", env.Type, err)
	}
	return action, nil
}
