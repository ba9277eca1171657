package domain

import (
	"errors"
	"testing"
)

func TestValidateAction_TurnAndIdentity(t *testing.T) {
	g := testGame()
	draw := Action{Type: ActionDrawEnergy, Draw: &DrawEnergyPayload{}}

	if err := ValidateAction(g, "stranger", draw); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("unknown player = %v, want ErrUnknownPlayer", err)
	}
	if err := ValidateAction(g, "user-2", draw); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("out-of-turn = %v, want ErrNotYourTurn", err)
	}
	if err := ValidateAction(g, "user-1", draw); err != nil {
		t.Errorf("valid draw = %v, want nil", err)
	}

	g.Phase = PhaseGameOver
	if err := ValidateAction(g, "user-1", draw); !errors.Is(err, ErrMatchOver) {
		t.Errorf("finished match = %v, want ErrMatchOver", err)
	}
}

func TestValidateAction_Draw(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Game)
		payload DrawEnergyPayload
		wantErr error
	}{
		{
			name:    "WrongPhase",
			mutate:  func(g *Game) { g.Phase = PhasePlacingEnergy },
			wantErr: ErrWrongPhase,
		},
		{
			name:    "HandFull",
			mutate:  func(g *Game) { fillHand(g.Player1) },
			wantErr: ErrHandFull,
		},
		{
			name:    "EmptyDiscard",
			payload: DrawEnergyPayload{FromDiscard: true},
			wantErr: ErrEmptyDiscard,
		},
		{
			name: "DeckAndDiscardExhausted",
			mutate: func(g *Game) {
				for g.EnergyDeck.Len() > 0 {
					g.EnergyDeck.Draw()
				}
			},
			wantErr: ErrEmptyDeckAndDiscard,
		},
		{
			name: "DiscardAvailable",
			mutate: func(g *Game) {
				g.EnergyDeck.Discard(testEnergy("a"))
			},
			payload: DrawEnergyPayload{FromDiscard: true},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := testGame()
			if test.mutate != nil {
				test.mutate(g)
			}
			payload := test.payload
			err := ValidateAction(g, "user-1", Action{Type: ActionDrawEnergy, Draw: &payload})
			if !errors.Is(err, test.wantErr) {
				t.Errorf("ValidateAction() = %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestValidateAction_Place(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Game)
		payload PlaceEnergyPayload
		wantErr error
	}{
		{
			name:    "WrongPhase",
			mutate:  func(g *Game) { g.Phase = PhaseDrawingEnergy },
			payload: PlaceEnergyPayload{TargetSituation: TargetCommon},
			wantErr: ErrWrongPhase,
		},
		{
			name:    "BadIndex",
			payload: PlaceEnergyPayload{EnergyCardIndex: 5, TargetSituation: TargetCommon},
			wantErr: ErrInvalidCardIndex,
		},
		{
			name:    "BadTargetName",
			payload: PlaceEnergyPayload{TargetSituation: "elsewhere"},
			wantErr: ErrNoTargetSituation,
		},
		{
			name:    "EmptyTargetSlot",
			mutate:  func(g *Game) { g.CommonSituation = nil },
			payload: PlaceEnergyPayload{TargetSituation: TargetCommon},
			wantErr: ErrNoTargetSituation,
		},
		{
			name: "SlotFull",
			mutate: func(g *Game) {
				g.CommonSituation.PlacedEnergies = testEnergies("a", "b", "c", "d", "e")
			},
			payload: PlaceEnergyPayload{TargetSituation: TargetCommon},
			wantErr: ErrSlotFull,
		},
		{
			name:    "ValidCommon",
			payload: PlaceEnergyPayload{TargetSituation: TargetCommon},
		},
		{
			name:    "ValidOpponentPrivate",
			payload: PlaceEnergyPayload{TargetSituation: TargetOpponentPrivate},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := testGame()
			g.Phase = PhasePlacingEnergy
			g.Player1.HandEnergyCards = testEnergies("a")
			if test.mutate != nil {
				test.mutate(g)
			}
			payload := test.payload
			err := ValidateAction(g, "user-1", Action{Type: ActionPlaceEnergy, Place: &payload})
			if !errors.Is(err, test.wantErr) {
				t.Errorf("ValidateAction() = %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestValidateAction_Discard(t *testing.T) {
	g := testGame()
	g.Phase = PhasePlacingEnergy
	g.Player1.HandEnergyCards = testEnergies("a")

	if err := ValidateAction(g, "user-1", Action{Type: ActionDiscardEnergy, Discard: &DiscardEnergyPayload{}}); err != nil {
		t.Errorf("valid discard = %v, want nil", err)
	}
	if err := ValidateAction(g, "user-1", Action{Type: ActionDiscardEnergy, Discard: &DiscardEnergyPayload{EnergyCardIndex: 3}}); !errors.Is(err, ErrInvalidCardIndex) {
		t.Errorf("bad index = %v, want ErrInvalidCardIndex", err)
	}

	g.Phase = PhaseDrawingEnergy
	if err := ValidateAction(g, "user-1", Action{Type: ActionDiscardEnergy, Discard: &DiscardEnergyPayload{}}); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("wrong phase = %v, want ErrWrongPhase", err)
	}
}

func TestValidateAction_Effect(t *testing.T) {
	g := testGame()
	g.Phase = PhaseWaitingEffect
	g.Completed = &CompletedSituation{Type: CompletedCommon, Card: g.CommonSituation.SituationCard}

	if err := ValidateAction(g, "user-1", Action{Type: ActionApplyEffect, Effect: &ApplyEffectPayload{TargetPlayer: RolePlayer2}}); err != nil {
		t.Errorf("valid effect = %v, want nil", err)
	}
	if err := ValidateAction(g, "user-1", Action{Type: ActionApplyEffect, Effect: &ApplyEffectPayload{TargetPlayer: "spectator"}}); !errors.Is(err, ErrInvalidEffectTarget) {
		t.Errorf("bad target = %v, want ErrInvalidEffectTarget", err)
	}
}

func TestValidateAction_Replace(t *testing.T) {
	setup := func() *Game {
		g := testGame()
		g.Phase = PhaseWaitingReplacement
		g.Completed = &CompletedSituation{Type: CompletedCommon, Card: g.CommonSituation.SituationCard}
		g.Player1.HandSituationCards = []SituationCardWithEnergies{
			testSituation("fresh", 5, "a", "b", "c", "d", "e"),
		}
		return g
	}

	g := setup()
	valid := Action{Type: ActionReplaceSituation, Replace: &ReplaceSituationPayload{SituationType: TargetCommon}}
	if err := ValidateAction(g, "user-1", valid); err != nil {
		t.Errorf("valid replace = %v, want nil", err)
	}

	// Replacing the opponent's slot is never allowed.
	opp := Action{Type: ActionReplaceSituation, Replace: &ReplaceSituationPayload{SituationType: TargetOpponentPrivate}}
	if err := ValidateAction(g, "user-1", opp); !errors.Is(err, ErrInvalidReplacementTarget) {
		t.Errorf("opponent target = %v, want ErrInvalidReplacementTarget", err)
	}

	// The named slot must be the one that was completed.
	mismatch := Action{Type: ActionReplaceSituation, Replace: &ReplaceSituationPayload{SituationType: TargetMyPrivate}}
	if err := ValidateAction(g, "user-1", mismatch); !errors.Is(err, ErrInvalidReplacementTarget) {
		t.Errorf("slot mismatch = %v, want ErrInvalidReplacementTarget", err)
	}

	g = setup()
	badIndex := Action{Type: ActionReplaceSituation, Replace: &ReplaceSituationPayload{SituationType: TargetCommon, NewSituationCardIndex: 2}}
	if err := ValidateAction(g, "user-1", badIndex); !errors.Is(err, ErrInvalidCardIndex) {
		t.Errorf("bad hand index = %v, want ErrInvalidCardIndex", err)
	}
}

func TestValidateAction_UnknownType(t *testing.T) {
	g := testGame()
	if err := ValidateAction(g, "user-1", Action{Type: "teleport"}); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("unknown type = %v, want ErrUnknownAction", err)
	}
}
