package domain

// ValidateAction checks a proposed action against the current state without
// mutating anything. A nil return means the state machine may apply the
// action; any error leaves the game untouched.
func ValidateAction(g *Game, userID string, action Action) error {
	if g.IsOver() {
		return ErrMatchOver
	}

	actor, ok := g.RoleOf(userID)
	if !ok {
		return ErrUnknownPlayer
	}
	if actor != g.CurrentPlayer {
		return ErrNotYourTurn
	}

	player := g.Player(actor)

	switch action.Type {
	case ActionDrawEnergy:
		if g.Phase != PhaseDrawingEnergy {
			return ErrWrongPhase
		}
		if len(player.HandEnergyCards) >= EnergyHandLimit {
			return ErrHandFull
		}
		if action.Draw.FromDiscard {
			if g.EnergyDeck.DiscardLen() == 0 {
				return ErrEmptyDiscard
			}
		} else if g.EnergyDeck.Len() == 0 && g.EnergyDeck.DiscardLen() == 0 {
			return ErrEmptyDeckAndDiscard
		}
		return nil

	case ActionPlaceEnergy:
		if g.Phase != PhasePlacingEnergy {
			return ErrWrongPhase
		}
		if _, err := player.EnergyAt(action.Place.EnergyCardIndex); err != nil {
			return err
		}
		switch action.Place.TargetSituation {
		case TargetCommon, TargetMyPrivate, TargetOpponentPrivate:
		default:
			return ErrNoTargetSituation
		}
		target := g.SituationFor(actor, action.Place.TargetSituation)
		if target == nil {
			return ErrNoTargetSituation
		}
		if target.IsFull() {
			return ErrSlotFull
		}
		return nil

	case ActionDiscardEnergy:
		if g.Phase != PhasePlacingEnergy {
			return ErrWrongPhase
		}
		if _, err := player.EnergyAt(action.Discard.EnergyCardIndex); err != nil {
			return err
		}
		return nil

	case ActionApplyEffect:
		if g.Phase != PhaseWaitingEffect {
			return ErrWrongPhase
		}
		switch action.Effect.TargetPlayer {
		case RolePlayer1, RolePlayer2:
			return nil
		default:
			return ErrInvalidEffectTarget
		}

	case ActionReplaceSituation:
		if g.Phase != PhaseWaitingReplacement {
			return ErrWrongPhase
		}
		if action.Replace.SituationType != TargetCommon && action.Replace.SituationType != TargetMyPrivate {
			return ErrInvalidReplacementTarget
		}
		// The chosen slot must be the one that was actually completed.
		if g.Completed == nil || g.CompletedTypeFor(actor, action.Replace.SituationType) != g.Completed.Type {
			return ErrInvalidReplacementTarget
		}
		if _, err := player.SituationAt(action.Replace.NewSituationCardIndex); err != nil {
			return err
		}
		return nil

	default:
		return ErrUnknownAction
	}
}
