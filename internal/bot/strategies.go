package bot

import "catalyst/internal/domain"

// remainingNeeds returns how many of each energy id a slot still requires,
// ignoring misplaced energies that can no longer be matched.
func remainingNeeds(slot *domain.PlayedSituationCard) map[string]int {
	if slot == nil || slot.IsFull() {
		return nil
	}
	needs := make(map[string]int, domain.RequiredEnergyCount)
	for _, e := range slot.SituationCard.RequiredEnergies {
		needs[e.ID]++
	}
	for _, e := range slot.PlacedEnergies {
		if needs[e.ID] > 0 {
			needs[e.ID]--
		}
	}
	return needs
}

func totalNeeds(needs map[string]int) int {
	total := 0
	for _, n := range needs {
		total += n
	}
	return total
}

// replacementFor maps the pending completion to the slot the bot must refill.
func replacementFor(game *domain.Game) domain.SituationTarget {
	if game.Completed != nil && game.Completed.Type == domain.CompletedCommon {
		return domain.TargetCommon
	}
	return domain.TargetMyPrivate
}

// BalancedBot plays straightforward Catalyst: fill its own situations first,
// dump useless energies, and send effects at the opponent.
type BalancedBot struct{}

func (b *BalancedBot) CalculateMove(game *domain.Game, role domain.Role) (domain.Action, error) {
	if game.CurrentPlayer != role {
		return domain.Action{}, domain.ErrNotYourTurn
	}
	player := game.Player(role)

	switch game.Phase {
	case domain.PhaseDrawingEnergy:
		return domain.Action{Type: domain.ActionDrawEnergy, Draw: &domain.DrawEnergyPayload{}}, nil

	case domain.PhasePlacingEnergy:
		for _, target := range []domain.SituationTarget{domain.TargetMyPrivate, domain.TargetCommon} {
			needs := remainingNeeds(game.SituationFor(role, target))
			for i, e := range player.HandEnergyCards {
				if needs[e.ID] > 0 {
					return domain.Action{
						Type:  domain.ActionPlaceEnergy,
						Place: &domain.PlaceEnergyPayload{EnergyCardIndex: i, TargetSituation: target},
					}, nil
				}
			}
		}
		return domain.Action{
			Type:    domain.ActionDiscardEnergy,
			Discard: &domain.DiscardEnergyPayload{EnergyCardIndex: leastUseful(game, role)},
		}, nil

	case domain.PhaseWaitingEffect:
		// Points only matter for the tie-break, where having scored first
		// loses: push them onto the opponent.
		return domain.Action{
			Type:   domain.ActionApplyEffect,
			Effect: &domain.ApplyEffectPayload{TargetPlayer: role.Opponent()},
		}, nil

	case domain.PhaseWaitingReplacement:
		index := 0
		for i, card := range player.HandSituationCards {
			if card.Quota < player.HandSituationCards[index].Quota {
				index = i
			}
		}
		return domain.Action{
			Type:    domain.ActionReplaceSituation,
			Replace: &domain.ReplaceSituationPayload{SituationType: replacementFor(game), NewSituationCardIndex: index},
		}, nil

	default:
		return domain.Action{}, domain.ErrWrongPhase
	}
}

// leastUseful picks the hand energy needed by neither of the bot's own slots.
func leastUseful(game *domain.Game, role domain.Role) int {
	player := game.Player(role)
	private := remainingNeeds(game.SituationFor(role, domain.TargetMyPrivate))
	common := remainingNeeds(game.SituationFor(role, domain.TargetCommon))
	for i, e := range player.HandEnergyCards {
		if private[e.ID] == 0 && common[e.ID] == 0 {
			return i
		}
	}
	return 0
}

// ChaserBot hunts completions: it watches the discard pile and always feeds
// the slot closest to completion.
type ChaserBot struct{}

func (b *ChaserBot) CalculateMove(game *domain.Game, role domain.Role) (domain.Action, error) {
	if game.CurrentPlayer != role {
		return domain.Action{}, domain.ErrNotYourTurn
	}
	player := game.Player(role)

	switch game.Phase {
	case domain.PhaseDrawingEnergy:
		fromDiscard := false
		if pile := game.EnergyDeck.DiscardPile(); len(pile) > 0 {
			top := pile[len(pile)-1]
			private := remainingNeeds(game.SituationFor(role, domain.TargetMyPrivate))
			common := remainingNeeds(game.SituationFor(role, domain.TargetCommon))
			fromDiscard = private[top.ID] > 0 || common[top.ID] > 0
		}
		return domain.Action{Type: domain.ActionDrawEnergy, Draw: &domain.DrawEnergyPayload{FromDiscard: fromDiscard}}, nil

	case domain.PhasePlacingEnergy:
		bestIndex, bestTarget, bestRemaining := -1, domain.TargetMyPrivate, domain.RequiredEnergyCount+1
		for _, target := range []domain.SituationTarget{domain.TargetMyPrivate, domain.TargetCommon} {
			needs := remainingNeeds(game.SituationFor(role, target))
			if needs == nil {
				continue
			}
			remaining := totalNeeds(needs)
			for i, e := range player.HandEnergyCards {
				if needs[e.ID] > 0 && remaining < bestRemaining {
					bestIndex, bestTarget, bestRemaining = i, target, remaining
				}
			}
		}
		if bestIndex >= 0 {
			return domain.Action{
				Type:  domain.ActionPlaceEnergy,
				Place: &domain.PlaceEnergyPayload{EnergyCardIndex: bestIndex, TargetSituation: bestTarget},
			}, nil
		}
		return domain.Action{
			Type:    domain.ActionDiscardEnergy,
			Discard: &domain.DiscardEnergyPayload{EnergyCardIndex: leastUseful(game, role)},
		}, nil

	case domain.PhaseWaitingEffect:
		return domain.Action{
			Type:   domain.ActionApplyEffect,
			Effect: &domain.ApplyEffectPayload{TargetPlayer: role.Opponent()},
		}, nil

	case domain.PhaseWaitingReplacement:
		// Prefer the hand card whose requirements overlap most with the
		// energies currently held.
		held := make(map[string]int, len(player.HandEnergyCards))
		for _, e := range player.HandEnergyCards {
			held[e.ID]++
		}
		index, bestOverlap := 0, -1
		for i, card := range player.HandSituationCards {
			overlap := 0
			for _, e := range card.RequiredEnergies {
				if held[e.ID] > 0 {
					overlap++
				}
			}
			if overlap > bestOverlap {
				index, bestOverlap = i, overlap
			}
		}
		return domain.Action{
			Type:    domain.ActionReplaceSituation,
			Replace: &domain.ReplaceSituationPayload{SituationType: replacementFor(game), NewSituationCardIndex: index},
		}, nil

	default:
		return domain.Action{}, domain.ErrWrongPhase
	}
}
