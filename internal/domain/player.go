package domain

// EnergyHandLimit is the maximum number of energy cards a player may hold.
const EnergyHandLimit = 3

// PlayerState holds the per-player half of a match. It is owned exclusively
// by the match state machine and mutated only through validated actions.
type PlayerState struct {
	UserID               string
	Username             string
	HandSituationCards   []SituationCardWithEnergies
	HandEnergyCards      []Energy
	Points               int
	FirstToReceivePoints bool
	PrivateSituation     *PlayedSituationCard
}

// AddEnergy appends an energy to the player's hand.
func (p *PlayerState) AddEnergy(e Energy) error {
	if len(p.HandEnergyCards) >= EnergyHandLimit {
		return ErrHandFull
	}
	p.HandEnergyCards = append(p.HandEnergyCards, e)
	return nil
}

// EnergyAt resolves a protocol hand index to the energy occupying it.
func (p *PlayerState) EnergyAt(index int) (Energy, error) {
	if index < 0 || index >= len(p.HandEnergyCards) {
		return Energy{}, ErrInvalidCardIndex
	}
	return p.HandEnergyCards[index], nil
}

// RemoveEnergyAt removes a hand energy addressed by protocol index. The index
// is translated to the card's stable instance id first, so the removal is
// unambiguous even if callers hold stale views of the hand.
func (p *PlayerState) RemoveEnergyAt(index int) (Energy, error) {
	card, err := p.EnergyAt(index)
	if err != nil {
		return Energy{}, err
	}
	return p.removeEnergyByInstance(card.InstanceID)
}

func (p *PlayerState) removeEnergyByInstance(instanceID string) (Energy, error) {
	for i, e := range p.HandEnergyCards {
		if e.InstanceID == instanceID {
			p.HandEnergyCards = append(p.HandEnergyCards[:i], p.HandEnergyCards[i+1:]...)
			return e, nil
		}
	}
	return Energy{}, ErrInvalidCardIndex
}

// SituationAt resolves a protocol hand index to a situation card.
func (p *PlayerState) SituationAt(index int) (SituationCardWithEnergies, error) {
	if index < 0 || index >= len(p.HandSituationCards) {
		return SituationCardWithEnergies{}, ErrInvalidCardIndex
	}
	return p.HandSituationCards[index], nil
}

// RemoveSituationAt removes and returns the situation card at the given hand index.
func (p *PlayerState) RemoveSituationAt(index int) (SituationCardWithEnergies, error) {
	card, err := p.SituationAt(index)
	if err != nil {
		return SituationCardWithEnergies{}, err
	}
	p.HandSituationCards = append(p.HandSituationCards[:index], p.HandSituationCards[index+1:]...)
	return card, nil
}

// AddPoints adjusts the player's accumulated effect points.
func (p *PlayerState) AddPoints(n int) {
	p.Points += n
}
