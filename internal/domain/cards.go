package domain

// RequiredEnergyCount is the number of energies a situation card needs to be completed.
const RequiredEnergyCount = 5

// Energy is an atomic resource token placed onto situation cards.
// ID references the catalog entry; InstanceID identifies this physical copy
// for the lifetime of a match, so hand mutations never depend on slice order.
type Energy struct {
	InstanceID string
	ID         string
	Name       string
	Color      string
	Quota      int
	FrontImage string
	BackImage  string
	Picto      string
}

// Effect type identifiers as defined by the catalog.
const (
	EffectTypePoints  = "points"
	EffectTypeBonus   = "bonus"
	EffectTypeMalus   = "malus"
	EffectTypeSpecial = "special"
)

// Effect describes the consequence attached to a completed situation card.
type Effect struct {
	ID          string
	Name        string
	Description string
	Type        string
	Points      int
	Slug        string
}

// SituationCard is the bare catalog entry for a situation card.
type SituationCard struct {
	ID         string
	EffectID   string
	FrontImage string
	BackImage  string
}

// SituationCardWithEnergies joins a situation card with its effect, its
// exactly-5 required energies and its point quota.
type SituationCardWithEnergies struct {
	Card             SituationCard
	Effect           Effect
	RequiredEnergies []Energy
	Quota            int
}

// PlayedSituationCard is a situation card currently in play with 0..5
// energies attached to it.
type PlayedSituationCard struct {
	SituationCard  SituationCardWithEnergies
	PlacedEnergies []Energy
	PlayedBy       Role
}

// IsFull reports whether the situation already holds 5 energies.
func (p *PlayedSituationCard) IsFull() bool {
	return len(p.PlacedEnergies) >= RequiredEnergyCount
}

// SituationTarget identifies a placement target relative to the acting player.
type SituationTarget string

const (
	TargetCommon          SituationTarget = "common"
	TargetMyPrivate       SituationTarget = "my_private"
	TargetOpponentPrivate SituationTarget = "opponent_private"
)

// CompletedSituationType identifies which board slot a completion happened in,
// in absolute (seat) terms rather than relative to the acting player.
type CompletedSituationType string

const (
	CompletedCommon         CompletedSituationType = "common"
	CompletedPlayer1Private CompletedSituationType = "player1_private"
	CompletedPlayer2Private CompletedSituationType = "player2_private"
)
