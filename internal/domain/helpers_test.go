package domain

import (
	"fmt"
	"math/rand"
)

var instanceSeq int

// testEnergy builds a catalog energy with a unique instance id.
func testEnergy(id string) Energy {
	instanceSeq++
	return Energy{
		InstanceID: fmt.Sprintf("%s-inst-%d", id, instanceSeq),
		ID:         id,
		Name:       id,
		Quota:      1,
	}
}

func testEnergies(ids ...string) []Energy {
	out := make([]Energy, 0, len(ids))
	for _, id := range ids {
		out = append(out, testEnergy(id))
	}
	return out
}

// testSituation builds a situation card requiring the given five energy ids.
func testSituation(id string, quota int, required ...string) SituationCardWithEnergies {
	return SituationCardWithEnergies{
		Card:             SituationCard{ID: id, EffectID: "eff-" + id},
		Effect:           Effect{ID: "eff-" + id, Type: EffectTypePoints, Points: 3},
		RequiredEnergies: testEnergies(required...),
		Quota:            quota,
	}
}

// testGame builds a two-player game mid-match: both private slots and the
// common slot are occupied, decks are stocked, and player1 is to draw.
func testGame() *Game {
	rng := rand.New(rand.NewSource(7))

	situations := []SituationCardWithEnergies{
		testSituation("sit-spare-1", 5, "a", "b", "c", "d", "e"),
		testSituation("sit-spare-2", 10, "a", "a", "b", "c", "d"),
	}
	energies := testEnergies("a", "b", "c", "d", "e", "a", "b", "c", "d", "e")

	g := &Game{
		RoomID:        "room-test",
		Player1:       &PlayerState{UserID: "user-1", Username: "One"},
		Player2:       &PlayerState{UserID: "user-2", Username: "Two"},
		SituationDeck: NewDeck(situations, false, rng),
		EnergyDeck:    NewDeck(energies, true, rng),
		CurrentTurn:   1,
		MaxTurns:      20,
		CurrentPlayer: RolePlayer1,
		Phase:         PhaseDrawingEnergy,
	}
	g.Player1.PrivateSituation = &PlayedSituationCard{
		SituationCard: testSituation("sit-p1", 10, "a", "b", "c", "d", "e"),
		PlayedBy:      RolePlayer1,
	}
	g.Player2.PrivateSituation = &PlayedSituationCard{
		SituationCard: testSituation("sit-p2", 15, "a", "a", "b", "b", "c"),
		PlayedBy:      RolePlayer2,
	}
	g.CommonSituation = &PlayedSituationCard{
		SituationCard: testSituation("sit-common", 20, "c", "c", "d", "d", "e"),
	}
	return g
}

// fillHand tops the player's energy hand up to the limit.
func fillHand(p *PlayerState) {
	for len(p.HandEnergyCards) < EnergyHandLimit {
		p.HandEnergyCards = append(p.HandEnergyCards, testEnergy("filler"))
	}
}
