package catalog

import "fmt"

// Default returns a small built-in catalog for local simulation and matches
// running without a catalog data file: five energy colors with enough copies
// to keep the draw pile alive, three effects, and ten situations.
func Default() *Catalog {
	energies := []EnergyDef{
		{ID: "nrj-solar", Name: "Solaire", Color: "#f5a623", Quota: 1, Copies: 8},
		{ID: "nrj-wind", Name: "Éolien", Color: "#4a90d9", Quota: 1, Copies: 8},
		{ID: "nrj-hydro", Name: "Hydraulique", Color: "#2bb3c0", Quota: 1, Copies: 8},
		{ID: "nrj-bio", Name: "Biomasse", Color: "#5cb85c", Quota: 1, Copies: 8},
		{ID: "nrj-geo", Name: "Géothermie", Color: "#b0413e", Quota: 1, Copies: 8},
	}
	effects := []EffectDef{
		{ID: "eff-points", Name: "Prime", Description: "Crédite des points au joueur ciblé.", Type: "points", Points: 3, Slug: "prime"},
		{ID: "eff-malus", Name: "Pénalité", Description: "Retire des points au joueur ciblé.", Type: "malus", Points: 2, Slug: "penalite"},
		{ID: "eff-bonus", Name: "Élan", Description: "Petit bonus de points.", Type: "bonus", Points: 1, Slug: "elan"},
	}

	ids := []string{"nrj-solar", "nrj-wind", "nrj-hydro", "nrj-bio", "nrj-geo"}
	var situations []SituationDef
	for i := 0; i < 10; i++ {
		required := make([]string, 0, 5)
		for j := 0; j < 5; j++ {
			required = append(required, ids[(i+j)%len(ids)])
		}
		// Every third situation doubles one requirement to exercise
		// duplicate-count matching.
		if i%3 == 0 {
			required[4] = required[0]
		}
		situations = append(situations, SituationDef{
			ID:                fmt.Sprintf("sit-%02d", i+1),
			EffectID:          effects[i%len(effects)].ID,
			Quota:             5 + i%4*5,
			RequiredEnergyIDs: required,
		})
	}

	return &Catalog{Energies: energies, Effects: effects, Situations: situations}
}
