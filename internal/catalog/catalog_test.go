package catalog

import (
	"strings"
	"testing"

	"catalyst/internal/domain"
)

func validCatalog() *Catalog {
	return &Catalog{
		Energies: []EnergyDef{
			{ID: "a", Name: "A", Quota: 1, Copies: 2},
			{ID: "b", Name: "B", Quota: 1},
		},
		Effects: []EffectDef{
			{ID: "eff-1", Type: "points", Points: 3},
		},
		Situations: []SituationDef{
			{ID: "sit-1", EffectID: "eff-1", Quota: 10, RequiredEnergyIDs: []string{"a", "a", "b", "b", "a"}},
		},
	}
}

func TestCatalog_Validate(t *testing.T) {
	if err := validCatalog().Validate(); err != nil {
		t.Fatalf("Validate() on valid catalog: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Catalog)
		wantSub string
	}{
		{
			name:    "DuplicateEnergyID",
			mutate:  func(c *Catalog) { c.Energies = append(c.Energies, EnergyDef{ID: "a"}) },
			wantSub: "duplicate energy",
		},
		{
			name:    "MissingEnergyID",
			mutate:  func(c *Catalog) { c.Energies[0].ID = "" },
			wantSub: "no id",
		},
		{
			name:    "DuplicateEffectID",
			mutate:  func(c *Catalog) { c.Effects = append(c.Effects, EffectDef{ID: "eff-1"}) },
			wantSub: "duplicate effect",
		},
		{
			name: "WrongRequiredCount",
			mutate: func(c *Catalog) {
				c.Situations[0].RequiredEnergyIDs = []string{"a", "b"}
			},
			wantSub: "requires 2 energies",
		},
		{
			name:    "UnknownEffectRef",
			mutate:  func(c *Catalog) { c.Situations[0].EffectID = "eff-missing" },
			wantSub: "unknown effect",
		},
		{
			name: "UnknownEnergyRef",
			mutate: func(c *Catalog) {
				c.Situations[0].RequiredEnergyIDs = []string{"a", "a", "b", "b", "z"}
			},
			wantSub: "unknown energy",
		},
		{
			name:    "NonPositiveQuota",
			mutate:  func(c *Catalog) { c.Situations[0].Quota = 0 },
			wantSub: "non-positive quota",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := validCatalog()
			test.mutate(c)
			err := c.Validate()
			if err == nil {
				t.Fatal("Validate() succeeded, want error")
			}
			if !strings.Contains(err.Error(), test.wantSub) {
				t.Errorf("Validate() = %q, want substring %q", err, test.wantSub)
			}
		})
	}
}

func TestCatalog_BuildEnergyDeck(t *testing.T) {
	deck := validCatalog().BuildEnergyDeck()

	// 2 copies of "a", 1 of "b" (Copies defaults to 1).
	if len(deck) != 3 {
		t.Fatalf("deck size = %d, want 3", len(deck))
	}

	instances := map[string]bool{}
	counts := map[string]int{}
	for _, e := range deck {
		if e.InstanceID == "" {
			t.Error("energy without instance id")
		}
		if instances[e.InstanceID] {
			t.Errorf("duplicate instance id %s", e.InstanceID)
		}
		instances[e.InstanceID] = true
		counts[e.ID]++
	}
	if counts["a"] != 2 || counts["b"] != 1 {
		t.Errorf("copy counts = %v, want a:2 b:1", counts)
	}
}

func TestCatalog_BuildSituationDeck(t *testing.T) {
	deck := validCatalog().BuildSituationDeck()
	if len(deck) != 1 {
		t.Fatalf("deck size = %d, want 1", len(deck))
	}

	sit := deck[0]
	if sit.Card.ID != "sit-1" || sit.Quota != 10 {
		t.Errorf("card = %+v", sit.Card)
	}
	if sit.Effect.ID != "eff-1" || sit.Effect.Points != 3 {
		t.Errorf("effect not resolved: %+v", sit.Effect)
	}
	if len(sit.RequiredEnergies) != domain.RequiredEnergyCount {
		t.Fatalf("required energies = %d, want %d", len(sit.RequiredEnergies), domain.RequiredEnergyCount)
	}
	counts := map[string]int{}
	for _, e := range sit.RequiredEnergies {
		counts[e.ID]++
	}
	if counts["a"] != 3 || counts["b"] != 2 {
		t.Errorf("required counts = %v, want a:3 b:2", counts)
	}
}

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default() catalog invalid: %v", err)
	}

	// The built-in set must be able to deal a match: 9 situations and a
	// healthy energy pile.
	if len(c.Situations) < 9 {
		t.Errorf("situations = %d, want at least 9", len(c.Situations))
	}
	if deck := c.BuildEnergyDeck(); len(deck) < 10 {
		t.Errorf("energy deck = %d, want at least 10", len(deck))
	}
}
