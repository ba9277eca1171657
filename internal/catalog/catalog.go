package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"catalyst/internal/domain"
)

// EnergyDef is a catalog energy entry. Copies controls how many physical
// cards the energy contributes to the match deck.
type EnergyDef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Quota      int    `json:"quota"`
	FrontImage string `json:"frontImage"`
	BackImage  string `json:"backImage"`
	Picto      string `json:"picto"`
	Copies     int    `json:"copies"`
}

// EffectDef is a catalog effect entry.
type EffectDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Points      int    `json:"points"`
	Slug        string `json:"slug"`
}

// SituationDef is a catalog situation card entry, referencing its effect and
// required energies by id (repeated ids express duplicate requirements).
type SituationDef struct {
	ID                string   `json:"id"`
	EffectID          string   `json:"effectId"`
	Quota             int      `json:"quota"`
	RequiredEnergyIDs []string `json:"requiredEnergyIds"`
	FrontImage        string   `json:"frontImage"`
	BackImage         string   `json:"backImage"`
}

// Catalog is the full content set a match is dealt from. Entries are
// immutable once loaded; decks are built from by-value copies.
type Catalog struct {
	Energies   []EnergyDef    `json:"energies"`
	Effects    []EffectDef    `json:"effects"`
	Situations []SituationDef `json:"situations"`
}

var (
	loaded   *Catalog
	loadOnce sync.Once
	loadErr  error
)

// Load reads and validates the shared catalog from the given path. The file
// is read once per process; later calls return the first result.
func Load(path string) (*Catalog, error) {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read catalog: %w", err)
			return
		}

		var c Catalog
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal catalog: %w", err)
			return
		}
		if err := c.Validate(); err != nil {
			loadErr = err
			return
		}
		loaded = &c
	})
	return loaded, loadErr
}

// Validate checks the catalog's internal references and invariants.
func (c *Catalog) Validate() error {
	energies := make(map[string]bool, len(c.Energies))
	for _, e := range c.Energies {
		if e.ID == "" {
			return fmt.Errorf("energy %q has no id", e.Name)
		}
		if energies[e.ID] {
			return fmt.Errorf("duplicate energy id %q", e.ID)
		}
		energies[e.ID] = true
	}

	effects := make(map[string]bool, len(c.Effects))
	for _, e := range c.Effects {
		if effects[e.ID] {
			return fmt.Errorf("duplicate effect id %q", e.ID)
		}
		effects[e.ID] = true
	}

	for _, s := range c.Situations {
		if len(s.RequiredEnergyIDs) != domain.RequiredEnergyCount {
			return fmt.Errorf("situation %q requires %d energies, want %d", s.ID, len(s.RequiredEnergyIDs), domain.RequiredEnergyCount)
		}
		if !effects[s.EffectID] {
			return fmt.Errorf("situation %q references unknown effect %q", s.ID, s.EffectID)
		}
		if s.Quota <= 0 {
			return fmt.Errorf("situation %q has non-positive quota %d", s.ID, s.Quota)
		}
		for _, id := range s.RequiredEnergyIDs {
			if !energies[id] {
				return fmt.Errorf("situation %q references unknown energy %q", s.ID, id)
			}
		}
	}
	return nil
}

// BuildEnergyDeck materializes the energy draw pile: Copies per entry
// (minimum one), each copy carrying a fresh instance id.
func (c *Catalog) BuildEnergyDeck() []domain.Energy {
	var deck []domain.Energy
	for _, def := range c.Energies {
		copies := def.Copies
		if copies < 1 {
			copies = 1
		}
		for i := 0; i < copies; i++ {
			deck = append(deck, c.newEnergy(def.ID))
		}
	}
	return deck
}

// BuildSituationDeck materializes one situation card per catalog entry, with
// effect and required energies resolved to by-value copies.
func (c *Catalog) BuildSituationDeck() []domain.SituationCardWithEnergies {
	effects := make(map[string]EffectDef, len(c.Effects))
	for _, e := range c.Effects {
		effects[e.ID] = e
	}

	var deck []domain.SituationCardWithEnergies
	for _, def := range c.Situations {
		effect := effects[def.EffectID]
		required := make([]domain.Energy, 0, len(def.RequiredEnergyIDs))
		for _, id := range def.RequiredEnergyIDs {
			required = append(required, c.newEnergy(id))
		}
		deck = append(deck, domain.SituationCardWithEnergies{
			Card: domain.SituationCard{
				ID:         def.ID,
				EffectID:   def.EffectID,
				FrontImage: def.FrontImage,
				BackImage:  def.BackImage,
			},
			Effect: domain.Effect{
				ID:          effect.ID,
				Name:        effect.Name,
				Description: effect.Description,
				Type:        effect.Type,
				Points:      effect.Points,
				Slug:        effect.Slug,
			},
			RequiredEnergies: required,
			Quota:            def.Quota,
		})
	}
	return deck
}

func (c *Catalog) newEnergy(id string) domain.Energy {
	for _, def := range c.Energies {
		if def.ID == id {
			return domain.Energy{
				InstanceID: uuid.NewString(),
				ID:         def.ID,
				Name:       def.Name,
				Color:      def.Color,
				Quota:      def.Quota,
				FrontImage: def.FrontImage,
				BackImage:  def.BackImage,
				Picto:      def.Picto,
			}
		}
	}
	return domain.Energy{InstanceID: uuid.NewString(), ID: id}
}
