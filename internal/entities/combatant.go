// Package entities provides core data structures for the initiative tracker.
package entities

import (
	"sort"
	"time"
)

// CharacterType distinguishes player characters from NPC instances
type CharacterType string

const (
	CharacterTypePlayer CharacterType = "player"
	CharacterTypeNPC    CharacterType = "npc"
)

// Valid reports whether t is a known character type
func (t CharacterType) Valid() bool {
	return t == CharacterTypePlayer || t == CharacterTypeNPC
}

// Combatant is one participant in a campaign's active turn order
type Combatant struct {
	ID                string        `json:"id"`
	CampaignID        string        `json:"campaign_id"`
	Name              string        `json:"name"`
	InitiativeValue   int32         `json:"initiative_value"`
	Position          int32         `json:"position"`
	CurrentHP         int32         `json:"current_hp"` // not clamped to [0, MaxHP]
	MaxHP             int32         `json:"max_hp"`
	ArmorClass        int32         `json:"armor_class"`
	Notes             string        `json:"notes,omitempty"`
	CharacterType     CharacterType `json:"character_type"`
	SourceCharacterID string        `json:"source_character_id,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`

	// Statuses is joined in memory after load and never persisted with the row
	Statuses []*StatusAnnotation `json:"-"`
}

// GetID returns the combatant's ID
func (c *Combatant) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *Combatant) GetType() string {
	return "combatant"
}

// SortForDisplay orders combatants by initiative descending, then position
// ascending. Equal keys keep their incoming (storage) order.
func SortForDisplay(combatants []*Combatant) {
	sort.SliceStable(combatants, func(i, j int) bool {
		a, b := combatants[i], combatants[j]
		if a.InitiativeValue != b.InitiativeValue {
			return a.InitiativeValue > b.InitiativeValue
		}
		return a.Position < b.Position
	})
}

// MaxPosition returns the highest position in the list, 0 when empty
func MaxPosition(combatants []*Combatant) int32 {
	var highest int32
	for _, c := range combatants {
		if c.Position > highest {
			highest = c.Position
		}
	}
	return highest
}
