package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-initiative/internal/entities"
)

func names(combatants []*entities.Combatant) []string {
	out := make([]string, len(combatants))
	for i, c := range combatants {
		out[i] = c.Name
	}
	return out
}

func TestSortForDisplay(t *testing.T) {
	combatants := []*entities.Combatant{
		{Name: "Goblin 2", InitiativeValue: 12, Position: 3},
		{Name: "Rogue", InitiativeValue: 19, Position: 5},
		{Name: "Goblin 1", InitiativeValue: 12, Position: 2},
		{Name: "Cleric", InitiativeValue: -1, Position: 1},
	}

	entities.SortForDisplay(combatants)

	assert.Equal(t, []string{"Rogue", "Goblin 1", "Goblin 2", "Cleric"}, names(combatants))
}

func TestSortForDisplayKeepsTiedSet(t *testing.T) {
	// Full ties have no defined order; only membership is checked
	combatants := []*entities.Combatant{
		{Name: "A", InitiativeValue: 10, Position: 1},
		{Name: "B", InitiativeValue: 10, Position: 1},
		{Name: "C", InitiativeValue: 20, Position: 9},
	}

	entities.SortForDisplay(combatants)

	assert.Equal(t, "C", combatants[0].Name)
	assert.ElementsMatch(t, []string{"A", "B"}, names(combatants[1:]))
}

func TestMaxPosition(t *testing.T) {
	assert.Equal(t, int32(0), entities.MaxPosition(nil))
	assert.Equal(t, int32(7), entities.MaxPosition([]*entities.Combatant{{Position: 2}, {Position: 7}, {Position: 4}}))
}

func TestCombatantIsEntity(t *testing.T) {
	c := &entities.Combatant{ID: "cmb_1"}
	assert.Equal(t, "cmb_1", c.GetID())
	assert.Equal(t, "combatant", c.GetType())
	assert.True(t, entities.CharacterTypeNPC.Valid())
	assert.False(t, entities.CharacterType("monster").Valid())
}
