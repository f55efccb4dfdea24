package encounter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/initiative/internal/game/encounter"
)

func TestModifier(t *testing.T) {
	cases := map[int]int{1: -5, 8: -1, 9: -1, 10: 0, 11: 0, 12: 1, 20: 5}
	for score, want := range cases {
		assert.Equal(t, want, encounter.Modifier(score), "score=%d", score)
	}
	assert.Equal(t, "+2", encounter.ModifierString(14))
	assert.Equal(t, "-1", encounter.ModifierString(9))
	assert.Equal(t, "+0", encounter.ModifierString(10))
}

func TestCR(t *testing.T) {
	assert.Equal(t, 0.125, encounter.CRValue(1))
	assert.Equal(t, 0.5, encounter.CRValue(3))
	assert.Equal(t, 1.0, encounter.CRValue(4))
	assert.Equal(t, "¼", encounter.CRString(2))
	assert.Equal(t, "17", encounter.CRString(20))
}

func TestPlayer_TotalLevel(t *testing.T) {
	p := &encounter.Player{Classes: []encounter.Class{{Name: "fighter", Level: 3}, {Name: "rogue", Level: 2}}}
	assert.Equal(t, 5, p.TotalLevel())
}

func TestMonster_LegendaryActionsRemaining(t *testing.T) {
	m := &encounter.Monster{LegendaryActions: []bool{true, false, true}, LegendaryActionCount: 3}
	assert.Equal(t, 2, m.LegendaryActionsRemaining())
}

func TestParticipantAccessors(t *testing.T) {
	lair := &encounter.Lair{Name: "Lair"}
	assert.Equal(t, "Lair", encounter.Name(lair))
	assert.Equal(t, 20, encounter.Initiative(lair))
	assert.Less(t, encounter.Tiebreaker(lair), encounter.Tiebreaker(&encounter.Player{Tiebreaker: -5}))
}

func TestDamage_Effective(t *testing.T) {
	assert.Equal(t, 5, encounter.Damage{Type: encounter.DamageHalf, Amount: 11}.Effective())
	assert.Equal(t, 22, encounter.Damage{Type: encounter.DamageDouble, Amount: 11}.Effective())
	assert.Equal(t, 11, encounter.Damage{Type: encounter.DamageNormal, Amount: 11}.Effective())
	assert.NoError(t, encounter.Damage{Type: encounter.DamageKill}.Validate())
	assert.Error(t, encounter.Damage{Type: "smite", Amount: 1}.Validate())
	assert.Error(t, encounter.Healing{Type: encounter.HealingHeal, Amount: -1}.Validate())
}
