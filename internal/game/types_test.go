package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceTurn_EffectExpiresExactlyAtZero(t *testing.T) {
	ci := NewCardInstance(vanillaCard("knight", 100, 100, 3), 1)
	ci.AddEffect(&CardEffect{Name: "Rage", Duration: 2, Kind: AbilityBuff, Magnitude: 10})
	ci.AddEffect(&CardEffect{Name: "Slow", Duration: 1, Kind: AbilityDebuff, Magnitude: 5})

	expired := ci.AdvanceTurn()
	require.Len(t, expired, 1)
	assert.Equal(t, "Slow", expired[0].Name)
	require.Len(t, ci.Effects, 1)
	assert.Equal(t, 1, ci.Effects[0].Duration)
	assert.Equal(t, 110, ci.CurrentAttack())

	expired = ci.AdvanceTurn()
	require.Len(t, expired, 1)
	assert.Equal(t, "Rage", expired[0].Name)
	assert.Empty(t, ci.Effects)
	assert.Equal(t, 100, ci.CurrentAttack())
}

func TestAdvanceTurn_CooldownNeverNegative(t *testing.T) {
	ci := NewCardInstance(vanillaCard("knight", 100, 100, 3), 1)
	ci.AdvanceTurn()
	assert.Equal(t, 0, ci.Cooldown)
}

func TestUpgrade(t *testing.T) {
	ci := NewCardInstance(Knight(), 1)

	assert.False(t, ci.Upgrade(), "no experience yet")

	ci.AddExperience(100)
	require.True(t, ci.Upgrade())
	assert.Equal(t, 2, ci.Level)
	assert.Equal(t, 0, ci.Experience)
	assert.Equal(t, 104, ci.BaseAttack)
	assert.Equal(t, 104, ci.BaseDefense)
	assert.Equal(t, 104, ci.Attack)

	// Level 2 needs 200.
	ci.AddExperience(150)
	assert.False(t, ci.Upgrade())
	ci.AddExperience(50)
	require.True(t, ci.Upgrade())
	assert.Equal(t, 3, ci.Level)
	assert.Equal(t, 110, ci.BaseAttack)
}

func TestClone_IsDeep(t *testing.T) {
	ci := NewCardInstance(Knight(), 1)
	ci.AddEffect(&CardEffect{Name: "Rage", Duration: 2, Kind: AbilityBuff, Magnitude: 10})

	c := ci.Clone()
	c.Defense = 1
	c.Cooldown = 3
	c.Effects[0].Duration = 99
	c.AddEffect(&CardEffect{Name: "Curse", Duration: 1, Kind: AbilityDebuff})

	assert.Equal(t, 100, ci.Defense)
	assert.Equal(t, 0, ci.Cooldown)
	require.Len(t, ci.Effects, 1)
	assert.Equal(t, 2, ci.Effects[0].Duration)
	assert.Same(t, ci.Card, c.Card, "definitions are shared, they are immutable")
}

func TestEnumsParse(t *testing.T) {
	r, err := ParseRarity("legendary")
	require.NoError(t, err)
	assert.Equal(t, RarityLegendary, r)

	ct, err := ParseCardType("Building")
	require.NoError(t, err)
	assert.Equal(t, CardTypeBuilding, ct)

	_, err = ParseRarity("Mythic")
	assert.Error(t, err)
}
