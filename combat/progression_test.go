package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/dungeondash/common"
)

func TestProgressionCaps(t *testing.T) {
	var p Progression
	for i := 0; i < 5; i++ {
		p.AddFragment()
		p.AddPotion()
	}
	assert.Equal(t, MaxFragments, p.Fragments)
	assert.Equal(t, MaxPotions, p.Potions)
	assert.Equal(t, 2, p.Apply(AwardedLoot{Kind: ItemFragment, Quantity: 2}))
}

func TestProgressionKeysAndCoins(t *testing.T) {
	var p Progression
	assert.False(t, p.UseKey())
	p.AddKey()
	p.AddBossKey()
	assert.True(t, p.UseKey())
	assert.True(t, p.UseBossKey())
	assert.False(t, p.UseBossKey())

	p.AddCoins(10)
	assert.False(t, p.SpendCoins(11))
	assert.True(t, p.SpendCoins(4))
	assert.Equal(t, 6, p.Coins)

	assert.True(t, p.SetCheckpoint(2, 3))
	assert.False(t, p.SetCheckpoint(3, 3))
	assert.Equal(t, 2, p.Checkpoint)

	p.Apply(AwardedLoot{Kind: ItemDash, Quantity: 1})
	assert.True(t, p.DashUnlocked)
	p.Reset()
	assert.Equal(t, Progression{}, p)
}

func TestContactDamageRateAndKnockback(t *testing.T) {
	c := ContactDamage{Config: ContactConfig{Damage: 5, Rate: 1, KnockbackForce: 8, KnockbackDuration: 0.2}}
	h := NewHealth(HealthConfig{Max: 20})
	var kb Knockback

	assert.True(t, c.Touch(h, &kb, common.V(0, 0), common.V(2, 0)))
	assert.Equal(t, 15.0, h.Current())
	assert.Equal(t, common.V(8, 0), kb.Velocity())

	assert.False(t, c.Touch(h, &kb, common.V(0, 0), common.V(2, 0)), "rate limited")
	for i := 0; i < 10; i++ {
		c.Tick(0.1)
		kb.Tick(0.1)
	}
	assert.False(t, kb.Active())
	assert.True(t, kb.Velocity().IsZero())
	assert.True(t, c.Touch(h, &kb, common.V(0, 0), common.V(0, -1)))
	assert.Equal(t, 10.0, h.Current())
}
