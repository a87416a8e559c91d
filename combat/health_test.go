package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthDamageScenario(t *testing.T) {
	h := NewHealth(HealthConfig{Max: 100, InvulnerabilityDuration: 0.5, FlashInterval: 0.1})

	steps := []struct {
		name    string
		advance float64
		damage  float64
		applied bool
		want    float64
	}{
		{"first hit", 0, 30, true, 70},
		{"ignored during window", 0.2, 30, false, 70},
		{"window over", 0.3, 30, true, 40},
		{"third hit", 0.5, 30, true, 10},
	}
	for _, s := range steps {
		for elapsed := 0.0; elapsed < s.advance-1e-9; elapsed += 0.1 {
			h.Tick(0.1)
		}
		assert.Equal(t, s.applied, h.TakeDamage(s.damage), s.name)
		assert.InDelta(t, s.want, h.Current(), 1e-9, s.name)
	}
	assert.False(t, h.IsDead())
}

func TestHealthDeathFiresOnce(t *testing.T) {
	h := NewHealth(HealthConfig{Max: 10})
	deaths := 0
	h.OnDeath(func(*Health) { deaths++ })

	require.True(t, h.TakeDamage(25))
	assert.True(t, h.IsDead())
	assert.Zero(t, h.Current())
	assert.False(t, h.TakeDamage(5))
	assert.Equal(t, 1, deaths)

	h.Heal(5)
	assert.Zero(t, h.Current(), "dead pools do not heal")

	h.Revive()
	assert.Equal(t, 10.0, h.Current())
	require.True(t, h.TakeDamage(10))
	assert.Equal(t, 2, deaths)
}

func TestHealthRejectsNonPositiveDamage(t *testing.T) {
	h := NewHealth(HealthConfig{Max: 10, InvulnerabilityDuration: 1})
	for _, amount := range []float64{0, -5} {
		assert.False(t, h.TakeDamage(amount))
	}
	assert.Equal(t, 10.0, h.Current())
	assert.False(t, h.IsInvulnerable(), "rejected damage opens no window")
}

func TestHealthNeverExceedsMax(t *testing.T) {
	h := NewHealth(HealthConfig{Max: 20})
	h.Heal(50)
	assert.Equal(t, 20.0, h.Current())
	h.TakeDamage(5)
	h.Heal(2)
	assert.Equal(t, 17.0, h.Current())
	h.SetCurrent(99)
	assert.Equal(t, 20.0, h.Current())
}

func TestHealthFlashCadence(t *testing.T) {
	h := NewHealth(HealthConfig{Max: 10, InvulnerabilityDuration: 0.6, FlashInterval: 0.2})
	starts, ends := 0, 0
	h.OnIFrameStart = func(*Health) { starts++ }
	h.OnIFrameEnd = func(*Health) { ends++ }

	require.True(t, h.TakeDamage(1))
	assert.True(t, h.IsFlashing())

	var seen []bool
	for i := 0; i < 6; i++ {
		h.Tick(0.1)
		seen = append(seen, h.IsFlashing())
	}
	assert.Equal(t, []bool{true, false, false, true, true, false}, seen)
	assert.False(t, h.IsInvulnerable())
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, ends)
}

func TestHealthInvulnerableHolds(t *testing.T) {
	h := NewHealth(HealthConfig{Max: 10})
	h.HoldInvulnerable()
	h.HoldInvulnerable()
	assert.False(t, h.TakeDamage(3))
	h.ReleaseInvulnerable()
	assert.True(t, h.IsInvulnerable())
	h.ReleaseInvulnerable()
	h.ReleaseInvulnerable()
	assert.False(t, h.IsInvulnerable())
	assert.True(t, h.TakeDamage(3))
}
