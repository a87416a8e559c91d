package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/dungeondash/common"
)

type dashRig struct {
	dash     *Dash
	health   *Health
	collider *fakeCollider
	space    *fakeSpace
	progress *Progression
	cues     *recordingCues
}

func testDashConfig() DashConfig {
	return DashConfig{
		Speed:        10,
		Duration:     0.3,
		Cooldown:     1,
		StartDelay:   0.1,
		Damage:       50,
		DamageRadius: 0.5,
		Target:       CategoryEnemy,
	}
}

func newDashRig(t *testing.T, cfg DashConfig) *dashRig {
	t.Helper()
	r := &dashRig{
		health:   NewHealth(HealthConfig{Max: 100, InvulnerabilityDuration: 1}),
		collider: &fakeCollider{cat: CategoryPlayer},
		space:    &fakeSpace{},
		progress: &Progression{DashUnlocked: true},
		cues:     &recordingCues{},
	}
	d, err := NewDash(1, cfg, DashDeps{Health: r.health, Collider: r.collider, Query: r.space, Progress: r.progress, Cues: r.cues})
	require.NoError(t, err)
	r.dash = d
	return r
}

// run drives the dash like the systems do: move by the dash velocity, then tick.
func (r *dashRig) run(pos common.Vec2, dt float64, ticks int) common.Vec2 {
	for i := 0; i < ticks; i++ {
		pos = pos.Add(r.dash.Velocity().Scale(dt))
		r.dash.Tick(dt, pos)
	}
	return pos
}

func TestDashRequiresCollaborators(t *testing.T) {
	_, err := NewDash(1, testDashConfig(), DashDeps{})
	assert.ErrorIs(t, err, ErrMissingCollaborator)
}

func TestDashLifecycle(t *testing.T) {
	r := newDashRig(t, testDashConfig())
	require.True(t, r.dash.TryDash(common.V(2, 0), common.Vec2{}))

	assert.True(t, r.dash.IsDashing())
	assert.True(t, r.health.IsInvulnerable())
	assert.Equal(t, CategoryDashing, r.collider.cat)
	assert.True(t, r.dash.Velocity().IsZero(), "no motion during the start delay")
	assert.Equal(t, []cueCall{{kind: "play", name: CueDash}}, r.cues.calls)

	pos := r.run(common.Vec2{}, 0.1, 1)
	assert.InDelta(t, 10.0, r.dash.Velocity().X, 1e-9)
	assert.False(t, r.health.TakeDamage(10))

	pos = r.run(pos, 0.1, 3)
	assert.False(t, r.dash.IsDashing())
	assert.InDelta(t, 3.0, pos.X, 1e-9)
	assert.Equal(t, CategoryPlayer, r.collider.cat)
	assert.False(t, r.health.IsInvulnerable())
	assert.True(t, r.dash.Velocity().IsZero())
	assert.InDelta(t, 1.0, r.dash.CooldownRemaining(), 1e-9)
}

func TestDashHitsEachTargetOnce(t *testing.T) {
	cfg := testDashConfig()
	cfg.Duration = 0.6
	r := newDashRig(t, cfg)
	enemy := NewHealth(HealthConfig{Max: 200})
	other := NewHealth(HealthConfig{Max: 200})
	r.space.add(10, common.V(1.5, 0), CategoryEnemy, enemy)
	r.space.add(11, common.V(2.5, 0.3), CategoryEnemy, other)
	r.space.add(12, common.V(1.5, 0), CategoryNeutral, NewHealth(HealthConfig{Max: 1}))

	require.True(t, r.dash.TryDash(common.V(1, 0), common.Vec2{}))
	pos := r.run(common.Vec2{}, 0.1, 4)

	// Park on top of the first enemy for the rest of the dash.
	r.space.bodies[0].pos = pos
	r.run(pos, 0.1, 2)
	require.True(t, r.dash.IsDashing())

	assert.Equal(t, 150.0, enemy.Current())
	assert.Equal(t, 150.0, other.Current())
	assert.Equal(t, 1.0, r.space.bodies[2].target.(*Health).Current())
	assert.Positive(t, r.space.casts)
}

func TestDashRejections(t *testing.T) {
	t.Run("locked", func(t *testing.T) {
		r := newDashRig(t, testDashConfig())
		r.progress.DashUnlocked = false
		assert.False(t, r.dash.TryDash(common.V(1, 0), common.Vec2{}))
		assert.Equal(t, CategoryPlayer, r.collider.cat)
	})
	t.Run("no direction", func(t *testing.T) {
		r := newDashRig(t, testDashConfig())
		assert.False(t, r.dash.TryDash(common.Vec2{}, common.Vec2{}))
		assert.False(t, r.health.IsInvulnerable())
	})
	t.Run("cooldown leaves state unchanged", func(t *testing.T) {
		r := newDashRig(t, testDashConfig())
		require.True(t, r.dash.TryDash(common.V(1, 0), common.Vec2{}))
		r.run(common.Vec2{}, 0.1, 4)
		require.False(t, r.dash.IsDashing())
		remaining := r.dash.CooldownRemaining()

		assert.False(t, r.dash.TryDash(common.V(0, 1), common.Vec2{}))
		assert.Equal(t, remaining, r.dash.CooldownRemaining())
		assert.Equal(t, CategoryPlayer, r.collider.cat)
		assert.False(t, r.health.IsInvulnerable())
		assert.Len(t, r.cues.calls, 1)

		r.run(common.Vec2{}, 0.1, 10)
		assert.True(t, r.dash.TryDash(common.V(0, 1), common.Vec2{}))
	})
	t.Run("while active", func(t *testing.T) {
		r := newDashRig(t, testDashConfig())
		require.True(t, r.dash.TryDash(common.V(1, 0), common.Vec2{}))
		assert.False(t, r.dash.TryDash(common.V(-1, 0), common.Vec2{}))
		assert.Equal(t, common.V(1, 0), r.dash.Direction())
	})
}

func TestDashAbortOnDeath(t *testing.T) {
	r := newDashRig(t, testDashConfig())
	require.True(t, r.dash.TryDash(common.V(1, 0), common.Vec2{}))
	r.run(common.Vec2{}, 0.1, 2)

	// Drop the dash hold so a lethal hit can land mid-dash.
	r.health.ReleaseInvulnerable()
	require.True(t, r.health.TakeDamage(1000))

	assert.False(t, r.dash.IsDashing())
	assert.Equal(t, CategoryPlayer, r.collider.cat)
	assert.False(t, r.health.IsInvulnerable())
	assert.True(t, r.dash.Velocity().IsZero())
	assert.InDelta(t, 1.0, r.dash.CooldownRemaining(), 1e-9)
}

func TestDashZeroDelayMovesImmediately(t *testing.T) {
	cfg := testDashConfig()
	cfg.StartDelay = 0
	r := newDashRig(t, cfg)
	require.True(t, r.dash.TryDash(common.V(0, -3), common.Vec2{}))
	assert.InDelta(t, -10.0, r.dash.Velocity().Y, 1e-9)
}
