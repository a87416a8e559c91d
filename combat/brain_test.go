package combat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/dungeondash/common"
)

// testRNG returns a seeded RNG for deterministic tests
func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

type countingStriker struct {
	ready   bool
	strikes int
}

func (s *countingStriker) CanStrike() bool { return s.ready }

func (s *countingStriker) TryStrike() bool {
	if !s.ready {
		return false
	}
	s.strikes++
	return true
}

func testBrainConfig() BrainConfig {
	return BrainConfig{
		DetectionRange:     5,
		AttackRange:        1,
		MoveSpeed:          2,
		CanWander:          true,
		WanderRange:        3,
		MinWanderTime:      1,
		MaxWanderTime:      2,
		ReacquireGraceTime: 0.5,
	}
}

func newTestBrain(t *testing.T, cfg BrainConfig, striker Striker, cues CueSink) *EnemyBrain {
	t.Helper()
	b, err := NewEnemyBrain(7, cfg, striker, testRNG(), cues)
	require.NoError(t, err)
	return b
}

func TestBrainDecisionPriority(t *testing.T) {
	cases := []struct {
		name   string
		target common.Vec2
		want   BrainState
		moving bool
		struck bool
	}{
		{"attack range wins", common.V(0.8, 0), BrainAttacking, false, true},
		{"attack range boundary", common.V(1, 0), BrainAttacking, false, true},
		{"chase inside detection", common.V(3, 0), BrainChasing, true, false},
		{"detection boundary", common.V(0, 5), BrainChasing, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			striker := &countingStriker{ready: true}
			b := newTestBrain(t, testBrainConfig(), striker, nil)
			intent := b.Update(0.1, common.Vec2{}, c.target, true)
			assert.Equal(t, c.want, b.State())
			assert.Equal(t, c.moving, !intent.Velocity.IsZero())
			assert.Equal(t, c.struck, intent.Struck)
			assert.InDelta(t, 1.0, intent.Facing.Len(), 1e-9)
			if c.moving {
				assert.InDelta(t, 2.0, intent.Velocity.Len(), 1e-9)
			}
		})
	}
}

func TestBrainAttackWaitsForStriker(t *testing.T) {
	striker := &countingStriker{ready: false}
	b := newTestBrain(t, testBrainConfig(), striker, nil)
	intent := b.Update(0.1, common.Vec2{}, common.V(0.5, 0), true)
	assert.Equal(t, BrainAttacking, b.State())
	assert.False(t, intent.Struck)
	assert.True(t, intent.Velocity.IsZero())
	assert.Zero(t, striker.strikes)
}

func TestBrainGraceThenWander(t *testing.T) {
	b := newTestBrain(t, testBrainConfig(), &countingStriker{}, nil)
	b.Update(0.1, common.Vec2{}, common.V(3, 0), true)
	require.Equal(t, BrainChasing, b.State())

	far := common.V(50, 0)
	for i := 0; i < 4; i++ {
		intent := b.Update(0.1, common.Vec2{}, far, true)
		assert.Equal(t, BrainIdle, b.State(), "tick %d", i)
		assert.True(t, intent.Velocity.IsZero())
	}
	b.Update(0.1, common.Vec2{}, far, true)
	assert.Equal(t, BrainWandering, b.State())
	assert.Zero(t, b.LostTargetTimer())

	dist := b.WanderTarget().Len()
	assert.GreaterOrEqual(t, dist, 1.5)
	assert.LessOrEqual(t, dist, 3.0)
}

func TestBrainReacquireDuringGrace(t *testing.T) {
	b := newTestBrain(t, testBrainConfig(), &countingStriker{}, nil)
	b.Update(0.1, common.Vec2{}, common.V(3, 0), true)
	b.Update(0.1, common.Vec2{}, common.V(30, 0), true)
	assert.Equal(t, BrainIdle, b.State())
	b.Update(0.1, common.Vec2{}, common.V(3, 0), true)
	assert.Equal(t, BrainChasing, b.State())
	assert.Zero(t, b.LostTargetTimer())
}

func TestBrainWithoutTargetWandersAndNeverStrikes(t *testing.T) {
	striker := &countingStriker{ready: true}
	b := newTestBrain(t, testBrainConfig(), striker, nil)
	pos := common.Vec2{}
	moved := false
	for i := 0; i < 600; i++ {
		intent := b.Update(1.0/60, pos, common.Vec2{}, false)
		require.Equal(t, BrainWandering, b.State())
		if !intent.Velocity.IsZero() {
			moved = true
			assert.InDelta(t, 1.0, intent.Velocity.Len(), 1e-9, "wander runs at half speed")
		}
		pos = pos.Add(intent.Velocity.Scale(1.0 / 60))
	}
	assert.True(t, moved)
	assert.Zero(t, striker.strikes)
}

func TestBrainIdleWhenWanderDisabled(t *testing.T) {
	cfg := testBrainConfig()
	cfg.CanWander = false
	b := newTestBrain(t, cfg, nil, nil)
	intent := b.Update(0.1, common.Vec2{}, common.Vec2{}, false)
	assert.Equal(t, BrainIdle, b.State())
	assert.True(t, intent.Velocity.IsZero())

	intent = b.Update(0.1, common.Vec2{}, common.V(0.5, 0), true)
	assert.Equal(t, BrainAttacking, b.State())
	assert.False(t, intent.Struck, "nil striker never strikes")
}

func TestBrainMoveCue(t *testing.T) {
	cues := &recordingCues{}
	b := newTestBrain(t, testBrainConfig(), &countingStriker{}, cues)
	b.Update(0.1, common.Vec2{}, common.V(3, 0), true)
	b.Update(0.1, common.Vec2{}, common.V(3, 0), true)
	b.Update(0.1, common.Vec2{}, common.V(0.5, 0), true)
	assert.Equal(t, []cueCall{
		{kind: "start", name: CueEnemyMove, owner: 7},
		{kind: "stop", owner: 7},
	}, cues.calls)
}

func TestBrainStateChangeHook(t *testing.T) {
	b := newTestBrain(t, testBrainConfig(), &countingStriker{ready: true}, nil)
	var transitions []string
	b.OnStateChange = func(from, to BrainState) {
		transitions = append(transitions, from.String()+">"+to.String())
	}
	b.Update(0.1, common.Vec2{}, common.V(3, 0), true)
	b.Update(0.1, common.Vec2{}, common.V(0.5, 0), true)
	assert.Equal(t, []string{"idle>chasing", "chasing>attacking"}, transitions)
}

func TestBrainWanderInterruptedOnReentry(t *testing.T) {
	b := newTestBrain(t, testBrainConfig(), &countingStriker{}, nil)
	const step = 1.0 / 60
	pos := common.Vec2{}
	far := common.V(50, 0)
	for i := 0; i < 30; i++ {
		intent := b.Update(step, pos, far, true)
		require.Equal(t, BrainWandering, b.State(), "tick %d", i)
		pos = pos.Add(intent.Velocity.Scale(step))
	}

	target := pos.Add(common.V(3, 0))
	intent := b.Update(step, pos, target, true)
	assert.Equal(t, BrainChasing, b.State())
	assert.Zero(t, b.LostTargetTimer())
	assert.InDelta(t, 2.0, intent.Velocity.X, 1e-9, "full chase speed toward the target")
	assert.InDelta(t, 0.0, intent.Velocity.Y, 1e-9)
	assert.Equal(t, common.V(1, 0), intent.Facing)
}

func TestBrainWanderArrivesPausesAndPicksNewTarget(t *testing.T) {
	cfg := testBrainConfig()
	cfg.WanderRange = 1
	cfg.MinWanderTime, cfg.MaxWanderTime = 100, 100
	cfg.MinPause, cfg.MaxPause = 0.5, 0.5
	b := newTestBrain(t, cfg, &countingStriker{}, nil)

	const step = 1.0 / 60
	pos := common.Vec2{}
	intent := b.Update(step, pos, common.Vec2{}, false)
	require.False(t, intent.Velocity.IsZero())
	first := b.WanderTarget()
	tolerance := b.Config().ArrivalTolerance

	arrived := false
	for i := 0; i < 600; i++ {
		before := pos.Dist(first)
		pos = pos.Add(intent.Velocity.Scale(step))
		intent = b.Update(step, pos, common.Vec2{}, false)
		if intent.Velocity.IsZero() {
			assert.LessOrEqual(t, pos.Dist(first), tolerance+1e-9)
			assert.Greater(t, before, tolerance)
			arrived = true
			break
		}
		require.Equal(t, first, b.WanderTarget(), "target holds while the leg runs")
	}
	require.True(t, arrived, "wander leg should reach its target")

	paused := 1
	for intent.Velocity.IsZero() && paused < 600 {
		assert.Equal(t, BrainWandering, b.State())
		intent = b.Update(step, pos, common.Vec2{}, false)
		if intent.Velocity.IsZero() {
			paused++
		}
	}
	assert.InDelta(t, 0.5, float64(paused)*step, 2*step, "pause lasts the configured time")
	assert.NotEqual(t, first, b.WanderTarget())
	dist := pos.Dist(b.WanderTarget())
	assert.GreaterOrEqual(t, dist, 0.5-1e-9)
	assert.LessOrEqual(t, dist, 1.0+1e-9)
	assert.InDelta(t, 1.0, intent.Velocity.Len(), 1e-9)
}
