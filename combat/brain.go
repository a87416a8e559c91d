package combat

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/milk9111/dungeondash/common"
)

// BrainState is the behaviour state of an EnemyBrain.
type BrainState int

const (
	BrainIdle BrainState = iota
	BrainChasing
	BrainAttacking
	BrainWandering
)

func (s BrainState) String() string {
	switch s {
	case BrainIdle:
		return "idle"
	case BrainChasing:
		return "chasing"
	case BrainAttacking:
		return "attacking"
	case BrainWandering:
		return "wandering"
	default:
		return fmt.Sprintf("BrainState(%d)", int(s))
	}
}

// BrainConfig holds the tuning for one enemy archetype.
type BrainConfig struct {
	DetectionRange     float64 `yaml:"detection_range"`
	AttackRange        float64 `yaml:"attack_range"`
	MoveSpeed          float64 `yaml:"move_speed"`
	CanWander          bool    `yaml:"can_wander"`
	WanderRange        float64 `yaml:"wander_range"`
	MinWanderTime      float64 `yaml:"min_wander_time"`
	MaxWanderTime      float64 `yaml:"max_wander_time"`
	WanderSpeedFactor  float64 `yaml:"wander_speed_factor"`
	MinPause           float64 `yaml:"min_pause"`
	MaxPause           float64 `yaml:"max_pause"`
	ArrivalTolerance   float64 `yaml:"arrival_tolerance"`
	ReacquireGraceTime float64 `yaml:"reacquire_grace_time"`
}

func (c BrainConfig) withDefaults() BrainConfig {
	if c.WanderSpeedFactor <= 0 {
		c.WanderSpeedFactor = 0.5
	}
	if c.ArrivalTolerance <= 0 {
		c.ArrivalTolerance = 0.1
	}
	if c.MinPause <= 0 && c.MaxPause <= 0 {
		c.MinPause, c.MaxPause = 0.5, 1.5
	}
	if c.MaxWanderTime < c.MinWanderTime {
		c.MinWanderTime, c.MaxWanderTime = c.MaxWanderTime, c.MinWanderTime
	}
	if c.MaxPause < c.MinPause {
		c.MinPause, c.MaxPause = c.MaxPause, c.MinPause
	}
	return c
}

// Striker is the part of an attack sequencer the brain drives.
type Striker interface {
	CanStrike() bool
	TryStrike() bool
}

// Intent is what the brain wants its body to do this tick.
type Intent struct {
	Velocity common.Vec2
	Facing   common.Vec2
	Struck   bool
}

type wanderLeg struct {
	active  bool
	pausing bool
	target  common.Vec2
	move    Timer
	pause   Timer
}

// EnemyBrain decides chase, attack, idle and wander each tick from the
// distance to the current target. Rules are evaluated in priority order:
// attack range, then detection range, then the reacquire grace period after
// losing a target, then wandering.
type EnemyBrain struct {
	cfg     BrainConfig
	owner   EntityID
	striker Striker
	rng     *rand.Rand
	cues    CueSink

	state           BrainState
	tracking        bool
	lostTargetTimer float64
	wander          wanderLeg
	velocity        common.Vec2
	facing          common.Vec2
	moving          bool
	speedScale      float64

	OnStateChange func(from, to BrainState)
}

func NewEnemyBrain(owner EntityID, cfg BrainConfig, striker Striker, rng *rand.Rand, cues CueSink) (*EnemyBrain, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: enemy brain needs a random source", ErrMissingCollaborator)
	}
	return &EnemyBrain{
		cfg:        cfg.withDefaults(),
		owner:      owner,
		striker:    striker,
		rng:        rng,
		cues:       cuesOrNop(cues),
		facing:     common.V(1, 0),
		speedScale: 1,
	}, nil
}

// Update runs one decision tick. hasTarget is false when no live target
// exists. A nil striker turns the attacking state into a stand-still.
func (b *EnemyBrain) Update(dt float64, self, target common.Vec2, hasTarget bool) Intent {
	dist := math.Inf(1)
	if hasTarget {
		dist = self.Dist(target)
	}

	var intent Intent
	switch {
	case hasTarget && dist <= b.cfg.AttackRange:
		b.acquire()
		b.setState(BrainAttacking)
		b.velocity = common.Vec2{}
		b.face(target.Sub(self))
		if b.striker != nil && b.striker.CanStrike() {
			intent.Struck = b.striker.TryStrike()
		}
	case hasTarget && dist <= b.cfg.DetectionRange:
		b.acquire()
		b.setState(BrainChasing)
		dir := target.Sub(self).Normalize()
		b.velocity = dir.Scale(b.cfg.MoveSpeed * b.speedScale)
		b.face(dir)
	case b.tracking:
		b.lostTargetTimer += dt
		b.velocity = common.Vec2{}
		if b.lostTargetTimer+timerEpsilon < b.cfg.ReacquireGraceTime {
			b.setState(BrainIdle)
			break
		}
		b.tracking = false
		b.lostTargetTimer = 0
		b.idleOrWander(dt, self)
	default:
		b.idleOrWander(dt, self)
	}

	b.updateMoveCue(self)
	intent.Velocity = b.velocity
	intent.Facing = b.facing
	return intent
}

func (b *EnemyBrain) acquire() {
	b.tracking = true
	b.lostTargetTimer = 0
	b.wander = wanderLeg{}
}

func (b *EnemyBrain) idleOrWander(dt float64, self common.Vec2) {
	if !b.cfg.CanWander {
		b.setState(BrainIdle)
		b.velocity = common.Vec2{}
		return
	}
	b.setState(BrainWandering)
	b.velocity = b.wanderStep(dt, self)
	if !b.velocity.IsZero() {
		b.face(b.velocity)
	}
}

func (b *EnemyBrain) wanderStep(dt float64, self common.Vec2) common.Vec2 {
	w := &b.wander
	if !w.active {
		w.active = true
		b.pickWanderTarget(self)
	}
	if w.pausing {
		if w.pause.IsActive() && !w.pause.Tick(dt) {
			return common.Vec2{}
		}
		b.pickWanderTarget(self)
	}
	to := w.target.Sub(self)
	if to.Len() <= b.cfg.ArrivalTolerance || !w.move.IsActive() {
		w.pausing = true
		w.pause.Start(b.between(b.cfg.MinPause, b.cfg.MaxPause))
		return common.Vec2{}
	}
	w.move.Tick(dt)
	return to.Normalize().Scale(b.cfg.MoveSpeed * b.cfg.WanderSpeedFactor * b.speedScale)
}

func (b *EnemyBrain) pickWanderTarget(self common.Vec2) {
	w := &b.wander
	dist := b.between(0.5*b.cfg.WanderRange, b.cfg.WanderRange)
	angle := b.rng.Float64() * 2 * math.Pi
	w.target = self.Add(common.V(math.Cos(angle), math.Sin(angle)).Scale(dist))
	w.pausing = false
	w.pause.Stop()
	w.move.Start(b.between(b.cfg.MinWanderTime, b.cfg.MaxWanderTime))
}

func (b *EnemyBrain) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + b.rng.Float64()*(hi-lo)
}

func (b *EnemyBrain) face(dir common.Vec2) {
	if n := dir.Normalize(); !n.IsZero() {
		b.facing = n
	}
}

func (b *EnemyBrain) setState(s BrainState) {
	if s == b.state {
		return
	}
	from := b.state
	b.state = s
	if s != BrainWandering {
		b.wander.active = false
	}
	if b.OnStateChange != nil {
		b.OnStateChange(from, s)
	}
}

func (b *EnemyBrain) updateMoveCue(self common.Vec2) {
	moving := !b.velocity.IsZero()
	if moving == b.moving {
		return
	}
	b.moving = moving
	if moving {
		b.cues.StartLoop(CueEnemyMove, b.owner, self)
	} else {
		b.cues.StopLoop(b.owner)
	}
}

// Halt stops all movement and silences the move loop. Used on death.
func (b *EnemyBrain) Halt() {
	if b == nil {
		return
	}
	b.velocity = common.Vec2{}
	b.wander = wanderLeg{}
	if b.moving {
		b.moving = false
		b.cues.StopLoop(b.owner)
	}
}

// SetSpeedScale multiplies chase and wander speed. Non-positive values reset it to 1.
func (b *EnemyBrain) SetSpeedScale(s float64) {
	if s <= 0 {
		s = 1
	}
	b.speedScale = s
}

func (b *EnemyBrain) State() BrainState { return b.state }
func (b *EnemyBrain) Velocity() common.Vec2 { return b.velocity }
func (b *EnemyBrain) Facing() common.Vec2 { return b.facing }
func (b *EnemyBrain) IsMoving() bool { return b.moving }
func (b *EnemyBrain) LostTargetTimer() float64 { return b.lostTargetTimer }
func (b *EnemyBrain) WanderTarget() common.Vec2 { return b.wander.target }
func (b *EnemyBrain) Config() BrainConfig { return b.cfg }
