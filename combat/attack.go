package combat

import (
	"fmt"

	"github.com/milk9111/dungeondash/common"
)

// AttackState is the phase of an AttackSequencer.
type AttackState int

const (
	AttackIdle AttackState = iota
	AttackStriking
	AttackCooling
)

func (s AttackState) String() string {
	switch s {
	case AttackIdle:
		return "idle"
	case AttackStriking:
		return "striking"
	case AttackCooling:
		return "cooling"
	default:
		return fmt.Sprintf("AttackState(%d)", int(s))
	}
}

// AttackConfig describes one melee strike.
type AttackConfig struct {
	Damage         float64  `yaml:"damage"`
	Radius         float64  `yaml:"radius"`
	Reach          float64  `yaml:"reach"`
	StrikeDuration float64  `yaml:"strike_duration"`
	Cooldown       float64  `yaml:"cooldown"`
	ImpactFraction float64  `yaml:"impact_fraction"`
	Target         Category `yaml:"-"`
}

// AttackSequencer runs Idle -> Striking -> Cooling -> Idle. The impact is
// resolved exactly once per strike, at ImpactFraction of the strike
// duration, and each target is hurt at most once per strike.
type AttackSequencer struct {
	cfg    AttackConfig
	owner  EntityID
	query  SpatialQuery
	Events *EventEmitter

	state    AttackState
	strike   Timer
	cool     Timer
	impacted bool
	hitSet   map[EntityID]struct{}
}

func NewAttackSequencer(owner EntityID, cfg AttackConfig, query SpatialQuery) (*AttackSequencer, error) {
	if query == nil {
		return nil, fmt.Errorf("%w: attack sequencer needs a spatial query", ErrMissingCollaborator)
	}
	cfg.ImpactFraction = common.Clamp(cfg.ImpactFraction, 0, 1)
	return &AttackSequencer{
		cfg:    cfg,
		owner:  owner,
		query:  query,
		hitSet: make(map[EntityID]struct{}),
	}, nil
}

func (a *AttackSequencer) CanStrike() bool { return a != nil && a.state == AttackIdle }

// TryStrike begins a strike when idle and reports whether it started.
func (a *AttackSequencer) TryStrike() bool {
	if !a.CanStrike() {
		return false
	}
	a.state = AttackStriking
	a.impacted = false
	clear(a.hitSet)
	a.strike.Start(a.cfg.StrikeDuration)
	a.Events.Emit(Event{Type: EventStrike, AttackerID: a.owner})
	return true
}

// Tick advances the sequencer. origin and facing locate the strike area;
// the return value is the number of targets damaged this tick.
func (a *AttackSequencer) Tick(dt float64, origin, facing common.Vec2) int {
	if a == nil {
		return 0
	}
	switch a.state {
	case AttackStriking:
		expired := a.cfg.StrikeDuration <= 0 || a.strike.Tick(dt)
		hits := 0
		if !a.impacted && (expired || a.strike.Elapsed()+timerEpsilon >= a.cfg.ImpactFraction*a.strike.Duration()) {
			hits = a.resolveImpact(origin, facing)
		}
		if expired {
			a.enterCooling(a.strike.Overflow())
		}
		return hits
	case AttackCooling:
		if a.cool.Tick(dt) {
			a.state = AttackIdle
		}
	}
	return 0
}

func (a *AttackSequencer) enterCooling(carry float64) {
	a.state = AttackCooling
	a.cool.Start(a.cfg.Cooldown)
	if !a.cool.IsActive() || a.cool.Tick(carry) {
		a.state = AttackIdle
	}
}

func (a *AttackSequencer) resolveImpact(origin, facing common.Vec2) int {
	a.impacted = true
	center := origin.Add(facing.Normalize().Scale(a.cfg.Reach))
	count := 0
	for _, hit := range a.query.QueryRadius(center, a.cfg.Radius, a.cfg.Target) {
		if hit.ID == a.owner {
			continue
		}
		if _, seen := a.hitSet[hit.ID]; seen {
			continue
		}
		a.hitSet[hit.ID] = struct{}{}
		if hit.Target == nil || hit.Target.IsDead() {
			continue
		}
		if hit.Target.TakeDamage(a.cfg.Damage) {
			count++
			a.Events.Emit(Event{Type: EventHit, AttackerID: a.owner, TargetID: hit.ID, Damage: a.cfg.Damage, Pos: hit.Point})
		}
	}
	return count
}

// Cancel aborts any strike or cooldown and returns to Idle.
func (a *AttackSequencer) Cancel() {
	if a == nil {
		return
	}
	a.state = AttackIdle
	a.strike.Stop()
	a.cool.Stop()
	a.impacted = false
}

func (a *AttackSequencer) State() AttackState {
	if a == nil {
		return AttackIdle
	}
	return a.state
}

func (a *AttackSequencer) IsAttacking() bool { return a.State() == AttackStriking }

func (a *AttackSequencer) CooldownRemaining() float64 {
	if a == nil {
		return 0
	}
	return a.cool.Remaining()
}

func (a *AttackSequencer) Config() AttackConfig {
	if a == nil {
		return AttackConfig{}
	}
	return a.cfg
}
