package combat

import (
	"fmt"

	"github.com/milk9111/dungeondash/common"
)

// DashConfig describes the player's damaging dash.
type DashConfig struct {
	Speed        float64  `yaml:"speed"`
	Duration     float64  `yaml:"duration"`
	Cooldown     float64  `yaml:"cooldown"`
	StartDelay   float64  `yaml:"start_delay"`
	Damage       float64  `yaml:"damage"`
	DamageRadius float64  `yaml:"damage_radius"`
	Target       Category `yaml:"-"`
	Category     Category `yaml:"-"`
}

// DashDeps are the collaborators a Dash works through.
type DashDeps struct {
	Health   *Health
	Collider Collider
	Query    SpatialQuery
	Progress *Progression
	Cues     CueSink
	Events   *EventEmitter
}

// Dash moves the owner at a fixed speed for a fixed time. While active the
// owner is invulnerable, its collision category is swapped, and every
// target it sweeps through takes damage once.
type Dash struct {
	cfg   DashConfig
	owner EntityID
	deps  DashDeps

	active    bool
	direction common.Vec2
	velocity  common.Vec2
	delay     Timer
	run       Timer
	cooldown  Timer
	hitSet    map[EntityID]struct{}
	saved     Category
	prevPos   common.Vec2
}

func NewDash(owner EntityID, cfg DashConfig, deps DashDeps) (*Dash, error) {
	switch {
	case deps.Health == nil:
		return nil, fmt.Errorf("%w: dash needs health", ErrMissingCollaborator)
	case deps.Collider == nil:
		return nil, fmt.Errorf("%w: dash needs a collider", ErrMissingCollaborator)
	case deps.Query == nil:
		return nil, fmt.Errorf("%w: dash needs a spatial query", ErrMissingCollaborator)
	case deps.Progress == nil:
		return nil, fmt.Errorf("%w: dash needs progression", ErrMissingCollaborator)
	}
	if cfg.Category == CategoryNone {
		cfg.Category = CategoryDashing
	}
	deps.Cues = cuesOrNop(deps.Cues)
	d := &Dash{
		cfg:    cfg,
		owner:  owner,
		deps:   deps,
		hitSet: make(map[EntityID]struct{}),
	}
	deps.Health.OnDeath(func(*Health) { d.Abort() })
	return d, nil
}

// CanDash reports whether a dash would be accepted right now.
func (d *Dash) CanDash() bool {
	return d != nil && d.deps.Progress.DashUnlocked && !d.active && !d.cooldown.IsActive() && !d.deps.Health.IsDead()
}

// TryDash starts a dash towards direction from pos. Requests while locked,
// active, cooling down or without a direction are rejected.
func (d *Dash) TryDash(direction, pos common.Vec2) bool {
	if !d.CanDash() {
		return false
	}
	dir := direction.Normalize()
	if dir.IsZero() {
		return false
	}
	d.active = true
	d.direction = dir
	d.velocity = common.Vec2{}
	d.prevPos = pos
	clear(d.hitSet)

	d.deps.Health.HoldInvulnerable()
	d.saved = d.deps.Collider.Category()
	d.deps.Collider.SetCategory(d.cfg.Category)

	d.delay.Start(d.cfg.StartDelay)
	if !d.delay.IsActive() {
		d.beginRun()
	}
	d.deps.Cues.PlayCue(CueDash, pos)
	d.deps.Events.Emit(Event{Type: EventDashStart, AttackerID: d.owner, Pos: pos})
	return true
}

func (d *Dash) beginRun() {
	d.run.Start(d.cfg.Duration)
	d.velocity = d.direction.Scale(d.cfg.Speed)
	if !d.run.IsActive() {
		d.finish()
	}
}

// Tick resolves hits along the path travelled since the previous tick and
// advances the delay, run and cooldown timers. pos is the owner's current
// position after physics.
func (d *Dash) Tick(dt float64, pos common.Vec2) {
	if d == nil {
		return
	}
	if !d.active {
		d.cooldown.Tick(dt)
		return
	}
	d.sweep(pos)
	if d.delay.IsActive() {
		if d.delay.Tick(dt) {
			d.beginRun()
		}
		return
	}
	if d.run.Tick(dt) {
		d.finish()
	}
}

func (d *Dash) sweep(pos common.Vec2) {
	travel := pos.Sub(d.prevPos)
	var hits []Hit
	if dist := travel.Len(); dist > timerEpsilon {
		hits = d.deps.Query.QueryCast(d.prevPos, d.cfg.DamageRadius, travel, dist, d.cfg.Target)
	} else {
		hits = d.deps.Query.QueryRadius(pos, d.cfg.DamageRadius, d.cfg.Target)
	}
	d.prevPos = pos
	for _, hit := range hits {
		if hit.ID == d.owner {
			continue
		}
		if _, seen := d.hitSet[hit.ID]; seen {
			continue
		}
		d.hitSet[hit.ID] = struct{}{}
		if hit.Target == nil || hit.Target.IsDead() {
			continue
		}
		if hit.Target.TakeDamage(d.cfg.Damage) {
			d.deps.Events.Emit(Event{Type: EventHit, AttackerID: d.owner, TargetID: hit.ID, Damage: d.cfg.Damage, Pos: hit.Point})
		}
	}
}

func (d *Dash) finish() {
	d.active = false
	d.velocity = common.Vec2{}
	d.delay.Stop()
	d.run.Stop()
	d.deps.Collider.SetCategory(d.saved)
	d.deps.Health.ReleaseInvulnerable()
	d.cooldown.Start(d.cfg.Cooldown)
	d.deps.Events.Emit(Event{Type: EventDashEnd, AttackerID: d.owner, Pos: d.prevPos})
}

// Abort ends an active dash immediately, restoring category and
// vulnerability and starting the cooldown.
func (d *Dash) Abort() {
	if d == nil || !d.active {
		return
	}
	d.finish()
}

// Reset clears the cooldown. Used when the owner respawns.
func (d *Dash) Reset() {
	if d == nil {
		return
	}
	d.Abort()
	d.cooldown.Stop()
}

func (d *Dash) IsDashing() bool { return d != nil && d.active }

// Velocity is the velocity the dash imposes. It is zero during the start
// delay and whenever the dash is inactive.
func (d *Dash) Velocity() common.Vec2 {
	if d == nil {
		return common.Vec2{}
	}
	return d.velocity
}

func (d *Dash) Direction() common.Vec2 { return d.direction }

func (d *Dash) CooldownRemaining() float64 { return d.cooldown.Remaining() }

// CooldownFraction is 1 right after a dash ends and 0 when ready.
func (d *Dash) CooldownFraction() float64 { return d.cooldown.Fraction() }
