package combat

import "github.com/milk9111/dungeondash/common"

// ContactConfig describes damage dealt by touching an enemy body.
type ContactConfig struct {
	Damage            float64 `yaml:"damage"`
	Rate              float64 `yaml:"rate"`
	Radius            float64 `yaml:"radius"`
	KnockbackForce    float64 `yaml:"knockback_force"`
	KnockbackDuration float64 `yaml:"knockback_duration"`
}

// ContactDamage rate-limits touch damage from one source.
type ContactDamage struct {
	Config   ContactConfig
	cooldown Timer
}

func (c *ContactDamage) Ready() bool { return !c.cooldown.IsActive() }

// Touch hurts target and knocks it back along from->to when the source is
// ready. It reports whether damage was dealt.
func (c *ContactDamage) Touch(target Damageable, kb *Knockback, from, to common.Vec2) bool {
	if !c.Ready() || target == nil || target.IsDead() {
		return false
	}
	if !target.TakeDamage(c.Config.Damage) {
		return false
	}
	c.cooldown.Start(c.Config.Rate)
	if kb != nil {
		kb.Apply(to.Sub(from), c.Config.KnockbackForce, c.Config.KnockbackDuration)
	}
	return true
}

func (c *ContactDamage) Tick(dt float64) { c.cooldown.Tick(dt) }

// Knockback overrides the owner's velocity for a short time.
type Knockback struct {
	velocity common.Vec2
	timer    Timer
}

func (k *Knockback) Apply(dir common.Vec2, force, duration float64) {
	n := dir.Normalize()
	if n.IsZero() || force <= 0 {
		return
	}
	k.velocity = n.Scale(force)
	k.timer.Start(duration)
}

func (k *Knockback) Tick(dt float64) {
	if k.timer.Tick(dt) {
		k.velocity = common.Vec2{}
	}
}

func (k *Knockback) Active() bool { return k.timer.IsActive() }

func (k *Knockback) Velocity() common.Vec2 {
	if !k.timer.IsActive() {
		return common.Vec2{}
	}
	return k.velocity
}

func (k *Knockback) Clear() {
	k.timer.Stop()
	k.velocity = common.Vec2{}
}
