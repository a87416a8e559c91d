package combat

import (
	"math"

	"github.com/milk9111/dungeondash/common"
)

// HealthConfig describes a health pool and its post-hit invulnerability.
type HealthConfig struct {
	Max                     float64 `yaml:"max"`
	InvulnerabilityDuration float64 `yaml:"invulnerability_duration"`
	FlashInterval           float64 `yaml:"flash_interval"`
}

// Health is a health pool with a timed invulnerability window after each
// non-lethal hit. While the window runs the flash flag toggles every
// FlashInterval seconds so renderers can blink the sprite.
type Health struct {
	max     float64
	current float64
	dead    bool

	invulnDuration float64
	flashInterval  float64
	invuln         Timer
	flash          Timer
	flashing       bool
	holds          int

	OnDamage      func(h *Health, amount float64)
	OnIFrameStart func(h *Health)
	OnIFrameEnd   func(h *Health)
	onDeath       []func(h *Health)
}

// NewHealth creates a Health with current initialized to max.
func NewHealth(cfg HealthConfig) *Health {
	max := cfg.Max
	if max <= 0 {
		max = 1
	}
	return &Health{
		max:            max,
		current:        max,
		invulnDuration: math.Max(cfg.InvulnerabilityDuration, 0),
		flashInterval:  math.Max(cfg.FlashInterval, 0),
	}
}

// OnDeath registers fn to run once when the pool reaches zero. Handlers run
// in registration order.
func (h *Health) OnDeath(fn func(h *Health)) {
	if h == nil || fn == nil {
		return
	}
	h.onDeath = append(h.onDeath, fn)
}

// TakeDamage subtracts amount and reports whether it was applied. Damage is
// ignored while dead or invulnerable. Non-positive amounts are rejected.
func (h *Health) TakeDamage(amount float64) bool {
	if h == nil || h.dead || h.IsInvulnerable() {
		return false
	}
	if amount <= 0 || math.IsNaN(amount) {
		return false
	}
	h.current -= amount
	if h.OnDamage != nil {
		h.OnDamage(h, amount)
	}
	if h.current <= 0 {
		h.die()
		return true
	}
	h.startWindow()
	return true
}

func (h *Health) startWindow() {
	h.invuln.Start(h.invulnDuration)
	if !h.invuln.IsActive() {
		return
	}
	h.flashing = true
	h.flash.Start(h.flashInterval)
	if h.OnIFrameStart != nil {
		h.OnIFrameStart(h)
	}
}

func (h *Health) die() {
	h.current = 0
	h.dead = true
	h.invuln.Stop()
	h.flash.Stop()
	h.flashing = false
	// Handlers may append to onDeath; iterate a snapshot.
	handlers := append([]func(*Health){}, h.onDeath...)
	for _, fn := range handlers {
		fn(h)
	}
}

// Tick advances the invulnerability window and the flash cadence.
func (h *Health) Tick(dt float64) {
	if h == nil || h.dead || !h.invuln.IsActive() {
		return
	}
	if h.invuln.Tick(dt) {
		h.flash.Stop()
		h.flashing = false
		if h.OnIFrameEnd != nil {
			h.OnIFrameEnd(h)
		}
		return
	}
	if h.flashInterval <= 0 {
		return
	}
	for h.flash.Tick(dt) {
		h.flashing = !h.flashing
		over := h.flash.Overflow()
		h.flash.Start(h.flashInterval)
		dt = over
		if dt <= 0 {
			break
		}
	}
}

// HoldInvulnerable makes the pool invulnerable until a matching
// ReleaseInvulnerable. Holds nest.
func (h *Health) HoldInvulnerable() {
	if h == nil {
		return
	}
	h.holds++
}

func (h *Health) ReleaseInvulnerable() {
	if h == nil || h.holds == 0 {
		return
	}
	h.holds--
}

// Heal restores health up to max. Dead pools stay dead.
func (h *Health) Heal(amount float64) {
	if h == nil || h.dead || amount <= 0 {
		return
	}
	h.current = math.Min(h.current+amount, h.max)
}

// Revive restores a pool to full health and clears every window. Death
// handlers stay registered and fire again on the next death.
func (h *Health) Revive() {
	if h == nil {
		return
	}
	h.current = h.max
	h.dead = false
	h.invuln.Stop()
	h.flash.Stop()
	h.flashing = false
	h.holds = 0
}

func (h *Health) IsDead() bool { return h != nil && h.dead }

func (h *Health) IsInvulnerable() bool {
	return h != nil && (h.holds > 0 || h.invuln.IsActive())
}

func (h *Health) IsFlashing() bool { return h != nil && h.flashing }

func (h *Health) Current() float64 {
	if h == nil {
		return 0
	}
	return h.current
}

func (h *Health) Max() float64 {
	if h == nil {
		return 0
	}
	return h.max
}

// Fraction returns current/max for health bars.
func (h *Health) Fraction() float64 {
	if h == nil || h.max <= 0 {
		return 0
	}
	return h.current / h.max
}

// InvulnerabilityRemaining returns the seconds left in the post-hit window.
func (h *Health) InvulnerabilityRemaining() float64 {
	if h == nil {
		return 0
	}
	return h.invuln.Remaining()
}

// SetCurrent restores a saved value, clamped to [0, max]. It does not fire
// death handlers.
func (h *Health) SetCurrent(v float64) {
	if h == nil {
		return
	}
	h.current = common.Clamp(v, 0, h.max)
	h.dead = h.current <= 0
}
