package combat

import (
	"errors"

	"github.com/milk9111/dungeondash/common"
)

// ErrMissingCollaborator is returned when a controller is built without a
// collaborator it cannot work without.
var ErrMissingCollaborator = errors.New("combat: missing collaborator")

// EntityID identifies an entity across the combat core. It carries the same
// value as ecs.Entity without importing the ecs package.
type EntityID uint64

// Category is a collision category bitmask.
type Category uint32

const (
	CategoryPlayer Category = 1 << iota
	CategoryEnemy
	CategoryNeutral
	CategoryDashing
	CategoryPickup
	CategoryTrigger

	CategoryNone Category = 0
	CategoryAll  Category = ^Category(0)
)

func (c Category) Has(other Category) bool { return c&other != 0 }

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryPlayer:
		return "player"
	case CategoryEnemy:
		return "enemy"
	case CategoryNeutral:
		return "neutral"
	case CategoryDashing:
		return "dashing"
	case CategoryPickup:
		return "pickup"
	case CategoryTrigger:
		return "trigger"
	case CategoryAll:
		return "all"
	default:
		return "mixed"
	}
}

// ParseCategory maps a prefab category name to its bit.
func ParseCategory(name string) (Category, bool) {
	for _, c := range []Category{CategoryPlayer, CategoryEnemy, CategoryNeutral, CategoryDashing, CategoryPickup, CategoryTrigger} {
		if c.String() == name {
			return c, true
		}
	}
	return CategoryNone, false
}

// Damageable is anything a strike or dash can hurt.
type Damageable interface {
	TakeDamage(amount float64) bool
	IsDead() bool
}

// Hit is one entity reported by a spatial query. Target is nil when the
// entity has nothing that can take damage.
type Hit struct {
	ID       EntityID
	Target   Damageable
	Point    common.Vec2
	Distance float64
}

// SpatialQuery is the read-only view of the physics world used by strikes
// and dashes. Results only contain entities whose category intersects the
// requested mask.
type SpatialQuery interface {
	QueryRadius(center common.Vec2, radius float64, mask Category) []Hit
	QueryCast(origin common.Vec2, radius float64, direction common.Vec2, distance float64, mask Category) []Hit
}

// Collider exposes the collision category of a body so a dash can swap it.
type Collider interface {
	Category() Category
	SetCategory(c Category)
}

// Cue names understood by the audio layer.
const (
	CueDash      = "Dash"
	CueEnemyMove = "EnemyMove"
	CueKey       = "Key"
	CueBossKey   = "BossKey"
	CueCollect   = "Collect"
	CuePowerUp   = "PowerUp"
	CueHit       = "Hit"
	CueDeath     = "Death"
)

// CueSink receives fire-and-forget audio cues.
type CueSink interface {
	PlayCue(name string, pos common.Vec2)
	StartLoop(name string, owner EntityID, pos common.Vec2)
	StopLoop(owner EntityID)
}

// NopCues discards every cue.
type NopCues struct{}

func (NopCues) PlayCue(string, common.Vec2)             {}
func (NopCues) StartLoop(string, EntityID, common.Vec2) {}
func (NopCues) StopLoop(EntityID)                       {}

func cuesOrNop(c CueSink) CueSink {
	if c == nil {
		return NopCues{}
	}
	return c
}
