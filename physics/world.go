package physics

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/common"
)

var (
	ErrDuplicateBody = errors.New("physics: body already registered")
	ErrInvalidRadius = errors.New("physics: radius must be positive")
)

const allCategories = ^uint(0)

// World owns the Chipmunk space. Every entity is a kinematic body carrying
// one circle whose shape filter holds its combat category. Kinematic bodies
// never collide with each other, so the space is only stepped and queried.
type World struct {
	space     *cp.Space
	bodies    map[combat.EntityID]*Body
	byShape   map[*cp.Shape]*Body
	maxRadius float64
}

// NewWorld creates an empty, gravity-free space.
func NewWorld() *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &World{
		space:   space,
		bodies:  make(map[combat.EntityID]*Body),
		byShape: make(map[*cp.Shape]*Body),
	}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Add registers a circle for id at pos. target may be nil for entities
// that cannot be damaged.
func (w *World) Add(id combat.EntityID, pos common.Vec2, radius float64, category combat.Category, target combat.Damageable) (*Body, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: entity %d radius %.3f", ErrInvalidRadius, id, radius)
	}
	if _, ok := w.bodies[id]; ok {
		return nil, fmt.Errorf("%w: entity %d", ErrDuplicateBody, id)
	}
	cpBody := cp.NewKinematicBody()
	cpBody.SetPosition(toCP(pos))
	shape := cp.NewCircle(cpBody, radius, cp.Vector{})

	b := &Body{id: id, body: cpBody, shape: shape, radius: radius, target: target, world: w}
	b.SetCategory(category)

	w.space.AddBody(cpBody)
	w.space.AddShape(shape)
	w.bodies[id] = b
	w.byShape[shape] = b
	if radius > w.maxRadius {
		w.maxRadius = radius
	}
	return b, nil
}

// Remove drops id from the space and reports whether it was present.
func (w *World) Remove(id combat.EntityID) bool {
	b, ok := w.bodies[id]
	if !ok {
		return false
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	delete(w.byShape, b.shape)
	delete(w.bodies, id)
	return true
}

func (w *World) Body(id combat.EntityID) (*Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

func (w *World) Len() int { return len(w.bodies) }

// Step advances the simulation; kinematic bodies move by their velocity.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
}

func queryFilter(mask combat.Category) cp.ShapeFilter {
	return cp.ShapeFilter{Group: 0, Categories: allCategories, Mask: uint(mask)}
}

// QueryRadius returns every body whose circle comes within radius of center
// and whose category intersects mask. Results are ordered by distance, then
// ID. The broad phase is a bounding-box query padded by the largest body
// radius; each candidate is then checked against its own circle.
func (w *World) QueryRadius(center common.Vec2, radius float64, mask combat.Category) []combat.Hit {
	if w == nil || w.space == nil || radius < 0 {
		return nil
	}
	var hits []combat.Hit
	seen := make(map[combat.EntityID]struct{})
	bb := cp.NewBBForCircle(toCP(center), radius+w.maxRadius)
	w.space.BBQuery(bb, queryFilter(mask), func(shape *cp.Shape, data interface{}) {
		b, ok := w.byShape[shape]
		if !ok {
			return
		}
		if _, dup := seen[b.id]; dup {
			return
		}
		pos := b.Position()
		if center.Dist(pos)-b.radius > radius {
			return
		}
		seen[b.id] = struct{}{}
		hits = append(hits, combat.Hit{ID: b.id, Target: b.target, Point: pos, Distance: center.Dist(pos)})
	}, nil)
	sortHits(hits)
	return hits
}

// QueryCast sweeps a circle of radius from origin along direction for
// distance. Bodies already overlapping the origin are reported first with
// distance zero; the rest follow in order of first contact.
func (w *World) QueryCast(origin common.Vec2, radius float64, direction common.Vec2, distance float64, mask combat.Category) []combat.Hit {
	hits := w.QueryRadius(origin, radius, mask)
	for i := range hits {
		hits[i].Point = origin
		hits[i].Distance = 0
	}
	dir := direction.Normalize()
	if dir.IsZero() || distance <= 0 {
		return hits
	}
	seen := make(map[combat.EntityID]struct{}, len(hits))
	for _, h := range hits {
		seen[h.ID] = struct{}{}
	}

	end := origin.Add(dir.Scale(distance))
	var swept []combat.Hit
	w.space.SegmentQuery(toCP(origin), toCP(end), radius, queryFilter(mask), func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
		b, ok := w.byShape[shape]
		if !ok {
			return
		}
		if _, dup := seen[b.id]; dup {
			return
		}
		seen[b.id] = struct{}{}
		swept = append(swept, combat.Hit{ID: b.id, Target: b.target, Point: fromCP(point), Distance: alpha * distance})
	}, nil)
	sortHits(swept)
	return append(hits, swept...)
}

func sortHits(hits []combat.Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].ID < hits[j].ID
	})
}

func toCP(v common.Vec2) cp.Vector   { return cp.Vector{X: v.X, Y: v.Y} }
func fromCP(v cp.Vector) common.Vec2 { return common.Vec2{X: v.X, Y: v.Y} }

// Body is one entity's presence in the space. It satisfies combat.Collider.
type Body struct {
	id       combat.EntityID
	body     *cp.Body
	shape    *cp.Shape
	radius   float64
	category combat.Category
	target   combat.Damageable
	world    *World
}

func (b *Body) ID() combat.EntityID { return b.id }

func (b *Body) Radius() float64 { return b.radius }

func (b *Body) Category() combat.Category { return b.category }

// SetCategory rewrites the shape filter so queries see the new category.
func (b *Body) SetCategory(c combat.Category) {
	b.category = c
	b.shape.SetFilter(cp.ShapeFilter{Group: 0, Categories: uint(c), Mask: allCategories})
}

func (b *Body) Position() common.Vec2 { return fromCP(b.body.Position()) }

// SetPosition teleports the body. The shape is taken out of the space and
// put back so its cached bounds follow the body before the next Step.
func (b *Body) SetPosition(p common.Vec2) {
	b.body.SetPosition(toCP(p))
	if b.world == nil || b.world.space == nil || b.shape.Space() == nil {
		return
	}
	b.world.space.RemoveShape(b.shape)
	b.world.space.AddShape(b.shape)
}

func (b *Body) Velocity() common.Vec2 { return fromCP(b.body.Velocity()) }

func (b *Body) SetVelocity(v common.Vec2) { b.body.SetVelocityVector(toCP(v)) }

// SetTarget replaces what a query hit on this body damages.
func (b *Body) SetTarget(t combat.Damageable) { b.target = t }
