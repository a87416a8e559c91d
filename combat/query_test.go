package combat

import (
	"math"
	"sort"

	"github.com/milk9111/dungeondash/common"
)

type fakeBody struct {
	id     EntityID
	pos    common.Vec2
	radius float64
	cat    Category
	target Damageable
}

// fakeSpace is a brute-force SpatialQuery over a handful of circles.
type fakeSpace struct {
	bodies []*fakeBody
	casts  int
}

func (s *fakeSpace) add(id EntityID, pos common.Vec2, cat Category, target Damageable) *fakeBody {
	b := &fakeBody{id: id, pos: pos, radius: 0.25, cat: cat, target: target}
	s.bodies = append(s.bodies, b)
	return b
}

func (s *fakeSpace) QueryRadius(center common.Vec2, radius float64, mask Category) []Hit {
	var out []Hit
	for _, b := range s.bodies {
		if !b.cat.Has(mask) {
			continue
		}
		if d := center.Dist(b.pos); d <= radius+b.radius {
			out = append(out, Hit{ID: b.id, Target: b.target, Point: b.pos, Distance: d})
		}
	}
	return out
}

func (s *fakeSpace) QueryCast(origin common.Vec2, radius float64, direction common.Vec2, distance float64, mask Category) []Hit {
	s.casts++
	dir := direction.Normalize()
	var out []Hit
	for _, b := range s.bodies {
		if !b.cat.Has(mask) {
			continue
		}
		along := math.Max(0, math.Min(distance, b.pos.Sub(origin).Dot(dir)))
		closest := origin.Add(dir.Scale(along))
		if closest.Dist(b.pos) <= radius+b.radius {
			out = append(out, Hit{ID: b.id, Target: b.target, Point: closest, Distance: along})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

type fakeCollider struct{ cat Category }

func (c *fakeCollider) Category() Category     { return c.cat }
func (c *fakeCollider) SetCategory(x Category) { c.cat = x }

type cueCall struct {
	kind  string
	name  string
	owner EntityID
}

type recordingCues struct{ calls []cueCall }

func (r *recordingCues) PlayCue(name string, _ common.Vec2) {
	r.calls = append(r.calls, cueCall{kind: "play", name: name})
}

func (r *recordingCues) StartLoop(name string, owner EntityID, _ common.Vec2) {
	r.calls = append(r.calls, cueCall{kind: "start", name: name, owner: owner})
}

func (r *recordingCues) StopLoop(owner EntityID) {
	r.calls = append(r.calls, cueCall{kind: "stop", owner: owner})
}
