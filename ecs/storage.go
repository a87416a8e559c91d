package ecs

// entityStore tracks entity generations and free ids. Slot i holds id i+1.
type entityStore struct {
	gen   []generation
	alive []bool
	free  []entityID
	count int
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		s.alive = append(s.alive, false)
		id = entityID(len(s.gen))
	}
	s.alive[id-1] = true
	s.count++
	return makeEntity(id, s.gen[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.alive[idx] = false
	s.gen[idx]++
	s.free = append(s.free, e.id())
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.alive[id-1] && s.gen[id-1] == e.generation()
}

func (s *entityStore) entities() []Entity {
	out := make([]Entity, 0, s.count)
	for i, ok := range s.alive {
		if ok {
			out = append(out, makeEntity(entityID(i+1), s.gen[i]))
		}
	}
	return out
}

// store is the type-erased view of a sparseStore the world needs to clean
// up after destroyed entities.
type store interface {
	remove(id entityID) bool
	len() int
}

// sparseStore packs components densely, indexed through a sparse array of
// entity ids.
type sparseStore[T any] struct {
	dense  []entityID
	values []*T
	sparse []int32
}

func (s *sparseStore[T]) index(id entityID) (int, bool) {
	if id == 0 || int(id) > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1] - 1
	if idx < 0 {
		return 0, false
	}
	return int(idx), true
}

func (s *sparseStore[T]) get(id entityID) (*T, bool) {
	idx, ok := s.index(id)
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseStore[T]) set(id entityID, v *T) {
	if idx, ok := s.index(id); ok {
		s.values[idx] = v
		return
	}
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, 0)
	}
	s.dense = append(s.dense, id)
	s.values = append(s.values, v)
	s.sparse[id-1] = int32(len(s.dense))
}

func (s *sparseStore[T]) remove(id entityID) bool {
	idx, ok := s.index(id)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	lastID := s.dense[last]
	s.dense[idx] = lastID
	s.values[idx] = s.values[last]
	s.sparse[lastID-1] = int32(idx + 1)

	s.dense = s.dense[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.sparse[id-1] = 0
	return true
}

func (s *sparseStore[T]) len() int { return len(s.dense) }
