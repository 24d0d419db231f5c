package physics

// Store holds the bodies of one simulation keyed by id
// Iteration order is insertion order so stepping is reproducible within a process
type Store struct {
	bodies map[uint64]*Body
	order  []*Body
	nextID uint64
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		bodies: make(map[uint64]*Body),
		nextID: 1,
	}
}

// Get returns the body for id; ok is false when absent
func (s *Store) Get(id uint64) (*Body, bool) {
	b, ok := s.bodies[id]
	return b, ok
}

// Len returns the number of bodies
func (s *Store) Len() int {
	return len(s.order)
}

// Bodies returns the live slice of bodies in insertion order, callers must not retain it
func (s *Store) Bodies() []*Body {
	return s.order
}

func (s *Store) allocID() uint64 {
	for {
		id := s.nextID
		s.nextID++
		if _, taken := s.bodies[id]; !taken {
			return id
		}
	}
}

func (s *Store) insert(b *Body) {
	s.bodies[b.ID] = b
	s.order = append(s.order, b)
}

func (s *Store) remove(id uint64) bool {
	b, ok := s.bodies[id]
	if !ok {
		return false
	}
	delete(s.bodies, id)
	for i, o := range s.order {
		if o == b {
			copy(s.order[i:], s.order[i+1:])
			s.order[len(s.order)-1] = nil
			s.order = s.order[:len(s.order)-1]
			break
		}
	}
	return true
}
