package heart

// PointSet is an insertion ordered set of unique points. Order is kept so a
// seeded build always iterates the same way.
type PointSet struct {
	points []Point
	index  map[Point]struct{}
}

func newPointSet(capacity int) *PointSet {
	return &PointSet{
		points: make([]Point, 0, capacity),
		index:  make(map[Point]struct{}, capacity),
	}
}

// add inserts p and reports whether it was new.
func (s *PointSet) add(p Point) bool {
	if _, ok := s.index[p]; ok {
		return false
	}
	s.index[p] = struct{}{}
	s.points = append(s.points, p)
	return true
}

func (s *PointSet) Len() int { return len(s.points) }

func (s *PointSet) At(i int) Point { return s.points[i] }

func (s *PointSet) Contains(p Point) bool {
	_, ok := s.index[p]
	return ok
}

// Points returns a copy of the set in insertion order.
func (s *PointSet) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}
