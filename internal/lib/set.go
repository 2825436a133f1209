package lib

// Set is a plain membership set. It is not thread-safe, owners serialize access.
type Set[K comparable] map[K]struct{}

func NewSet[K comparable](elems ...K) Set[K] {
	s := make(Set[K], len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

func (s Set[K]) Add(elem K) {
	s[elem] = struct{}{}
}

// Contains is safe to call on a nil Set.
func (s Set[K]) Contains(elem K) bool {
	_, exists := s[elem]
	return exists
}

// AsSlice returns the elements in no particular order.
func (s Set[K]) AsSlice() []K {
	elements := make([]K, 0, len(s))
	for elem := range s {
		elements = append(elements, elem)
	}
	return elements
}
