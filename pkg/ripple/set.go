package ripple

// Set is a plain element set. It is the content type exposed by observable
// sets and the inserted/removed halves of a Delta. A nil Set behaves as
// empty for reads; call NewSet before adding.
type Set[T comparable] map[T]struct{}

// NewSet creates a set containing the given elements.
func NewSet[T comparable](elems ...T) Set[T] {
	s := make(Set[T], len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

// Add inserts an element into the set.
func (s Set[T]) Add(e T) {
	s[e] = struct{}{}
}

// Delete removes an element from the set.
func (s Set[T]) Delete(e T) {
	delete(s, e)
}

// Contains reports whether the element is a member of the set.
func (s Set[T]) Contains(e T) bool {
	_, ok := s[e]
	return ok
}

// Len returns the number of elements in the set.
func (s Set[T]) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s Set[T]) Clone() Set[T] {
	out := make(Set[T], len(s))
	for e := range s {
		out[e] = struct{}{}
	}
	return out
}

// Equal reports whether both sets contain exactly the same elements.
func (s Set[T]) Equal(other Set[T]) bool {
	if len(s) != len(other) {
		return false
	}
	for e := range s {
		if !other.Contains(e) {
			return false
		}
	}
	return true
}

// Slice returns the elements as a slice in unspecified order.
func (s Set[T]) Slice() []T {
	out := make([]T, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	return out
}
