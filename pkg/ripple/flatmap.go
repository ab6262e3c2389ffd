package ripple

// FlatMap maintains the deduplicated union of transform over the source
// set's elements, incrementally: on each source delta only the affected
// elements are re-transformed, and a target element's membership follows its
// contribution count in a backing CountedSet. The per-source-element target
// relation is not stored; transform is re-applied per change, so it must be
// pure with respect to the equality of its outputs or counts will drift.
//
// The returned DerivedSet mirrors the source until Close is called.
func FlatMap[S, T comparable](source ObservableSet[S], transform func(S) []T) *DerivedSet[T] {
	out := NewCountedSet[T]()

	// Seed from the current contents. Boolean transitions are ignored: there
	// are no observers yet.
	for e := range source.Contents() {
		for _, t := range transform(e) {
			out.Insert(t)
		}
	}

	conn := source.Subscribe(SetObserverFuncs[S]{
		Begin: out.BeginTransaction,
		Change: func(d Delta[S]) {
			delta := Delta[T]{Inserted: NewSet[T](), Removed: NewSet[T]()}

			// All removals before all insertions, so that a target element
			// losing one contributor and gaining another inside the same
			// batch nets out instead of flickering.
			for e := range d.Removed {
				for _, t := range transform(e) {
					if out.Remove(t) {
						delta.Removed.Add(t)
					}
				}
			}
			for e := range d.Inserted {
				for _, t := range transform(e) {
					if !out.Insert(t) {
						continue
					}
					// A 1→0→1 round trip within the batch is a net no-op;
					// cancel it rather than report the element twice.
					if delta.Removed.Contains(t) {
						delta.Removed.Delete(t)
					} else {
						delta.Inserted.Add(t)
					}
				}
			}

			if !delta.IsEmpty() {
				out.SendChange(delta)
			}
		},
		End: out.EndTransaction,
	})

	return &DerivedSet[T]{set: out, conn: conn}
}

// DerivedSet is the read-only result of FlatMap. Its contents change only in
// response to source changes; the backing counted set is not reachable, so
// nothing else can mutate it.
type DerivedSet[T comparable] struct {
	set  *CountedSet[T]
	conn *Connection
}

// Contents returns a copy of the current derived elements.
func (d *DerivedSet[T]) Contents() Set[T] {
	return d.set.Contents()
}

// Contains reports whether the element is currently derived.
func (d *DerivedSet[T]) Contains(e T) bool {
	return d.set.Contains(e)
}

// Len returns the current number of derived elements.
func (d *DerivedSet[T]) Len() int {
	return d.set.Len()
}

// Subscribe registers an observer for future derived deltas.
func (d *DerivedSet[T]) Subscribe(o SetObserver[T]) *Connection {
	return d.set.Subscribe(o)
}

// OnChange subscribes a plain function to derived deltas, ignoring the
// transaction markers.
func (d *DerivedSet[T]) OnChange(fn func(Delta[T])) *Connection {
	return d.set.Subscribe(SetObserverFuncs[T]{Change: fn})
}

// Close disconnects from the source. The derived set stops updating and the
// source drops its reference to the mapper; contents remain readable.
// Close is idempotent.
func (d *DerivedSet[T]) Close() {
	d.conn.Close()
}
