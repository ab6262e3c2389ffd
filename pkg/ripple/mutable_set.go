package ripple

import "sync"

// MutableSet is an observable set of unique elements. Subscribers receive
// the effective delta of each mutation: inserting an element that is already
// present, or removing one that is absent, contributes nothing. Inside a
// transaction, deltas are merged and opposing entries cancel, so a remove
// followed by a re-insert of the same element in one batch is invisible.
type MutableSet[T comparable] struct {
	members Set[T]

	// mu protects members.
	mu sync.RWMutex

	subs subscribers[SetObserver[T]]

	// depth and pending are transaction state; single-goroutine, like the
	// delivery model.
	depth   int
	pending Delta[T]
}

// NewMutableSet creates an observable set containing the given elements.
func NewMutableSet[T comparable](elems ...T) *MutableSet[T] {
	return &MutableSet[T]{members: NewSet(elems...)}
}

// Contents returns a copy of the current elements.
func (m *MutableSet[T]) Contents() Set[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.members.Clone()
}

// Contains reports whether the element is currently a member.
func (m *MutableSet[T]) Contains(e T) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.members.Contains(e)
}

// Len returns the current number of elements.
func (m *MutableSet[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.members)
}

// Insert adds elements to the set and notifies subscribers of those that
// were not already present. Returns the number of elements actually added.
func (m *MutableSet[T]) Insert(elems ...T) int {
	m.mu.Lock()
	added := NewSet[T]()
	for _, e := range elems {
		if !m.members.Contains(e) {
			m.members.Add(e)
			added.Add(e)
		}
	}
	m.mu.Unlock()

	if len(added) == 0 {
		return 0
	}
	m.publish(Delta[T]{Inserted: added})
	return len(added)
}

// Remove deletes elements from the set and notifies subscribers of those
// that were present. Returns the number of elements actually removed.
func (m *MutableSet[T]) Remove(elems ...T) int {
	m.mu.Lock()
	removed := NewSet[T]()
	for _, e := range elems {
		if m.members.Contains(e) {
			m.members.Delete(e)
			removed.Add(e)
		}
	}
	m.mu.Unlock()

	if len(removed) == 0 {
		return 0
	}
	m.publish(Delta[T]{Removed: removed})
	return len(removed)
}

// Replace swaps the entire contents for next, delivering one delta holding
// the symmetric difference.
func (m *MutableSet[T]) Replace(next Set[T]) {
	m.mu.Lock()
	delta := Delta[T]{Inserted: NewSet[T](), Removed: NewSet[T]()}
	for e := range m.members {
		if !next.Contains(e) {
			delta.Removed.Add(e)
		}
	}
	for e := range next {
		if !m.members.Contains(e) {
			delta.Inserted.Add(e)
		}
	}
	m.members = next.Clone()
	m.mu.Unlock()

	if delta.IsEmpty() {
		return
	}
	m.publish(delta)
}

// WithTransaction executes body with all resulting set deltas merged into a
// single notification, delivered when the outermost transaction ends.
func (m *MutableSet[T]) WithTransaction(body func()) {
	m.BeginTransaction()
	defer m.EndTransaction()
	body()
}

// BeginTransaction opens a transaction scope; the begin marker is broadcast
// only on the outermost open.
func (m *MutableSet[T]) BeginTransaction() {
	if m.depth == 0 {
		for _, o := range m.subs.snapshot() {
			o.BeginTransaction()
		}
		hookTransactionBegan()
	}
	m.depth++
}

// EndTransaction closes a transaction scope; on the outermost close the
// merged pending delta is delivered (if non-empty) before the end marker.
func (m *MutableSet[T]) EndTransaction() {
	if m.depth == 0 {
		if DebugMode {
			panic("[RIPPLE E101] EndTransaction without matching BeginTransaction")
		}
		return
	}
	if m.depth > 1 {
		m.depth--
		return
	}

	for {
		d := m.pending
		m.pending = Delta[T]{}
		if d.IsEmpty() {
			break
		}
		m.broadcastChange(d)
	}

	m.depth = 0
	for _, o := range m.subs.snapshot() {
		o.EndTransaction()
	}
	hookTransactionEnded()
}

// Subscribe registers an observer for future deltas and returns its
// connection. Observers are notified in registration order.
func (m *MutableSet[T]) Subscribe(o SetObserver[T]) *Connection {
	sub := m.subs.add(o)
	return NewConnection(func() { m.subs.remove(sub) })
}

// OnChange subscribes a plain function to set deltas, ignoring the
// transaction markers.
func (m *MutableSet[T]) OnChange(fn func(Delta[T])) *Connection {
	return m.Subscribe(SetObserverFuncs[T]{Change: fn})
}

// publish routes an effective delta either to subscribers (bracketed by an
// implicit transaction) or into the pending merge when one is open.
func (m *MutableSet[T]) publish(d Delta[T]) {
	if m.depth > 0 {
		m.merge(d)
		return
	}
	m.BeginTransaction()
	m.broadcastChange(d)
	m.EndTransaction()
}

// merge folds a delta into the pending one. An insert cancels a pending
// remove of the same element and vice versa, since the element's membership
// over the whole batch did not change.
func (m *MutableSet[T]) merge(d Delta[T]) {
	if m.pending.Inserted == nil {
		m.pending.Inserted = NewSet[T]()
	}
	if m.pending.Removed == nil {
		m.pending.Removed = NewSet[T]()
	}
	for e := range d.Inserted {
		if m.pending.Removed.Contains(e) {
			m.pending.Removed.Delete(e)
		} else {
			m.pending.Inserted.Add(e)
		}
	}
	for e := range d.Removed {
		if m.pending.Inserted.Contains(e) {
			m.pending.Inserted.Delete(e)
		} else {
			m.pending.Removed.Add(e)
		}
	}
}

func (m *MutableSet[T]) broadcastChange(d Delta[T]) {
	hookDeltaPublished(len(d.Inserted), len(d.Removed))
	for _, o := range m.subs.snapshot() {
		o.SetChanged(d)
	}
}
