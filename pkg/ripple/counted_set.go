package ripple

import "sync"

// CountedSet is a mutable observable set that tracks, per element, how many
// times it has been contributed. An element is a member while its occurrence
// count is at least one; counts never go negative, and a zero count is not
// stored. Insert and Remove report only the 0↔1 boundary crossings, which is
// exactly what an incremental maintainer with many-to-one contributions
// needs: transitions that stay inside the count ≥ 1 region (1→2, 2→1) do not
// change membership and are invisible to observers.
//
// CountedSet does not assemble deltas itself; the maintaining component
// batches Insert/Remove results and delivers them through SendChange.
type CountedSet[T comparable] struct {
	counts map[T]int

	// mu protects counts.
	mu sync.RWMutex

	subs subscribers[SetObserver[T]]

	// depth is transaction state; single-goroutine, like the delivery model.
	depth int
}

// NewCountedSet creates an empty counted set.
func NewCountedSet[T comparable]() *CountedSet[T] {
	return &CountedSet[T]{counts: make(map[T]int)}
}

// Insert increments the element's occurrence count, creating it at one if
// absent. Returns true iff the element became newly visible (count 0→1).
func (c *CountedSet[T]) Insert(e T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.counts[e]
	c.counts[e] = n + 1
	return n == 0
}

// Remove decrements the element's occurrence count. Returns true iff the
// element disappeared (count 1→0). Removing an absent element is a no-op
// returning false; callers must keep Insert/Remove calls balanced per
// logical contribution.
func (c *CountedSet[T]) Remove(e T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.counts[e]
	if !ok {
		return false
	}
	if n == 1 {
		delete(c.counts, e)
		return true
	}
	c.counts[e] = n - 1
	return false
}

// Count returns the element's current occurrence count (zero if absent).
func (c *CountedSet[T]) Count(e T) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[e]
}

// Contents returns a copy of the visible elements (count ≥ 1).
func (c *CountedSet[T]) Contents() Set[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(Set[T], len(c.counts))
	for e := range c.counts {
		out.Add(e)
	}
	return out
}

// Contains reports whether the element is currently visible.
func (c *CountedSet[T]) Contains(e T) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[e] > 0
}

// Len returns the number of visible elements.
func (c *CountedSet[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.counts)
}

// BeginTransaction forwards transaction nesting to observers without
// touching multiplicity state.
func (c *CountedSet[T]) BeginTransaction() {
	if c.depth == 0 {
		for _, o := range c.subs.snapshot() {
			o.BeginTransaction()
		}
		hookTransactionBegan()
	}
	c.depth++
}

// EndTransaction closes a transaction scope opened by BeginTransaction.
func (c *CountedSet[T]) EndTransaction() {
	if c.depth == 0 {
		if DebugMode {
			panic("[RIPPLE E101] EndTransaction without matching BeginTransaction")
		}
		return
	}
	c.depth--
	if c.depth > 0 {
		return
	}
	for _, o := range c.subs.snapshot() {
		o.EndTransaction()
	}
	hookTransactionEnded()
}

// SendChange delivers a pre-assembled delta to observers. The caller
// guarantees the delta is non-empty and matches exactly the membership
// transitions reported by the Insert/Remove calls of the current batch. When
// no transaction is open the delivery is bracketed by an implicit one.
func (c *CountedSet[T]) SendChange(d Delta[T]) {
	if d.IsEmpty() {
		if DebugMode {
			panic("[RIPPLE E102] SendChange with empty delta")
		}
		return
	}
	if c.depth > 0 {
		c.broadcastChange(d)
		return
	}
	c.BeginTransaction()
	c.broadcastChange(d)
	c.EndTransaction()
}

// Subscribe registers an observer for future deltas and returns its
// connection. Observers are notified in registration order.
func (c *CountedSet[T]) Subscribe(o SetObserver[T]) *Connection {
	sub := c.subs.add(o)
	return NewConnection(func() { c.subs.remove(sub) })
}

func (c *CountedSet[T]) broadcastChange(d Delta[T]) {
	hookDeltaPublished(len(d.Inserted), len(d.Removed))
	for _, o := range c.subs.snapshot() {
		o.SetChanged(d)
	}
}
