package ripple

// valueRecorder records every notification a value observer receives, in
// order, for assertions on bracketing and coalescing.
type valueRecorder[T any] struct {
	begins  int
	ends    int
	changes []ValueChange[T]
}

func (r *valueRecorder[T]) BeginTransaction() { r.begins++ }
func (r *valueRecorder[T]) EndTransaction()   { r.ends++ }

func (r *valueRecorder[T]) ValueChanged(c ValueChange[T]) {
	r.changes = append(r.changes, c)
}

// setRecorder is the set-observer counterpart of valueRecorder.
type setRecorder[T comparable] struct {
	begins int
	ends   int
	deltas []Delta[T]
}

func (r *setRecorder[T]) BeginTransaction() { r.begins++ }
func (r *setRecorder[T]) EndTransaction()   { r.ends++ }

func (r *setRecorder[T]) SetChanged(d Delta[T]) {
	r.deltas = append(r.deltas, d)
}

// countingHooks counts hook callbacks for write-count and lifecycle
// assertions. Install with SetHooks and restore via t.Cleanup.
type countingHooks struct {
	writes      int
	suppressed  int
	deltas      int
	deltaElems  int
	txBegan     int
	txEnded     int
	subsAdded   int
	subsRemoved int
}

func (h *countingHooks) ValueWritten(changed bool) {
	if changed {
		h.writes++
	} else {
		h.suppressed++
	}
}

func (h *countingHooks) DeltaPublished(inserted, removed int) {
	h.deltas++
	h.deltaElems += inserted + removed
}

func (h *countingHooks) TransactionBegan()  { h.txBegan++ }
func (h *countingHooks) TransactionEnded()  { h.txEnded++ }
func (h *countingHooks) SubscriberAdded()   { h.subsAdded++ }
func (h *countingHooks) SubscriberRemoved() { h.subsRemoved++ }
