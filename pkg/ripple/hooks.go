package ripple

// DebugMode enables development-time contract validation. When true,
// caller contract violations that are silent no-ops in production (an empty
// SendChange, an EndTransaction without a matching begin) panic with a
// [RIPPLE Exxx] message. Set at startup; not meant to change at runtime.
var DebugMode bool

// Hooks receives lifecycle callbacks from every observable in the process.
// Implementations must be cheap and must not mutate observables; the
// instrument package provides a Prometheus-backed implementation.
type Hooks interface {
	// ValueWritten is called for every Set on a Value; changed is false when
	// the write was suppressed by the equality function.
	ValueWritten(changed bool)

	// DeltaPublished is called for every delivered set delta with the
	// cardinality of its inserted and removed halves.
	DeltaPublished(inserted, removed int)

	// TransactionBegan / TransactionEnded are called on outermost
	// transaction boundaries only.
	TransactionBegan()
	TransactionEnded()

	// SubscriberAdded / SubscriberRemoved track live subscriptions.
	SubscriberAdded()
	SubscriberRemoved()
}

// activeHooks is process-global, like the delivery model: set it once at
// startup (or around a test) from a single goroutine.
var activeHooks Hooks

// SetHooks installs h as the process-wide hooks. Pass nil to remove.
func SetHooks(h Hooks) {
	activeHooks = h
}

func hookValueWritten(changed bool) {
	if activeHooks != nil {
		activeHooks.ValueWritten(changed)
	}
}

func hookDeltaPublished(inserted, removed int) {
	if activeHooks != nil {
		activeHooks.DeltaPublished(inserted, removed)
	}
}

func hookTransactionBegan() {
	if activeHooks != nil {
		activeHooks.TransactionBegan()
	}
}

func hookTransactionEnded() {
	if activeHooks != nil {
		activeHooks.TransactionEnded()
	}
}

func hookSubscriberAdded() {
	if activeHooks != nil {
		activeHooks.SubscriberAdded()
	}
}

func hookSubscriberRemoved() {
	if activeHooks != nil {
		activeHooks.SubscriberRemoved()
	}
}
