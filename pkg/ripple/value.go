package ripple

import (
	"reflect"
	"sync"
)

// Value is a mutable observable value container. It implements
// UpdatableValue[T].
//
// Writes are suppressed when the new value compares equal to the current one
// under the configured equality function, so subscribers only hear about
// effective changes. Writes inside WithTransaction are coalesced into at
// most one ValueChanged per outermost transaction; a transaction whose net
// change compares equal to its starting value delivers nothing.
type Value[T any] struct {
	// value is the current value.
	value T

	// mu protects the value.
	mu sync.RWMutex

	// equal is the equality function used to suppress redundant writes.
	// If nil, uses default equality checking.
	equal func(T, T) bool

	subs subscribers[ValueObserver[T]]

	// depth and pending are transaction state; they are only touched on the
	// mutating goroutine (single-threaded delivery model).
	depth   int
	pending *ValueChange[T]
}

// NewValue creates a new observable value with the given initial value.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// WithEqual returns the value configured with a custom equality function.
// This is useful for custom types where reflect.DeepEqual is too expensive
// or has incorrect semantics.
func (v *Value[T]) WithEqual(fn func(T, T) bool) *Value[T] {
	v.equal = fn
	return v
}

// Value returns the current value.
func (v *Value[T]) Value() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set updates the value and notifies subscribers if it changed. Outside a
// transaction the change is delivered immediately, bracketed by an implicit
// begin/end pair; inside one it is coalesced until the outermost end.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	prev := v.value
	changed := !v.equals(prev, next)
	if changed {
		v.value = next
	}
	v.mu.Unlock()

	hookValueWritten(changed)
	if !changed {
		return
	}

	if v.depth > 0 {
		v.coalesce(prev, next)
		return
	}

	v.BeginTransaction()
	v.broadcastChange(ValueChange[T]{Old: prev, New: next})
	v.EndTransaction()
}

// Update atomically reads and updates the value. The function receives the
// current value and returns the new one.
func (v *Value[T]) Update(fn func(T) T) {
	v.mu.RLock()
	current := v.value
	v.mu.RUnlock()
	v.Set(fn(current))
}

// WithTransaction executes body with all resulting change notifications
// deferred until the outermost transaction ends. Nested calls compose.
func (v *Value[T]) WithTransaction(body func()) {
	v.BeginTransaction()
	defer v.EndTransaction()
	body()
}

// BeginTransaction opens a transaction scope. The begin marker is broadcast
// to subscribers only on the outermost open.
func (v *Value[T]) BeginTransaction() {
	if v.depth == 0 {
		for _, o := range v.subs.snapshot() {
			o.BeginTransaction()
		}
		hookTransactionBegan()
	}
	v.depth++
}

// EndTransaction closes a transaction scope. On the outermost close the
// coalesced pending change (if any, and if not a net no-op) is delivered
// before the end marker. An unbalanced call is a no-op (panics in
// DebugMode); the depth never goes negative.
func (v *Value[T]) EndTransaction() {
	if v.depth == 0 {
		if DebugMode {
			panic("[RIPPLE E101] EndTransaction without matching BeginTransaction")
		}
		return
	}
	if v.depth > 1 {
		v.depth--
		return
	}

	// Flush in a loop: a subscriber reacting to the flushed change may
	// write again while the transaction is still closing.
	for {
		p := v.pending
		v.pending = nil
		if p == nil {
			break
		}
		if v.equals(p.Old, p.New) {
			continue
		}
		v.broadcastChange(*p)
	}

	v.depth = 0
	for _, o := range v.subs.snapshot() {
		o.EndTransaction()
	}
	hookTransactionEnded()
}

// Subscribe registers an observer for future changes and returns its
// connection. Observers are notified in registration order.
func (v *Value[T]) Subscribe(o ValueObserver[T]) *Connection {
	sub := v.subs.add(o)
	return NewConnection(func() { v.subs.remove(sub) })
}

// OnChange subscribes a plain function to value changes, ignoring the
// transaction markers.
func (v *Value[T]) OnChange(fn func(ValueChange[T])) *Connection {
	return v.Subscribe(ValueObserverFuncs[T]{Change: fn})
}

// coalesce folds a write performed inside a transaction into the pending
// change record: the oldest old and the newest new survive.
func (v *Value[T]) coalesce(prev, next T) {
	if v.pending == nil {
		v.pending = &ValueChange[T]{Old: prev, New: next}
		return
	}
	v.pending.New = next
}

func (v *Value[T]) broadcastChange(c ValueChange[T]) {
	for _, o := range v.subs.snapshot() {
		o.ValueChanged(c)
	}
}

// equals checks two values with the configured equality function.
func (v *Value[T]) equals(a, b T) bool {
	if v.equal != nil {
		return v.equal(a, b)
	}
	return defaultEqual(a, b)
}

// defaultEqual provides type-appropriate equality checking.
// Uses == for common comparable kinds and reflect.DeepEqual for others.
func defaultEqual[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int8:
		return av == any(b).(int8)
	case int16:
		return av == any(b).(int16)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint8:
		return av == any(b).(uint8)
	case uint16:
		return av == any(b).(uint16)
	case uint32:
		return av == any(b).(uint32)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		// Fall back to reflect.DeepEqual for slices, maps, structs, etc.
		return reflect.DeepEqual(a, b)
	}
}
