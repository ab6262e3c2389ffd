package ripple

// BindFunc establishes bidirectional synchronization between two updatable
// values. src is authoritative at bind time: dst is set to src's current
// value immediately. Afterwards a write to either side is propagated to the
// other, synchronously, unless eq already holds between the new value and
// the peer's current one.
//
// The equality test is the sole cycle breaker: when src changes to v, dst is
// written; dst's notification runs the backward guard, which finds src
// already equal to v and stops. One write therefore triggers exactly one
// cascading write, never a loop. eq must be pure, total, and symmetric, and
// should agree with the values' own write-suppression equality, or
// redundant-but-harmless writes occur.
//
// The returned Connection releases both directions as a unit; after Close
// the values evolve independently and a fresh BindFunc call is needed to
// re-couple them.
func BindFunc[T any](src, dst UpdatableValue[T], eq func(T, T) bool) *Connection {
	dst.Set(src.Value())

	forward := src.Subscribe(ValueObserverFuncs[T]{
		Change: func(c ValueChange[T]) {
			if !eq(c.New, dst.Value()) {
				dst.Set(c.New)
			}
		},
	})
	backward := dst.Subscribe(ValueObserverFuncs[T]{
		Change: func(c ValueChange[T]) {
			if !eq(c.New, src.Value()) {
				src.Set(c.New)
			}
		},
	})

	return NewConnection(func() {
		backward.Close()
		forward.Close()
	})
}

// Bind is the comparable convenience form of BindFunc, using ==.
func Bind[T comparable](src, dst UpdatableValue[T]) *Connection {
	return BindFunc(src, dst, func(a, b T) bool { return a == b })
}
