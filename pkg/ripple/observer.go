package ripple

// ValueChange is the change record delivered to value observers.
type ValueChange[T any] struct {
	Old T
	New T
}

// Delta is the change record delivered to set observers. Inserted and
// Removed are disjoint: an element whose net membership did not change over
// the delivering transaction appears in neither.
type Delta[T comparable] struct {
	Inserted Set[T]
	Removed  Set[T]
}

// IsEmpty reports whether the delta carries no changes.
func (d Delta[T]) IsEmpty() bool {
	return len(d.Inserted) == 0 && len(d.Removed) == 0
}

// ValueObserver receives value-change notifications. Every ValueChanged call
// is bracketed by a BeginTransaction/EndTransaction pair; nested transactions
// on the source are collapsed, so observers see exactly one bracket per
// outermost transaction.
type ValueObserver[T any] interface {
	BeginTransaction()
	ValueChanged(ValueChange[T])
	EndTransaction()
}

// SetObserver receives set-change notifications under the same transaction
// bracketing as ValueObserver.
type SetObserver[T comparable] interface {
	BeginTransaction()
	SetChanged(Delta[T])
	EndTransaction()
}

// ValueObserverFuncs adapts plain functions to ValueObserver. Nil fields are
// no-ops.
type ValueObserverFuncs[T any] struct {
	Begin  func()
	Change func(ValueChange[T])
	End    func()
}

func (f ValueObserverFuncs[T]) BeginTransaction() {
	if f.Begin != nil {
		f.Begin()
	}
}

func (f ValueObserverFuncs[T]) ValueChanged(c ValueChange[T]) {
	if f.Change != nil {
		f.Change(c)
	}
}

func (f ValueObserverFuncs[T]) EndTransaction() {
	if f.End != nil {
		f.End()
	}
}

// SetObserverFuncs adapts plain functions to SetObserver. Nil fields are
// no-ops.
type SetObserverFuncs[T comparable] struct {
	Begin  func()
	Change func(Delta[T])
	End    func()
}

func (f SetObserverFuncs[T]) BeginTransaction() {
	if f.Begin != nil {
		f.Begin()
	}
}

func (f SetObserverFuncs[T]) SetChanged(d Delta[T]) {
	if f.Change != nil {
		f.Change(d)
	}
}

func (f SetObserverFuncs[T]) EndTransaction() {
	if f.End != nil {
		f.End()
	}
}

// Transactional is the transaction scope shared by every observable:
// BeginTransaction/EndTransaction pairs nest, and only the outermost pair is
// broadcast to observers.
type Transactional interface {
	BeginTransaction()
	EndTransaction()
}

// ObservableValue is the read side of a value container: the current value
// plus a subscription point for future changes.
type ObservableValue[T any] interface {
	Value() T
	Subscribe(ValueObserver[T]) *Connection
}

// UpdatableValue unifies read and write access to a mutable observable
// value. Writes trigger the same notification path as any other mutation
// source.
type UpdatableValue[T any] interface {
	ObservableValue[T]
	Transactional
	Set(T)
	WithTransaction(func())
}

// ObservableSet is the read side of a set container.
type ObservableSet[T comparable] interface {
	Contents() Set[T]
	Contains(T) bool
	Len() int
	Subscribe(SetObserver[T]) *Connection
}
