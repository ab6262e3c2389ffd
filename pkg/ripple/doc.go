// Package ripple is a reactive state-propagation core: observable value and
// set containers that notify subscribers of changes, transactional batching
// that collapses a group of mutations into at most one delivered change per
// subscriber, and incrementally maintained derived sets.
//
// # Core Types
//
// Value[T] is an updatable observable value:
//
//	temp := NewValue(20.0)
//	current := temp.Value()  // Read
//	temp.Set(21.5)           // Write (notifies subscribers)
//	temp.Update(func(t float64) float64 { return t + 0.5 })
//
// MutableSet[T] is an observable set whose subscribers receive
// inserted/removed deltas:
//
//	ids := NewMutableSet[int]()
//	ids.Insert(1, 2, 3)
//	ids.Subscribe(SetObserverFuncs[int]{
//	    Change: func(d Delta[int]) { fmt.Println(d.Inserted.Slice()) },
//	})
//
// FlatMap maintains the deduplicated union of a one-to-many transform over a
// source set, updating in O(changed elements) rather than recomputing:
//
//	derived := FlatMap(ids, func(n int) []int { return []int{n, n + 1} })
//	defer derived.Close()
//
// Bind keeps two updatable values synchronized in both directions, using an
// equality test to terminate the write-back cycle after a single hop:
//
//	conn := Bind(celsiusMirror, celsius)
//	defer conn.Close()
//
// # Transactions
//
// Mutations performed inside WithTransaction are coalesced and delivered as
// at most one change when the outermost transaction ends:
//
//	ids.WithTransaction(func() {
//	    ids.Remove(1)
//	    ids.Insert(4, 5)
//	})  // Subscribers see one delta: {inserted: 4 5, removed: 1}
//
// Transactions nest; only the outermost end triggers delivery. Subscribers
// observe every change bracketed by begin/end transaction markers.
//
// # Delivery Model
//
// Notification delivery is synchronous and single-threaded: subscribers run
// on the mutating goroutine, in registration order, before the mutating call
// returns. Writes performed inside a notification handler are legal and are
// delivered before the enclosing transaction completes. The package does not
// schedule across goroutines; callers that share observables between
// goroutines must provide their own serialization.
package ripple
