package ripple

import "sync"

// Connection is the handle for a live subscription or a coupled group of
// subscriptions (a two-way binding releases both of its directions through
// one Connection). Close is idempotent.
type Connection struct {
	once sync.Once
	stop func()
}

// NewConnection wraps a teardown function in a Connection. The function runs
// at most once.
func NewConnection(stop func()) *Connection {
	return &Connection{stop: stop}
}

// Close releases the subscription(s) this connection represents. After Close
// returns, the former subscriber receives no further notifications.
func (c *Connection) Close() {
	c.once.Do(func() {
		if c.stop != nil {
			c.stop()
		}
	})
}

// subscribers is the observer list shared by every observable. Observers are
// notified in registration order; the list is snapshotted before dispatch so
// reentrant subscribe/unsubscribe during a notification is safe.
type subscribers[O any] struct {
	mu   sync.RWMutex
	list []*subscription[O]
}

type subscription[O any] struct {
	observer O
}

func (s *subscribers[O]) add(o O) *subscription[O] {
	sub := &subscription[O]{observer: o}
	s.mu.Lock()
	s.list = append(s.list, sub)
	s.mu.Unlock()
	hookSubscriberAdded()
	return sub
}

// remove splices the subscription out, preserving the registration order of
// the remaining observers.
func (s *subscribers[O]) remove(sub *subscription[O]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.list {
		if existing == sub {
			s.list = append(s.list[:i], s.list[i+1:]...)
			hookSubscriberRemoved()
			return
		}
	}
}

func (s *subscribers[O]) snapshot() []O {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]O, len(s.list))
	for i, sub := range s.list {
		out[i] = sub.observer
	}
	return out
}

func (s *subscribers[O]) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}
