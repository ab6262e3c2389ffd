package devtools

import "github.com/vango-dev/ripple/pkg/ripple"

// Watch registers an observable value under name: its current value appears
// in /snapshot and every change is streamed to /live clients. The returned
// connection stops the stream and removes the snapshot entry as a unit.
func Watch[T any](s *Server, name string, v ripple.ObservableValue[T]) *ripple.Connection {
	s.register(name, func() any { return v.Value() })

	sub := v.Subscribe(ripple.ValueObserverFuncs[T]{
		Change: func(c ripple.ValueChange[T]) {
			s.broadcast(Event{
				Observable: name,
				Kind:       EventValue,
				Old:        c.Old,
				New:        c.New,
			})
		},
	})

	return ripple.NewConnection(func() {
		sub.Close()
		s.unregister(name)
	})
}

// WatchSet registers an observable set under name, streaming its deltas.
func WatchSet[T comparable](s *Server, name string, set ripple.ObservableSet[T]) *ripple.Connection {
	s.register(name, func() any { return anySlice(set.Contents()) })

	sub := set.Subscribe(ripple.SetObserverFuncs[T]{
		Change: func(d ripple.Delta[T]) {
			s.broadcast(Event{
				Observable: name,
				Kind:       EventSet,
				Inserted:   anySlice(d.Inserted),
				Removed:    anySlice(d.Removed),
			})
		},
	})

	return ripple.NewConnection(func() {
		sub.Close()
		s.unregister(name)
	})
}

func anySlice[T comparable](s ripple.Set[T]) []any {
	out := make([]any, 0, s.Len())
	for e := range s {
		out = append(out, e)
	}
	return out
}
