package ripple

import (
	"strings"
	"testing"
)

func TestValueBasic(t *testing.T) {
	count := NewValue(0)

	if count.Value() != 0 {
		t.Errorf("expected initial value 0, got %d", count.Value())
	}

	count.Set(5)
	if count.Value() != 5 {
		t.Errorf("expected value 5, got %d", count.Value())
	}

	count.Update(func(n int) int { return n * 2 })
	if count.Value() != 10 {
		t.Errorf("expected value 10, got %d", count.Value())
	}
}

func TestValueNotifiesOnChange(t *testing.T) {
	count := NewValue(0)
	rec := &valueRecorder[int]{}
	count.Subscribe(rec)

	count.Set(1)
	if len(rec.changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(rec.changes))
	}
	if rec.changes[0].Old != 0 || rec.changes[0].New != 1 {
		t.Errorf("expected change 0->1, got %d->%d", rec.changes[0].Old, rec.changes[0].New)
	}

	// Every bare change is bracketed by one begin/end pair.
	if rec.begins != 1 || rec.ends != 1 {
		t.Errorf("expected 1 begin and 1 end, got %d/%d", rec.begins, rec.ends)
	}
}

func TestValueSuppressesRedundantWrites(t *testing.T) {
	count := NewValue(1)
	rec := &valueRecorder[int]{}
	count.Subscribe(rec)

	count.Set(1)
	if len(rec.changes) != 0 {
		t.Errorf("same value should not notify, got %d changes", len(rec.changes))
	}

	count.Set(2)
	count.Set(2)
	if len(rec.changes) != 1 {
		t.Errorf("expected 1 change, got %d", len(rec.changes))
	}
}

func TestValueCustomEquality(t *testing.T) {
	name := NewValue("go").WithEqual(strings.EqualFold)
	rec := &valueRecorder[string]{}
	name.Subscribe(rec)

	// Equal under the custom test: suppressed.
	name.Set("GO")
	if len(rec.changes) != 0 {
		t.Errorf("case-insensitive equal write should be suppressed, got %d changes", len(rec.changes))
	}

	name.Set("gopher")
	if len(rec.changes) != 1 {
		t.Errorf("expected 1 change, got %d", len(rec.changes))
	}
}

func TestValueObserversNotifiedInRegistrationOrder(t *testing.T) {
	count := NewValue(0)

	var order []string
	count.OnChange(func(ValueChange[int]) { order = append(order, "a") })
	count.OnChange(func(ValueChange[int]) { order = append(order, "b") })
	count.OnChange(func(ValueChange[int]) { order = append(order, "c") })

	count.Set(1)
	if got := strings.Join(order, ""); got != "abc" {
		t.Errorf("expected registration order abc, got %q", got)
	}
}

func TestValueUnsubscribePreservesOrder(t *testing.T) {
	count := NewValue(0)

	var order []string
	connA := count.OnChange(func(ValueChange[int]) { order = append(order, "a") })
	count.OnChange(func(ValueChange[int]) { order = append(order, "b") })
	count.OnChange(func(ValueChange[int]) { order = append(order, "c") })

	connA.Close()
	count.Set(1)
	if got := strings.Join(order, ""); got != "bc" {
		t.Errorf("expected remaining order bc, got %q", got)
	}
}

func TestValueConnectionCloseIsIdempotent(t *testing.T) {
	count := NewValue(0)
	rec := &valueRecorder[int]{}
	conn := count.Subscribe(rec)

	conn.Close()
	conn.Close()

	count.Set(1)
	if len(rec.changes) != 0 {
		t.Errorf("closed subscriber should not be notified, got %d changes", len(rec.changes))
	}
	if count.subs.count() != 0 {
		t.Errorf("expected 0 subscribers after close, got %d", count.subs.count())
	}
}

func TestValueReentrantWriteDuringDispatch(t *testing.T) {
	count := NewValue(0)
	rec := &valueRecorder[int]{}

	// A subscriber that bumps the value once more on the first change.
	count.OnChange(func(c ValueChange[int]) {
		if c.New == 1 {
			count.Set(2)
		}
	})
	count.Subscribe(rec)

	count.Set(1)

	if count.Value() != 2 {
		t.Fatalf("expected final value 2, got %d", count.Value())
	}
	// Both changes delivered inside the one outer bracket.
	if len(rec.changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(rec.changes))
	}
	if rec.changes[1].Old != 1 || rec.changes[1].New != 2 {
		t.Errorf("expected second change 1->2, got %d->%d", rec.changes[1].Old, rec.changes[1].New)
	}
	if rec.begins != 1 || rec.ends != 1 {
		t.Errorf("expected one bracket, got %d begins / %d ends", rec.begins, rec.ends)
	}
}

func TestValueDeepEqualFallback(t *testing.T) {
	type point struct{ X, Y []int }
	p := NewValue(point{X: []int{1}, Y: []int{2}})
	rec := &valueRecorder[point]{}
	p.Subscribe(rec)

	p.Set(point{X: []int{1}, Y: []int{2}})
	if len(rec.changes) != 0 {
		t.Errorf("deep-equal write should be suppressed, got %d changes", len(rec.changes))
	}

	p.Set(point{X: []int{3}, Y: []int{2}})
	if len(rec.changes) != 1 {
		t.Errorf("expected 1 change, got %d", len(rec.changes))
	}
}
