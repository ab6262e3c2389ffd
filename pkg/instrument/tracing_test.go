package instrument

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/ripple/pkg/ripple"
)

func TestTraceTransactionBracketsTheBody(t *testing.T) {
	v := ripple.NewValue(0)
	var changes []ripple.ValueChange[int]
	v.OnChange(func(c ripple.ValueChange[int]) { changes = append(changes, c) })

	// Without an SDK installed the global tracer is a no-op; the transaction
	// semantics must hold regardless.
	TraceTransaction(context.Background(), "bump", v, func() {
		v.Set(1)
		v.Set(2)
	})

	if len(changes) != 1 {
		t.Fatalf("expected 1 coalesced change, got %d", len(changes))
	}
	if changes[0].New != 2 {
		t.Errorf("expected final value 2, got %d", changes[0].New)
	}
}

func TestTraceTransactionOptions(t *testing.T) {
	ids := ripple.NewMutableSet[int]()

	TraceTransaction(context.Background(), "seed", ids, func() {
		ids.Insert(1, 2, 3)
	}, WithTracerName("custom"), WithAttributes(attribute.String("env", "test")))

	if ids.Len() != 3 {
		t.Errorf("expected 3 elements after traced transaction, got %d", ids.Len())
	}
}
