package instrument

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/ripple/pkg/ripple"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func TestCollectorCountsValueWrites(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := Metrics(WithRegistry(reg))
	ripple.SetHooks(c)
	t.Cleanup(func() { ripple.SetHooks(nil) })

	v := ripple.NewValue(0)
	v.Set(1) // changed
	v.Set(1) // suppressed
	v.Set(2) // changed

	changed := c.valueWrites.WithLabelValues("true")
	suppressed := c.valueWrites.WithLabelValues("false")
	if got := metricCounterValue(t, changed); got != 2 {
		t.Errorf("expected 2 changed writes, got %v", got)
	}
	if got := metricCounterValue(t, suppressed); got != 1 {
		t.Errorf("expected 1 suppressed write, got %v", got)
	}
}

func TestCollectorCountsDeltasAndTransactions(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := Metrics(WithRegistry(reg))
	ripple.SetHooks(c)
	t.Cleanup(func() { ripple.SetHooks(nil) })

	ids := ripple.NewMutableSet[int]()
	ids.Insert(1, 2)

	ids.WithTransaction(func() {
		ids.Insert(3)
		ids.Remove(1)
	})

	if got := metricCounterValue(t, c.setDeltas); got != 2 {
		t.Errorf("expected 2 delivered deltas, got %v", got)
	}
	inserted := c.deltaElements.WithLabelValues("inserted")
	removed := c.deltaElements.WithLabelValues("removed")
	if got := metricCounterValue(t, inserted); got != 3 {
		t.Errorf("expected 3 inserted elements, got %v", got)
	}
	if got := metricCounterValue(t, removed); got != 1 {
		t.Errorf("expected 1 removed element, got %v", got)
	}
	// One implicit transaction for the bare insert, one explicit.
	if got := metricCounterValue(t, c.transactions); got != 2 {
		t.Errorf("expected 2 outermost transactions, got %v", got)
	}
}

func TestCollectorTracksActiveSubscriptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := Metrics(WithRegistry(reg))
	ripple.SetHooks(c)
	t.Cleanup(func() { ripple.SetHooks(nil) })

	v := ripple.NewValue(0)
	conn := v.OnChange(func(ripple.ValueChange[int]) {})
	if got := metricGaugeValue(t, c.activeSubscriptions); got != 1 {
		t.Errorf("expected gauge 1 after subscribe, got %v", got)
	}

	conn.Close()
	if got := metricGaugeValue(t, c.activeSubscriptions); got != 0 {
		t.Errorf("expected gauge 0 after close, got %v", got)
	}
}

func TestCollectorUsesConfiguredNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	Metrics(WithRegistry(reg), WithNamespace("app"), WithSubsystem("state"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	found := false
	for _, fam := range families {
		if fam.GetName() == "app_state_transactions_total" {
			found = true
		}
	}
	if !found {
		t.Error("expected app_state_transactions_total to be registered")
	}
}
