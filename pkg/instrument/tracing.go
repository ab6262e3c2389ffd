package instrument

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/ripple/pkg/ripple"
)

// Default tracer name for ripple transactions.
const defaultTracerName = "ripple"

// TraceConfig configures transaction tracing.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "ripple").
	TracerName string

	// Attributes are added to every transaction span.
	Attributes []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TraceOption configures transaction tracing.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithAttributes adds constant attributes to every transaction span.
func WithAttributes(attrs ...attribute.KeyValue) TraceOption {
	return func(c *TraceConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// TraceTransaction runs body inside a transaction on tx, wrapped in an
// OpenTelemetry span named "ripple.tx". The span records the caller-supplied
// transaction name and ends when the outermost EndTransaction has returned,
// so the span duration covers the full synchronous delivery cascade.
//
// Example:
//
//	instrument.TraceTransaction(ctx, "import-batch", ids, func() {
//	    ids.Remove(stale...)
//	    ids.Insert(fresh...)
//	})
func TraceTransaction(ctx context.Context, name string, tx ripple.Transactional, body func(), opts ...TraceOption) {
	config := TraceConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	attrs := append([]attribute.KeyValue{
		attribute.String("ripple.tx.name", name),
	}, config.Attributes...)

	_, span := config.tracer.Start(ctx, "ripple.tx", trace.WithAttributes(attrs...))
	defer span.End()

	func() {
		tx.BeginTransaction()
		defer tx.EndTransaction()
		body()
	}()

	span.SetStatus(codes.Ok, "")
}
