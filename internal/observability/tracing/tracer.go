// Package tracing provides OpenTelemetry tracer setup and HTTP middleware
// for distributed tracing across the API server and the publish worker.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the application.
var tracer = otel.Tracer("content-calendar")

// GetTracer returns the global tracer for creating spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "publish-due-items")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}

// Setup installs a tracer provider with the given service name and wires
// W3C trace context propagation. The returned shutdown function flushes
// pending spans and should be deferred from main.
//
// No exporter is attached here; spans stay in-process unless an exporter
// is configured on the provider by the caller. This keeps local runs free
// of collector dependencies while still producing trace IDs for log
// correlation.
func Setup(serviceName string) (func(context.Context) error, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	tracer = otel.Tracer("content-calendar")

	return tp.Shutdown, nil
}
