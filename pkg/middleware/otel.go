package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lectern-dev/lectern/pkg/nav"
)

const defaultTracerName = "lectern"

// TracingConfig configures the OpenTelemetry navigation observer.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "lectern").
	TracerName string

	// Filter determines which navigations to trace. Return false to
	// skip. If nil, all navigations are traced.
	Filter func(kind nav.Kind, location string) bool

	// Attributes extracts extra attributes per navigation.
	Attributes func(kind nav.Kind, location string) []attribute.KeyValue

	tracer trace.Tracer
}

// TracingOption configures the OpenTelemetry navigation observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithFilter sets a navigation filter.
func WithFilter(filter func(kind nav.Kind, location string) bool) TracingOption {
	return func(c *TracingConfig) {
		c.Filter = filter
	}
}

// WithAttributes sets a custom attribute extractor.
func WithAttributes(fn func(kind nav.Kind, location string) []attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.Attributes = fn
	}
}

// Tracing is a nav.Observer emitting one span per navigation. The span
// is created at finish time, backdated by the navigation's duration, so
// no per-navigation state needs to be correlated between callbacks.
//
// The tracer comes from the global OpenTelemetry provider; configure it
// in main() before serving.
type Tracing struct {
	config TracingConfig
}

// NewTracing creates the observer.
func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)
	return &Tracing{config: config}
}

// NavigationStarted implements nav.Observer.
func (t *Tracing) NavigationStarted(nav.Kind, string) {}

// NavigationFinished implements nav.Observer.
func (t *Tracing) NavigationFinished(kind nav.Kind, location string, status nav.Status, err error, elapsed time.Duration) {
	if t.config.Filter != nil && !t.config.Filter(kind, location) {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("nav.kind", kind.String()),
		attribute.String("nav.location", location),
		attribute.String("nav.status", status.String()),
	}
	if t.config.Attributes != nil {
		attrs = append(attrs, t.config.Attributes(kind, location)...)
	}

	_, span := t.config.tracer.Start(
		context.Background(),
		"nav."+kind.String(),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(time.Now().Add(-elapsed)),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
