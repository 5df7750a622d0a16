package jwtverifier

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/authkeep/go-jwt-verifier/validator"
)

// Tracer and Span alias the validator package's tracing interfaces so a
// tracer built here plugs straight into the validation pipeline.
type (
	Tracer = validator.Tracer
	Span   = validator.Span
)

// NoopTracer discards all spans.
type NoopTracer struct{}

func (t *NoopTracer) StartSpan(operationName string, opts ...interface{}) Span {
	return &NoopSpan{}
}

type NoopSpan struct{}

func (s *NoopSpan) Finish()                              {}
func (s *NoopSpan) SetTag(key string, value interface{}) {}
func (s *NoopSpan) LogFields(fields ...interface{})      {}

// OpenTelemetryTracer implements Tracer on top of OpenTelemetry.
type OpenTelemetryTracer struct {
	tracer oteltrace.Tracer
}

func NewOpenTelemetryTracer(tracer oteltrace.Tracer) Tracer {
	return &OpenTelemetryTracer{tracer: tracer}
}

func (t *OpenTelemetryTracer) StartSpan(operationName string, opts ...interface{}) Span {
	_, span := t.tracer.Start(context.Background(), operationName)
	return &OpenTelemetrySpan{span: span}
}

// OpenTelemetrySpan wraps an OpenTelemetry span.
type OpenTelemetrySpan struct {
	span oteltrace.Span
}

func (s *OpenTelemetrySpan) Finish() {
	s.span.End()
}

func (s *OpenTelemetrySpan) SetTag(key string, value interface{}) {
	s.span.SetAttributes(attribute.String(key, fmt.Sprint(value)))
}

// LogFields is accepted for interface compatibility; OpenTelemetry has
// no direct field-log equivalent on a live span.
func (s *OpenTelemetrySpan) LogFields(fields ...interface{}) {}
