package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/nativedev/internal/core/domain"
)

// Provider owns the tracer provider of one dev server session.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// NewProvider creates a tracer provider with the given span processors and
// registers it as the global provider. Processors are called synchronously
// when spans end.
func NewProvider(processors ...sdktrace.SpanProcessor) *Provider {
	opts := make([]sdktrace.TracerProviderOption, 0, len(processors))
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return &Provider{tp: tp}
}

// Tracer returns the dev server tracer.
func (p *Provider) Tracer() trace.Tracer {
	return p.tp.Tracer(domain.TracerName)
}

// Shutdown ends the provider and its processors.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
