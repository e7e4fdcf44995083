// Package tracing provides an OpenTelemetry middleware for agents. Wrap
// any agent with NewTracedAgent and every processed query becomes a span
// carrying the strategy, confidence and reasoning-step count.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tagus/supplysense/pkg/interfaces"
)

const tracerName = "github.com/tagus/supplysense/pkg/tracing"

// TracedAgent wraps an Agent and emits one span per processed query.
// It implements interfaces.Agent, so it can stand in anywhere the
// wrapped agent would.
type TracedAgent struct {
	agent  interfaces.Agent
	tracer trace.Tracer
}

// Option configures a TracedAgent.
type Option func(*TracedAgent)

// WithTracerProvider sets the provider spans are created from. Defaults
// to the global otel provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(t *TracedAgent) {
		t.tracer = tp.Tracer(tracerName)
	}
}

// NewTracedAgent wraps agent with query tracing.
func NewTracedAgent(agent interfaces.Agent, opts ...Option) *TracedAgent {
	traced := &TracedAgent{
		agent:  agent,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(traced)
	}
	return traced
}

// Name returns the wrapped agent's strategy name.
func (t *TracedAgent) Name() string {
	return t.agent.Name()
}

// ProcessQuery delegates to the wrapped agent inside a span named
// "agent.process_query".
func (t *TracedAgent) ProcessQuery(ctx context.Context, query string) (*interfaces.QueryResult, error) {
	ctx, span := t.tracer.Start(ctx, "agent.process_query",
		trace.WithAttributes(
			attribute.String("agent.strategy", t.agent.Name()),
			attribute.String("query.text", query),
		))
	defer span.End()

	result, err := t.agent.ProcessQuery(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64("result.confidence", result.Confidence),
		attribute.Int("result.reasoning_steps", len(result.Thoughts)),
		attribute.Float64("result.elapsed_ms", result.ElapsedMs),
	)
	span.SetStatus(codes.Ok, "")
	return result, nil
}
