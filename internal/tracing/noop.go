// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var _ TracingInterface = (*NoopTracer)(nil)

// NoopTracer discards all spans. Meant for tests and for commands that run
// with tracing disabled.
type NoopTracer struct {
	tracer trace.Tracer
}

func NewNoopTracer() *NoopTracer {
	t := new(NoopTracer)
	t.tracer = noop.NewTracerProvider().Tracer("oaa-sync")
	return t
}

func (t *NoopTracer) Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, spanName, opts...)
}
