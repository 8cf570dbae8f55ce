// Package telemetry provides hierarchical timing for command phases. A
// collector travels through context so the ledger and report code can be
// instrumented without changing signatures; when no collector is present,
// timing is a no-op.
package telemetry

import (
	"context"
	"io"
)

type contextKey string

const (
	collectorKey contextKey = "collector"
	rootTimerKey contextKey = "rootTimer"
)

// Collector gathers operation timings and reports them as a tree.
type Collector interface {
	// Start begins timing a top-level operation.
	Start(name string) Timer

	// Report writes the collected timings.
	Report(w io.Writer)
}

// Timer tracks one operation. Nested operations hang off Child.
type Timer interface {
	End()
	Child(name string) Timer
}

// WithCollector attaches a collector to the context.
func WithCollector(ctx context.Context, c Collector) context.Context {
	return context.WithValue(ctx, collectorKey, c)
}

// FromContext returns the context's collector, or a no-op one.
func FromContext(ctx context.Context) Collector {
	if c, ok := ctx.Value(collectorKey).(Collector); ok {
		return c
	}
	return noopCollector{}
}

// WithRootTimer attaches the command's root timer so nested phases can
// hang off it.
func WithRootTimer(ctx context.Context, t Timer) context.Context {
	return context.WithValue(ctx, rootTimerKey, t)
}

// StartPhase starts a timer nested under the context's root timer, or a
// no-op timer when telemetry is disabled.
func StartPhase(ctx context.Context, name string) Timer {
	if t, ok := ctx.Value(rootTimerKey).(Timer); ok {
		return t.Child(name)
	}
	return noopTimer{}
}

type noopCollector struct{}

func (noopCollector) Start(string) Timer { return noopTimer{} }
func (noopCollector) Report(io.Writer)   {}

type noopTimer struct{}

func (noopTimer) End()               {}
func (noopTimer) Child(string) Timer { return noopTimer{} }
