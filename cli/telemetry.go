package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/alecthomas/kong"

	"github.com/mholmer/giftlog/telemetry"
)

// setupTelemetry wires a timing collector into the returned context when
// the --telemetry flag is set. The returned report function is safe to
// call more than once; it writes the timing tree to stderr.
func setupTelemetry(ctx *kong.Context, globals *Globals, name string) (context.Context, func()) {
	runCtx := context.Background()
	if !globals.Telemetry {
		return runCtx, func() {}
	}

	collector := telemetry.NewTimingCollector()
	runCtx = telemetry.WithCollector(runCtx, collector)
	rootTimer := collector.Start(name)
	runCtx = telemetry.WithRootTimer(runCtx, rootTimer)

	var once sync.Once
	report := func() {
		once.Do(func() {
			rootTimer.End()
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr)
		})
	}
	return runCtx, report
}
