package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestFromContextDefaultsToNoop(t *testing.T) {
	c := FromContext(context.Background())

	// Must be safe to use without panicking or writing anything.
	timer := c.Start("anything")
	timer.Child("nested").End()
	timer.End()

	var buf strings.Builder
	c.Report(&buf)
	assert.Equal(t, "", buf.String())
}

func TestWithCollectorRoundTrip(t *testing.T) {
	c := NewTimingCollector()
	ctx := WithCollector(context.Background(), c)
	assert.Equal[Collector](t, c, FromContext(ctx))
}

func TestStartPhaseWithoutRootTimer(t *testing.T) {
	timer := StartPhase(context.Background(), "load ledger")
	timer.End()
}

func TestReportTree(t *testing.T) {
	c := NewTimingCollector()

	root := c.Start("calc")
	ctx := WithRootTimer(context.Background(), root)

	load := StartPhase(ctx, "load ledger")
	load.End()
	compute := StartPhase(ctx, "compute")
	compute.Child("roll").End()
	compute.End()
	root.End()

	var buf strings.Builder
	c.Report(&buf)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	assert.Equal(t, 4, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "calc: "))
	assert.True(t, strings.HasPrefix(lines[1], "├─ load ledger: "))
	assert.True(t, strings.HasPrefix(lines[2], "└─ compute: "))
	assert.True(t, strings.HasPrefix(lines[3], "   └─ roll: "))
}

func TestDurationFormatting(t *testing.T) {
	assert.Equal(t, "0ms", formatDuration(0))
	assert.Equal(t, "250ms", formatDuration(250_000_000))
	assert.Equal(t, "1.50s", formatDuration(1_500_000_000))
}
