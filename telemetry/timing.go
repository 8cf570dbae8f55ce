package telemetry

import (
	"fmt"
	"io"
	"time"
)

// TimingCollector records wall-clock durations in a tree. It is meant for
// a single command invocation; there is no concurrency to guard against.
type TimingCollector struct {
	roots []*span
}

type span struct {
	name     string
	start    time.Time
	end      time.Time
	children []*span
}

// NewTimingCollector creates an empty collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins a top-level span.
func (c *TimingCollector) Start(name string) Timer {
	s := &span{name: name, start: time.Now()}
	c.roots = append(c.roots, s)
	return (*spanTimer)(s)
}

// Report writes the span tree, one line per span.
//
//	calc: 12ms
//	├─ load ledger: 8ms
//	└─ compute: 1ms
func (c *TimingCollector) Report(w io.Writer) {
	for _, root := range c.roots {
		fmt.Fprintf(w, "%s: %s\n", root.name, formatDuration(root.duration()))
		writeChildren(w, root, "")
	}
}

func writeChildren(w io.Writer, parent *span, prefix string) {
	for i, child := range parent.children {
		branch, extension := "├─ ", "│  "
		if i == len(parent.children)-1 {
			branch, extension = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, child.name, formatDuration(child.duration()))
		writeChildren(w, child, prefix+extension)
	}
}

type spanTimer span

// End stops the span.
func (t *spanTimer) End() {
	t.end = time.Now()
}

// Child starts a nested span.
func (t *spanTimer) Child(name string) Timer {
	s := &span{name: name, start: time.Now()}
	t.children = append(t.children, s)
	return (*spanTimer)(s)
}

func (s *span) duration() time.Duration {
	end := s.end
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(s.start)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}
