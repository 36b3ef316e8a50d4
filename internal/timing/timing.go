// Package timing measures the phases of a completion request for debug logs.
package timing

import (
	"fmt"
	"strings"
	"time"
)

type mark struct {
	label   string
	elapsed time.Duration
}

// Timer records labelled checkpoints relative to its creation
type Timer struct {
	start time.Time
	marks []mark
}

// NewTimer creates a timer starting now
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Mark records a checkpoint and returns the time elapsed so far
func (t *Timer) Mark(label string) time.Duration {
	elapsed := time.Since(t.start)
	t.marks = append(t.marks, mark{label: label, elapsed: elapsed})
	return elapsed
}

// Elapsed returns the time since the timer was created
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Get returns the latest checkpoint recorded under label
func (t *Timer) Get(label string) (time.Duration, bool) {
	for i := len(t.marks) - 1; i >= 0; i-- {
		if t.marks[i].label == label {
			return t.marks[i].elapsed, true
		}
	}
	return 0, false
}

// Summary formats the total and every checkpoint in milliseconds,
// e.g. "Total: 1.250ms (load: 1.100ms, resolve: 1.240ms)"
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %s", millis(t.Elapsed()))

	if len(t.marks) == 0 {
		return b.String()
	}

	b.WriteString(" (")
	for i, m := range t.marks {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", m.label, millis(m.elapsed))
	}
	b.WriteString(")")

	return b.String()
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
