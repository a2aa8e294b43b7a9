// Package tracelog provides the two concrete uplc.Logger implementations
// every evaluator and its tests are driven by: a discard-everything logger
// for production paths that do not need trace output, and a buffering
// logger for tests and for the hybrid driver's "discard partial JIT
// output, replay under CEK" fallback semantics (§4.4).
package tracelog

import (
	"fmt"
	"strings"

	"github.com/dsnet/golib/unitconv"
)

// NullLogger discards every message, matching spec.md §6's "must never
// fail" requirement trivially. Callers pass it explicitly; no evaluator
// substitutes it for a nil Logger.
type NullLogger struct{}

func (NullLogger) Log(string) {}

// SliceLogger buffers every message in order. Used by tests asserting on
// trace output, and by the hybrid driver, which buffers a JIT run's trace
// output and only forwards it to the caller's real logger once the JIT run
// is known to have completed without hitting its internal stack-overflow
// recovery signal.
type SliceLogger struct {
	Messages []string
}

func (l *SliceLogger) Log(message string) {
	l.Messages = append(l.Messages, message)
}

// Flush replays every buffered message into dst, in order, then clears the
// buffer. Used by the hybrid driver once it commits to the JIT run's
// result.
func (l *SliceLogger) Flush(dst interface{ Log(string) }) {
	for _, m := range l.Messages {
		dst.Log(m)
	}
	l.Messages = nil
}

// FormatBudgetSummary renders a human-readable one-line summary of an
// execution budget's memory usage, e.g. for a CLI trace dump. Byte-count
// formatting is delegated to unitconv the way the rest of the example
// pack does for human-facing size output, rather than hand-rolling a
// KiB/MiB table.
func FormatBudgetSummary(cpuSteps, memUnits int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "cpu=%d mem=%s", cpuSteps, unitconv.FormatPrefix(float64(memUnits), unitconv.IEC, 1))
	return b.String()
}
