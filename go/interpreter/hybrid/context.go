// Package hybrid implements the combined driver of spec.md §5: run the
// JIT first, and only fall back to the CEK reference machine if the JIT
// hits its own internal, bounded-stack recovery signal. The budget is
// never refunded on fallback — whatever the JIT spent before overflowing
// stays spent, and CEK continues from the same starting term against
// whatever remains.
package hybrid

import (
	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/tracelog"
)

// bufferingLogger wraps a caller's real Logger and buffers every message
// instead of forwarding it immediately. It is the adapted form of the
// teacher's delegate-every-method-but-one wrapper: instead of forwarding
// every TransactionContext method except SelfDestruct, it forwards
// nothing, because a JIT run whose messages have already reached the
// caller can never be un-run if it then overflows its stack — so the
// driver must hold every message behind a gate until it knows the run
// will not be discarded.
type bufferingLogger struct {
	inner uplc.Logger
	buf   tracelog.SliceLogger
}

func newBufferingLogger(inner uplc.Logger) *bufferingLogger {
	return &bufferingLogger{inner: inner}
}

func (b *bufferingLogger) Log(message string) {
	b.buf.Log(message)
}

// commit forwards every buffered message to the wrapped logger, in order,
// and clears the buffer. Called once the driver knows the run that
// produced these messages is the one whose result it is returning.
func (b *bufferingLogger) commit() {
	if b.inner == nil {
		b.buf.Messages = nil
		return
	}
	b.buf.Flush(b.inner)
}

// discard drops every buffered message without forwarding them. Called
// when the JIT run that produced them is being thrown away in favor of a
// CEK re-run.
func (b *bufferingLogger) discard() {
	b.buf.Messages = nil
}
