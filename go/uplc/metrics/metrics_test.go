package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/uplc-eval/uplc/go/uplc"
)

func TestObserveStepIncrementsLabeledCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveStep(uplc.StepConst)
	c.ObserveStep(uplc.StepConst)
	c.ObserveStep(uplc.StepApply)

	if got := testutil.ToFloat64(c.stepsTotal.WithLabelValues("Const")); got != 2 {
		t.Fatalf("got %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.stepsTotal.WithLabelValues("Apply")); got != 1 {
		t.Fatalf("got %v, want 1", got)
	}
}

func TestObserveJITFallback(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveJITFallback()
	c.ObserveJITFallback()

	if got := testutil.ToFloat64(c.jitFallbackTotal); got != 2 {
		t.Fatalf("got %v, want 2", got)
	}
}

func TestErrorKindClassification(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{uplc.ErrOutOfBudget, "out_of_budget"},
		{uplc.ErrUserError, "user_error"},
		{uplc.ErrStackOverflow(), "stack_overflow"},
		{nil, ""},
	}
	for _, c := range cases {
		if got := ErrorKind(c.err); got != c.want {
			t.Fatalf("ErrorKind(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}
