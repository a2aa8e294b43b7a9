// Package metrics exposes the Prometheus instrumentation every evaluator
// can optionally report through: step counts, budget spent, error kinds,
// and how often the hybrid driver falls back from the JIT to CEK. None of
// this is required for a correct evaluation — it is ambient
// instrumentation, wired the same way the teacher's go.mod pulls in
// prometheus/client_golang, not a spec.md requirement.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/uplc-eval/uplc/go/uplc"
)

// Collector bundles the counters a Run call can report through. The zero
// value is unusable; construct one with NewCollector.
type Collector struct {
	stepsTotal       *prometheus.CounterVec
	budgetSpent      *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	jitFallbackTotal prometheus.Counter
}

// NewCollector builds a Collector and registers its metrics against reg.
// Passing prometheus.NewRegistry() (rather than the global DefaultRegisterer)
// keeps tests from colliding over global registration.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		stepsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uplc_steps_total",
			Help: "Number of Compute/Return transitions charged, by step kind.",
		}, []string{"step"}),
		budgetSpent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uplc_budget_spent",
			Help: "Cumulative execution budget spent, by resource kind (cpu, mem).",
		}, []string{"resource"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uplc_errors_total",
			Help: "Number of evaluations that failed, by error kind.",
		}, []string{"kind"}),
		jitFallbackTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uplc_jit_fallback_total",
			Help: "Number of evaluations where the hybrid driver fell back from the JIT to CEK.",
		}),
	}
	reg.MustRegister(c.stepsTotal, c.budgetSpent, c.errorsTotal, c.jitFallbackTotal)
	return c
}

// ObserveStep records one charged step transition.
func (c *Collector) ObserveStep(kind uplc.StepKind) {
	c.stepsTotal.WithLabelValues(kind.String()).Inc()
}

// ObserveSpend records a successful Budget.Spend call's resource cost.
func (c *Collector) ObserveSpend(cpu, mem uplc.Gas) {
	c.budgetSpent.WithLabelValues("cpu").Add(float64(cpu))
	c.budgetSpent.WithLabelValues("mem").Add(float64(mem))
}

// ObserveError records a failed evaluation, keyed by a short error-kind
// label (e.g. "out_of_budget", "user_error", "stack_overflow") rather than
// the full error string, to keep cardinality bounded.
func (c *Collector) ObserveError(kind string) {
	c.errorsTotal.WithLabelValues(kind).Inc()
}

// ObserveJITFallback records one hybrid-driver fallback from JIT to CEK.
func (c *Collector) ObserveJITFallback() {
	c.jitFallbackTotal.Inc()
}

// ErrorKind classifies err into one of the bounded label values
// ObserveError expects, defaulting to "other" for anything not recognized.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, uplc.ErrOutOfBudget):
		return "out_of_budget"
	case errors.Is(err, uplc.ErrUserError):
		return "user_error"
	case errors.Is(err, uplc.ErrNonFunctionApplied):
		return "non_function_applied"
	case errors.Is(err, uplc.ErrNonPolymorphicInstantiation):
		return "non_polymorphic_instantiation"
	case errors.Is(err, uplc.ErrMalformedProgram):
		return "malformed_program"
	case errors.Is(err, uplc.ErrUnknownBuiltin):
		return "unknown_builtin"
	case uplc.IsStackOverflow(err):
		return "stack_overflow"
	default:
		return "other"
	}
}
