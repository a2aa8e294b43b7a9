// Package ct provides conformance-testing support: a thin wrapper around
// the CEK reference machine's Stepper that an external test harness can
// drive transition-by-transition, plus a randomized term generator used by
// the Agreement property tests (CEK and JIT must produce the same result
// for every well-scoped term). Adapted from the teacher's go/ct-facing
// sfvm/ct.go, which exposed StepN(state, numSteps) so an external
// conformance suite could single-step the EVM interpreter and inspect its
// registers between chunks of work; here the "registers" are the CEK
// machine's context stack, current term, and environment.
package ct

import (
	"github.com/uplc-eval/uplc/go/interpreter/cek"
	"github.com/uplc-eval/uplc/go/uplc"
)

// NewStepper starts a steppable CEK run of term, the conformance-testing
// entry point analogous to the teacher's NewConformanceTestingTarget +
// ctAdapter.StepN pair, collapsed into the single object CEK already
// exposes for this purpose.
func NewStepper(interp *cek.Interpreter, term uplc.Term, budget uplc.Budget, logger uplc.Logger, params *uplc.MachineParameters) (*cek.Stepper, error) {
	return cek.NewStepper(interp, term, budget, logger, params)
}

// StepN is a convenience one-shot form: build a fresh Stepper and advance
// it by numSteps in a single call, returning whether it finished and its
// final value if so. Matches the teacher's StepN(state, numSteps) call
// shape for callers that don't need to keep the Stepper around between
// calls.
func StepN(interp *cek.Interpreter, term uplc.Term, budget uplc.Budget, logger uplc.Logger, params *uplc.MachineParameters, numSteps int) (done bool, value uplc.Value, err error) {
	s, err := NewStepper(interp, term, budget, logger, params)
	if err != nil {
		return true, uplc.Value{}, err
	}
	done, err = s.StepN(numSteps)
	return done, s.Value(), err
}
