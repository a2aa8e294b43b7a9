package cek

import "github.com/uplc-eval/uplc/go/uplc"

// Stepper is a paused CEK run that advances a bounded number of
// Compute/Return transitions at a time, returning control to the caller
// in between — the adapted form of the teacher's ctAdapter.StepN, which
// let an external conformance-test suite single-step the EVM interpreter
// and inspect its state after every chunk of work. Here the state being
// stepped is the CEK machine's own context stack, current term, and
// environment, rather than an EVM stack/memory/pc triple.
type Stepper struct {
	m         *machine
	ctx       []frame
	env       *uplc.Env
	cur       uplc.Term
	computing bool
	val       uplc.Value
	done      bool
	err       error
}

// NewStepper starts a CEK evaluation of term, charging the one-time
// startup cost, and returns a Stepper paused before the first transition.
func NewStepper(i *Interpreter, term uplc.Term, budget uplc.Budget, logger uplc.Logger, params *uplc.MachineParameters) (*Stepper, error) {
	if err := i.analysis.scopeCheck(term, nil); err != nil {
		return nil, err
	}
	if err := budget.Spend(uplc.StartUpSpend(), params.StartUp.CPU, params.StartUp.Mem); err != nil {
		return nil, err
	}
	return &Stepper{
		m:         &machine{table: i.table, budget: budget, logger: logger, params: params},
		cur:       term,
		computing: true,
	}, nil
}

// StepN advances up to numSteps single Compute-or-Return transitions, or
// fewer if the run finishes first. It reports whether the run is now
// done. Calling StepN again on an already-done Stepper is a no-op that
// returns the same (true, result-err) pair every time.
func (s *Stepper) StepN(numSteps int) (done bool, err error) {
	if s.done {
		return true, s.err
	}
	for i := 0; i < numSteps; i++ {
		if s.computing {
			next, nextEnv, result, stepDone, err := s.m.compute(&s.ctx, s.env, s.cur)
			if err != nil {
				s.done, s.err = true, err
				return true, err
			}
			if stepDone {
				s.val = result
				s.computing = false
				continue
			}
			s.cur, s.env = next, nextEnv
			continue
		}

		if len(s.ctx) == 0 {
			s.done = true
			return true, nil
		}
		top := s.ctx[len(s.ctx)-1]
		s.ctx = s.ctx[:len(s.ctx)-1]

		next, nextEnv, result, goCompute, err := s.m.ret(&s.ctx, top, s.val)
		if err != nil {
			s.done, s.err = true, err
			return true, err
		}
		if goCompute {
			s.cur, s.env = next, nextEnv
			s.computing = true
			continue
		}
		s.val = result
	}
	return s.done, nil
}

// Value returns the machine's current accumulated value. Only meaningful
// once Done reports true and Err is nil.
func (s *Stepper) Value() uplc.Value { return s.val }

// Done reports whether the run has reached its final Return(ε, v) state
// (or failed).
func (s *Stepper) Done() bool { return s.done }

// Err returns the error the run failed with, or nil if it has not failed
// (including if it has not finished yet).
func (s *Stepper) Err() error { return s.err }
