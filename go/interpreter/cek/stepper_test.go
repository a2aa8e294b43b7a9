package cek

import (
	"testing"

	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/cost"
	"github.com/uplc-eval/uplc/go/uplc/tracelog"
)

func TestStepperMatchesRun(t *testing.T) {
	term := uplc.Apply{
		Fun: uplc.Apply{
			Fun: uplc.Builtin{ID: uplc.AddInteger},
			Arg: uplc.Const{Value: uplc.NewInteger(2)},
		},
		Arg: uplc.Const{Value: uplc.NewInteger(3)},
	}

	interp, err := NewInterpreter(Config{})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	budget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 1_000_000, Mem: 1_000_000})
	params := cost.DefaultMachineParameters()

	s, err := NewStepper(interp, term, budget, tracelog.NullLogger{}, params)
	if err != nil {
		t.Fatalf("NewStepper: %v", err)
	}

	// Single-step until done, one transition at a time, to exercise the
	// same code path an external conformance harness would drive.
	for i := 0; i < 1000 && !s.Done(); i++ {
		s.StepN(1)
	}
	if !s.Done() {
		t.Fatalf("did not finish within step budget")
	}
	if s.Err() != nil {
		t.Fatalf("unexpected error: %v", s.Err())
	}
	if got := s.Value().Constant.Integer.Int64(); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

func TestStepperStopsOnError(t *testing.T) {
	interp, err := NewInterpreter(Config{})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	budget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 1_000_000, Mem: 1_000_000})
	params := cost.DefaultMachineParameters()

	s, err := NewStepper(interp, uplc.Error{}, budget, tracelog.NullLogger{}, params)
	if err != nil {
		t.Fatalf("NewStepper: %v", err)
	}
	done, stepErr := s.StepN(100)
	if !done {
		t.Fatalf("expected done after an Error term")
	}
	if stepErr != uplc.ErrUserError {
		t.Fatalf("got %v, want ErrUserError", stepErr)
	}
	// A second call must return the same result without panicking.
	done2, err2 := s.StepN(100)
	if !done2 || err2 != stepErr {
		t.Fatalf("StepN on a finished Stepper changed result: done=%v err=%v", done2, err2)
	}
}
