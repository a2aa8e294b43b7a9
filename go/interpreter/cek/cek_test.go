package cek

import (
	"errors"
	"testing"

	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/cost"
	"github.com/uplc-eval/uplc/go/uplc/tracelog"
)

func runTerm(t *testing.T, term uplc.Term) (uplc.Value, error) {
	t.Helper()
	interp, err := NewInterpreter(Config{})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	budget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 10_000_000, Mem: 10_000_000})
	return interp.Run(term, budget, tracelog.NullLogger{}, cost.DefaultMachineParameters())
}

func mustInt(t *testing.T, v uplc.Value) int64 {
	t.Helper()
	if v.Kind != uplc.ValueConstant || v.Constant.Tag != uplc.TagInteger {
		t.Fatalf("expected integer value, got %+v", v)
	}
	return v.Constant.Integer.Int64()
}

func TestIdentityApplication(t *testing.T) {
	// (\x -> x) 42
	term := uplc.Apply{
		Fun: uplc.LamAbs{Body: uplc.Var{Index: 0}},
		Arg: uplc.Const{Value: uplc.NewInteger(42)},
	}
	v, err := runTerm(t, term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestBuiltinAddInteger(t *testing.T) {
	// addInteger 2 3
	term := uplc.Apply{
		Fun: uplc.Apply{
			Fun: uplc.Builtin{ID: uplc.AddInteger},
			Arg: uplc.Const{Value: uplc.NewInteger(2)},
		},
		Arg: uplc.Const{Value: uplc.NewInteger(3)},
	}
	v, err := runTerm(t, term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

func TestForceDelay(t *testing.T) {
	// force (delay 7)
	term := uplc.Force{Body: uplc.Delay{Body: uplc.Const{Value: uplc.NewInteger(7)}}}
	v, err := runTerm(t, term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestErrorTermFails(t *testing.T) {
	_, err := runTerm(t, uplc.Error{})
	if !errors.Is(err, uplc.ErrUserError) {
		t.Fatalf("got %v, want ErrUserError", err)
	}
}

func TestCaseDispatchesOnTag(t *testing.T) {
	// case (constr 1 {}) { error, 99 }
	term := uplc.Case{
		Scrutinee: uplc.Constr{Tag: 1, Fields: nil},
		Branches: []uplc.Term{
			uplc.Error{},
			uplc.Const{Value: uplc.NewInteger(99)},
		},
	}
	v, err := runTerm(t, term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 99 {
		t.Fatalf("got %d, want 99", got)
	}
}

func TestCaseMissingBranchFails(t *testing.T) {
	term := uplc.Case{
		Scrutinee: uplc.Constr{Tag: 5, Fields: nil},
		Branches:  []uplc.Term{uplc.Const{Value: uplc.NewInteger(1)}},
	}
	_, err := runTerm(t, term)
	var missing *uplc.CaseMissingBranch
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want *uplc.CaseMissingBranch", err)
	}
}

func TestOutOfBudget(t *testing.T) {
	interp, err := NewInterpreter(Config{})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	budget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 1, Mem: 1})
	_, err = interp.Run(uplc.Const{Value: uplc.NewInteger(1)}, budget, tracelog.NullLogger{}, cost.DefaultMachineParameters())
	if !errors.Is(err, uplc.ErrOutOfBudget) {
		t.Fatalf("got %v, want ErrOutOfBudget", err)
	}
}

func TestTraceLogsMessage(t *testing.T) {
	interp, err := NewInterpreter(Config{})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	logger := &tracelog.SliceLogger{}
	budget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 10_000_000, Mem: 10_000_000})

	// force (trace "hi" (delay 1)) — trace needs one force to saturate
	// before any args can be supplied (NForces: 1), then returns its
	// second argument — here a thunk — unevaluated, hence the outer force.
	term := uplc.Force{Body: uplc.Apply{
		Fun: uplc.Apply{
			Fun: uplc.Force{Body: uplc.Builtin{ID: uplc.Trace}},
			Arg: uplc.Const{Value: uplc.NewString("hi")},
		},
		Arg: uplc.Delay{Body: uplc.Const{Value: uplc.NewInteger(1)}},
	}}
	_, err = interp.Run(term, budget, logger, cost.DefaultMachineParameters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logger.Messages) != 1 || logger.Messages[0] != "hi" {
		t.Fatalf("got messages %v, want [hi]", logger.Messages)
	}
}
