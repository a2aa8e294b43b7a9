package hybrid

import (
	"testing"

	"github.com/uplc-eval/uplc/go/interpreter/jit"
	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/cost"
	"github.com/uplc-eval/uplc/go/uplc/tracelog"
)

func mustInt(t *testing.T, v uplc.Value) int64 {
	t.Helper()
	if v.Kind != uplc.ValueConstant || v.Constant.Tag != uplc.TagInteger {
		t.Fatalf("expected integer value, got %+v", v)
	}
	return v.Constant.Integer.Int64()
}

func deepIdentityChain(n int, leaf uplc.Term) uplc.Term {
	t := leaf
	for i := 0; i < n; i++ {
		t = uplc.Apply{Fun: uplc.LamAbs{Body: uplc.Var{Index: 0}}, Arg: t}
	}
	return t
}

func TestRunUsesJITWhenItFits(t *testing.T) {
	interp, err := NewInterpreter(Config{})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	term := uplc.Apply{
		Fun: uplc.LamAbs{Body: uplc.Var{Index: 0}},
		Arg: uplc.Const{Value: uplc.NewInteger(42)},
	}
	budget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 10_000_000, Mem: 10_000_000})
	v, err := interp.Run(term, budget, tracelog.NullLogger{}, cost.DefaultMachineParameters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestRunFallsBackToCEKOnJITStackOverflow(t *testing.T) {
	interp, err := NewInterpreter(Config{JIT: jit.Config{StackLimit: 8}})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	term := deepIdentityChain(1000, uplc.Const{Value: uplc.NewInteger(7)})
	budget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 1_000_000_000, Mem: 1_000_000_000})
	v, err := interp.Run(term, budget, tracelog.NullLogger{}, cost.DefaultMachineParameters())
	if err != nil {
		t.Fatalf("unexpected error (expected CEK fallback to succeed): %v", err)
	}
	if got := mustInt(t, v); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestRunFallbackDoesNotRefundBudget(t *testing.T) {
	interp, err := NewInterpreter(Config{JIT: jit.Config{StackLimit: 8}})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	term := deepIdentityChain(1000, uplc.Const{Value: uplc.NewInteger(7)})

	fullBudget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 1_000_000_000, Mem: 1_000_000_000})
	if _, err := interp.Run(term, fullBudget, tracelog.NullLogger{}, cost.DefaultMachineParameters()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	remaining := fullBudget.Remaining()

	cekOnly, err := NewInterpreter(Config{})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	cekBudget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 1_000_000_000, Mem: 1_000_000_000})
	if _, err := cekOnly.Run(term, cekBudget, tracelog.NullLogger{}, cost.DefaultMachineParameters()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cekOnlyRemaining := cekBudget.Remaining()

	if remaining.CPU >= cekOnlyRemaining.CPU {
		t.Fatalf("expected the fallback run to have spent strictly more CPU than a CEK-only run (the overflowed JIT attempt's spend should not be refunded): fallback remaining=%d, cek-only remaining=%d", remaining.CPU, cekOnlyRemaining.CPU)
	}
}

func TestRunCommitsLoggingOnJITSuccess(t *testing.T) {
	interp, err := NewInterpreter(Config{})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	logger := &tracelog.SliceLogger{}
	budget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 10_000_000, Mem: 10_000_000})

	// force (trace "hi" (delay 1))
	term := uplc.Force{Body: uplc.Apply{
		Fun: uplc.Apply{
			Fun: uplc.Force{Body: uplc.Builtin{ID: uplc.Trace}},
			Arg: uplc.Const{Value: uplc.NewString("hi")},
		},
		Arg: uplc.Delay{Body: uplc.Const{Value: uplc.NewInteger(1)}},
	}}
	if _, err := interp.Run(term, budget, logger, cost.DefaultMachineParameters()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logger.Messages) != 1 || logger.Messages[0] != "hi" {
		t.Fatalf("got messages %v, want [hi]", logger.Messages)
	}
}
