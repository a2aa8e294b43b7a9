package jit

import (
	"errors"
	"math/big"
	"testing"

	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/builtin"
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

// snippetKindAt compiles term and reports the snippetKind of the
// EXEC_SNIPPET instruction at its entry point, or ok=false if the entry
// instruction isn't EXEC_SNIPPET at all.
func snippetKindAt(term uplc.Term) (snippetKind, bool) {
	p := compile(term, builtin.NewDefaultTable())
	instr := p.instrs[p.entry]
	if instr.Op != OpExecSnippet {
		return 0, false
	}
	return p.snippets[instr.A].kind, true
}

func TestIdentityApplication(t *testing.T) {
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

func TestBuiltinAddIntegerVarOperandIsSnippet(t *testing.T) {
	// addInteger x 3, where x is a bound variable, not a literal constant.
	// Fully-saturated-application detection is driven by arity, not by the
	// operands' syntactic shape, so this is still recognized as a snippet.
	term := uplc.Apply{
		Fun: uplc.LamAbs{Body: uplc.Apply{
			Fun: uplc.Apply{
				Fun: uplc.Builtin{ID: uplc.AddInteger},
				Arg: uplc.Var{Index: 0},
			},
			Arg: uplc.Const{Value: uplc.NewInteger(3)},
		}},
		Arg: uplc.Const{Value: uplc.NewInteger(2)},
	}
	if kind, ok := snippetKindAt(term.Fun.(uplc.LamAbs).Body); !ok || kind != snippetBuiltinCall {
		t.Fatalf("expected the addInteger application to compile to a builtin-call snippet")
	}
	v, err := runTerm(t, term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

func TestBuiltinAddIntegerConstOperandsIsSnippet(t *testing.T) {
	// addInteger 2 3 — both arguments are literal constants; also a
	// builtin-call snippet, via the same arity-driven detection.
	term := uplc.Apply{
		Fun: uplc.Apply{
			Fun: uplc.Builtin{ID: uplc.AddInteger},
			Arg: uplc.Const{Value: uplc.NewInteger(2)},
		},
		Arg: uplc.Const{Value: uplc.NewInteger(3)},
	}
	if kind, ok := snippetKindAt(term); !ok || kind != snippetBuiltinCall {
		t.Fatalf("expected compile to recognize a builtin-call snippet for this term")
	}
	v, err := runTerm(t, term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

func TestPartialBuiltinAppliedLaterStaysOnGeneralPath(t *testing.T) {
	// (\f -> f 3) (addInteger 2): addInteger 2 alone is an under-saturated
	// Apply (NArgs=2, one argument given), so it is not recognized as a
	// snippet and instead evaluates to a PartialBuiltin value bound to f;
	// applying f to 3 is a separate Apply whose function position is a
	// Var, not a Builtin/Force chain, so it stays on the general
	// OP_APPLY path end to end.
	partial := uplc.Apply{Fun: uplc.Builtin{ID: uplc.AddInteger}, Arg: uplc.Const{Value: uplc.NewInteger(2)}}
	if _, ok := snippetKindAt(partial); ok {
		t.Fatalf("expected an under-saturated builtin application not to compile to a snippet")
	}
	term := uplc.Apply{
		Fun: uplc.LamAbs{Body: uplc.Apply{Fun: uplc.Var{Index: 0}, Arg: uplc.Const{Value: uplc.NewInteger(3)}}},
		Arg: partial,
	}
	v, err := runTerm(t, term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

func TestInlinedUnIData(t *testing.T) {
	term := uplc.Apply{
		Fun: uplc.Builtin{ID: uplc.UnIData},
		Arg: uplc.Const{Value: uplc.NewData(uplc.NewDataInteger(big.NewInt(41)))},
	}
	if kind, ok := snippetKindAt(term); !ok || kind != snippetBuiltinCall {
		t.Fatalf("expected unIData to compile to a builtin-call snippet")
	}
	v, err := runTerm(t, term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 41 {
		t.Fatalf("got %d, want 41", got)
	}
}

func TestInlinedHeadList(t *testing.T) {
	term := uplc.Apply{
		Fun: uplc.Force{Body: uplc.Builtin{ID: uplc.HeadList}},
		Arg: uplc.Const{Value: uplc.NewList(uplc.TagInteger, []uplc.Constant{uplc.NewInteger(9), uplc.NewInteger(10)})},
	}
	if kind, ok := snippetKindAt(term); !ok || kind != snippetBuiltinCall {
		t.Fatalf("expected headList to compile to a builtin-call snippet")
	}
	v, err := runTerm(t, term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 9 {
		t.Fatalf("got %d, want 9", got)
	}
}

func TestInlinedIfThenElse(t *testing.T) {
	term := uplc.Apply{
		Fun: uplc.Apply{
			Fun: uplc.Apply{
				Fun: uplc.Force{Body: uplc.Builtin{ID: uplc.IfThenElse}},
				Arg: uplc.Const{Value: uplc.NewBool(false)},
			},
			Arg: uplc.Const{Value: uplc.NewInteger(1)},
		},
		Arg: uplc.Const{Value: uplc.NewInteger(2)},
	}
	if kind, ok := snippetKindAt(term); !ok || kind != snippetBuiltinCall {
		t.Fatalf("expected ifThenElse to compile to a builtin-call snippet")
	}
	v, err := runTerm(t, term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestInlinedFstPair(t *testing.T) {
	term := uplc.Apply{
		Fun: uplc.Force{Body: uplc.Force{Body: uplc.Builtin{ID: uplc.FstPair}}},
		Arg: uplc.Const{Value: uplc.NewPair(uplc.NewInteger(5), uplc.NewInteger(6))},
	}
	if kind, ok := snippetKindAt(term); !ok || kind != snippetBuiltinCall {
		t.Fatalf("expected fstPair to compile to a builtin-call snippet")
	}
	v, err := runTerm(t, term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

func TestInlinedTrace(t *testing.T) {
	term := uplc.Apply{
		Fun: uplc.Apply{
			Fun: uplc.Force{Body: uplc.Builtin{ID: uplc.Trace}},
			Arg: uplc.Const{Value: uplc.NewString("debug")},
		},
		Arg: uplc.Const{Value: uplc.NewInteger(7)},
	}
	if kind, ok := snippetKindAt(term); !ok || kind != snippetBuiltinCall {
		t.Fatalf("expected trace to compile to a builtin-call snippet")
	}
	v, err := runTerm(t, term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

// TestCurriedApplicationWithEscapingClosure exercises the exact scenario
// that rules out a bare captured-depth-into-one-shared-stack environment
// (see env.go's jitEnv doc comment): ((\x -> \y -> addInteger x y) 5) 7.
// The inner closure over \y is produced and returned while x is still
// only bound once, then applied from an entirely separate Apply higher up
// the term — if x's binding had already been popped off a shared stack by
// the time the inner closure runs, this would read garbage instead of 5.
func TestCurriedApplicationWithEscapingClosure(t *testing.T) {
	inner := uplc.LamAbs{Body: uplc.LamAbs{Body: uplc.Apply{
		Fun: uplc.Apply{Fun: uplc.Builtin{ID: uplc.AddInteger}, Arg: uplc.Var{Index: 1}},
		Arg: uplc.Var{Index: 0},
	}}}
	term := uplc.Apply{
		Fun: uplc.Apply{Fun: inner, Arg: uplc.Const{Value: uplc.NewInteger(5)}},
		Arg: uplc.Const{Value: uplc.NewInteger(7)},
	}
	v, err := runTerm(t, term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 12 {
		t.Fatalf("got %d, want 12", got)
	}
}

// TestConstrFieldsSeeTheirOwnEnv checks that evaluating a Constr's fields
// one at a time through frameCollect never lets an in-progress field's
// accumulated siblings shift what a later field's own Var indices resolve
// against — each field is evaluated under the Constr's own captured env,
// not a stack polluted by previously collected values.
func TestConstrFieldsSeeTheirOwnEnv(t *testing.T) {
	body := uplc.Constr{Tag: 0, Fields: []uplc.Term{uplc.Var{Index: 0}, uplc.Var{Index: 0}}}
	term := uplc.Apply{Fun: uplc.LamAbs{Body: body}, Arg: uplc.Const{Value: uplc.NewInteger(7)}}
	v, err := runTerm(t, term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != uplc.ValueConstr || len(v.Constr.Fields) != 2 {
		t.Fatalf("expected a two-field constructor, got %+v", v)
	}
	if got := mustInt(t, v.Constr.Fields[0]); got != 7 {
		t.Fatalf("field 0: got %d, want 7", got)
	}
	if got := mustInt(t, v.Constr.Fields[1]); got != 7 {
		t.Fatalf("field 1: got %d, want 7", got)
	}
}

// TestCaseAppliesBranchToFields checks the real Case semantics this
// evaluator must agree with CEK on: the selected branch is a function
// value applied to each constructor field in turn, not a bare jump.
func TestCaseAppliesBranchToFields(t *testing.T) {
	branch := uplc.LamAbs{Body: uplc.LamAbs{Body: uplc.Apply{
		Fun: uplc.Apply{Fun: uplc.Builtin{ID: uplc.AddInteger}, Arg: uplc.Var{Index: 1}},
		Arg: uplc.Var{Index: 0},
	}}}
	term := uplc.Case{
		Scrutinee: uplc.Constr{Tag: 0, Fields: []uplc.Term{
			uplc.Const{Value: uplc.NewInteger(3)},
			uplc.Const{Value: uplc.NewInteger(4)},
		}},
		Branches: []uplc.Term{branch},
	}
	v, err := runTerm(t, term)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestForceDelay(t *testing.T) {
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

// deepIdentityChain builds a right-nested chain of N identity applications
// around leaf: Apply{\x->x, Apply{\x->x, ... leaf}}. Each level keeps one
// extra frameApplyExec on the frame stack while it descends into the next
// argument, so this is the shape that actually grows ctx depth (as opposed
// to Force/Delay pairs, which push and immediately pop).
func deepIdentityChain(n int, leaf uplc.Term) uplc.Term {
	t := leaf
	for i := 0; i < n; i++ {
		t = uplc.Apply{Fun: uplc.LamAbs{Body: uplc.Var{Index: 0}}, Arg: t}
	}
	return t
}

func TestStackOverflowFallsBackToCEKEligible(t *testing.T) {
	interp, err := NewInterpreter(Config{StackLimit: 8})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	term := deepIdentityChain(1000, uplc.Const{Value: uplc.NewInteger(1)})
	budget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 1_000_000_000, Mem: 1_000_000_000})
	_, err = interp.Run(term, budget, tracelog.NullLogger{}, cost.DefaultMachineParameters())
	if !uplc.IsStackOverflow(err) {
		t.Fatalf("got %v, want a stack overflow error", err)
	}
}

func TestDeepChainSucceedsWithRoomyStack(t *testing.T) {
	interp, err := NewInterpreter(Config{StackLimit: 10_000})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	term := deepIdentityChain(1000, uplc.Const{Value: uplc.NewInteger(1)})
	budget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 1_000_000_000, Mem: 1_000_000_000})
	v, err := interp.Run(term, budget, tracelog.NullLogger{}, cost.DefaultMachineParameters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustInt(t, v); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}
