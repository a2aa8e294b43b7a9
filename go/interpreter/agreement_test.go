package interpreter

import (
	"errors"
	"testing"

	"pgregory.net/rand"

	"github.com/uplc-eval/uplc/go/interpreter/cek"
	"github.com/uplc-eval/uplc/go/interpreter/jit"
	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/cost"
	"github.com/uplc-eval/uplc/go/uplc/ct"
	"github.com/uplc-eval/uplc/go/uplc/tracelog"
)

// TestAgreement is the Agreement property test of spec.md §8: CEK and the
// JIT must agree on every randomly generated, well-scoped term, both in
// whether they fail and, if not, in what they produce. Both evaluators
// are given a large, identical starting budget and a fresh
// *SimpleBudget, so this test is purely about semantic agreement, not
// about the hybrid driver's fallback behavior (that is covered in
// interpreter/hybrid's own tests).
func TestAgreement(t *testing.T) {
	cekInterp, err := cek.NewInterpreter(cek.Config{})
	if err != nil {
		t.Fatalf("cek.NewInterpreter: %v", err)
	}
	jitInterp, err := jit.NewInterpreter(jit.Config{})
	if err != nil {
		t.Fatalf("jit.NewInterpreter: %v", err)
	}
	params := cost.DefaultMachineParameters()
	rng := rand.New(rand.NewSource(20260730))

	const rounds = 200
	for i := 0; i < rounds; i++ {
		term := ct.GenerateClosedTerm(rng, 6, 0)

		cekBudget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 100_000_000, Mem: 100_000_000})
		jitBudget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 100_000_000, Mem: 100_000_000})

		cekVal, cekErr := cekInterp.Run(term, cekBudget, tracelog.NullLogger{}, params)
		jitVal, jitErr := jitInterp.Run(term, jitBudget, tracelog.NullLogger{}, params)

		if (cekErr == nil) != (jitErr == nil) {
			t.Fatalf("round %d: disagreement on success — cek err=%v, jit err=%v, term=%#v", i, cekErr, jitErr, term)
		}
		if cekErr != nil {
			if !errorsSameKind(cekErr, jitErr) {
				t.Fatalf("round %d: disagreement on error kind — cek err=%v, jit err=%v", i, cekErr, jitErr)
			}
			continue
		}
		if !ct.ValuesAgree(cekVal, jitVal) {
			t.Fatalf("round %d: disagreement on value — cek=%+v, jit=%+v, term=%#v", i, cekVal, jitVal, term)
		}
	}
}

// errorsSameKind reports whether two errors are the same sentinel (or both
// typed builtin errors of the same concrete type), ignoring any
// builtin/case-specific payload differences.
func errorsSameKind(a, b error) bool {
	sentinels := []error{
		uplc.ErrUserError,
		uplc.ErrOutOfBudget,
		uplc.ErrNonFunctionApplied,
		uplc.ErrNonPolymorphicInstantiation,
		uplc.ErrUnknownBuiltin,
		uplc.ErrMalformedProgram,
	}
	for _, s := range sentinels {
		if errors.Is(a, s) != errors.Is(b, s) {
			return false
		}
		if errors.Is(a, s) {
			return true
		}
	}
	var aMissing *uplc.CaseMissingBranch
	var bMissing *uplc.CaseMissingBranch
	if errors.As(a, &aMissing) && errors.As(b, &bMissing) {
		return aMissing.Tag == bMissing.Tag
	}
	var aType *uplc.BuiltinTypeError
	var bType *uplc.BuiltinTypeError
	if errors.As(a, &aType) && errors.As(b, &bType) {
		return true
	}
	var aRuntime *uplc.BuiltinRuntimeError
	var bRuntime *uplc.BuiltinRuntimeError
	if errors.As(a, &aRuntime) && errors.As(b, &bRuntime) {
		return true
	}
	return false
}
