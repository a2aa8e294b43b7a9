package ct

import (
	"testing"

	"pgregory.net/rand"

	"github.com/uplc-eval/uplc/go/interpreter/cek"
	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/cost"
	"github.com/uplc-eval/uplc/go/uplc/tracelog"
)

func TestStepNMatchesDirectRun(t *testing.T) {
	interp, err := cek.NewInterpreter(cek.Config{})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	term := uplc.Apply{
		Fun: uplc.Apply{
			Fun: uplc.Builtin{ID: uplc.AddInteger},
			Arg: uplc.Const{Value: uplc.NewInteger(10)},
		},
		Arg: uplc.Const{Value: uplc.NewInteger(32)},
	}
	params := cost.DefaultMachineParameters()

	stepBudget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 1_000_000, Mem: 1_000_000})
	done, value, err := StepN(interp, term, stepBudget, tracelog.NullLogger{}, params, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !done {
		t.Fatalf("expected StepN(..., 1000) to finish this small term")
	}

	directBudget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 1_000_000, Mem: 1_000_000})
	direct, err := interp.Run(term, directBudget, tracelog.NullLogger{}, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ValuesAgree(value, direct) {
		t.Fatalf("stepped result %+v disagrees with direct run %+v", value, direct)
	}
}

func TestStepNReportsNotDoneWhenStarved(t *testing.T) {
	interp, err := cek.NewInterpreter(cek.Config{})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	term := uplc.Apply{
		Fun: uplc.Apply{
			Fun: uplc.Builtin{ID: uplc.AddInteger},
			Arg: uplc.Const{Value: uplc.NewInteger(10)},
		},
		Arg: uplc.Const{Value: uplc.NewInteger(32)},
	}
	budget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 1_000_000, Mem: 1_000_000})
	done, _, err := StepN(interp, term, budget, tracelog.NullLogger{}, cost.DefaultMachineParameters(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if done {
		t.Fatalf("expected a single transition not to finish a multi-node term")
	}
}

func TestGenerateClosedTermIsWellScoped(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	interp, err := cek.NewInterpreter(cek.Config{WithScopeCache: false})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	budget := uplc.NewSimpleBudget(uplc.ExBudget{CPU: 10_000_000, Mem: 10_000_000})
	params := cost.DefaultMachineParameters()

	for i := 0; i < 50; i++ {
		term := GenerateClosedTerm(rng, 5, 0)
		// A malformed (unscoped) term is the one failure mode this test
		// rules out; any other error (e.g. ErrOutOfBudget) is a fine
		// outcome for a randomly generated term.
		if _, err := interp.Run(term, budget, tracelog.NullLogger{}, params); err == uplc.ErrMalformedProgram {
			t.Fatalf("generated term failed scope validation: %#v", term)
		}
	}
}
