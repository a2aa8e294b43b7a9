package bench

import (
	"context"
	"testing"

	"github.com/uplc-eval/uplc/go/interpreter/cek"
	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/cost"
	"github.com/uplc-eval/uplc/go/uplc/tracelog"
)

func TestRunParallelMatchesSequential(t *testing.T) {
	interp, err := cek.NewInterpreter(cek.Config{})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	params := cost.DefaultMachineParameters()

	const n = 50
	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = Job{
			Term: uplc.Apply{
				Fun: uplc.Apply{
					Fun: uplc.Builtin{ID: uplc.AddInteger},
					Arg: uplc.Const{Value: uplc.NewInteger(int64(i))},
				},
				Arg: uplc.Const{Value: uplc.NewInteger(1)},
			},
			Budget: uplc.NewSimpleBudget(uplc.ExBudget{CPU: 1_000_000, Mem: 1_000_000}),
			Logger: tracelog.NullLogger{},
		}
	}

	results, err := RunParallel(context.Background(), interp, jobs, params, 8)
	if err != nil {
		t.Fatalf("RunParallel: %v", err)
	}
	if len(results) != n {
		t.Fatalf("got %d results, want %d", len(results), n)
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("job %d: unexpected error: %v", i, r.Err)
		}
		if got := r.Value.Constant.Integer.Int64(); got != int64(i)+1 {
			t.Fatalf("job %d: got %d, want %d", i, got, i+1)
		}
	}
}

func TestRunParallelUnboundedWorkers(t *testing.T) {
	interp, err := cek.NewInterpreter(cek.Config{})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	params := cost.DefaultMachineParameters()

	jobs := []Job{{
		Term:   uplc.Const{Value: uplc.NewInteger(5)},
		Budget: uplc.NewSimpleBudget(uplc.ExBudget{CPU: 1_000, Mem: 1_000}),
		Logger: tracelog.NullLogger{},
	}}
	results, err := RunParallel(context.Background(), interp, jobs, params, 0)
	if err != nil {
		t.Fatalf("RunParallel: %v", err)
	}
	if results[0].Value.Constant.Integer.Int64() != 5 {
		t.Fatalf("got %v, want 5", results[0].Value)
	}
}
