// Package bench runs many independent evaluations concurrently to exercise
// spec.md §5's concurrency guarantee: every evaluation owns its own budget,
// logger, and evaluator-internal stacks, so running N of them in parallel
// goroutines must produce the same results as running them one at a time.
// There is no shared mutable state between jobs for a data race to hide
// in — a worker pool only needs to bound how many run at once.
package bench

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/uplc-eval/uplc/go/uplc"
)

// Job is one independent evaluation request: a term, its own budget, and
// its own logger. Two Jobs never share a Budget or Logger instance.
type Job struct {
	Term   uplc.Term
	Budget uplc.Budget
	Logger uplc.Logger
}

// Result is one Job's outcome, in the same slice position as its Job.
type Result struct {
	Value   uplc.Value
	Err     error
	Elapsed time.Duration
}

// RunParallel evaluates every job against interp, running up to workers of
// them concurrently (workers <= 0 means unbounded). It returns one Result
// per job, in job order, and only returns a non-nil error itself if ctx is
// canceled — an individual job's evaluation error is reported in its own
// Result, not surfaced as the group error, since one failing script must
// not abort the others.
func RunParallel(ctx context.Context, interp uplc.Interpreter, jobs []Job, params *uplc.MachineParameters, workers int) ([]Result, error) {
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			v, err := interp.Run(job.Term, job.Budget, job.Logger, params)
			results[i] = Result{Value: v, Err: err, Elapsed: time.Since(start)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
