// Package builtin implements the builtin table of §4.1: per-builtin arity,
// force count, cost function, and reduction rule, plus the shared
// partial-application protocol both the CEK machine and the JIT's generic
// builtin path drive.
package builtin

import (
	"github.com/uplc-eval/uplc/go/uplc"
)

// Reducer executes a builtin's reduction rule once all of its arguments
// have been supplied and all of its forces have been applied. It must
// type-check its arguments itself (returning *uplc.BuiltinTypeError on
// mismatch) before doing any work that could otherwise panic. logger is
// supplied so that Trace can emit to the external sink (§6); every other
// builtin ignores it.
type Reducer func(args []uplc.Value, logger uplc.Logger) (uplc.Value, error)

// Entry is one builtin's complete static description.
type Entry struct {
	ID        uplc.BuiltinID
	NArgs     int
	NForces   int
	Reduce    Reducer
}

// Table is the builtin catalogue, indexed by ID.
type Table map[uplc.BuiltinID]*Entry

// NewFreshPartial constructs the zero-argument PartialBuiltin value
// produced by evaluating a Term.Builtin (§4.2: "Compute(Builtin id, env) →
// Return(PartialBuiltin(id, [], n_args(id), n_forces(id)))").
func (t Table) NewFreshPartial(id uplc.BuiltinID) (uplc.Value, error) {
	entry, ok := t[id]
	if !ok {
		return uplc.Value{}, uplc.ErrUnknownBuiltin
	}
	return uplc.Value{
		Kind: uplc.ValuePartialBuiltin,
		Partial: uplc.PartialBuiltin{
			ID:              id,
			Args:            nil,
			RemainingArgs:   entry.NArgs,
			RemainingForces: entry.NForces,
		},
	}, nil
}

// ApplyArg extends a partial builtin with one more argument. If the
// builtin is now saturated (both counters at zero), it charges the
// builtin's cost against budget and runs its reduction rule, returning the
// result value. Otherwise it returns the new, still-partial value.
//
// Per §4.1 and §4.6: the cost function is applied to the supplied
// arguments' sizes and spent before the reduction rule executes, so a
// failing builtin still charges.
func (t Table) ApplyArg(partial uplc.PartialBuiltin, arg uplc.Value, budget uplc.Budget, logger uplc.Logger, params *uplc.MachineParameters) (uplc.Value, error) {
	entry, ok := t[partial.ID]
	if !ok {
		return uplc.Value{}, uplc.ErrUnknownBuiltin
	}
	if partial.RemainingForces > 0 {
		return uplc.Value{}, uplc.ErrNonFunctionApplied
	}
	if partial.RemainingArgs <= 0 {
		return uplc.Value{}, uplc.ErrNonFunctionApplied
	}

	args := append(append([]uplc.Value{}, partial.Args...), arg)
	next := uplc.PartialBuiltin{
		ID:              partial.ID,
		Args:            args,
		RemainingArgs:   partial.RemainingArgs - 1,
		RemainingForces: 0,
	}
	if next.RemainingArgs > 0 {
		return uplc.Value{Kind: uplc.ValuePartialBuiltin, Partial: next}, nil
	}
	return t.reduce(entry, args, budget, logger, params)
}

// ApplyForce decrements a partial builtin's remaining-force counter
// (§4.2's "On Return(PartialBuiltin(id, args, ra, rf>0)) with top
// ForceFrame"). Forcing a builtin with no remaining forces is a
// non-polymorphic instantiation error (§9's open question, resolved per
// the reference interpreter).
func (t Table) ApplyForce(partial uplc.PartialBuiltin, budget uplc.Budget, logger uplc.Logger, params *uplc.MachineParameters) (uplc.Value, error) {
	if partial.RemainingForces <= 0 {
		return uplc.Value{}, uplc.ErrNonPolymorphicInstantiation
	}
	next := partial
	next.RemainingForces--
	if next.RemainingForces == 0 && next.RemainingArgs == 0 {
		entry, ok := t[partial.ID]
		if !ok {
			return uplc.Value{}, uplc.ErrUnknownBuiltin
		}
		return t.reduce(entry, next.Args, budget, logger, params)
	}
	return uplc.Value{Kind: uplc.ValuePartialBuiltin, Partial: next}, nil
}

func (t Table) reduce(entry *Entry, args []uplc.Value, budget uplc.Budget, logger uplc.Logger, params *uplc.MachineParameters) (uplc.Value, error) {
	sizes := make([]uplc.Size, len(args))
	for i, a := range args {
		sizes[i] = a.Size()
	}
	cost := params.BuiltinCost(entry.ID, sizes)
	if err := budget.Spend(uplc.BuiltinSpend(entry.ID), cost.CPU, cost.Mem); err != nil {
		return uplc.Value{}, err
	}
	return entry.Reduce(args, logger)
}
