package cek

import (
	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/builtin"
)

// frame is one entry of the defunctionalized context stack (§4.2). Each
// variant corresponds to exactly one of the "what do I do with the value I
// just produced" continuations of the reference semantics.
type frame interface{ isFrame() }

// frameApplyArg is pushed while evaluating an Apply's function position;
// once that finishes, its value is stashed in frameApplyFun and the
// argument is evaluated next, in the environment the Apply was built in.
type frameApplyArg struct {
	Env *uplc.Env
	Arg uplc.Term
}

// frameApplyFun is pushed once the function value is known; when the
// argument's value comes back, the two are combined.
type frameApplyFun struct {
	Fun uplc.Value
}

// frameForce is pushed while evaluating a Force's body.
type frameForce struct{}

// frameConstrArg tracks in-progress evaluation of a Constr's fields, left
// to right: Done holds already-evaluated fields, Remaining the terms still
// to evaluate.
type frameConstrArg struct {
	Env       *uplc.Env
	Tag       uint64
	Done      []uplc.Value
	Remaining []uplc.Term
}

// frameCase is pushed while evaluating a Case's scrutinee.
type frameCase struct {
	Env      *uplc.Env
	Branches []uplc.Term
}

// frameCaseApply is pushed once a Case's branch term has been evaluated to
// a function value: it feeds the constructor's fields into that function
// one at a time, the same way ordinary Apply does, reusing applyValue.
type frameCaseApply struct {
	Fields []uplc.Value
	Idx    int
}

func (frameApplyArg) isFrame()  {}
func (frameApplyFun) isFrame()  {}
func (frameForce) isFrame()     {}
func (frameConstrArg) isFrame() {}
func (frameCase) isFrame()      {}
func (frameCaseApply) isFrame() {}

// machine is the CEK reference evaluator: an explicit Go loop driving an
// explicit, heap-allocated context stack, so Go's own call stack never
// grows with the depth of the term being evaluated — only the ctx slice
// does. That is exactly the unbounded, heap-based safety margin spec.md
// asks the reference implementation to provide as a fallback for the
// JIT's bounded stack.
type machine struct {
	table  builtin.Table
	budget uplc.Budget
	logger uplc.Logger
	params *uplc.MachineParameters
}

// run drives the Compute/Return/Done state transitions of §4.2 to
// completion, or returns the first error encountered (including
// ErrOutOfBudget, ErrUserError, and the builtin/case errors of errors.go).
func (m *machine) run(term uplc.Term) (uplc.Value, error) {
	if err := m.budget.Spend(uplc.StartUpSpend(), m.params.StartUp.CPU, m.params.StartUp.Mem); err != nil {
		return uplc.Value{}, err
	}

	var ctx []frame
	env := (*uplc.Env)(nil)
	cur := term
	computing := true
	var val uplc.Value

	for {
		if computing {
			next, nextEnv, result, done, err := m.compute(&ctx, env, cur)
			if err != nil {
				return uplc.Value{}, err
			}
			if done {
				val = result
				computing = false
				continue
			}
			cur, env = next, nextEnv
			continue
		}

		if len(ctx) == 0 {
			return val, nil
		}
		top := ctx[len(ctx)-1]
		ctx = ctx[:len(ctx)-1]

		next, nextEnv, result, goCompute, err := m.ret(&ctx, top, val)
		if err != nil {
			return uplc.Value{}, err
		}
		if goCompute {
			cur, env = next, nextEnv
			computing = true
			continue
		}
		val = result
	}
}

// compute handles one Compute(ctx, env, term) transition. It either
// returns a new (term, env) to keep computing — pushing a continuation
// frame onto *ctx first, for the five term kinds with subterms — or
// signals done=true with the value a leaf term reduces to directly.
func (m *machine) compute(ctx *[]frame, env *uplc.Env, term uplc.Term) (nextTerm uplc.Term, nextEnv *uplc.Env, result uplc.Value, done bool, err error) {
	switch t := term.(type) {
	case uplc.Var:
		if err := m.charge(uplc.StepVar); err != nil {
			return nil, nil, uplc.Value{}, false, err
		}
		v, ok := env.Lookup(t.Index)
		if !ok {
			return nil, nil, uplc.Value{}, false, uplc.ErrMalformedProgram
		}
		return nil, nil, v, true, nil

	case uplc.Const:
		if err := m.charge(uplc.StepConst); err != nil {
			return nil, nil, uplc.Value{}, false, err
		}
		return nil, nil, uplc.ValueOfConstant(t.Value), true, nil

	case uplc.LamAbs:
		if err := m.charge(uplc.StepLambda); err != nil {
			return nil, nil, uplc.Value{}, false, err
		}
		return nil, nil, uplc.ValueOfClosure(t.Body, env), true, nil

	case uplc.Builtin:
		if err := m.charge(uplc.StepBuiltin); err != nil {
			return nil, nil, uplc.Value{}, false, err
		}
		v, err := m.table.NewFreshPartial(t.ID)
		if err != nil {
			return nil, nil, uplc.Value{}, false, err
		}
		return nil, nil, v, true, nil

	case uplc.Delay:
		if err := m.charge(uplc.StepDelay); err != nil {
			return nil, nil, uplc.Value{}, false, err
		}
		return nil, nil, uplc.ValueOfThunk(t.Body, env), true, nil

	case uplc.Force:
		if err := m.charge(uplc.StepForce); err != nil {
			return nil, nil, uplc.Value{}, false, err
		}
		*ctx = append(*ctx, frameForce{})
		return t.Body, env, uplc.Value{}, false, nil

	case uplc.Apply:
		if err := m.charge(uplc.StepApply); err != nil {
			return nil, nil, uplc.Value{}, false, err
		}
		*ctx = append(*ctx, frameApplyArg{Env: env, Arg: t.Arg})
		return t.Fun, env, uplc.Value{}, false, nil

	case uplc.Constr:
		if err := m.charge(uplc.StepConstr); err != nil {
			return nil, nil, uplc.Value{}, false, err
		}
		if len(t.Fields) == 0 {
			return nil, nil, uplc.ValueOfConstr(t.Tag, nil), true, nil
		}
		*ctx = append(*ctx, frameConstrArg{Env: env, Tag: t.Tag, Remaining: t.Fields[1:]})
		return t.Fields[0], env, uplc.Value{}, false, nil

	case uplc.Case:
		if err := m.charge(uplc.StepCase); err != nil {
			return nil, nil, uplc.Value{}, false, err
		}
		*ctx = append(*ctx, frameCase{Env: env, Branches: t.Branches})
		return t.Scrutinee, env, uplc.Value{}, false, nil

	case uplc.Error:
		return nil, nil, uplc.Value{}, false, uplc.ErrUserError
	}
	return nil, nil, uplc.Value{}, false, uplc.ErrMalformedProgram
}

// ret handles one Return(ctx, value) transition for the frame run already
// popped. ctx lets frameConstrArg and frameCaseApply push their own
// continuation before diving back into Compute.
func (m *machine) ret(ctx *[]frame, popped frame, val uplc.Value) (nextTerm uplc.Term, nextEnv *uplc.Env, result uplc.Value, goCompute bool, err error) {
	switch f := popped.(type) {
	case frameForce:
		switch val.Kind {
		case uplc.ValueDelay:
			return val.Thunk.Body, val.Thunk.Env, uplc.Value{}, true, nil
		case uplc.ValuePartialBuiltin:
			v, err := m.table.ApplyForce(val.Partial, m.budget, m.logger, m.params)
			if err != nil {
				return nil, nil, uplc.Value{}, false, err
			}
			return nil, nil, v, false, nil
		default:
			return nil, nil, uplc.Value{}, false, uplc.ErrNonPolymorphicInstantiation
		}

	case frameApplyArg:
		*ctx = append(*ctx, frameApplyFun{Fun: val})
		return f.Arg, f.Env, uplc.Value{}, true, nil

	case frameApplyFun:
		return m.apply(ctx, f.Fun, val)

	case frameConstrArg:
		done := append(append([]uplc.Value{}, f.Done...), val)
		if len(f.Remaining) == 0 {
			return nil, nil, uplc.ValueOfConstr(f.Tag, done), false, nil
		}
		*ctx = append(*ctx, frameConstrArg{Env: f.Env, Tag: f.Tag, Done: done, Remaining: f.Remaining[1:]})
		return f.Remaining[0], f.Env, uplc.Value{}, true, nil

	case frameCase:
		if val.Kind != uplc.ValueConstr {
			return nil, nil, uplc.Value{}, false, uplc.ErrNonFunctionApplied
		}
		tag := val.Constr.Tag
		if tag >= uint64(len(f.Branches)) {
			return nil, nil, uplc.Value{}, false, &uplc.CaseMissingBranch{Tag: tag}
		}
		*ctx = append(*ctx, frameCaseApply{Fields: val.Constr.Fields, Idx: 0})
		return f.Branches[tag], f.Env, uplc.Value{}, true, nil

	case frameCaseApply:
		if f.Idx >= len(f.Fields) {
			return nil, nil, val, false, nil
		}
		*ctx = append(*ctx, frameCaseApply{Fields: f.Fields, Idx: f.Idx + 1})
		return m.apply(ctx, val, f.Fields[f.Idx])
	}
	return nil, nil, uplc.Value{}, false, uplc.ErrMalformedProgram
}

// apply combines a function value with an argument value exactly once —
// the one place frameApplyFun and frameCaseApply both bottom out at, so
// the closure/partial-builtin dispatch exists in a single place.
func (m *machine) apply(ctx *[]frame, fn uplc.Value, arg uplc.Value) (nextTerm uplc.Term, nextEnv *uplc.Env, result uplc.Value, goCompute bool, err error) {
	switch fn.Kind {
	case uplc.ValueClosure:
		return fn.Closure.Body, fn.Closure.Env.Extend(arg), uplc.Value{}, true, nil
	case uplc.ValuePartialBuiltin:
		v, err := m.table.ApplyArg(fn.Partial, arg, m.budget, m.logger, m.params)
		if err != nil {
			return nil, nil, uplc.Value{}, false, err
		}
		return nil, nil, v, false, nil
	default:
		return nil, nil, uplc.Value{}, false, uplc.ErrNonFunctionApplied
	}
}

func (m *machine) charge(kind uplc.StepKind) error {
	cost := m.params.StepCost(kind)
	return m.budget.Spend(uplc.StepSpend(kind), cost.CPU, cost.Mem)
}
