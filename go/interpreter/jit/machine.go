package jit

import (
	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/builtin"
)

// machine is the JIT's bounded evaluator: a single loop dispatching on the
// opcode at ip (§4.4), driving a fixed-capacity frame stack so Go's own
// call stack never grows with term depth and — unlike CEK's — the frame
// stack itself has a ceiling. Exceeding it surfaces as
// uplc.ErrStackOverflow(), which the hybrid driver catches.
type machine struct {
	table  builtin.Table
	budget uplc.Budget
	logger uplc.Logger
	params *uplc.MachineParameters
	ctx    *stack
	prog   *program
}

// run drives the instruction stream from entryIP to completion. The loop
// alternates two phases exactly as CEK's Compute/Return pair does:
// "computing" dispatches on the instruction at ip, "returning" pops the
// frame stack and dispatches on what was popped — the latter is OP_RETURN
// (§4.4: "pop top frame and handle per its type"), entered either when
// compute reports a finished value (the OpReturn instruction itself is
// never fetched) or when a frame's own handler
// deciding its value is ready (frameCollect and frameCaseApply both do
// this once their accumulation is done, with nothing left to jump to).
func (m *machine) run(entryIP int) (uplc.Value, error) {
	if err := m.budget.Spend(uplc.StartUpSpend(), m.params.StartUp.CPU, m.params.StartUp.Mem); err != nil {
		return uplc.Value{}, err
	}

	ip := entryIP
	var env jitEnv
	computing := true
	var val uplc.Value

	for {
		if computing {
			nextIP, nextEnv, result, done, err := m.compute(ip, env)
			if err != nil {
				return uplc.Value{}, err
			}
			if done {
				val = result
				computing = false
				continue
			}
			ip, env = nextIP, nextEnv
			continue
		}

		top, ok := m.ctx.pop()
		if !ok {
			return val, nil
		}

		nextIP, nextEnv, result, goCompute, err := m.ret(top, val)
		if err != nil {
			return uplc.Value{}, err
		}
		if goCompute {
			ip, env = nextIP, nextEnv
			computing = true
			continue
		}
		val = result
	}
}

// compute dispatches on the instruction at ip. Instructions that finish a
// value with nothing left to jump to (OpExecSnippet's leaf cases,
// OpLambda, OpDelay, a zero-field OpConstr) report done=true directly,
// short-circuiting through the paired OpReturn the compiler emitted right
// after them. The others push a frame recording what to do with the value
// that will eventually come back, and redirect ip into the subterm.
func (m *machine) compute(ip int, env jitEnv) (nextIP int, nextEnv jitEnv, result uplc.Value, done bool, err error) {
	instr := m.prog.instrs[ip]
	switch instr.Op {
	case OpExecSnippet:
		return m.execSnippet(env, &m.prog.snippets[instr.A])

	case OpLambda:
		if err := m.charge(uplc.StepLambda); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		v := uplc.Value{Kind: uplc.ValueClosure, Closure: uplc.Closure{
			Body: &compiledClosure{bodyIP: instr.A, env: env},
		}}
		return 0, nil, v, true, nil

	case OpDelay:
		if err := m.charge(uplc.StepDelay); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		v := uplc.Value{Kind: uplc.ValueDelay, Thunk: uplc.Thunk{
			Body: &compiledThunk{bodyIP: instr.A, env: env},
		}}
		return 0, nil, v, true, nil

	case OpForce:
		if err := m.charge(uplc.StepForce); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		if err := m.ctx.push(frameForce{}); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		return instr.A, env, uplc.Value{}, false, nil

	case OpApply:
		if err := m.charge(uplc.StepApply); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		if err := m.ctx.push(frameApplyArg{Env: env, ArgIP: instr.B}); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		return instr.A, env, uplc.Value{}, false, nil

	case OpConstr:
		if err := m.charge(uplc.StepConstr); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		fields := m.prog.ipLists[instr.B]
		if len(fields) == 0 {
			return 0, nil, uplc.ValueOfConstr(uint64(instr.A), nil), true, nil
		}
		if err := m.ctx.push(frameCollect{Kind: collectConstr, Env: env, Tag: uint64(instr.A), Remaining: fields[1:]}); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		return fields[0], env, uplc.Value{}, false, nil

	case OpCase:
		if err := m.charge(uplc.StepCase); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		branches := m.prog.ipLists[instr.B]
		if err := m.ctx.push(frameCase{Env: env, Branches: branches}); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		return instr.A, env, uplc.Value{}, false, nil
	}
	return 0, nil, uplc.Value{}, false, uplc.ErrMalformedProgram
}

// ret dispatches on a popped frame — OP_RETURN's "handle per its type"
// (§4.4).
func (m *machine) ret(popped frame, val uplc.Value) (nextIP int, nextEnv jitEnv, result uplc.Value, goCompute bool, err error) {
	switch f := popped.(type) {
	case frameForce:
		switch val.Kind {
		case uplc.ValueDelay:
			th := val.Thunk.Body.(*compiledThunk)
			return th.bodyIP, th.env, uplc.Value{}, true, nil
		case uplc.ValuePartialBuiltin:
			v, err := m.table.ApplyForce(val.Partial, m.budget, m.logger, m.params)
			if err != nil {
				return 0, nil, uplc.Value{}, false, err
			}
			return 0, nil, v, false, nil
		default:
			return 0, nil, uplc.Value{}, false, uplc.ErrNonPolymorphicInstantiation
		}

	case frameApplyArg:
		// Phase 2: the function's value is known; evaluate the
		// argument next, under the env the Apply was compiled in.
		if err := m.ctx.push(frameApplyExec{Fun: val}); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		return f.ArgIP, f.Env, uplc.Value{}, true, nil

	case frameApplyExec:
		// Phase 3: both values are known; combine them.
		return m.apply(f.Fun, val)

	case frameCollect:
		done := append(append([]uplc.Value{}, f.Collected...), val)
		if len(f.Remaining) > 0 {
			if err := m.ctx.push(frameCollect{Kind: f.Kind, Env: f.Env, Tag: f.Tag, BuiltinID: f.BuiltinID, Collected: done, Remaining: f.Remaining[1:]}); err != nil {
				return 0, nil, uplc.Value{}, false, err
			}
			return f.Remaining[0], f.Env, uplc.Value{}, true, nil
		}
		switch f.Kind {
		case collectConstr:
			return 0, nil, uplc.ValueOfConstr(f.Tag, done), false, nil
		default: // collectBuiltinCall
			v, err := m.runBuiltinCall(f.BuiltinID, done)
			if err != nil {
				return 0, nil, uplc.Value{}, false, err
			}
			return 0, nil, v, false, nil
		}

	case frameCase:
		if val.Kind != uplc.ValueConstr {
			return 0, nil, uplc.Value{}, false, uplc.ErrNonFunctionApplied
		}
		tag := val.Constr.Tag
		if tag >= uint64(len(f.Branches)) {
			return 0, nil, uplc.Value{}, false, &uplc.CaseMissingBranch{Tag: tag}
		}
		if err := m.ctx.push(frameCaseApply{Fields: val.Constr.Fields, Idx: 0}); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		return f.Branches[tag], f.Env, uplc.Value{}, true, nil

	case frameCaseApply:
		if f.Idx >= len(f.Fields) {
			return 0, nil, val, false, nil
		}
		if err := m.ctx.push(frameCaseApply{Fields: f.Fields, Idx: f.Idx + 1}); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		return m.apply(val, f.Fields[f.Idx])
	}
	return 0, nil, uplc.Value{}, false, uplc.ErrMalformedProgram
}

// apply combines a function value with an argument value exactly once —
// the one place frameApplyExec and frameCaseApply both bottom out at.
func (m *machine) apply(fn uplc.Value, arg uplc.Value) (nextIP int, nextEnv jitEnv, result uplc.Value, goCompute bool, err error) {
	switch fn.Kind {
	case uplc.ValueClosure:
		cc := fn.Closure.Body.(*compiledClosure)
		return cc.bodyIP, cc.env.extend(arg), uplc.Value{}, true, nil
	case uplc.ValuePartialBuiltin:
		v, err := m.table.ApplyArg(fn.Partial, arg, m.budget, m.logger, m.params)
		if err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		return 0, nil, v, false, nil
	default:
		return 0, nil, uplc.Value{}, false, uplc.ErrNonFunctionApplied
	}
}

// runBuiltinCall saturates a fresh partial builtin with already-forced
// operand values collected by frameCollect, reusing the same
// ApplyForce/ApplyArg path the general (non-inlined) application path
// goes through — so the builtin's own cost, error behavior, and the actual
// reduction rule are identical between the inlined and general paths. The
// machine-step charges differ: the inlined call charges one StepBuiltin and
// no StepApply/StepForce for its intermediate applications and forces, and
// pushes no frames for them. Every
// builtin declares NArgs ≥ 1, so applying all NForces forces up front
// never saturates the partial prematurely.
func (m *machine) runBuiltinCall(id uplc.BuiltinID, args []uplc.Value) (uplc.Value, error) {
	entry, ok := m.table[id]
	if !ok {
		return uplc.Value{}, uplc.ErrUnknownBuiltin
	}
	v, err := m.table.NewFreshPartial(id)
	if err != nil {
		return uplc.Value{}, err
	}
	for i := 0; i < entry.NForces; i++ {
		v, err = m.table.ApplyForce(v.Partial, m.budget, m.logger, m.params)
		if err != nil {
			return uplc.Value{}, err
		}
	}
	for _, a := range args {
		v, err = m.table.ApplyArg(v.Partial, a, m.budget, m.logger, m.params)
		if err != nil {
			return uplc.Value{}, err
		}
	}
	return v, nil
}

func (m *machine) charge(kind uplc.StepKind) error {
	cost := m.params.StepCost(kind)
	return m.budget.Spend(uplc.StepSpend(kind), cost.CPU, cost.Mem)
}
