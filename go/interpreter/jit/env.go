package jit

import "github.com/uplc-eval/uplc/go/uplc"

// jitEnv is the JIT's de Bruijn environment: a flat, index-addressed slice
// (index 0 is the most recently bound value) rather than CEK's linked
// *uplc.Env, so a Var lookup is a single indexed read instead of an
// O(depth) parent walk.
//
// spec.md §4.4 describes environments as one shared, mutable value_stack
// with closures recording a bare captured_depth integer, restored on
// return by popping exactly the values a call pushed. That scheme is
// unsound once a closure can escape the call that created it: consider
// compiling (\x -> \y -> addInteger x y) 5. The outer application pushes
// x=5 and evaluates the inner LamAbs, which — on the literal scheme —
// creates a closure recording captured_depth=1 and returns it as the
// outer call's result. But the outer call's own RESTORE_ENV, run as part
// of that same return, pops x=5 off the one shared stack immediately
// afterward — before the returned closure is ever invoked. Any later
// application of that closure reads garbage or someone else's binding at
// depth 0. Curried multi-argument functions are the single most common
// shape in real validator scripts, so this is not a corner case.
//
// jitEnv fixes it by making capture a value, not a depth into shared
// mutable state. OpLambda/OpDelay capture the current env slice header as
// is — no copy — and extend caps its receiver to a length-capped slice
// (e[:len(e):len(e)]) before appending, which forces append to allocate a
// fresh backing array the instant anyone tries to grow an env, so the
// captured slice's elements are never overwritten. Two closures captured at different points, or a closure and the
// call site that keeps extending past it, can never alias or corrupt each
// other's view. The cost is one O(depth) copy per application (extend),
// in exchange for every Var lookup after that being O(1) rather than
// CEK's O(depth) walk — a good trade when a binding is read more often
// than it is introduced, which is the common case. A proper
// upvalue-closing scheme (as in Lua) would avoid even that copy, but
// requires tracking which stack slots are still live across calls — more
// machinery than this evaluator's bounded-stack safety net warrants.
type jitEnv []uplc.Value

// extend returns the environment with v bound at index 0, capturing the
// rest of e's tail as pure snapshot data.
func (e jitEnv) extend(v uplc.Value) jitEnv {
	capped := e[:len(e):len(e)]
	return append(capped, v)
}

// lookup resolves a de Bruijn index. A closed term (the Term invariant)
// never causes this to report false.
func (e jitEnv) lookup(index int) (uplc.Value, bool) {
	i := len(e) - 1 - index
	if i < 0 || i >= len(e) {
		return uplc.Value{}, false
	}
	return e[i], true
}

// compiledClosure is the uplc.Term adapter stored in a Closure's Body
// field in place of CEK's raw uplc.Term: bodyIP indexes this package's
// compiled instruction stream, env is the jitEnv snapshot captured at
// OpLambda time. The JIT never populates or reads a Closure's Env field —
// env travels inside this adapter, since *uplc.Env cannot hold a jitEnv.
type compiledClosure struct {
	bodyIP int
	env    jitEnv
}

func (*compiledClosure) isTerm() {}

// compiledThunk is Delay/Force's counterpart of compiledClosure.
type compiledThunk struct {
	bodyIP int
	env    jitEnv
}

func (*compiledThunk) isTerm() {}
