// Package jit implements the JIT evaluator of spec.md §4.3/§4.4: terms are
// compiled ahead of time into an indexed array of (opcode, data) triples —
// not a pointer tree of term-shaped nodes — so the evaluator drives a
// single ip-indexed dispatch loop instead of walking compiled structure
// that merely mirrors the original syntax tree. The compiler additionally
// recognizes fully-saturated, fully-forced builtin applications (any
// operand shape, not just literal constants) and lowers each one to a
// single EXEC_SNIPPET that evaluates its operands and calls straight into
// the builtin table, skipping the general per-argument OP_APPLY dispatch.
//
// The one place this implementation departs from spec.md §4.4's literal
// environment model — a single shared, mutable value_stack with closures
// capturing a bare captured_depth integer — is documented in DESIGN.md and
// in env.go's jitEnv doc comment: that scheme is unsound for first-class
// closures that escape the call that created them, and the fix costs one
// O(depth) copy per application in exchange for the stack's indexed,
// constant-time Var lookup.
package jit

import (
	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/builtin"
)

// Opcode is one instruction tag of the compiled stream (§3 "JIT
// instruction stream").
type Opcode byte

const (
	// OpExecSnippet evaluates the attached compiledSnippet — a leaf
	// (Var/Const/Builtin/Error) or a fully-saturated builtin call — and
	// either produces a value directly or, for a builtin call with
	// operands still to evaluate, pushes a frame and jumps (the "may
	// suspend only by pushing frames and jumping ip" half of the
	// snippet contract). Data: A = index into program.snippets.
	OpExecSnippet Opcode = iota
	// OpApply starts the three-phase application protocol (§4.4):
	// push frameApplyArg(argIP), jump to the function's entry. Data:
	// A = function entry ip, B = argument entry ip.
	OpApply
	// OpForce pushes frameForce and jumps to the forced subterm's
	// entry. Data: A = subterm entry ip.
	OpForce
	// OpLambda builds a closure over the body at A, capturing the
	// current env slice as is (no copy; jitEnv.extend keeps it intact).
	// Data: A = body entry ip (back-patched after the body compiles).
	OpLambda
	// OpDelay is OpLambda's counterpart for Delay/Force.
	OpDelay
	// OpCase pushes frameCase (recording the branch table and the
	// current env) and jumps to the scrutinee's entry. Data: A =
	// scrutinee entry ip, B = index into program.ipLists for the
	// branch table.
	OpCase
	// OpConstr evaluates each field left to right via frameCollect,
	// then builds the constructor value. A zero-field Constr produces
	// its value immediately and falls through to the paired
	// OpReturn. Data: A = tag, B = index into program.ipLists for the
	// field entry ips.
	OpConstr
	// OpReturn is the instruction the compiler pairs after every
	// value-producing instruction. The evaluator's dispatch loop
	// short-circuits straight from computing a value to the pop-and-
	// dispatch phase those trailing OpReturn instructions represent,
	// the same way a real VM would fold a known-constant fallthrough
	// into the instruction that precedes it; they still occupy real
	// slots in the stream, matching the compiled shape spec.md
	// describes, even though the dispatch loop never needs to fetch
	// them explicitly.
	OpReturn
)

// Instr is one (opcode, data1, data2) triple.
type Instr struct {
	Op   Opcode
	A, B int
}

// program is the compiler's output: a flat instruction array plus the
// side tables instructions index into (snippets, and the variable-length
// ip lists shared by OP_CONSTR's fields, OP_CASE's branches, and a
// snippetBuiltinCall's operands).
type program struct {
	instrs   []Instr
	snippets []compiledSnippet
	ipLists  [][]int
	entry    int
}

func (p *program) emit(i Instr) int {
	p.instrs = append(p.instrs, i)
	return len(p.instrs) - 1
}

func (p *program) addIPList(ips []int) int {
	p.ipLists = append(p.ipLists, ips)
	return len(p.ipLists) - 1
}

// emitSnippet appends a snippet and the OpExecSnippet/OpReturn pair that
// runs it, returning the entry ip (the OpExecSnippet instruction).
func (p *program) emitSnippet(s compiledSnippet) int {
	idx := len(p.snippets)
	p.snippets = append(p.snippets, s)
	entry := p.emit(Instr{Op: OpExecSnippet, A: idx})
	p.emit(Instr{Op: OpReturn})
	return entry
}

// compile lowers term into a program against table, used to recognize
// fully-saturated builtin applications at compile time (§4.3 "builtin
// inlining"). table is the same catalogue the evaluator will run against;
// passing a different one at run time would be a caller bug, not
// something this package can detect.
func compile(term uplc.Term, table builtin.Table) *program {
	p := &program{}
	p.entry = compileTerm(p, term, table)
	return p
}

// compileTerm lowers term, appending to p, and returns the index of the
// first instruction emitted for it (spec.md §4.3's per-term lowering
// rules).
func compileTerm(p *program, term uplc.Term, table builtin.Table) int {
	switch t := term.(type) {
	case uplc.Var:
		return p.emitSnippet(compiledSnippet{kind: snippetVar, varIndex: t.Index})

	case uplc.Const:
		return p.emitSnippet(compiledSnippet{kind: snippetConst, constant: t.Value})

	case uplc.Builtin:
		return p.emitSnippet(compiledSnippet{kind: snippetBuiltinRef, builtinID: t.ID})

	case uplc.Error:
		return p.emitSnippet(compiledSnippet{kind: snippetError})

	case uplc.LamAbs:
		entry := p.emit(Instr{Op: OpLambda})
		p.emit(Instr{Op: OpReturn})
		bodyIP := compileTerm(p, t.Body, table)
		p.instrs[entry].A = bodyIP
		return entry

	case uplc.Delay:
		entry := p.emit(Instr{Op: OpDelay})
		p.emit(Instr{Op: OpReturn})
		bodyIP := compileTerm(p, t.Body, table)
		p.instrs[entry].A = bodyIP
		return entry

	case uplc.Force:
		bodyIP := compileTerm(p, t.Body, table)
		entry := p.emit(Instr{Op: OpForce, A: bodyIP})
		p.emit(Instr{Op: OpReturn})
		return entry

	case uplc.Apply:
		if id, args, ok := detectBuiltinCall(t, table); ok {
			argIPs := make([]int, len(args))
			for i, a := range args {
				argIPs[i] = compileTerm(p, a, table)
			}
			return p.emitSnippet(compiledSnippet{
				kind:        snippetBuiltinCall,
				builtinID:   id,
				argTableIdx: p.addIPList(argIPs),
			})
		}
		funIP := compileTerm(p, t.Fun, table)
		argIP := compileTerm(p, t.Arg, table)
		entry := p.emit(Instr{Op: OpApply, A: funIP, B: argIP})
		p.emit(Instr{Op: OpReturn})
		return entry

	case uplc.Constr:
		fieldIPs := make([]int, len(t.Fields))
		for i, f := range t.Fields {
			fieldIPs[i] = compileTerm(p, f, table)
		}
		entry := p.emit(Instr{Op: OpConstr, A: int(t.Tag), B: p.addIPList(fieldIPs)})
		p.emit(Instr{Op: OpReturn})
		return entry

	case uplc.Case:
		scrIP := compileTerm(p, t.Scrutinee, table)
		branchIPs := make([]int, len(t.Branches))
		for i, b := range t.Branches {
			branchIPs[i] = compileTerm(p, b, table)
		}
		// OP_CASE itself is the entry point: reaching it pushes
		// frameCase and jumps into the scrutinee, so there is no
		// paired OpReturn here — the value this term produces comes
		// back entirely through frameCase / frameCaseApply.
		return p.emit(Instr{Op: OpCase, A: scrIP, B: p.addIPList(branchIPs)})
	}
	return p.emitSnippet(compiledSnippet{kind: snippetError})
}

// detectBuiltinCall recognizes a fully-saturated, fully-forced builtin
// application: zero or more Force wrapping a Builtin leaf, applied to
// exactly that builtin's declared argument count (§4.3 "builtin
// inlining"). Unlike the allowlisted, literal-constant-only recognizer it
// replaces, this fires for any operand shape — a Var, a nested Apply,
// anything — because the operands are evaluated at run time by the
// compiled instruction stream, not folded at compile time.
func detectBuiltinCall(term uplc.Apply, table builtin.Table) (uplc.BuiltinID, []uplc.Term, bool) {
	var cur uplc.Term = term
	var argsRev []uplc.Term
	for {
		ap, ok := cur.(uplc.Apply)
		if !ok {
			break
		}
		argsRev = append(argsRev, ap.Arg)
		cur = ap.Fun
	}
	forces := 0
	for {
		f, ok := cur.(uplc.Force)
		if !ok {
			break
		}
		forces++
		cur = f.Body
	}
	b, ok := cur.(uplc.Builtin)
	if !ok {
		return 0, nil, false
	}
	entry, ok := table[b.ID]
	if !ok || entry.NArgs != len(argsRev) || entry.NForces != forces {
		return 0, nil, false
	}
	args := make([]uplc.Term, len(argsRev))
	for i, a := range argsRev {
		args[len(argsRev)-1-i] = a
	}
	return b.ID, args, true
}
