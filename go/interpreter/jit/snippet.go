package jit

import "github.com/uplc-eval/uplc/go/uplc"

// snippetKind discriminates the compiledSnippet union EXEC_SNIPPET reads
// (§3 "JIT instruction stream").
type snippetKind byte

const (
	// snippetVar resolves a de Bruijn index against the active env.
	snippetVar snippetKind = iota
	// snippetConst wraps a closed constant literal.
	snippetConst
	// snippetBuiltinRef produces a fresh, unsaturated PartialBuiltin for
	// a bare Term.Builtin leaf — the start of the general,
	// one-argument-at-a-time application path.
	snippetBuiltinRef
	// snippetError always fails with ErrUserError.
	snippetError
	// snippetBuiltinCall is a compile-time-recognized fully-saturated,
	// fully-forced builtin application (§4.3 "builtin inlining"):
	// AddInteger/SubtractInteger/.../all arithmetic and comparisons,
	// byte-string comparison/length/append, all hashes, the Data
	// destructors (UnIData/UnBData/UnListData/UnMapData/
	// UnConstrData), head/tail/null/chooseList, ifThenElse, trace,
	// fstPair/sndPair, and every other builtin besides — detection is
	// driven by the table's actual NArgs/NForces for the id in
	// question (see detectBuiltinCall in instr.go), not a hand-
	// maintained allowlist, so it covers the whole catalogue
	// uniformly and fires regardless of whether the operands are
	// literal constants or arbitrary subterms.
	snippetBuiltinCall
)

// compiledSnippet is one EXEC_SNIPPET payload. Exactly one field group is
// meaningful, selected by kind.
type compiledSnippet struct {
	kind snippetKind

	varIndex int
	constant uplc.Constant

	builtinID   uplc.BuiltinID
	argTableIdx int // snippetBuiltinCall only: index into program.ipLists
}

// execSnippet runs one EXEC_SNIPPET instruction (§4.3's "snippet
// contract": charge cost first, then either produce a value or suspend
// by pushing a frame and redirecting ip — never both). snippetVar/
// snippetConst/snippetBuiltinRef/snippetError always finish immediately;
// snippetBuiltinCall suspends into frameCollect whenever it has operands
// left to evaluate, which, with NArgs ≥ 1 for every builtin, is always at
// least once.
func (m *machine) execSnippet(env jitEnv, s *compiledSnippet) (nextIP int, nextEnv jitEnv, result uplc.Value, done bool, err error) {
	switch s.kind {
	case snippetVar:
		if err := m.charge(uplc.StepVar); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		v, ok := env.lookup(s.varIndex)
		if !ok {
			return 0, nil, uplc.Value{}, false, uplc.ErrMalformedProgram
		}
		return 0, nil, v, true, nil

	case snippetConst:
		if err := m.charge(uplc.StepConst); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		return 0, nil, uplc.ValueOfConstant(s.constant), true, nil

	case snippetBuiltinRef:
		if err := m.charge(uplc.StepBuiltin); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		v, err := m.table.NewFreshPartial(s.builtinID)
		if err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		return 0, nil, v, true, nil

	case snippetError:
		return 0, nil, uplc.Value{}, false, uplc.ErrUserError

	default: // snippetBuiltinCall
		if err := m.charge(uplc.StepBuiltin); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		argIPs := m.prog.ipLists[s.argTableIdx]
		if err := m.ctx.push(frameCollect{Kind: collectBuiltinCall, Env: env, BuiltinID: s.builtinID, Remaining: argIPs[1:]}); err != nil {
			return 0, nil, uplc.Value{}, false, err
		}
		return argIPs[0], env, uplc.Value{}, false, nil
	}
}
