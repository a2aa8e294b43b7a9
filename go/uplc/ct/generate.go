package ct

import (
	"pgregory.net/rand"

	"github.com/uplc-eval/uplc/go/uplc"
)

// GenerateClosedTerm produces a well-scoped, well-typed-enough random term
// of bounded depth, for the Agreement property tests (§8): CEK and JIT
// must agree on every such term's result. depth bounds how many more
// levels of recursion are allowed before the generator is forced down to
// a leaf, keeping terms finite. scopeDepth is the number of currently
// bound variables, so any Var this call emits is guaranteed to resolve.
//
// The generator deliberately stays inside a small, well-understood
// fragment (integer arithmetic, lambda/application, delay/force, and a
// two-branch Constr/Case) rather than attempting to cover every builtin —
// breadth of builtin coverage is exercised by the builtin package's own
// unit tests, not by random term generation.
func GenerateClosedTerm(rng *rand.Rand, depth, scopeDepth int) uplc.Term {
	if depth <= 0 || rng.Intn(3) == 0 {
		return generateLeaf(rng, scopeDepth)
	}

	switch rng.Intn(6) {
	case 0:
		return uplc.LamAbs{Body: GenerateClosedTerm(rng, depth-1, scopeDepth+1)}
	case 1:
		return uplc.Apply{
			Fun: uplc.LamAbs{Body: GenerateClosedTerm(rng, depth-1, scopeDepth+1)},
			Arg: GenerateClosedTerm(rng, depth-1, scopeDepth),
		}
	case 2:
		return uplc.Force{Body: uplc.Delay{Body: GenerateClosedTerm(rng, depth-1, scopeDepth)}}
	case 3:
		id := arithmeticBuiltins[rng.Intn(len(arithmeticBuiltins))]
		return uplc.Apply{
			Fun: uplc.Apply{
				Fun: uplc.Builtin{ID: id},
				Arg: generateInt(rng),
			},
			Arg: generateInt(rng),
		}
	case 4:
		tag := uint64(rng.Intn(2))
		return uplc.Constr{Tag: tag, Fields: []uplc.Term{generateInt(rng)}}
	default:
		return uplc.Case{
			Scrutinee: uplc.Constr{Tag: uint64(rng.Intn(2)), Fields: []uplc.Term{generateInt(rng)}},
			Branches: []uplc.Term{
				uplc.LamAbs{Body: uplc.Var{Index: 0}},
				uplc.LamAbs{Body: uplc.Var{Index: 0}},
			},
		}
	}
}

var arithmeticBuiltins = []uplc.BuiltinID{
	uplc.AddInteger,
	uplc.SubtractInteger,
	uplc.MultiplyInteger,
	uplc.EqualsInteger,
	uplc.LessThanInteger,
}

func generateLeaf(rng *rand.Rand, scopeDepth int) uplc.Term {
	if scopeDepth > 0 && rng.Intn(2) == 0 {
		return uplc.Var{Index: rng.Intn(scopeDepth)}
	}
	return generateInt(rng)
}

func generateInt(rng *rand.Rand) uplc.Term {
	return uplc.Const{Value: uplc.NewInteger(rng.Int63n(2_000_001) - 1_000_000)}
}
