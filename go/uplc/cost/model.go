// Package cost implements the machine cost model: the shapes a builtin's
// cost function can take (constant; linear in the first argument's size,
// the largest argument size, or the sum of argument sizes; quadratic in the
// first argument's size) and the default MachineParameters used when a caller does
// not supply its own. Every shape here implements uplc.BuiltinCostFunction,
// so the CEK machine, the JIT's generic partial-builtin path, and the JIT's
// inlined snippets all derive cost from the same function object (§9).
package cost

import "github.com/uplc-eval/uplc/go/uplc"

// Constant is a builtin cost function that ignores argument sizes.
type Constant struct {
	CPU, Mem uplc.Gas
}

func (c Constant) Cost([]uplc.Size) uplc.StepCost {
	return uplc.StepCost{CPU: c.CPU, Mem: c.Mem}
}

// LinearInFirstArg charges Intercept + Slope*size(args[0]).
type LinearInFirstArg struct {
	CPUIntercept, CPUSlope uplc.Gas
	MemIntercept, MemSlope uplc.Gas
}

func (l LinearInFirstArg) Cost(args []uplc.Size) uplc.StepCost {
	var size uplc.Size
	if len(args) > 0 {
		size = args[0]
	}
	return uplc.StepCost{
		CPU: l.CPUIntercept + l.CPUSlope*uplc.Gas(size),
		Mem: l.MemIntercept + l.MemSlope*uplc.Gas(size),
	}
}

// LinearInMaxArg charges based on the largest of all argument sizes — the
// shape used by symmetric binary byte-string/integer ops such
// as equality and append.
type LinearInMaxArg struct {
	CPUIntercept, CPUSlope uplc.Gas
	MemIntercept, MemSlope uplc.Gas
}

func (l LinearInMaxArg) Cost(args []uplc.Size) uplc.StepCost {
	var maxSize uplc.Size
	for _, a := range args {
		if a > maxSize {
			maxSize = a
		}
	}
	return uplc.StepCost{
		CPU: l.CPUIntercept + l.CPUSlope*uplc.Gas(maxSize),
		Mem: l.MemIntercept + l.MemSlope*uplc.Gas(maxSize),
	}
}

// LinearInSumArgs charges based on the sum of every argument's size — the
// shape used for concatenation-like ops (appendByteString, appendString).
type LinearInSumArgs struct {
	CPUIntercept, CPUSlope uplc.Gas
	MemIntercept, MemSlope uplc.Gas
}

func (l LinearInSumArgs) Cost(args []uplc.Size) uplc.StepCost {
	var sum uplc.Size
	for _, a := range args {
		sum += a
	}
	return uplc.StepCost{
		CPU: l.CPUIntercept + l.CPUSlope*uplc.Gas(sum),
		Mem: l.MemIntercept + l.MemSlope*uplc.Gas(sum),
	}
}

// QuadraticInFirstArg charges Intercept + Slope*size^2 — used for
// exponentiation-like ops (expModInteger).
type QuadraticInFirstArg struct {
	CPUIntercept, CPUSlope uplc.Gas
	MemIntercept, MemSlope uplc.Gas
}

func (q QuadraticInFirstArg) Cost(args []uplc.Size) uplc.StepCost {
	var size uplc.Size
	if len(args) > 0 {
		size = args[0]
	}
	sq := uplc.Gas(size) * uplc.Gas(size)
	return uplc.StepCost{
		CPU: q.CPUIntercept + q.CPUSlope*sq,
		Mem: q.MemIntercept + q.MemSlope*sq,
	}
}
