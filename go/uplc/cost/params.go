package cost

import "github.com/uplc-eval/uplc/go/uplc"

// DefaultMachineParameters returns a complete, internally consistent set of
// machine parameters. The step costs and per-builtin cost functions below
// are placeholders in the sense spec.md §9 warns about — "the exact cost-
// model constants ... must match CEK's byte-for-byte" against whatever
// reference is authoritative for a given protocol version. What this
// package guarantees is the one property actually owned by the evaluator:
// every evaluator (CEK, JIT generic path, JIT inlined snippets) reads cost
// from this same table, so they can never diverge from each other even if
// a deployment swaps in different constants.
func DefaultMachineParameters() *uplc.MachineParameters {
	p := &uplc.MachineParameters{
		StartUp: uplc.StepCost{CPU: 100, Mem: 100},
		Builtin: make(map[uplc.BuiltinID]uplc.BuiltinCostFunction, uplc.NumBuiltins),
	}
	p.Steps[uplc.StepVar] = uplc.StepCost{CPU: 16000, Mem: 100}
	p.Steps[uplc.StepConst] = uplc.StepCost{CPU: 16000, Mem: 100}
	p.Steps[uplc.StepLambda] = uplc.StepCost{CPU: 16000, Mem: 100}
	p.Steps[uplc.StepDelay] = uplc.StepCost{CPU: 16000, Mem: 100}
	p.Steps[uplc.StepForce] = uplc.StepCost{CPU: 16000, Mem: 100}
	p.Steps[uplc.StepApply] = uplc.StepCost{CPU: 16000, Mem: 100}
	p.Steps[uplc.StepCase] = uplc.StepCost{CPU: 16000, Mem: 100}
	p.Steps[uplc.StepConstr] = uplc.StepCost{CPU: 16000, Mem: 100}
	p.Steps[uplc.StepBuiltin] = uplc.StepCost{CPU: 16000, Mem: 100}

	constant := func(cpu, mem uplc.Gas) uplc.BuiltinCostFunction { return Constant{CPU: cpu, Mem: mem} }
	linear1 := func(cpuI, cpuS, memI, memS uplc.Gas) uplc.BuiltinCostFunction {
		return LinearInFirstArg{CPUIntercept: cpuI, CPUSlope: cpuS, MemIntercept: memI, MemSlope: memS}
	}
	linearMax := func(cpuI, cpuS, memI, memS uplc.Gas) uplc.BuiltinCostFunction {
		return LinearInMaxArg{CPUIntercept: cpuI, CPUSlope: cpuS, MemIntercept: memI, MemSlope: memS}
	}
	linearSum := func(cpuI, cpuS, memI, memS uplc.Gas) uplc.BuiltinCostFunction {
		return LinearInSumArgs{CPUIntercept: cpuI, CPUSlope: cpuS, MemIntercept: memI, MemSlope: memS}
	}

	b := p.Builtin
	b[uplc.AddInteger] = linearMax(205665, 812, 100, 1)
	b[uplc.SubtractInteger] = linearMax(205665, 812, 100, 1)
	b[uplc.MultiplyInteger] = linearSum(292522, 1, 100, 1)
	b[uplc.DivideInteger] = linearMax(196500, 453240, 100, 1)
	b[uplc.QuotientInteger] = linearMax(196500, 453240, 100, 1)
	b[uplc.RemainderInteger] = linearMax(196500, 453240, 100, 1)
	b[uplc.ModInteger] = linearMax(196500, 453240, 100, 1)
	b[uplc.EqualsInteger] = linearMax(208512, 421, 100, 1)
	b[uplc.LessThanInteger] = linearMax(208896, 511, 100, 1)
	b[uplc.LessThanEqualsInteger] = linearMax(204924, 473, 100, 1)

	b[uplc.AppendByteString] = linearSum(1000, 173, 100, 1)
	b[uplc.ConsByteString] = linearSum(1000, 72, 100, 1)
	b[uplc.SliceByteString] = linear1(1000, 0, 100, 1)
	b[uplc.LengthOfByteString] = constant(1000, 4)
	b[uplc.IndexByteString] = constant(57667, 4)
	b[uplc.EqualsByteString] = linearMax(245000, 216, 100, 1)
	b[uplc.LessThanByteString] = linearMax(197145, 156, 100, 1)
	b[uplc.LessThanEqualsByteString] = linearMax(197145, 156, 100, 1)

	b[uplc.Sha2_256] = linear1(2261318, 64, 100, 1)
	b[uplc.Sha3_256] = linear1(1546325, 220, 100, 1)
	b[uplc.Blake2b_256] = linear1(1000, 100, 100, 1)
	b[uplc.VerifyEd25519Signature] = linear1(53384111, 14, 100, 1)

	b[uplc.AppendString] = linearSum(1000, 24, 100, 1)
	b[uplc.EqualsString] = linearMax(187593, 2549, 100, 1)
	b[uplc.EncodeUtf8] = linear1(1000, 173, 100, 1)
	b[uplc.DecodeUtf8] = linear1(91189, 769, 100, 1)

	b[uplc.IfThenElse] = constant(80556, 1)
	b[uplc.ChooseUnit] = constant(46417, 4)
	b[uplc.Trace] = constant(212342, 32)
	b[uplc.FstPair] = constant(80436, 32)
	b[uplc.SndPair] = constant(85931, 32)
	b[uplc.ChooseList] = constant(175354, 32)
	b[uplc.MkCons] = constant(65493, 32)
	b[uplc.HeadList] = constant(43249, 32)
	b[uplc.TailList] = constant(41182, 32)
	b[uplc.NullList] = constant(60091, 32)

	b[uplc.ChooseData] = constant(19537, 32)
	b[uplc.ConstrData] = constant(22151, 32)
	b[uplc.MapData] = constant(64832, 32)
	b[uplc.ListData] = constant(52467, 32)
	b[uplc.IData] = constant(20142, 32)
	b[uplc.BData] = constant(24872, 32)
	b[uplc.UnConstrData] = constant(32696, 32)
	b[uplc.UnMapData] = constant(38314, 32)
	b[uplc.UnListData] = constant(32247, 32)
	b[uplc.UnIData] = constant(43357, 32)
	b[uplc.UnBData] = constant(31220, 32)
	b[uplc.EqualsData] = linearMax(1060367, 12586, 100, 1)
	b[uplc.MkPairData] = constant(11546, 32)
	b[uplc.MkNilData] = constant(22558, 32)
	b[uplc.MkNilPairData] = constant(16563, 32)
	b[uplc.SerialiseData] = linear1(1159724, 392, 100, 1)

	b[uplc.VerifyEcdsaSecp256k1Signature] = constant(43053543, 10)
	b[uplc.VerifySchnorrSecp256k1Signature] = linear1(43053543, 10, 100, 1)

	bls := constant(2000000, 200)
	b[uplc.Bls12_381_G1_Add] = bls
	b[uplc.Bls12_381_G1_Neg] = bls
	b[uplc.Bls12_381_G1_ScalarMul] = constant(2500000, 200)
	b[uplc.Bls12_381_G1_Equal] = constant(442008, 200)
	b[uplc.Bls12_381_G1_Compress] = constant(103599, 120)
	b[uplc.Bls12_381_G1_Uncompress] = constant(117366, 120)
	b[uplc.Bls12_381_G2_Add] = bls
	b[uplc.Bls12_381_G2_Neg] = bls
	b[uplc.Bls12_381_G2_ScalarMul] = constant(4500000, 200)
	b[uplc.Bls12_381_G2_Equal] = constant(845649, 200)
	b[uplc.Bls12_381_G2_Compress] = constant(193556, 120)
	b[uplc.Bls12_381_G2_Uncompress] = constant(248412, 120)
	b[uplc.Bls12_381_MillerLoop] = constant(4500000, 300)
	b[uplc.Bls12_381_MulMlResult] = constant(65384, 200)
	b[uplc.Bls12_381_FinalVerify] = constant(4500000, 200)

	b[uplc.Keccak_256] = linear1(2261318, 64, 100, 1)
	b[uplc.Blake2b_224] = linear1(1000, 100, 100, 1)

	b[uplc.IntegerToByteString] = linear1(1000, 140, 100, 1)
	b[uplc.ByteStringToInteger] = linear1(1000, 140, 100, 1)

	b[uplc.AndByteString] = linearMax(100181, 726, 100, 1)
	b[uplc.OrByteString] = linearMax(100181, 726, 100, 1)
	b[uplc.XorByteString] = linearMax(100181, 726, 100, 1)
	b[uplc.ComplementByteString] = linear1(1000, 66, 100, 1)
	b[uplc.ReadBit] = constant(4307, 4)
	b[uplc.WriteBits] = linear1(1000, 66016, 100, 1)
	b[uplc.ReplicateByte] = linear1(1000, 50, 100, 1)
	b[uplc.ShiftByteString] = linear1(1000, 218, 100, 1)
	b[uplc.RotateByteString] = linear1(1000, 218, 100, 1)
	b[uplc.CountSetBits] = linear1(1000, 14, 100, 1)
	b[uplc.FindFirstSetBit] = linear1(1000, 14, 100, 1)

	b[uplc.RipeMd160] = linear1(1964219, 24, 100, 1)
	b[uplc.ExpModInteger] = QuadraticInFirstArg{CPUIntercept: 1000, CPUSlope: 8, MemIntercept: 100, MemSlope: 1}

	return p
}
