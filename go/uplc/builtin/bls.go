package builtin

import (
	"math/big"

	blst "github.com/supranational/blst/bindings/go"

	"github.com/uplc-eval/uplc/go/uplc"
)

func init() {
	registerBLSBuiltins()
}

func registerBLSBuiltins() {
	integerEntries[uplc.Bls12_381_G1_Add] = &Entry{ID: uplc.Bls12_381_G1_Add, NArgs: 2, Reduce: reduceG1Add}
	integerEntries[uplc.Bls12_381_G1_Neg] = &Entry{ID: uplc.Bls12_381_G1_Neg, NArgs: 1, Reduce: reduceG1Neg}
	integerEntries[uplc.Bls12_381_G1_ScalarMul] = &Entry{ID: uplc.Bls12_381_G1_ScalarMul, NArgs: 2, Reduce: reduceG1ScalarMul}
	integerEntries[uplc.Bls12_381_G1_Equal] = &Entry{ID: uplc.Bls12_381_G1_Equal, NArgs: 2, Reduce: reduceG1Equal}
	integerEntries[uplc.Bls12_381_G1_Compress] = &Entry{ID: uplc.Bls12_381_G1_Compress, NArgs: 1, Reduce: reduceG1Compress}
	integerEntries[uplc.Bls12_381_G1_Uncompress] = &Entry{ID: uplc.Bls12_381_G1_Uncompress, NArgs: 1, Reduce: reduceG1Uncompress}

	integerEntries[uplc.Bls12_381_G2_Add] = &Entry{ID: uplc.Bls12_381_G2_Add, NArgs: 2, Reduce: reduceG2Add}
	integerEntries[uplc.Bls12_381_G2_Neg] = &Entry{ID: uplc.Bls12_381_G2_Neg, NArgs: 1, Reduce: reduceG2Neg}
	integerEntries[uplc.Bls12_381_G2_ScalarMul] = &Entry{ID: uplc.Bls12_381_G2_ScalarMul, NArgs: 2, Reduce: reduceG2ScalarMul}
	integerEntries[uplc.Bls12_381_G2_Equal] = &Entry{ID: uplc.Bls12_381_G2_Equal, NArgs: 2, Reduce: reduceG2Equal}
	integerEntries[uplc.Bls12_381_G2_Compress] = &Entry{ID: uplc.Bls12_381_G2_Compress, NArgs: 1, Reduce: reduceG2Compress}
	integerEntries[uplc.Bls12_381_G2_Uncompress] = &Entry{ID: uplc.Bls12_381_G2_Uncompress, NArgs: 1, Reduce: reduceG2Uncompress}

	integerEntries[uplc.Bls12_381_MillerLoop] = &Entry{ID: uplc.Bls12_381_MillerLoop, NArgs: 2, Reduce: reduceMillerLoop}
	integerEntries[uplc.Bls12_381_MulMlResult] = &Entry{ID: uplc.Bls12_381_MulMlResult, NArgs: 2, Reduce: reduceMulMlResult}
	integerEntries[uplc.Bls12_381_FinalVerify] = &Entry{ID: uplc.Bls12_381_FinalVerify, NArgs: 2, Reduce: reduceFinalVerify}
}

func asG1(id uplc.BuiltinID, v uplc.Value) (*blst.P1Affine, error) {
	if v.Kind != uplc.ValueConstant || v.Constant.Tag != uplc.TagBLSG1Element {
		return nil, typeError(id)
	}
	return v.Constant.BLSG1, nil
}

func asG2(id uplc.BuiltinID, v uplc.Value) (*blst.P2Affine, error) {
	if v.Kind != uplc.ValueConstant || v.Constant.Tag != uplc.TagBLSG2Element {
		return nil, typeError(id)
	}
	return v.Constant.BLSG2, nil
}

func g1Val(p *blst.P1Affine) uplc.Value {
	return uplc.ValueOfConstant(uplc.Constant{Tag: uplc.TagBLSG1Element, BLSG1: p})
}

func g2Val(p *blst.P2Affine) uplc.Value {
	return uplc.ValueOfConstant(uplc.Constant{Tag: uplc.TagBLSG2Element, BLSG2: p})
}

func reduceG1Add(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asG1(uplc.Bls12_381_G1_Add, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asG1(uplc.Bls12_381_G1_Add, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	res := blst.P1AffinesAdd([]*blst.P1Affine{a, b})
	return g1Val(res.ToAffine()), nil
}

func reduceG1Neg(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asG1(uplc.Bls12_381_G1_Neg, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	p := new(blst.P1).FromAffine(a)
	p.Neg(true)
	return g1Val(p.ToAffine()), nil
}

func reduceG1ScalarMul(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	k, err := asInteger(uplc.Bls12_381_G1_ScalarMul, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	a, err := asG1(uplc.Bls12_381_G1_ScalarMul, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	scalar := scalarBytes(k)
	p := new(blst.P1).FromAffine(a)
	res := p.Mult(scalar)
	return g1Val(res.ToAffine()), nil
}

func reduceG1Equal(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asG1(uplc.Bls12_381_G1_Equal, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asG1(uplc.Bls12_381_G1_Equal, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	return boolVal(a.Equals(b)), nil
}

func reduceG1Compress(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asG1(uplc.Bls12_381_G1_Compress, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	return bytesVal(a.Compress()), nil
}

func reduceG1Uncompress(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.Bls12_381_G1_Uncompress, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	p := new(blst.P1Affine).Uncompress(b)
	if p == nil {
		return uplc.Value{}, runtimeError(uplc.Bls12_381_G1_Uncompress, "invalid compressed G1 point")
	}
	return g1Val(p), nil
}

func reduceG2Add(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asG2(uplc.Bls12_381_G2_Add, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asG2(uplc.Bls12_381_G2_Add, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	res := blst.P2AffinesAdd([]*blst.P2Affine{a, b})
	return g2Val(res.ToAffine()), nil
}

func reduceG2Neg(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asG2(uplc.Bls12_381_G2_Neg, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	p := new(blst.P2).FromAffine(a)
	p.Neg(true)
	return g2Val(p.ToAffine()), nil
}

func reduceG2ScalarMul(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	k, err := asInteger(uplc.Bls12_381_G2_ScalarMul, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	a, err := asG2(uplc.Bls12_381_G2_ScalarMul, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	scalar := scalarBytes(k)
	p := new(blst.P2).FromAffine(a)
	res := p.Mult(scalar)
	return g2Val(res.ToAffine()), nil
}

func reduceG2Equal(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asG2(uplc.Bls12_381_G2_Equal, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asG2(uplc.Bls12_381_G2_Equal, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	return boolVal(a.Equals(b)), nil
}

func reduceG2Compress(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asG2(uplc.Bls12_381_G2_Compress, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	return bytesVal(a.Compress()), nil
}

func reduceG2Uncompress(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.Bls12_381_G2_Uncompress, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	p := new(blst.P2Affine).Uncompress(b)
	if p == nil {
		return uplc.Value{}, runtimeError(uplc.Bls12_381_G2_Uncompress, "invalid compressed G2 point")
	}
	return g2Val(p), nil
}

// reduceMillerLoop and the target-group ops below treat the Miller loop
// output as opaque encoded bytes (uplc.Constant.BLSMlResult) since Plutus
// only ever multiplies or pairing-checks it, never decodes it (§4.1).
func reduceMillerLoop(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asG1(uplc.Bls12_381_MillerLoop, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asG2(uplc.Bls12_381_MillerLoop, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	fp12 := blst.Fp12MillerLoop(b, a)
	return mlResultVal(fp12.ToBendian()), nil
}

func reduceMulMlResult(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asMlResult(uplc.Bls12_381_MulMlResult, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asMlResult(uplc.Bls12_381_MulMlResult, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	fa := new(blst.Fp12).FromBendian(a)
	fb := new(blst.Fp12).FromBendian(b)
	fa.Mul(fb)
	return mlResultVal(fa.ToBendian()), nil
}

func reduceFinalVerify(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asMlResult(uplc.Bls12_381_FinalVerify, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asMlResult(uplc.Bls12_381_FinalVerify, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	fa := new(blst.Fp12).FromBendian(a)
	fb := new(blst.Fp12).FromBendian(b)
	return boolVal(blst.Fp12FinalVerify(fa, fb)), nil
}

func asMlResult(id uplc.BuiltinID, v uplc.Value) ([]byte, error) {
	if v.Kind != uplc.ValueConstant || v.Constant.Tag != uplc.TagBLSMlResult {
		return nil, typeError(id)
	}
	return v.Constant.BLSMlResult, nil
}

func mlResultVal(b []byte) uplc.Value {
	return uplc.ValueOfConstant(uplc.Constant{Tag: uplc.TagBLSMlResult, BLSMlResult: b})
}

// scalarBytes big-endian-encodes an (always reduced-mod-group-order by
// blst internally) scalar for Mult, which wants a byte slice plus its bit
// length; blst reduces modulo the group order itself.
func scalarBytes(k *big.Int) []byte {
	v := new(big.Int).Set(k)
	if v.Sign() < 0 {
		v.Mod(v, blsGroupOrder)
	}
	return v.Bytes()
}

var blsGroupOrder, _ = new(big.Int).SetString("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)
