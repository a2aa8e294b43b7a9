package builtin

import (
	"math/big"

	"github.com/uplc-eval/uplc/go/uplc"
)

func typeError(id uplc.BuiltinID) error { return &uplc.BuiltinTypeError{ID: id} }

func runtimeError(id uplc.BuiltinID, msg string) error {
	return &uplc.BuiltinRuntimeError{ID: id, Msg: msg}
}

func asInteger(id uplc.BuiltinID, v uplc.Value) (*big.Int, error) {
	if v.Kind != uplc.ValueConstant || v.Constant.Tag != uplc.TagInteger {
		return nil, typeError(id)
	}
	return v.Constant.Integer, nil
}

func asByteString(id uplc.BuiltinID, v uplc.Value) ([]byte, error) {
	if v.Kind != uplc.ValueConstant || v.Constant.Tag != uplc.TagByteString {
		return nil, typeError(id)
	}
	return v.Constant.ByteString, nil
}

func asString(id uplc.BuiltinID, v uplc.Value) (string, error) {
	if v.Kind != uplc.ValueConstant || v.Constant.Tag != uplc.TagString {
		return "", typeError(id)
	}
	return v.Constant.String, nil
}

func asBool(id uplc.BuiltinID, v uplc.Value) (bool, error) {
	if v.Kind != uplc.ValueConstant || v.Constant.Tag != uplc.TagBool {
		return false, typeError(id)
	}
	return v.Constant.Bool, nil
}

func asData(id uplc.BuiltinID, v uplc.Value) (uplc.Data, error) {
	if v.Kind != uplc.ValueConstant || v.Constant.Tag != uplc.TagData {
		return uplc.Data{}, typeError(id)
	}
	return v.Constant.Data, nil
}

func asList(id uplc.BuiltinID, v uplc.Value) (uplc.ConstantTag, []uplc.Constant, error) {
	if v.Kind != uplc.ValueConstant || v.Constant.Tag != uplc.TagList {
		return 0, nil, typeError(id)
	}
	return v.Constant.ListElemTag, v.Constant.List, nil
}

func asPair(id uplc.BuiltinID, v uplc.Value) (uplc.Constant, uplc.Constant, error) {
	if v.Kind != uplc.ValueConstant || v.Constant.Tag != uplc.TagPair {
		return uplc.Constant{}, uplc.Constant{}, typeError(id)
	}
	return *v.Constant.PairFst, *v.Constant.PairSnd, nil
}

func asConstr(id uplc.BuiltinID, v uplc.Value) (uint64, []uplc.Value, error) {
	if v.Kind != uplc.ValueConstr {
		return 0, nil, typeError(id)
	}
	return v.Constr.Tag, v.Constr.Fields, nil
}

func intVal(v *big.Int) uplc.Value    { return uplc.ValueOfConstant(uplc.Constant{Tag: uplc.TagInteger, Integer: v}) }
func bytesVal(b []byte) uplc.Value    { return uplc.ValueOfConstant(uplc.NewByteString(b)) }
func strVal(s string) uplc.Value      { return uplc.ValueOfConstant(uplc.NewString(s)) }
func boolVal(b bool) uplc.Value       { return uplc.ValueOfConstant(uplc.NewBool(b)) }
func unitVal() uplc.Value             { return uplc.ValueOfConstant(uplc.NewUnit()) }
func dataVal(d uplc.Data) uplc.Value  { return uplc.ValueOfConstant(uplc.NewData(d)) }
func pairVal(a, b uplc.Constant) uplc.Value {
	return uplc.ValueOfConstant(uplc.NewPair(a, b))
}
func listVal(tag uplc.ConstantTag, elems []uplc.Constant) uplc.Value {
	return uplc.ValueOfConstant(uplc.NewList(tag, elems))
}
