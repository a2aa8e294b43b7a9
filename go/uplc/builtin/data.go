package builtin

import (
	"math/big"

	"github.com/uplc-eval/uplc/go/uplc"
)

func init() {
	registerDataBuiltins()
}

func registerDataBuiltins() {
	integerEntries[uplc.ConstrData] = &Entry{ID: uplc.ConstrData, NArgs: 2, Reduce: reduceConstrData}
	integerEntries[uplc.MapData] = &Entry{ID: uplc.MapData, NArgs: 1, Reduce: reduceMapData}
	integerEntries[uplc.ListData] = &Entry{ID: uplc.ListData, NArgs: 1, Reduce: reduceListData}
	integerEntries[uplc.IData] = &Entry{ID: uplc.IData, NArgs: 1, Reduce: reduceIData}
	integerEntries[uplc.BData] = &Entry{ID: uplc.BData, NArgs: 1, Reduce: reduceBData}
	integerEntries[uplc.UnConstrData] = &Entry{ID: uplc.UnConstrData, NArgs: 1, Reduce: reduceUnConstrData}
	integerEntries[uplc.UnMapData] = &Entry{ID: uplc.UnMapData, NArgs: 1, Reduce: reduceUnMapData}
	integerEntries[uplc.UnListData] = &Entry{ID: uplc.UnListData, NArgs: 1, Reduce: reduceUnListData}
	integerEntries[uplc.UnIData] = &Entry{ID: uplc.UnIData, NArgs: 1, Reduce: reduceUnIData}
	integerEntries[uplc.UnBData] = &Entry{ID: uplc.UnBData, NArgs: 1, Reduce: reduceUnBData}
	integerEntries[uplc.EqualsData] = &Entry{ID: uplc.EqualsData, NArgs: 2, Reduce: reduceEqualsData}
	integerEntries[uplc.ChooseData] = &Entry{ID: uplc.ChooseData, NArgs: 6, Reduce: reduceChooseData}
	integerEntries[uplc.SerialiseData] = &Entry{ID: uplc.SerialiseData, NArgs: 1, Reduce: reduceSerialiseData}
}

func reduceConstrData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	tag, err := asInteger(uplc.ConstrData, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	_, elems, err := asList(uplc.ConstrData, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	fields := make([]uplc.Data, len(elems))
	for i, e := range elems {
		if e.Tag != uplc.TagData {
			return uplc.Value{}, typeError(uplc.ConstrData)
		}
		fields[i] = e.Data
	}
	return dataVal(uplc.NewDataConstr(tag.Uint64(), fields)), nil
}

func reduceMapData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	_, elems, err := asList(uplc.MapData, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	pairs := make([]uplc.DataPair, len(elems))
	for i, e := range elems {
		if e.Tag != uplc.TagPair {
			return uplc.Value{}, typeError(uplc.MapData)
		}
		if e.PairFst.Tag != uplc.TagData || e.PairSnd.Tag != uplc.TagData {
			return uplc.Value{}, typeError(uplc.MapData)
		}
		pairs[i] = uplc.DataPair{Key: e.PairFst.Data, Value: e.PairSnd.Data}
	}
	return dataVal(uplc.NewDataMap(pairs)), nil
}

func reduceListData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	_, elems, err := asList(uplc.ListData, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	items := make([]uplc.Data, len(elems))
	for i, e := range elems {
		if e.Tag != uplc.TagData {
			return uplc.Value{}, typeError(uplc.ListData)
		}
		items[i] = e.Data
	}
	return dataVal(uplc.NewDataList(items)), nil
}

func reduceIData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	v, err := asInteger(uplc.IData, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	return dataVal(uplc.NewDataInteger(v)), nil
}

func reduceBData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.BData, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	return dataVal(uplc.NewDataByteString(b)), nil
}

func reduceUnConstrData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	d, err := asData(uplc.UnConstrData, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	if d.Kind != uplc.DataKindConstr {
		return uplc.Value{}, runtimeError(uplc.UnConstrData, "not a constructor")
	}
	elems := make([]uplc.Constant, len(d.ConstrArgs))
	for i, a := range d.ConstrArgs {
		elems[i] = uplc.NewData(a)
	}
	return pairVal(uplc.NewInteger(int64(d.ConstrTag)), uplc.NewList(uplc.TagData, elems)), nil
}

func reduceUnMapData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	d, err := asData(uplc.UnMapData, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	if d.Kind != uplc.DataKindMap {
		return uplc.Value{}, runtimeError(uplc.UnMapData, "not a map")
	}
	elems := make([]uplc.Constant, len(d.MapPairs))
	for i, p := range d.MapPairs {
		elems[i] = uplc.NewPair(uplc.NewData(p.Key), uplc.NewData(p.Value))
	}
	return listVal(uplc.TagPair, elems), nil
}

func reduceUnListData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	d, err := asData(uplc.UnListData, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	if d.Kind != uplc.DataKindList {
		return uplc.Value{}, runtimeError(uplc.UnListData, "not a list")
	}
	elems := make([]uplc.Constant, len(d.ListItems))
	for i, it := range d.ListItems {
		elems[i] = uplc.NewData(it)
	}
	return listVal(uplc.TagData, elems), nil
}

func reduceUnIData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	d, err := asData(uplc.UnIData, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	if d.Kind != uplc.DataKindInteger {
		return uplc.Value{}, runtimeError(uplc.UnIData, "not an integer")
	}
	return intVal(d.Integer), nil
}

func reduceUnBData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	d, err := asData(uplc.UnBData, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	if d.Kind != uplc.DataKindByteString {
		return uplc.Value{}, runtimeError(uplc.UnBData, "not a byte string")
	}
	return bytesVal(d.Bytes), nil
}

func reduceEqualsData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asData(uplc.EqualsData, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asData(uplc.EqualsData, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	return boolVal(uplc.Equal(a, b)), nil
}

// reduceChooseData dispatches on a Data's kind to one of five already-
// evaluated branch arguments, in constructor/map/list/integer/bytestring
// order, matching ChooseData's fixed branch arity (§4.1).
func reduceChooseData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	d, err := asData(uplc.ChooseData, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	switch d.Kind {
	case uplc.DataKindConstr:
		return args[1], nil
	case uplc.DataKindMap:
		return args[2], nil
	case uplc.DataKindList:
		return args[3], nil
	case uplc.DataKindInteger:
		return args[4], nil
	case uplc.DataKindByteString:
		return args[5], nil
	}
	return uplc.Value{}, typeError(uplc.ChooseData)
}

func reduceSerialiseData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	d, err := asData(uplc.SerialiseData, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	return bytesVal(cborEncodeData(d)), nil
}

// cborEncodeData implements the canonical CBOR encoding Plutus Data uses
// on-chain: definite-length major types, map keys and list items in
// recorded order (§6, no canonical re-sorting). Integers use major type 0
// (non-negative) or 1 (negative, stored as -1-n) with bignum tags (2/3)
// once they overflow a single CBOR integer.
func cborEncodeData(d uplc.Data) []byte {
	var out []byte
	switch d.Kind {
	case uplc.DataKindConstr:
		out = append(out, cborTag(121+d.ConstrTag)...)
		out = append(out, cborArrayHeader(len(d.ConstrArgs))...)
		for _, a := range d.ConstrArgs {
			out = append(out, cborEncodeData(a)...)
		}
	case uplc.DataKindMap:
		out = append(out, cborMapHeader(len(d.MapPairs))...)
		for _, p := range d.MapPairs {
			out = append(out, cborEncodeData(p.Key)...)
			out = append(out, cborEncodeData(p.Value)...)
		}
	case uplc.DataKindList:
		out = append(out, cborArrayHeader(len(d.ListItems))...)
		for _, it := range d.ListItems {
			out = append(out, cborEncodeData(it)...)
		}
	case uplc.DataKindInteger:
		out = append(out, cborEncodeInt(d.Integer)...)
	case uplc.DataKindByteString:
		out = append(out, cborByteStringHeader(len(d.Bytes))...)
		out = append(out, d.Bytes...)
	}
	return out
}

func cborUint(major byte, n uint64) []byte {
	switch {
	case n < 24:
		return []byte{major<<5 | byte(n)}
	case n < 1<<8:
		return []byte{major<<5 | 24, byte(n)}
	case n < 1<<16:
		return []byte{major<<5 | 25, byte(n >> 8), byte(n)}
	case n < 1<<32:
		return []byte{major<<5 | 26, byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	default:
		b := make([]byte, 9)
		b[0] = major<<5 | 27
		for i := 0; i < 8; i++ {
			b[8-i] = byte(n >> (8 * i))
		}
		return b
	}
}

func cborTag(n uint64) []byte          { return cborUint(6, n) }
func cborArrayHeader(n int) []byte     { return cborUint(4, uint64(n)) }
func cborMapHeader(n int) []byte       { return cborUint(5, uint64(n)) }
func cborByteStringHeader(n int) []byte { return cborUint(2, uint64(n)) }

func cborEncodeInt(v *big.Int) []byte {
	if v.Sign() >= 0 {
		if v.IsUint64() {
			return cborUint(0, v.Uint64())
		}
		b := v.Bytes()
		return append(append(cborTag(2), cborByteStringHeader(len(b))...), b...)
	}
	n := new(big.Int).Sub(big.NewInt(-1), v)
	if n.IsUint64() {
		return cborUint(1, n.Uint64())
	}
	b := n.Bytes()
	return append(append(cborTag(3), cborByteStringHeader(len(b))...), b...)
}
