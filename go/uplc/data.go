package uplc

import "math/big"

// DataKind discriminates the canonical Plutus Data universe.
type DataKind byte

const (
	DataKindConstr DataKind = iota
	DataKindMap
	DataKindList
	DataKindInteger
	DataKindByteString
)

// Data is the canonical structured-value universe used for on-chain data.
// It is distinct from Constant: a Data value can itself be wrapped as a
// Constant via NewData, but Data's own recursive structure only ever
// contains further Data (never arbitrary Constants), per the reference
// semantics.
type Data struct {
	Kind DataKind

	// Constr
	ConstrTag  uint64
	ConstrArgs []Data

	// Map, as an ordered list of (key, value) pairs. Order is preserved,
	// not normalized; two Data maps with the same pairs in a different
	// order are NOT structurally equal.
	MapPairs []DataPair

	// List
	ListItems []Data

	// Integer
	Integer *big.Int

	// ByteString
	Bytes []byte
}

// DataPair is one (key, value) entry of a Data map.
type DataPair struct {
	Key   Data
	Value Data
}

func NewDataConstr(tag uint64, args []Data) Data {
	return Data{Kind: DataKindConstr, ConstrTag: tag, ConstrArgs: args}
}

func NewDataMap(pairs []DataPair) Data {
	return Data{Kind: DataKindMap, MapPairs: pairs}
}

func NewDataList(items []Data) Data {
	return Data{Kind: DataKindList, ListItems: items}
}

func NewDataInteger(v *big.Int) Data {
	return Data{Kind: DataKindInteger, Integer: v}
}

func NewDataByteString(b []byte) Data {
	return Data{Kind: DataKindByteString, Bytes: b}
}

// Size computes the structural size of a Data value per the canonical
// Plutus rule: a constructor/list/map charges 4 plus the size of its
// children, an integer charges the word-size measure of its magnitude, and
// a byte string charges its byte count. This measure feeds cost functions
// and must match the reference exactly (§6, "value-size measure").
func (d Data) Size() int64 {
	switch d.Kind {
	case DataKindInteger:
		return integerSize(d.Integer)
	case DataKindByteString:
		return byteStringSize(d.Bytes)
	case DataKindList:
		var sum int64 = 0
		for _, item := range d.ListItems {
			sum += item.Size()
		}
		return sum + 4
	case DataKindMap:
		var sum int64 = 0
		for _, p := range d.MapPairs {
			sum += p.Key.Size() + p.Value.Size()
		}
		return sum + 4
	case DataKindConstr:
		var sum int64 = 0
		for _, a := range d.ConstrArgs {
			sum += a.Size()
		}
		return sum + 4
	}
	return 0
}

// Equal reports whether two Data values are structurally identical: same
// kind, same tag, same elements in the same order (map order is
// significant, not normalized).
func Equal(a, b Data) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case DataKindInteger:
		return a.Integer.Cmp(b.Integer) == 0
	case DataKindByteString:
		return string(a.Bytes) == string(b.Bytes)
	case DataKindList:
		if len(a.ListItems) != len(b.ListItems) {
			return false
		}
		for i := range a.ListItems {
			if !Equal(a.ListItems[i], b.ListItems[i]) {
				return false
			}
		}
		return true
	case DataKindMap:
		if len(a.MapPairs) != len(b.MapPairs) {
			return false
		}
		for i := range a.MapPairs {
			if !Equal(a.MapPairs[i].Key, b.MapPairs[i].Key) || !Equal(a.MapPairs[i].Value, b.MapPairs[i].Value) {
				return false
			}
		}
		return true
	case DataKindConstr:
		if a.ConstrTag != b.ConstrTag || len(a.ConstrArgs) != len(b.ConstrArgs) {
			return false
		}
		for i := range a.ConstrArgs {
			if !Equal(a.ConstrArgs[i], b.ConstrArgs[i]) {
				return false
			}
		}
		return true
	}
	return false
}
