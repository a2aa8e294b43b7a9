package uplc

import (
	"math/big"

	blst "github.com/supranational/blst/bindings/go"
)

// ConstantTag is the universe tag carried by every Constant.
type ConstantTag byte

const (
	TagInteger ConstantTag = iota
	TagByteString
	TagString
	TagBool
	TagUnit
	TagData
	TagList
	TagPair
	TagBLSG1Element
	TagBLSG2Element
	TagBLSMlResult
)

// Constant is the closed set of primitive literals a Term.Const can carry.
// Exactly one of the typed fields is meaningful, selected by Tag.
type Constant struct {
	Tag ConstantTag

	Integer    *big.Int
	ByteString []byte
	String     string
	Bool       bool
	// Unit carries no payload.
	Data Data

	// ListElemTag is the universe tag of every element of List; Plutus lists
	// are homogeneous.
	ListElemTag ConstantTag
	List        []Constant

	// Pair is always exactly two elements, (fst, snd).
	PairFst *Constant
	PairSnd *Constant

	BLSG1 *blst.P1Affine
	BLSG2 *blst.P2Affine
	// BLSMlResult is the opaque target-group element produced by a Miller
	// loop; it supports no operation besides multiplication with another
	// such result and the final pairing check, so it is carried as raw encoded bytes rather than a
	// concrete group type.
	BLSMlResult []byte
}

func NewInteger(v int64) Constant {
	return Constant{Tag: TagInteger, Integer: big.NewInt(v)}
}

func NewByteString(b []byte) Constant {
	return Constant{Tag: TagByteString, ByteString: b}
}

func NewString(s string) Constant {
	return Constant{Tag: TagString, String: s}
}

func NewBool(b bool) Constant {
	return Constant{Tag: TagBool, Bool: b}
}

func NewUnit() Constant {
	return Constant{Tag: TagUnit}
}

func NewData(d Data) Constant {
	return Constant{Tag: TagData, Data: d}
}

func NewPair(fst, snd Constant) Constant {
	return Constant{Tag: TagPair, PairFst: &fst, PairSnd: &snd}
}

func NewList(elemTag ConstantTag, elems []Constant) Constant {
	return Constant{Tag: TagList, ListElemTag: elemTag, List: elems}
}
