package uplc

import "math/big"

// Size is the uniform measure fed to builtin cost functions (§6). It must
// match the reference exactly: cost accounting is consensus-critical.
type Size int64

// integerSize returns ceil(bitLength/64) 64-bit words, minimum 1.
func integerSize(v *big.Int) int64 {
	bits := v.BitLen()
	words := (bits + 63) / 64
	if words < 1 {
		words = 1
	}
	return int64(words)
}

// byteStringSize returns the byte count, minimum 1.
func byteStringSize(b []byte) int64 {
	if len(b) == 0 {
		return 1
	}
	return int64(len(b))
}

// stringSize returns the UTF-8 byte count of s.
func stringSize(s string) int64 {
	return int64(len(s))
}

// ConstantSize computes the Size measure of a Constant, used by the cost
// model to charge builtins from argument sizes directly rather than from
// allocated value wrappers.
func ConstantSize(c Constant) Size {
	switch c.Tag {
	case TagInteger:
		return Size(integerSize(c.Integer))
	case TagByteString:
		return Size(byteStringSize(c.ByteString))
	case TagString:
		return Size(stringSize(c.String))
	case TagBool, TagUnit:
		return 1
	case TagData:
		return Size(c.Data.Size())
	case TagList:
		var sum int64
		for _, e := range c.List {
			sum += int64(ConstantSize(e))
		}
		return Size(sum)
	case TagPair:
		return ConstantSize(*c.PairFst) + ConstantSize(*c.PairSnd)
	case TagBLSG1Element, TagBLSG2Element, TagBLSMlResult:
		return 1
	}
	return 1
}
