package builtin

import (
	"bytes"
	"math/big"

	"github.com/uplc-eval/uplc/go/uplc"
)

func init() {
	registerByteStringBuiltins()
}

func registerByteStringBuiltins() {
	integerEntries[uplc.AppendByteString] = &Entry{ID: uplc.AppendByteString, NArgs: 2, Reduce: reduceAppendByteString}
	integerEntries[uplc.ConsByteString] = &Entry{ID: uplc.ConsByteString, NArgs: 2, Reduce: reduceConsByteString}
	integerEntries[uplc.SliceByteString] = &Entry{ID: uplc.SliceByteString, NArgs: 3, Reduce: reduceSliceByteString}
	integerEntries[uplc.LengthOfByteString] = &Entry{ID: uplc.LengthOfByteString, NArgs: 1, Reduce: reduceLengthOfByteString}
	integerEntries[uplc.IndexByteString] = &Entry{ID: uplc.IndexByteString, NArgs: 2, Reduce: reduceIndexByteString}
	integerEntries[uplc.EqualsByteString] = &Entry{ID: uplc.EqualsByteString, NArgs: 2, Reduce: reduceEqualsByteString}
	integerEntries[uplc.LessThanByteString] = &Entry{ID: uplc.LessThanByteString, NArgs: 2, Reduce: reduceLessThanByteString}
	integerEntries[uplc.LessThanEqualsByteString] = &Entry{ID: uplc.LessThanEqualsByteString, NArgs: 2, Reduce: reduceLessThanEqualsByteString}

	integerEntries[uplc.AndByteString] = &Entry{ID: uplc.AndByteString, NArgs: 3, Reduce: reduceBoolByteStringOp(andByte)}
	integerEntries[uplc.OrByteString] = &Entry{ID: uplc.OrByteString, NArgs: 3, Reduce: reduceBoolByteStringOp(orByte)}
	integerEntries[uplc.XorByteString] = &Entry{ID: uplc.XorByteString, NArgs: 3, Reduce: reduceBoolByteStringOp(xorByte)}
	integerEntries[uplc.ComplementByteString] = &Entry{ID: uplc.ComplementByteString, NArgs: 1, Reduce: reduceComplementByteString}
	integerEntries[uplc.ReadBit] = &Entry{ID: uplc.ReadBit, NArgs: 2, Reduce: reduceReadBit}
	integerEntries[uplc.WriteBits] = &Entry{ID: uplc.WriteBits, NArgs: 3, Reduce: reduceWriteBits}
	integerEntries[uplc.ReplicateByte] = &Entry{ID: uplc.ReplicateByte, NArgs: 2, Reduce: reduceReplicateByte}
	integerEntries[uplc.ShiftByteString] = &Entry{ID: uplc.ShiftByteString, NArgs: 2, Reduce: reduceShiftByteString}
	integerEntries[uplc.RotateByteString] = &Entry{ID: uplc.RotateByteString, NArgs: 2, Reduce: reduceRotateByteString}
	integerEntries[uplc.CountSetBits] = &Entry{ID: uplc.CountSetBits, NArgs: 1, Reduce: reduceCountSetBits}
	integerEntries[uplc.FindFirstSetBit] = &Entry{ID: uplc.FindFirstSetBit, NArgs: 1, Reduce: reduceFindFirstSetBit}
	integerEntries[uplc.IntegerToByteString] = &Entry{ID: uplc.IntegerToByteString, NArgs: 3, Reduce: reduceIntegerToByteString}
	integerEntries[uplc.ByteStringToInteger] = &Entry{ID: uplc.ByteStringToInteger, NArgs: 2, Reduce: reduceByteStringToInteger}
}

func reduceAppendByteString(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asByteString(uplc.AppendByteString, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asByteString(uplc.AppendByteString, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return bytesVal(out), nil
}

func reduceConsByteString(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	n, err := asInteger(uplc.ConsByteString, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asByteString(uplc.ConsByteString, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	byteVal := new(big.Int).Mod(n, big.NewInt(256)).Int64()
	out := make([]byte, 0, len(b)+1)
	out = append(out, byte(byteVal))
	out = append(out, b...)
	return bytesVal(out), nil
}

func reduceSliceByteString(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	start, err := asInteger(uplc.SliceByteString, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	length, err := asInteger(uplc.SliceByteString, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asByteString(uplc.SliceByteString, args[2])
	if err != nil {
		return uplc.Value{}, err
	}
	s := start.Int64()
	l := length.Int64()
	if s < 0 {
		s = 0
	}
	if s > int64(len(b)) {
		s = int64(len(b))
	}
	end := s + l
	if l < 0 || end > int64(len(b)) {
		end = int64(len(b))
	}
	if end < s {
		end = s
	}
	out := make([]byte, end-s)
	copy(out, b[s:end])
	return bytesVal(out), nil
}

func reduceLengthOfByteString(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.LengthOfByteString, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	return intVal(big.NewInt(int64(len(b)))), nil
}

func reduceIndexByteString(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.IndexByteString, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	idx, err := asInteger(uplc.IndexByteString, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	i := idx.Int64()
	if i < 0 || i >= int64(len(b)) {
		return uplc.Value{}, runtimeError(uplc.IndexByteString, "index out of bounds")
	}
	return intVal(big.NewInt(int64(b[i]))), nil
}

func reduceEqualsByteString(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, b, err := twoByteStrings(uplc.EqualsByteString, args)
	if err != nil {
		return uplc.Value{}, err
	}
	return boolVal(bytes.Equal(a, b)), nil
}

func reduceLessThanByteString(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, b, err := twoByteStrings(uplc.LessThanByteString, args)
	if err != nil {
		return uplc.Value{}, err
	}
	return boolVal(bytes.Compare(a, b) < 0), nil
}

func reduceLessThanEqualsByteString(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, b, err := twoByteStrings(uplc.LessThanEqualsByteString, args)
	if err != nil {
		return uplc.Value{}, err
	}
	return boolVal(bytes.Compare(a, b) <= 0), nil
}

func twoByteStrings(id uplc.BuiltinID, args []uplc.Value) ([]byte, []byte, error) {
	a, err := asByteString(id, args[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := asByteString(id, args[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func andByte(a, b byte) byte { return a & b }
func orByte(a, b byte) byte  { return a | b }
func xorByte(a, b byte) byte { return a ^ b }

// reduceBoolByteStringOp builds the reducer shared by andByteString,
// orByteString, and xorByteString: a leading bool selects whether the
// shorter operand is padded (true) or the result is truncated to the
// shorter operand's length (false), per the bitwise-bytestring extension.
func reduceBoolByteStringOp(op func(a, b byte) byte) Reducer {
	return func(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
		pad, err := asBool(uplc.AndByteString, args[0])
		if err != nil {
			return uplc.Value{}, err
		}
		a, err := asByteString(uplc.AndByteString, args[1])
		if err != nil {
			return uplc.Value{}, err
		}
		b, err := asByteString(uplc.AndByteString, args[2])
		if err != nil {
			return uplc.Value{}, err
		}
		n := len(a)
		if pad {
			if len(b) > n {
				n = len(b)
			}
		} else if len(b) < n {
			n = len(b)
		}
		out := make([]byte, n)
		for i := 0; i < n; i++ {
			var av, bv byte
			if i < len(a) {
				av = a[i]
			}
			if i < len(b) {
				bv = b[i]
			}
			out[i] = op(av, bv)
		}
		return bytesVal(out), nil
	}
}

func reduceComplementByteString(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.ComplementByteString, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = ^c
	}
	return bytesVal(out), nil
}

func reduceReadBit(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.ReadBit, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	idx, err := asInteger(uplc.ReadBit, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	i := idx.Int64()
	if i < 0 || i >= int64(len(b))*8 {
		return uplc.Value{}, runtimeError(uplc.ReadBit, "bit index out of bounds")
	}
	byteIdx := len(b) - 1 - int(i/8)
	bitIdx := uint(i % 8)
	return boolVal((b[byteIdx]>>bitIdx)&1 == 1), nil
}

func reduceWriteBits(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.WriteBits, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	_, idxs, err := asList(uplc.WriteBits, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	set, err := asBool(uplc.WriteBits, args[2])
	if err != nil {
		return uplc.Value{}, err
	}
	out := append([]byte{}, b...)
	for _, iv := range idxs {
		if iv.Tag != uplc.TagInteger {
			return uplc.Value{}, typeError(uplc.WriteBits)
		}
		i := iv.Integer.Int64()
		if i < 0 || i >= int64(len(out))*8 {
			return uplc.Value{}, runtimeError(uplc.WriteBits, "bit index out of bounds")
		}
		byteIdx := len(out) - 1 - int(i/8)
		bitIdx := uint(i % 8)
		if set {
			out[byteIdx] |= 1 << bitIdx
		} else {
			out[byteIdx] &^= 1 << bitIdx
		}
	}
	return bytesVal(out), nil
}

func reduceReplicateByte(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	n, err := asInteger(uplc.ReplicateByte, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	w, err := asInteger(uplc.ReplicateByte, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	count := n.Int64()
	if count < 0 {
		return uplc.Value{}, runtimeError(uplc.ReplicateByte, "negative length")
	}
	wv := new(big.Int).Mod(w, big.NewInt(256)).Int64()
	out := make([]byte, count)
	for i := range out {
		out[i] = byte(wv)
	}
	return bytesVal(out), nil
}

func reduceShiftByteString(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.ShiftByteString, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	n, err := asInteger(uplc.ShiftByteString, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	shift := n.Int64()
	bits := int64(len(b)) * 8
	out := make([]byte, len(b))
	if shift <= -bits || shift >= bits {
		return bytesVal(out), nil
	}
	for i := int64(0); i < bits; i++ {
		src := i - shift
		if src < 0 || src >= bits {
			continue
		}
		if bitAt(b, src) {
			setBitAt(out, i)
		}
	}
	return bytesVal(out), nil
}

func reduceRotateByteString(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.RotateByteString, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	n, err := asInteger(uplc.RotateByteString, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	bits := int64(len(b)) * 8
	if bits == 0 {
		return bytesVal(append([]byte{}, b...)), nil
	}
	shift := ((n.Int64() % bits) + bits) % bits
	out := make([]byte, len(b))
	for i := int64(0); i < bits; i++ {
		src := ((i-shift)%bits + bits) % bits
		if bitAt(b, src) {
			setBitAt(out, i)
		}
	}
	return bytesVal(out), nil
}

// bitAt/setBitAt index bits big-endian-within-bytestring, matching ReadBit
// and WriteBits above (bit 0 is the least-significant bit of the last byte).
func bitAt(b []byte, i int64) bool {
	byteIdx := len(b) - 1 - int(i/8)
	return (b[byteIdx]>>(uint(i%8)))&1 == 1
}

func setBitAt(b []byte, i int64) {
	byteIdx := len(b) - 1 - int(i/8)
	b[byteIdx] |= 1 << uint(i%8)
}

func reduceCountSetBits(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.CountSetBits, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	var count int64
	for _, c := range b {
		for c != 0 {
			count += int64(c & 1)
			c >>= 1
		}
	}
	return intVal(big.NewInt(count)), nil
}

func reduceFindFirstSetBit(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.FindFirstSetBit, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	bits := int64(len(b)) * 8
	for i := int64(0); i < bits; i++ {
		if bitAt(b, i) {
			return intVal(big.NewInt(i)), nil
		}
	}
	return intVal(big.NewInt(-1)), nil
}

func reduceIntegerToByteString(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	endianness, err := asBool(uplc.IntegerToByteString, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	width, err := asInteger(uplc.IntegerToByteString, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	v, err := asInteger(uplc.IntegerToByteString, args[2])
	if err != nil {
		return uplc.Value{}, err
	}
	if v.Sign() < 0 {
		return uplc.Value{}, runtimeError(uplc.IntegerToByteString, "negative integer")
	}
	w := width.Int64()
	if w < 0 {
		return uplc.Value{}, runtimeError(uplc.IntegerToByteString, "negative width")
	}
	raw := v.Bytes()
	if int64(len(raw)) > w && w != 0 {
		return uplc.Value{}, runtimeError(uplc.IntegerToByteString, "integer does not fit in requested width")
	}
	n := w
	if n == 0 {
		n = int64(len(raw))
	}
	out := make([]byte, n)
	copy(out[n-int64(len(raw)):], raw)
	if endianness {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return bytesVal(out), nil
}

func reduceByteStringToInteger(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	endianness, err := asBool(uplc.ByteStringToInteger, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asByteString(uplc.ByteStringToInteger, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	buf := b
	if endianness {
		buf = make([]byte, len(b))
		for i, c := range b {
			buf[len(b)-1-i] = c
		}
	}
	return intVal(new(big.Int).SetBytes(buf)), nil
}
