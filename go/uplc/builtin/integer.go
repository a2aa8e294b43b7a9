package builtin

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/uplc-eval/uplc/go/uplc"
)

// fits256 reports whether v can be represented as a uint256 fast-path
// operand: non-negative and at most 256 bits. Negative integers and
// integers wider than 256 bits fall back to math/big, which every
// arithmetic builtin below does transparently.
func fits256(v *big.Int) bool {
	return v.Sign() >= 0 && v.BitLen() <= 256
}

// tryFastArith attempts the add/sub/mul fast path described in SPEC_FULL.md's
// domain stack section: when both operands and the result fit in 256 bits,
// do the arithmetic with uint256 (no allocation) instead of math/big. op
// selects + - *; ok is false whenever the fast path does not apply, in
// which case the caller must fall back.
func tryFastArith(op byte, a, b *big.Int) (*big.Int, bool) {
	if !fits256(a) || !fits256(b) {
		return nil, false
	}
	ua, oa := uint256.FromBig(a)
	ub, ob := uint256.FromBig(b)
	if oa || ob {
		return nil, false
	}
	var res uint256.Int
	switch op {
	case '+':
		if res.AddOverflow(ua, ub) {
			return nil, false
		}
	case '-':
		if ua.Lt(ub) {
			return nil, false
		}
		res.Sub(ua, ub)
	case '*':
		if res.MulOverflow(ua, ub) {
			return nil, false
		}
	}
	return res.ToBig(), true
}

func init() {
	registerIntegerBuiltins()
}

var integerEntries = Table{}

func registerIntegerBuiltins() {
	integerEntries[uplc.AddInteger] = &Entry{ID: uplc.AddInteger, NArgs: 2, Reduce: reduceAddInteger}
	integerEntries[uplc.SubtractInteger] = &Entry{ID: uplc.SubtractInteger, NArgs: 2, Reduce: reduceSubtractInteger}
	integerEntries[uplc.MultiplyInteger] = &Entry{ID: uplc.MultiplyInteger, NArgs: 2, Reduce: reduceMultiplyInteger}
	integerEntries[uplc.DivideInteger] = &Entry{ID: uplc.DivideInteger, NArgs: 2, Reduce: reduceDivideInteger}
	integerEntries[uplc.QuotientInteger] = &Entry{ID: uplc.QuotientInteger, NArgs: 2, Reduce: reduceQuotientInteger}
	integerEntries[uplc.RemainderInteger] = &Entry{ID: uplc.RemainderInteger, NArgs: 2, Reduce: reduceRemainderInteger}
	integerEntries[uplc.ModInteger] = &Entry{ID: uplc.ModInteger, NArgs: 2, Reduce: reduceModInteger}
	integerEntries[uplc.EqualsInteger] = &Entry{ID: uplc.EqualsInteger, NArgs: 2, Reduce: reduceEqualsInteger}
	integerEntries[uplc.LessThanInteger] = &Entry{ID: uplc.LessThanInteger, NArgs: 2, Reduce: reduceLessThanInteger}
	integerEntries[uplc.LessThanEqualsInteger] = &Entry{ID: uplc.LessThanEqualsInteger, NArgs: 2, Reduce: reduceLessThanEqualsInteger}
	integerEntries[uplc.ExpModInteger] = &Entry{ID: uplc.ExpModInteger, NArgs: 3, Reduce: reduceExpModInteger}
}

func reduceAddInteger(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asInteger(uplc.AddInteger, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asInteger(uplc.AddInteger, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	if fast, ok := tryFastArith('+', a, b); ok {
		return intVal(fast), nil
	}
	return intVal(new(big.Int).Add(a, b)), nil
}

func reduceSubtractInteger(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asInteger(uplc.SubtractInteger, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asInteger(uplc.SubtractInteger, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	if fast, ok := tryFastArith('-', a, b); ok {
		return intVal(fast), nil
	}
	return intVal(new(big.Int).Sub(a, b)), nil
}

func reduceMultiplyInteger(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asInteger(uplc.MultiplyInteger, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asInteger(uplc.MultiplyInteger, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	if fast, ok := tryFastArith('*', a, b); ok {
		return intVal(fast), nil
	}
	return intVal(new(big.Int).Mul(a, b)), nil
}

func reduceDivideInteger(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, b, err := twoInts(uplc.DivideInteger, args)
	if err != nil {
		return uplc.Value{}, err
	}
	if b.Sign() == 0 {
		return uplc.Value{}, runtimeError(uplc.DivideInteger, "division by zero")
	}
	q, m := new(big.Int), new(big.Int)
	q.DivMod(a, b, m)
	if b.Sign() < 0 && m.Sign() != 0 {
		q.Sub(q, big.NewInt(1))
	}
	return intVal(q), nil
}

func reduceQuotientInteger(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, b, err := twoInts(uplc.QuotientInteger, args)
	if err != nil {
		return uplc.Value{}, err
	}
	if b.Sign() == 0 {
		return uplc.Value{}, runtimeError(uplc.QuotientInteger, "division by zero")
	}
	return intVal(new(big.Int).Quo(a, b)), nil
}

func reduceRemainderInteger(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, b, err := twoInts(uplc.RemainderInteger, args)
	if err != nil {
		return uplc.Value{}, err
	}
	if b.Sign() == 0 {
		return uplc.Value{}, runtimeError(uplc.RemainderInteger, "division by zero")
	}
	return intVal(new(big.Int).Rem(a, b)), nil
}

func reduceModInteger(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, b, err := twoInts(uplc.ModInteger, args)
	if err != nil {
		return uplc.Value{}, err
	}
	if b.Sign() == 0 {
		return uplc.Value{}, runtimeError(uplc.ModInteger, "division by zero")
	}
	m := new(big.Int).Mod(a, b)
	if m.Sign() != 0 && b.Sign() < 0 {
		m.Add(m, b)
	}
	return intVal(m), nil
}

func reduceEqualsInteger(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, b, err := twoInts(uplc.EqualsInteger, args)
	if err != nil {
		return uplc.Value{}, err
	}
	return boolVal(a.Cmp(b) == 0), nil
}

func reduceLessThanInteger(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, b, err := twoInts(uplc.LessThanInteger, args)
	if err != nil {
		return uplc.Value{}, err
	}
	return boolVal(a.Cmp(b) < 0), nil
}

func reduceLessThanEqualsInteger(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, b, err := twoInts(uplc.LessThanEqualsInteger, args)
	if err != nil {
		return uplc.Value{}, err
	}
	return boolVal(a.Cmp(b) <= 0), nil
}

// reduceExpModInteger computes a^b mod m, following the reference's
// extension of modular exponentiation to negative exponents (via modular
// inverse) when m is prime-like and gcd(a, m) = 1; negative m or a zero
// modulus is a runtime error.
func reduceExpModInteger(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asInteger(uplc.ExpModInteger, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	e, err := asInteger(uplc.ExpModInteger, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	m, err := asInteger(uplc.ExpModInteger, args[2])
	if err != nil {
		return uplc.Value{}, err
	}
	if m.Sign() <= 0 {
		return uplc.Value{}, runtimeError(uplc.ExpModInteger, "modulus must be positive")
	}
	if e.Sign() < 0 {
		inv := new(big.Int).ModInverse(a, m)
		if inv == nil {
			return uplc.Value{}, runtimeError(uplc.ExpModInteger, "base has no inverse mod modulus")
		}
		negE := new(big.Int).Neg(e)
		return intVal(new(big.Int).Exp(inv, negE, m)), nil
	}
	return intVal(new(big.Int).Exp(a, e, m)), nil
}

func twoInts(id uplc.BuiltinID, args []uplc.Value) (*big.Int, *big.Int, error) {
	a, err := asInteger(id, args[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := asInteger(id, args[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
