package builtin

import (
	"unicode/utf8"

	"github.com/uplc-eval/uplc/go/uplc"
)

func init() {
	registerStringBuiltins()
}

func registerStringBuiltins() {
	integerEntries[uplc.AppendString] = &Entry{ID: uplc.AppendString, NArgs: 2, Reduce: reduceAppendString}
	integerEntries[uplc.EqualsString] = &Entry{ID: uplc.EqualsString, NArgs: 2, Reduce: reduceEqualsString}
	integerEntries[uplc.EncodeUtf8] = &Entry{ID: uplc.EncodeUtf8, NArgs: 1, Reduce: reduceEncodeUtf8}
	integerEntries[uplc.DecodeUtf8] = &Entry{ID: uplc.DecodeUtf8, NArgs: 1, Reduce: reduceDecodeUtf8}
}

func reduceAppendString(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asString(uplc.AppendString, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asString(uplc.AppendString, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	return strVal(a + b), nil
}

func reduceEqualsString(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asString(uplc.EqualsString, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asString(uplc.EqualsString, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	return boolVal(a == b), nil
}

func reduceEncodeUtf8(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	s, err := asString(uplc.EncodeUtf8, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	return bytesVal([]byte(s)), nil
}

func reduceDecodeUtf8(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.DecodeUtf8, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	if !utf8.Valid(b) {
		return uplc.Value{}, runtimeError(uplc.DecodeUtf8, "invalid UTF-8")
	}
	return strVal(string(b)), nil
}
