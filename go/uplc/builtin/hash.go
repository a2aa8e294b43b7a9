package builtin

import (
	"crypto/sha256"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for the ripemd160 builtin, no replacement exists
	"golang.org/x/crypto/sha3"

	"github.com/uplc-eval/uplc/go/uplc"
)

func init() {
	registerHashBuiltins()
}

func registerHashBuiltins() {
	integerEntries[uplc.Sha2_256] = &Entry{ID: uplc.Sha2_256, NArgs: 1, Reduce: reduceHash(sha256.Sum256)}
	integerEntries[uplc.Sha3_256] = &Entry{ID: uplc.Sha3_256, NArgs: 1, Reduce: reduceHash(sha3.Sum256)}
	integerEntries[uplc.Blake2b_256] = &Entry{ID: uplc.Blake2b_256, NArgs: 1, Reduce: reduceHash(blake2bSum256)}
	integerEntries[uplc.Keccak_256] = &Entry{ID: uplc.Keccak_256, NArgs: 1, Reduce: reduceKeccak256}
	integerEntries[uplc.Blake2b_224] = &Entry{ID: uplc.Blake2b_224, NArgs: 1, Reduce: reduceBlake2b224}
	integerEntries[uplc.RipeMd160] = &Entry{ID: uplc.RipeMd160, NArgs: 1, Reduce: reduceRipeMd160}
}

func blake2bSum256(b []byte) [32]byte { return blake2b.Sum256(b) }

func reduceHash(sum func([]byte) [32]byte) Reducer {
	return func(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
		b, err := asByteString(uplc.Sha2_256, args[0])
		if err != nil {
			return uplc.Value{}, err
		}
		digest := sum(b)
		return bytesVal(digest[:]), nil
	}
}

func reduceKeccak256(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.Keccak_256, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	return bytesVal(h.Sum(nil)), nil
}

func reduceBlake2b224(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.Blake2b_224, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	h, err := blake2b.New(28, nil)
	if err != nil {
		return uplc.Value{}, err
	}
	h.Write(b)
	return bytesVal(h.Sum(nil)), nil
}

func reduceRipeMd160(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	b, err := asByteString(uplc.RipeMd160, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	h := ripemd160.New()
	h.Write(b)
	return bytesVal(h.Sum(nil)), nil
}
