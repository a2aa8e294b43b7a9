package builtin

import (
	"crypto/ed25519"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"

	"github.com/uplc-eval/uplc/go/uplc"
)

func init() {
	registerSignatureBuiltins()
}

func registerSignatureBuiltins() {
	integerEntries[uplc.VerifyEd25519Signature] = &Entry{ID: uplc.VerifyEd25519Signature, NArgs: 3, Reduce: reduceVerifyEd25519}
	integerEntries[uplc.VerifyEcdsaSecp256k1Signature] = &Entry{ID: uplc.VerifyEcdsaSecp256k1Signature, NArgs: 3, Reduce: reduceVerifyEcdsaSecp256k1}
	integerEntries[uplc.VerifySchnorrSecp256k1Signature] = &Entry{ID: uplc.VerifySchnorrSecp256k1Signature, NArgs: 3, Reduce: reduceVerifySchnorrSecp256k1}
}

func reduceVerifyEd25519(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	pk, err := asByteString(uplc.VerifyEd25519Signature, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	msg, err := asByteString(uplc.VerifyEd25519Signature, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	sig, err := asByteString(uplc.VerifyEd25519Signature, args[2])
	if err != nil {
		return uplc.Value{}, err
	}
	if len(pk) != ed25519.PublicKeySize {
		return uplc.Value{}, runtimeError(uplc.VerifyEd25519Signature, "invalid public key length")
	}
	if len(sig) != ed25519.SignatureSize {
		return uplc.Value{}, runtimeError(uplc.VerifyEd25519Signature, "invalid signature length")
	}
	return boolVal(ed25519.Verify(ed25519.PublicKey(pk), msg, sig)), nil
}

// reduceVerifyEcdsaSecp256k1 expects a 33-byte compressed public key, a
// 32-byte message digest (the caller is responsible for hashing; this
// builtin does not hash its input per the reference semantics), and a
// 64-byte fixed-size (r || s) signature rather than DER encoding.
func reduceVerifyEcdsaSecp256k1(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	pkBytes, err := asByteString(uplc.VerifyEcdsaSecp256k1Signature, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	msg, err := asByteString(uplc.VerifyEcdsaSecp256k1Signature, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	sigBytes, err := asByteString(uplc.VerifyEcdsaSecp256k1Signature, args[2])
	if err != nil {
		return uplc.Value{}, err
	}
	if len(msg) != 32 {
		return uplc.Value{}, runtimeError(uplc.VerifyEcdsaSecp256k1Signature, "message must be a 32-byte digest")
	}
	if len(sigBytes) != 64 {
		return uplc.Value{}, runtimeError(uplc.VerifyEcdsaSecp256k1Signature, "invalid signature length")
	}
	pk, err := btcec.ParsePubKey(pkBytes)
	if err != nil {
		return boolVal(false), nil
	}
	var r, s secp256k1.ModNScalar
	r.SetByteSlice(sigBytes[:32])
	s.SetByteSlice(sigBytes[32:])
	parsed := btcecdsa.NewSignature(&r, &s)
	return boolVal(parsed.Verify(msg, pk)), nil
}

func reduceVerifySchnorrSecp256k1(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	pkBytes, err := asByteString(uplc.VerifySchnorrSecp256k1Signature, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	msg, err := asByteString(uplc.VerifySchnorrSecp256k1Signature, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	sigBytes, err := asByteString(uplc.VerifySchnorrSecp256k1Signature, args[2])
	if err != nil {
		return uplc.Value{}, err
	}
	if len(pkBytes) != 32 {
		return uplc.Value{}, runtimeError(uplc.VerifySchnorrSecp256k1Signature, "invalid public key length")
	}
	pk, err := schnorr.ParsePubKey(pkBytes)
	if err != nil {
		return boolVal(false), nil
	}
	sig, err := schnorr.ParseSignature(sigBytes)
	if err != nil {
		return boolVal(false), nil
	}
	return boolVal(sig.Verify(msg, pk) == nil), nil
}
