package uplc

// BuiltinID identifies a builtin function by its wire tag. The concrete
// argument/force arity, cost function, and reduction rule for each ID live
// in uplc/builtin, which depends on this package — not the other way
// around — so that the core term/value model has no dependency on the
// builtin catalogue.
type BuiltinID int

const (
	AddInteger BuiltinID = iota
	SubtractInteger
	MultiplyInteger
	DivideInteger
	QuotientInteger
	RemainderInteger
	ModInteger
	EqualsInteger
	LessThanInteger
	LessThanEqualsInteger

	AppendByteString
	ConsByteString
	SliceByteString
	LengthOfByteString
	IndexByteString
	EqualsByteString
	LessThanByteString
	LessThanEqualsByteString

	Sha2_256
	Sha3_256
	Blake2b_256
	VerifyEd25519Signature

	AppendString
	EqualsString
	EncodeUtf8
	DecodeUtf8

	IfThenElse

	ChooseUnit

	Trace

	FstPair
	SndPair

	ChooseList
	MkCons
	HeadList
	TailList
	NullList

	ChooseData
	ConstrData
	MapData
	ListData
	IData
	BData
	UnConstrData
	UnMapData
	UnListData
	UnIData
	UnBData
	EqualsData
	MkPairData
	MkNilData
	MkNilPairData

	SerialiseData

	VerifyEcdsaSecp256k1Signature
	VerifySchnorrSecp256k1Signature

	Bls12_381_G1_Add
	Bls12_381_G1_Neg
	Bls12_381_G1_ScalarMul
	Bls12_381_G1_Equal
	Bls12_381_G1_Compress
	Bls12_381_G1_Uncompress
	Bls12_381_G2_Add
	Bls12_381_G2_Neg
	Bls12_381_G2_ScalarMul
	Bls12_381_G2_Equal
	Bls12_381_G2_Compress
	Bls12_381_G2_Uncompress
	Bls12_381_MillerLoop
	Bls12_381_MulMlResult
	Bls12_381_FinalVerify

	Keccak_256
	Blake2b_224

	IntegerToByteString
	ByteStringToInteger

	AndByteString
	OrByteString
	XorByteString
	ComplementByteString
	ReadBit
	WriteBits
	ReplicateByte

	ShiftByteString
	RotateByteString
	CountSetBits
	FindFirstSetBit

	RipeMd160

	ExpModInteger

	numBuiltins
)

var builtinNames = [numBuiltins]string{
	AddInteger:                    "addInteger",
	SubtractInteger:               "subtractInteger",
	MultiplyInteger:               "multiplyInteger",
	DivideInteger:                 "divideInteger",
	QuotientInteger:               "quotientInteger",
	RemainderInteger:              "remainderInteger",
	ModInteger:                    "modInteger",
	EqualsInteger:                 "equalsInteger",
	LessThanInteger:               "lessThanInteger",
	LessThanEqualsInteger:         "lessThanEqualsInteger",
	AppendByteString:              "appendByteString",
	ConsByteString:                "consByteString",
	SliceByteString:               "sliceByteString",
	LengthOfByteString:            "lengthOfByteString",
	IndexByteString:               "indexByteString",
	EqualsByteString:              "equalsByteString",
	LessThanByteString:            "lessThanByteString",
	LessThanEqualsByteString:      "lessThanEqualsByteString",
	Sha2_256:                      "sha2_256",
	Sha3_256:                      "sha3_256",
	Blake2b_256:                   "blake2b_256",
	VerifyEd25519Signature:        "verifyEd25519Signature",
	AppendString:                  "appendString",
	EqualsString:                  "equalsString",
	EncodeUtf8:                    "encodeUtf8",
	DecodeUtf8:                    "decodeUtf8",
	IfThenElse:                    "ifThenElse",
	ChooseUnit:                    "chooseUnit",
	Trace:                         "trace",
	FstPair:                       "fstPair",
	SndPair:                       "sndPair",
	ChooseList:                    "chooseList",
	MkCons:                        "mkCons",
	HeadList:                      "headList",
	TailList:                      "tailList",
	NullList:                      "nullList",
	ChooseData:                    "chooseData",
	ConstrData:                    "constrData",
	MapData:                       "mapData",
	ListData:                      "listData",
	IData:                         "iData",
	BData:                         "bData",
	UnConstrData:                  "unConstrData",
	UnMapData:                     "unMapData",
	UnListData:                    "unListData",
	UnIData:                       "unIData",
	UnBData:                       "unBData",
	EqualsData:                    "equalsData",
	MkPairData:                    "mkPairData",
	MkNilData:                     "mkNilData",
	MkNilPairData:                 "mkNilPairData",
	SerialiseData:                 "serialiseData",
	VerifyEcdsaSecp256k1Signature: "verifyEcdsaSecp256k1Signature",
	VerifySchnorrSecp256k1Signature: "verifySchnorrSecp256k1Signature",
	Bls12_381_G1_Add:              "bls12_381_G1_add",
	Bls12_381_G1_Neg:              "bls12_381_G1_neg",
	Bls12_381_G1_ScalarMul:        "bls12_381_G1_scalarMul",
	Bls12_381_G1_Equal:            "bls12_381_G1_equal",
	Bls12_381_G1_Compress:         "bls12_381_G1_compress",
	Bls12_381_G1_Uncompress:       "bls12_381_G1_uncompress",
	Bls12_381_G2_Add:              "bls12_381_G2_add",
	Bls12_381_G2_Neg:              "bls12_381_G2_neg",
	Bls12_381_G2_ScalarMul:        "bls12_381_G2_scalarMul",
	Bls12_381_G2_Equal:            "bls12_381_G2_equal",
	Bls12_381_G2_Compress:         "bls12_381_G2_compress",
	Bls12_381_G2_Uncompress:       "bls12_381_G2_uncompress",
	Bls12_381_MillerLoop:          "bls12_381_millerLoop",
	Bls12_381_MulMlResult:         "bls12_381_mulMlResult",
	Bls12_381_FinalVerify:         "bls12_381_finalVerify",
	Keccak_256:                    "keccak_256",
	Blake2b_224:                   "blake2b_224",
	IntegerToByteString:           "integerToByteString",
	ByteStringToInteger:           "byteStringToInteger",
	AndByteString:                 "andByteString",
	OrByteString:                  "orByteString",
	XorByteString:                 "xorByteString",
	ComplementByteString:          "complementByteString",
	ReadBit:                       "readBit",
	WriteBits:                     "writeBits",
	ReplicateByte:                 "replicateByte",
	ShiftByteString:               "shiftByteString",
	RotateByteString:              "rotateByteString",
	CountSetBits:                  "countSetBits",
	FindFirstSetBit:               "findFirstSetBit",
	RipeMd160:                     "ripemd_160",
	ExpModInteger:                 "expModInteger",
}

func (id BuiltinID) String() string {
	if id < 0 || int(id) >= len(builtinNames) {
		return "unknownBuiltin"
	}
	name := builtinNames[id]
	if name == "" {
		return "unknownBuiltin"
	}
	return name
}

// NumBuiltins is the number of builtin IDs known to this package: 86, the
// IDs declared above from AddInteger through ExpModInteger.
const NumBuiltins = int(numBuiltins)
