package ct

import "github.com/uplc-eval/uplc/go/uplc"

// ValuesAgree compares two Values produced by independently evaluating the
// same term on two different evaluators (the Agreement invariant, §8).
// Constants and constructor values are compared structurally. Function-
// like values (closures, delayed thunks, partial builtins) have no
// externally observable identity to compare — CEK and JIT represent a
// closure's body differently (a raw uplc.Term vs a compiled entry point
// plus captured environment) even when they agree on every constant a
// program ever produces — so two function-like values of the same Kind
// are treated as agreeing without inspecting their contents.
func ValuesAgree(a, b uplc.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case uplc.ValueConstant:
		return constantsAgree(a.Constant, b.Constant)
	case uplc.ValueConstr:
		if a.Constr.Tag != b.Constr.Tag || len(a.Constr.Fields) != len(b.Constr.Fields) {
			return false
		}
		for i := range a.Constr.Fields {
			if !ValuesAgree(a.Constr.Fields[i], b.Constr.Fields[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func constantsAgree(a, b uplc.Constant) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case uplc.TagInteger:
		return a.Integer.Cmp(b.Integer) == 0
	case uplc.TagByteString:
		return string(a.ByteString) == string(b.ByteString)
	case uplc.TagString:
		return a.String == b.String
	case uplc.TagBool:
		return a.Bool == b.Bool
	case uplc.TagUnit:
		return true
	case uplc.TagData:
		return uplc.Equal(a.Data, b.Data)
	default:
		return true
	}
}
