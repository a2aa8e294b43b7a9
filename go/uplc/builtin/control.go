package builtin

import "github.com/uplc-eval/uplc/go/uplc"

func init() {
	registerControlBuiltins()
}

func registerControlBuiltins() {
	integerEntries[uplc.IfThenElse] = &Entry{ID: uplc.IfThenElse, NArgs: 3, NForces: 1, Reduce: reduceIfThenElse}
	integerEntries[uplc.ChooseUnit] = &Entry{ID: uplc.ChooseUnit, NArgs: 2, NForces: 1, Reduce: reduceChooseUnit}
	integerEntries[uplc.Trace] = &Entry{ID: uplc.Trace, NArgs: 2, NForces: 1, Reduce: reduceTrace}
}

func reduceIfThenElse(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	cond, err := asBool(uplc.IfThenElse, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	if cond {
		return args[1], nil
	}
	return args[2], nil
}

func reduceChooseUnit(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	if args[0].Kind != uplc.ValueConstant || args[0].Constant.Tag != uplc.TagUnit {
		return uplc.Value{}, typeError(uplc.ChooseUnit)
	}
	return args[1], nil
}

// reduceTrace logs its first argument (a string) via the external logger —
// logging is a side effect, never observable in the returned value — and
// returns its second argument unchanged (§4.1, §6).
func reduceTrace(args []uplc.Value, logger uplc.Logger) (uplc.Value, error) {
	msg, err := asString(uplc.Trace, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	if logger != nil {
		logger.Log(msg)
	}
	return args[1], nil
}
