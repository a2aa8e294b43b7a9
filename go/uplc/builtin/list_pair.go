package builtin

import "github.com/uplc-eval/uplc/go/uplc"

func init() {
	registerListPairBuiltins()
}

func registerListPairBuiltins() {
	integerEntries[uplc.FstPair] = &Entry{ID: uplc.FstPair, NArgs: 1, NForces: 2, Reduce: reduceFstPair}
	integerEntries[uplc.SndPair] = &Entry{ID: uplc.SndPair, NArgs: 1, NForces: 2, Reduce: reduceSndPair}
	integerEntries[uplc.MkPairData] = &Entry{ID: uplc.MkPairData, NArgs: 2, Reduce: reduceMkPairData}

	integerEntries[uplc.ChooseList] = &Entry{ID: uplc.ChooseList, NArgs: 3, NForces: 2, Reduce: reduceChooseList}
	integerEntries[uplc.MkCons] = &Entry{ID: uplc.MkCons, NArgs: 2, NForces: 1, Reduce: reduceMkCons}
	integerEntries[uplc.HeadList] = &Entry{ID: uplc.HeadList, NArgs: 1, NForces: 1, Reduce: reduceHeadList}
	integerEntries[uplc.TailList] = &Entry{ID: uplc.TailList, NArgs: 1, NForces: 1, Reduce: reduceTailList}
	integerEntries[uplc.NullList] = &Entry{ID: uplc.NullList, NArgs: 1, NForces: 1, Reduce: reduceNullList}
	integerEntries[uplc.MkNilData] = &Entry{ID: uplc.MkNilData, NArgs: 1, Reduce: reduceMkNilData}
	integerEntries[uplc.MkNilPairData] = &Entry{ID: uplc.MkNilPairData, NArgs: 1, Reduce: reduceMkNilPairData}
}

func reduceFstPair(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	fst, _, err := asPair(uplc.FstPair, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	return uplc.ValueOfConstant(fst), nil
}

func reduceSndPair(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	_, snd, err := asPair(uplc.SndPair, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	return uplc.ValueOfConstant(snd), nil
}

func reduceMkPairData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	a, err := asData(uplc.MkPairData, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	b, err := asData(uplc.MkPairData, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	return pairVal(uplc.NewData(a), uplc.NewData(b)), nil
}

func reduceChooseList(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	_, elems, err := asList(uplc.ChooseList, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	if len(elems) == 0 {
		return args[1], nil
	}
	return args[2], nil
}

func reduceMkCons(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	if args[0].Kind != uplc.ValueConstant {
		return uplc.Value{}, typeError(uplc.MkCons)
	}
	tag, elems, err := asList(uplc.MkCons, args[1])
	if err != nil {
		return uplc.Value{}, err
	}
	if args[0].Constant.Tag != tag {
		return uplc.Value{}, typeError(uplc.MkCons)
	}
	next := make([]uplc.Constant, 0, len(elems)+1)
	next = append(next, args[0].Constant)
	next = append(next, elems...)
	return listVal(tag, next), nil
}

func reduceHeadList(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	_, elems, err := asList(uplc.HeadList, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	if len(elems) == 0 {
		return uplc.Value{}, runtimeError(uplc.HeadList, "empty list")
	}
	return uplc.ValueOfConstant(elems[0]), nil
}

func reduceTailList(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	tag, elems, err := asList(uplc.TailList, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	if len(elems) == 0 {
		return uplc.Value{}, runtimeError(uplc.TailList, "empty list")
	}
	return listVal(tag, elems[1:]), nil
}

func reduceNullList(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	_, elems, err := asList(uplc.NullList, args[0])
	if err != nil {
		return uplc.Value{}, err
	}
	return boolVal(len(elems) == 0), nil
}

func reduceMkNilData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	if args[0].Kind != uplc.ValueConstant || args[0].Constant.Tag != uplc.TagUnit {
		return uplc.Value{}, typeError(uplc.MkNilData)
	}
	return listVal(uplc.TagData, nil), nil
}

func reduceMkNilPairData(args []uplc.Value, _ uplc.Logger) (uplc.Value, error) {
	if args[0].Kind != uplc.ValueConstant || args[0].Constant.Tag != uplc.TagUnit {
		return uplc.Value{}, typeError(uplc.MkNilPairData)
	}
	return listVal(uplc.TagPair, nil), nil
}
