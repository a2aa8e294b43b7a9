package uplc

// ValueKind discriminates the runtime Value union shared conceptually by
// both the CEK machine and the JIT (the JIT's runtime representation is
// defined in interpreter/jit, but it carries the same cases).
type ValueKind byte

const (
	ValueConstant ValueKind = iota
	ValueClosure
	ValueDelay
	ValuePartialBuiltin
	ValueConstr
)

// Closure pairs a LamAbs body with the environment captured at the time the
// closure value was produced.
type Closure struct {
	Body Term
	Env  *Env
}

// Thunk is the value produced by evaluating a Delay: a suspended body plus
// its captured environment, activated by Force.
type Thunk struct {
	Body Term
	Env  *Env
}

// PartialBuiltin collects arguments and forces for a builtin awaiting
// saturation (§4.1). RemainingArgs and RemainingForces both reach zero
// exactly when the builtin's reduction rule fires.
type PartialBuiltin struct {
	ID             BuiltinID
	Args           []Value
	RemainingArgs  int
	RemainingForces int
}

// ConstrValue is the runtime counterpart of a Term.Constr: a tag plus its
// already-evaluated fields.
type ConstrValue struct {
	Tag    uint64
	Fields []Value
}

// Value is a runtime value produced by evaluation. Exactly one of the
// typed fields is meaningful, selected by Kind.
type Value struct {
	Kind ValueKind

	Constant Constant
	Closure  Closure
	Thunk    Thunk
	Partial  PartialBuiltin
	Constr   ConstrValue
}

func ValueOfConstant(c Constant) Value        { return Value{Kind: ValueConstant, Constant: c} }
func ValueOfClosure(body Term, env *Env) Value { return Value{Kind: ValueClosure, Closure: Closure{Body: body, Env: env}} }
func ValueOfThunk(body Term, env *Env) Value   { return Value{Kind: ValueDelay, Thunk: Thunk{Body: body, Env: env}} }
func ValueOfConstr(tag uint64, fields []Value) Value {
	return Value{Kind: ValueConstr, Constr: ConstrValue{Tag: tag, Fields: fields}}
}

// Size measures a runtime Value the same way ConstantSize measures a
// Constant; used by cost functions applied to already-evaluated builtin
// arguments.
func (v Value) Size() Size {
	switch v.Kind {
	case ValueConstant:
		return ConstantSize(v.Constant)
	case ValueConstr:
		var sum int64
		for _, f := range v.Constr.Fields {
			sum += int64(f.Size())
		}
		return Size(sum + 1)
	default:
		return 1
	}
}

// Env is a sequence of values indexed by de Bruijn index, extended on the
// tail during LamAbs application. Environments are captured by reference
// and shared between closures; they are never mutated in place after
// capture — Extend always returns a new Env whose Parent points at the
// receiver.
type Env struct {
	Parent *Env
	Value  Value
	depth  int
}

// Extend returns a new environment with v bound at index 0, shifting every
// existing binding up by one.
func (e *Env) Extend(v Value) *Env {
	d := 0
	if e != nil {
		d = e.depth + 1
	}
	return &Env{Parent: e, Value: v, depth: d}
}

// Lookup resolves a de Bruijn index against the environment. A Term that
// is closed (spec.md's Term invariant) never causes Lookup to walk past a
// nil Parent.
func (e *Env) Lookup(index int) (Value, bool) {
	cur := e
	for i := 0; i < index; i++ {
		if cur == nil {
			return Value{}, false
		}
		cur = cur.Parent
	}
	if cur == nil {
		return Value{}, false
	}
	return cur.Value, true
}

// Depth returns the number of bindings reachable from e (0 for a nil
// environment).
func (e *Env) Depth() int {
	if e == nil {
		return 0
	}
	return e.depth + 1
}
