package uplc

import (
	"errors"
	"fmt"
)

// Sentinel errors for the wire-visible error kinds of §6. The core never
// wraps these beyond adding builtin/case identifying context; callers
// match with errors.Is / errors.As, the way ct.go matches
// *tosca.ErrUnsupportedRevision.
var (
	ErrUserError                  = errors.New("user error")
	ErrOutOfBudget                = errors.New("out of budget")
	ErrNonFunctionApplied         = errors.New("non-function applied")
	ErrNonPolymorphicInstantiation = errors.New("non-polymorphic instantiation")
	ErrUnknownBuiltin             = errors.New("unknown builtin")
	ErrMalformedProgram           = errors.New("malformed program")

	// errStackOverflow is the JIT's internal, non-user-visible recovery
	// signal (§4.4, §4.6). It is never returned to a caller of the hybrid
	// driver; it is caught and translated into a CEK re-run.
	errStackOverflow = errors.New("jit stack overflow")
)

// BuiltinTypeError reports that a builtin's saturated arguments did not
// match its type schema. Cost has already been debited by the time this
// error is produced (§4.6).
type BuiltinTypeError struct {
	ID BuiltinID
}

func (e *BuiltinTypeError) Error() string {
	return fmt.Sprintf("builtin type error: %s", e.ID)
}

func (e *BuiltinTypeError) Is(target error) bool {
	_, ok := target.(*BuiltinTypeError)
	return ok
}

// BuiltinRuntimeError reports that a builtin's reduction rule failed after
// type-checking succeeded (e.g. division by zero, signature verification
// that the semantics define as a hard failure rather than returning false).
type BuiltinRuntimeError struct {
	ID  BuiltinID
	Msg string
}

func (e *BuiltinRuntimeError) Error() string {
	return fmt.Sprintf("builtin runtime error in %s: %s", e.ID, e.Msg)
}

func (e *BuiltinRuntimeError) Is(target error) bool {
	_, ok := target.(*BuiltinRuntimeError)
	return ok
}

// CaseMissingBranch reports a Case scrutinee whose constructor tag has no
// matching branch.
type CaseMissingBranch struct {
	Tag uint64
}

func (e *CaseMissingBranch) Error() string {
	return fmt.Sprintf("case: no branch for tag %d", e.Tag)
}

func (e *CaseMissingBranch) Is(target error) bool {
	_, ok := target.(*CaseMissingBranch)
	return ok
}

// IsStackOverflow reports whether err is the JIT's internal recoverable
// stack-overflow signal. Only the hybrid driver should ever call this.
func IsStackOverflow(err error) bool {
	return errors.Is(err, errStackOverflow)
}

// ErrStackOverflow returns the sentinel value used to signal a JIT frame-
// or value-stack overflow; exported under a function (rather than the raw
// sentinel) to make clear to callers outside interpreter/jit that this is
// a recovery signal, not a result they should propagate.
func ErrStackOverflow() error { return errStackOverflow }
