package cek

import (
	"errors"
	"testing"

	"github.com/uplc-eval/uplc/go/uplc"
)

func TestValidateScopeAcceptsClosedTerm(t *testing.T) {
	// \x y -> x
	term := uplc.LamAbs{Body: uplc.LamAbs{Body: uplc.Var{Index: 1}}}
	if err := validateScope(term, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateScopeRejectsUnboundVar(t *testing.T) {
	term := uplc.LamAbs{Body: uplc.Var{Index: 1}}
	if err := validateScope(term, 0); !errors.Is(err, uplc.ErrMalformedProgram) {
		t.Fatalf("got %v, want ErrMalformedProgram", err)
	}
}

func TestScopeCacheReusesResult(t *testing.T) {
	a := newAnalysis(8)
	term := uplc.LamAbs{Body: uplc.Var{Index: 0}}
	hash := [32]byte{1}

	if err := a.scopeCheck(term, &hash); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A second lookup under the same hash must hit the cache rather than
	// recompute — swap in a term that would fail validation and confirm
	// the cached (passing) result is still what comes back.
	bad := uplc.Var{Index: 99}
	if err := a.scopeCheck(bad, &hash); err != nil {
		t.Fatalf("expected cached pass result, got %v", err)
	}
}

func TestScopeCacheMissPerformsFreshCheck(t *testing.T) {
	a := newAnalysis(8)
	hash := [32]byte{2}
	bad := uplc.Var{Index: 0}
	if err := a.scopeCheck(bad, &hash); !errors.Is(err, uplc.ErrMalformedProgram) {
		t.Fatalf("got %v, want ErrMalformedProgram", err)
	}
}
