package cek

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/uplc-eval/uplc/go/uplc"
)

// analysis caches the result of validateScope for a term keyed by content
// hash, so that re-running the same script (the common case: a validator
// is checked once at mempool admission and again at block validation) does
// not repeat the linear well-scopedness walk. This is the same shape as
// the teacher's jump-destination analysis cache — a pure, content-addressed
// precomputation kept in an LRU so unrelated scripts can't evict a hot one
// indefinitely — generalized from "bitmap of valid jump targets" to
// "whether every de Bruijn index in this term resolves." Case branch counts
// are not checked here.
type analysis struct {
	cache *lru.Cache[[32]byte, error]
}

func newAnalysis(size int) analysis {
	cache, err := lru.New[[32]byte, error](size)
	if err != nil {
		panic("cek: failed to create analysis cache: " + err.Error())
	}
	return analysis{cache: cache}
}

// scopeCheck validates term and caches the result under hash, or validates
// directly (no caching) if hash is nil (e.g. an ad hoc term with no stable
// content address).
func (a *analysis) scopeCheck(term uplc.Term, hash *[32]byte) error {
	if a == nil || a.cache == nil || hash == nil {
		return validateScope(term, 0)
	}
	if cached, ok := a.cache.Get(*hash); ok {
		return cached
	}
	err := validateScope(term, 0)
	a.cache.Add(*hash, err)
	return err
}

// validateScope walks term checking that every Var index resolves within
// depth bindings, failing closed on the first violation (spec.md's closed-
// term precondition). It does not look inside already-evaluated Constant
// data, since constants carry no Var nodes.
func validateScope(term uplc.Term, depth int) error {
	switch t := term.(type) {
	case uplc.Var:
		if t.Index < 0 || t.Index >= depth {
			return uplc.ErrMalformedProgram
		}
	case uplc.LamAbs:
		return validateScope(t.Body, depth+1)
	case uplc.Apply:
		if err := validateScope(t.Fun, depth); err != nil {
			return err
		}
		return validateScope(t.Arg, depth)
	case uplc.Delay:
		return validateScope(t.Body, depth)
	case uplc.Force:
		return validateScope(t.Body, depth)
	case uplc.Constr:
		for _, f := range t.Fields {
			if err := validateScope(f, depth); err != nil {
				return err
			}
		}
	case uplc.Case:
		if err := validateScope(t.Scrutinee, depth); err != nil {
			return err
		}
		for _, b := range t.Branches {
			if err := validateScope(b, depth); err != nil {
				return err
			}
		}
	case uplc.Const, uplc.Builtin, uplc.Error:
		// no subterms, no bindings
	}
	return nil
}
