package jit

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/builtin"
)

// programCache memoizes compile(term) results keyed by content hash: a
// validator script is typically compiled once and run many times (mempool
// admission, then again at block validation), so caching the compiled
// instruction stream avoids re-walking the same AST on every call. Same
// shape as cek's scope-check cache, generalized to cache the compiled
// program itself rather than just a validation verdict.
type programCache struct {
	cache *lru.Cache[[32]byte, *program]
}

func newProgramCache(size int) programCache {
	cache, err := lru.New[[32]byte, *program](size)
	if err != nil {
		panic("jit: failed to create program cache: " + err.Error())
	}
	return programCache{cache: cache}
}

// compileCached returns compile(term, table), consulting (and populating)
// the cache under hash. A nil hash, or a nil cache (the interpreter
// constructed with caching disabled), always compiles fresh.
func (c programCache) compileCached(term uplc.Term, hash *[32]byte, table builtin.Table) *program {
	if c.cache == nil || hash == nil {
		return compile(term, table)
	}
	if cached, ok := c.cache.Get(*hash); ok {
		return cached
	}
	p := compile(term, table)
	c.cache.Add(*hash, p)
	return p
}
