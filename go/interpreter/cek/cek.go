// Package cek implements the reference CEK evaluator of spec.md §4.2: a
// stack-based abstract machine with no pre-allocated bound on its context
// stack, serving both as the correctness oracle for the JIT and as the
// hybrid driver's fallback when the JIT exhausts its own bounded stack.
package cek

import (
	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/builtin"
)

// Config provides user-definable options for the CEK interpreter.
type Config struct {
	// WithScopeCache enables the LRU well-scopedness cache keyed by a
	// caller-supplied content hash (see Interpreter.RunCached). Disabled
	// by default: Run always performs a fresh scope check, matching
	// "safety over speed" for the reference implementation.
	WithScopeCache bool

	// ScopeCacheSize bounds the number of distinct content hashes the
	// scope cache remembers. Zero selects a 4096-entry default.
	ScopeCacheSize int
}

// NewInterpreter constructs a CEK interpreter with the given Config.
func NewInterpreter(cfg Config) (*Interpreter, error) {
	size := cfg.ScopeCacheSize
	if size <= 0 {
		size = 4096
	}
	var a analysis
	if cfg.WithScopeCache {
		a = newAnalysis(size)
	}
	return &Interpreter{
		table:    builtin.NewDefaultTable(),
		analysis: a,
	}, nil
}

func init() {
	uplc.MustRegisterInterpreterFactory("cek", func(cfgAny any) (uplc.Interpreter, error) {
		cfg, _ := cfgAny.(Config)
		return NewInterpreter(cfg)
	})
}

// Interpreter is the CEK reference evaluator, registered under the name
// "cek".
type Interpreter struct {
	table    builtin.Table
	analysis analysis
}

// Run evaluates term to a Value or error, charging budget and logging via
// logger as it goes (§4.2, §6). It performs a fresh well-scopedness check
// on every call — use RunCached to take advantage of the scope cache.
func (i *Interpreter) Run(term uplc.Term, budget uplc.Budget, logger uplc.Logger, params *uplc.MachineParameters) (uplc.Value, error) {
	return i.RunCached(term, nil, budget, logger, params)
}

// RunCached is Run, but consults (and populates) the scope cache under
// contentHash when the interpreter was constructed with WithScopeCache. A
// nil contentHash always performs a fresh check.
func (i *Interpreter) RunCached(term uplc.Term, contentHash *[32]byte, budget uplc.Budget, logger uplc.Logger, params *uplc.MachineParameters) (uplc.Value, error) {
	if err := i.analysis.scopeCheck(term, contentHash); err != nil {
		return uplc.Value{}, err
	}
	m := &machine{table: i.table, budget: budget, logger: logger, params: params}
	return m.run(term)
}
