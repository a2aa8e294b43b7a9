package jit

import (
	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/builtin"
)

// defaultStackLimit bounds the JIT's context stack at a depth deep enough
// for the overwhelming majority of real validator scripts, while still
// being small enough that a pathological or adversarial term overflows it
// well before it could exhaust real memory — that margin is what makes the
// hybrid driver's CEK fallback a bounded-cost safety net rather than a
// race against the process running out of RAM.
const defaultStackLimit = 64_000

// Config provides user-definable options for the JIT interpreter.
type Config struct {
	// StackLimit bounds the context stack's depth. Zero selects
	// defaultStackLimit.
	StackLimit int

	// WithProgramCache enables the LRU compiled-program cache keyed by a
	// caller-supplied content hash (see Interpreter.RunCached).
	WithProgramCache bool

	// ProgramCacheSize bounds the number of distinct content hashes the
	// program cache remembers. Zero selects a 1024-entry default.
	ProgramCacheSize int
}

// NewInterpreter constructs a JIT interpreter with the given Config.
func NewInterpreter(cfg Config) (*Interpreter, error) {
	limit := cfg.StackLimit
	if limit <= 0 {
		limit = defaultStackLimit
	}
	size := cfg.ProgramCacheSize
	if size <= 0 {
		size = 1024
	}
	var c programCache
	if cfg.WithProgramCache {
		c = newProgramCache(size)
	}
	return &Interpreter{
		table:      builtin.NewDefaultTable(),
		cache:      c,
		stackLimit: limit,
	}, nil
}

func init() {
	uplc.MustRegisterInterpreterFactory("jit", func(cfgAny any) (uplc.Interpreter, error) {
		cfg, _ := cfgAny.(Config)
		return NewInterpreter(cfg)
	})
}

// Interpreter is the JIT evaluator, registered under the name "jit". A
// term that overflows its bounded frame stack produces an error
// satisfying uplc.IsStackOverflow — callers driving the JIT directly
// (rather than through the hybrid driver) must check for it explicitly if
// they want a fallback.
type Interpreter struct {
	table      builtin.Table
	cache      programCache
	stackLimit int
}

// Run compiles term and evaluates it, charging budget and logging via
// logger as it goes. It does not consult the program cache — use
// RunCached for that.
func (i *Interpreter) Run(term uplc.Term, budget uplc.Budget, logger uplc.Logger, params *uplc.MachineParameters) (uplc.Value, error) {
	return i.RunCached(term, nil, budget, logger, params)
}

// RunCached is Run, but fetches (and populates) the compiled-program cache
// under contentHash when the interpreter was constructed with
// WithProgramCache. A nil contentHash always compiles fresh.
func (i *Interpreter) RunCached(term uplc.Term, contentHash *[32]byte, budget uplc.Budget, logger uplc.Logger, params *uplc.MachineParameters) (uplc.Value, error) {
	compiled := i.cache.compileCached(term, contentHash, i.table)
	m := &machine{
		table:  i.table,
		budget: budget,
		logger: logger,
		params: params,
		ctx:    newStack(i.stackLimit),
		prog:   compiled,
	}
	return m.run(compiled.entry)
}
