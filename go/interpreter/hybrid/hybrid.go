package hybrid

import (
	"github.com/uplc-eval/uplc/go/interpreter/cek"
	"github.com/uplc-eval/uplc/go/interpreter/jit"
	"github.com/uplc-eval/uplc/go/uplc"
)

// Config provides user-definable options for the hybrid interpreter,
// passing through to both constituent evaluators.
type Config struct {
	JIT jit.Config
	CEK cek.Config
}

// NewInterpreter constructs a hybrid interpreter from the given Config.
func NewInterpreter(cfg Config) (*Interpreter, error) {
	j, err := jit.NewInterpreter(cfg.JIT)
	if err != nil {
		return nil, err
	}
	c, err := cek.NewInterpreter(cfg.CEK)
	if err != nil {
		return nil, err
	}
	return &Interpreter{jit: j, cek: c}, nil
}

func init() {
	uplc.MustRegisterInterpreterFactory("hybrid", func(cfgAny any) (uplc.Interpreter, error) {
		cfg, _ := cfgAny.(Config)
		return NewInterpreter(cfg)
	})
}

// Interpreter is the combined driver registered under the name "hybrid":
// it runs every term on the JIT first, and only falls back to CEK when the
// JIT hits its own internal, bounded-stack recovery signal.
type Interpreter struct {
	jit *jit.Interpreter
	cek *cek.Interpreter
}

// Run evaluates term, attempting the JIT first. If the JIT's context stack
// overflows, the buffered trace output from that attempt is discarded (it
// was never observable as a result the caller can trust) and the same term
// is re-run on CEK against the same budget — already debited by whatever
// the JIT spent before overflowing, and never refunded (spec.md §4.4, §5).
// Any other JIT error — a genuine program error, not a capacity limit — is
// returned directly; it would reproduce identically under CEK, since both
// evaluators implement the same semantics.
func (i *Interpreter) Run(term uplc.Term, budget uplc.Budget, logger uplc.Logger, params *uplc.MachineParameters) (uplc.Value, error) {
	return i.RunCached(term, nil, budget, logger, params)
}

// RunCached is Run, but forwards contentHash to the JIT's compiled-program
// cache and CEK's scope-check cache, if either was configured with one.
func (i *Interpreter) RunCached(term uplc.Term, contentHash *[32]byte, budget uplc.Budget, logger uplc.Logger, params *uplc.MachineParameters) (uplc.Value, error) {
	buffered := newBufferingLogger(logger)
	v, err := i.jit.RunCached(term, contentHash, budget, buffered, params)
	if err == nil {
		buffered.commit()
		return v, nil
	}
	if !uplc.IsStackOverflow(err) {
		buffered.commit()
		return uplc.Value{}, err
	}
	buffered.discard()
	return i.cek.RunCached(term, contentHash, budget, logger, params)
}
