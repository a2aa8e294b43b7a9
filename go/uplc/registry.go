package uplc

import (
	"fmt"
	"sync"
)

// Interpreter is the common surface both evaluator implementations expose
// to a caller, mirroring tosca.Interpreter in the teacher: a single Run
// entry point taking a term, a budget, a logger, and machine parameters,
// returning a Value or a typed error.
type Interpreter interface {
	Run(term Term, budget Budget, logger Logger, params *MachineParameters) (Value, error)
}

// InterpreterFactory builds an Interpreter instance from an opaque
// configuration value, the same shape as sfvm.NewInterpreter(Config{}).
type InterpreterFactory func(config any) (Interpreter, error)

var (
	registryMu sync.Mutex
	registry   = map[string]InterpreterFactory{}
)

// MustRegisterInterpreterFactory registers a named interpreter
// implementation. Called from each implementation's package init, the way
// sfvm.init() registers "sfvm" with tosca. Panics on a duplicate name,
// since that indicates two packages claiming the same evaluator identity.
func MustRegisterInterpreterFactory(name string, factory InterpreterFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic("uplc: interpreter factory already registered: " + name)
	}
	registry[name] = factory
}

// NewInterpreter looks up a registered interpreter by name and constructs
// it with a nil (default) configuration.
func NewInterpreter(name string) (Interpreter, error) {
	registryMu.Lock()
	factory, ok := registry[name]
	registryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("uplc: interpreter %q is not registered", name)
	}
	return factory(nil)
}
