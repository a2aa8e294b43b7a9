// Package interpreter hosts the property-based Agreement test (§8): for
// every well-scoped term, the CEK reference machine and the JIT evaluator
// must either both fail the same way or both produce the same observable
// value. The evaluators themselves live in the cek, jit, and hybrid
// subpackages; this package only ties them together for testing.
package interpreter
