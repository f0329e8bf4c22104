package deform

import (
	"sync"
)

// Inputs are everything one evaluation reads.
type Inputs struct {
	Base      *Mesh
	Collision *Mesh
	Params    Params
	Curve     Sampler
}

// Node adapts an Evaluator to a host dependency graph. It caches the last output and tracks whether that output
// is up to date with the inputs.
type Node struct {
	schema    Schema
	evaluator *Evaluator

	mu     sync.Mutex
	inputs Inputs
	output *Mesh
	clean  bool
}

// NewNode returns a dirty node with no inputs.
func NewNode(schema Schema, evaluator *Evaluator) *Node {
	return &Node{schema: schema, evaluator: evaluator}
}

// SetInputs replaces every input and marks the output dirty.
func (n *Node) SetInputs(in Inputs) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.inputs = in
	n.clean = false
}

// AttributeChanged marks the output dirty if the named attribute affects it, and reports whether it did.
func (n *Node) AttributeChanged(name string) bool {
	if !n.schema.Affects(name) {
		return false
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.clean = false
	return true
}

// Compute brings the output up to date. When an input mesh is missing the previous output is left untouched, the
// node stays dirty and ok is false.
func (n *Node) Compute() (*Mesh, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.clean {
		return n.output, true
	}
	out, ok := n.evaluator.Evaluate(n.inputs.Base, n.inputs.Collision, n.inputs.Params, n.inputs.Curve)
	if !ok {
		return n.output, false
	}
	n.output = out
	n.clean = true
	return out, true
}

// Output returns the last computed output, which may be nil.
func (n *Node) Output() *Mesh {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.output
}

// Clean reports whether the output reflects the current inputs.
func (n *Node) Clean() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.clean
}
