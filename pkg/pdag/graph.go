package pdag

// Graph is the PDAG: it owns the root gate, issues indices, maintains
// the variable index to source-basic-event mapping, and maintains the
// null_gates/const_gates worklists of gates that have degenerated
// during editing.
type Graph struct {
	constant *Constant

	nextIndex int
	root      *Gate

	variables   []*Variable
	basicEvents map[int]any // variable index -> opaque source basic event

	complement bool
	coherent   bool
	normal     bool

	autoRegister bool
	nullGates    *orderedMap[*Gate]
	constGates   *orderedMap[*Gate]
}

// NewGraph creates an empty graph with its Constant TRUE singleton
// already materialized at index 1. Auto-registration of the
// null_gates/const_gates worklists starts disabled, matching the
// construction-time contract of spec §4.3: callers enable it via
// [Graph.EnableAutoRegister] once the initial build is complete.
func NewGraph() *Graph {
	g := &Graph{
		coherent:    true,
		normal:      true,
		basicEvents: make(map[int]any),
		nullGates:   newOrderedMap[*Gate](),
		constGates:  newOrderedMap[*Gate](),
	}
	g.nextIndex = constantIndex
	g.constant = newConstant()
	g.nextIndex++
	return g
}

// Constant returns the graph's singleton Constant TRUE node.
func (g *Graph) Constant() *Constant { return g.constant }

// Root returns the graph's root gate, or nil if unset.
func (g *Graph) Root() *Gate { return g.root }

// SetRoot assigns the root gate, which the graph owns strongly.
func (g *Graph) SetRoot(root *Gate) { g.root = root }

// Complement reports whether the root is interpreted with an inverted
// sign (the graph represents ¬root rather than root).
func (g *Graph) Complement() bool { return g.complement }

// SetComplement sets the root-inversion flag.
func (g *Graph) SetComplement(v bool) { g.complement = v }

// Coherent reports whether the graph as a whole is believed free of
// negative edges (monotone in every input).
func (g *Graph) Coherent() bool { return g.coherent }

// SetCoherent sets the graph-wide coherence flag.
func (g *Graph) SetCoherent(v bool) { g.coherent = v }

// Normal reports whether every gate operator used is within the set
// the analyses downstream understand natively.
func (g *Graph) Normal() bool { return g.normal }

// SetNormal sets the graph-wide normal-form flag.
func (g *Graph) SetNormal(v bool) { g.normal = v }

// NewVariable issues a fresh Variable at the next available index.
// Variables and gates draw from the same index counter, so a variable
// issued after a gate lies outside the dense range [2, 2+V); neither
// NewVariable nor [Graph.NewGate] checks the order of calls.
func (g *Graph) NewVariable() *Variable {
	v := newVariable(g.nextIndex)
	g.nextIndex++
	g.variables = append(g.variables, v)
	return v
}

// Variables returns every Variable issued by this graph, in index
// order (construction order).
func (g *Graph) Variables() []*Variable {
	out := make([]*Variable, len(g.variables))
	copy(out, g.variables)
	return out
}

// BindBasicEvent records the opaque source basic event a variable was
// constructed from, for the basic_events[idx] accessor of spec §6.
func (g *Graph) BindBasicEvent(v *Variable, source any) {
	g.basicEvents[v.Index()] = source
}

// BasicEvent returns the opaque source basic event bound to a variable
// index, if any.
func (g *Graph) BasicEvent(index int) (any, bool) {
	e, ok := g.basicEvents[index]
	return e, ok
}

// NewGate issues a fresh Gate of the given operator at the next
// available index and registers it as the graph's index-space owner.
// Gates created this way are not yet wired into any parent; callers
// add them as arguments of another gate or call SetRoot.
func (g *Graph) NewGate(op Operator) *Gate {
	return g.newGateRaw(op)
}

func (g *Graph) newGateRaw(op Operator) *Gate {
	gt := newGate(g, g.nextIndex, op)
	g.nextIndex++
	return gt
}

// EnableAutoRegister turns on null_gates/const_gates worklist
// registration. Construction leaves it disabled (spec §4.3 point 3) so
// that intermediate pass-through gates born during the traversal are
// not queued one by one; [Build] enables it once the traversal is
// complete.
func (g *Graph) EnableAutoRegister() { g.autoRegister = true }

func (g *Graph) registerNull(gate *Gate) {
	if !g.autoRegister || g.nullGates.has(gate.Index()) {
		return
	}
	g.nullGates.set(gate.Index(), gate)
}

func (g *Graph) registerConst(gate *Gate) {
	if !g.autoRegister || g.constGates.has(gate.Index()) {
		return
	}
	g.constGates.set(gate.Index(), gate)
}

// registerNullIfSingleton queues a Normal AND/OR/NULL gate that has
// been left with exactly one argument, a structural NULL pass-through
// even though its Operator field was never rewritten to NULL.
func (g *Graph) registerNullIfSingleton(gate *Gate) {
	if gate.state == Normal && gate.args.len() == 1 &&
		(gate.Operator == AND || gate.Operator == OR || gate.Operator == NULL) {
		g.registerNull(gate)
	}
}

// finalizeVoteArity enforces the VOTE arity invariant 2 <= vote_number
// < |args| after an edit has changed vote_number or the argument count,
// collapsing to OR, AND, or a constant state as the boundaries of
// spec §4.2.6's VOTE row dictate.
func (g *Graph) finalizeVoteArity(gate *Gate) {
	n := gate.args.len()
	switch {
	case gate.voteNumber <= 0:
		gate.setState(UnityState)
	case gate.voteNumber > n:
		gate.setState(NullState)
	case gate.voteNumber == 1:
		gate.Operator = OR
		gate.voteNumber = 0
		g.registerNullIfSingleton(gate)
	case gate.voteNumber == n:
		gate.Operator = AND
		gate.voteNumber = 0
		g.registerNullIfSingleton(gate)
	}
}

// NullGates returns the gates currently queued as NULL pass-through
// join candidates, in registration order.
func (g *Graph) NullGates() []*Gate {
	out := make([]*Gate, 0, g.nullGates.len())
	g.nullGates.each(func(_ int, gate *Gate) { out = append(out, gate) })
	return out
}

// ConstGates returns the gates currently queued as collapsed-constant
// splice candidates, in registration order.
func (g *Graph) ConstGates() []*Gate {
	out := make([]*Gate, 0, g.constGates.len())
	g.constGates.each(func(_ int, gate *Gate) { out = append(out, gate) })
	return out
}

// DequeueNullGate removes a gate from the null_gates worklist, typically
// called by the outer pass right after it has spliced the gate out via
// [Gate.JoinNullGate] on every remaining parent edge.
func (g *Graph) DequeueNullGate(index int) { g.nullGates.erase(index) }

// DequeueConstGate removes a gate from the const_gates worklist.
func (g *Graph) DequeueConstGate(index int) { g.constGates.erase(index) }

// VariableCount returns the number of variables issued by this graph.
func (g *Graph) VariableCount() int { return len(g.variables) }
