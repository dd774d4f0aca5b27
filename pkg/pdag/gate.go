package pdag

// Gate is an internal PDAG node carrying an [Operator], a [State], and
// an ordered set of signed argument indices. The underlying node for
// each edge is looked up by absolute value in one of three typed
// argument containers partitioning the keys of args by target kind.
type Gate struct {
	node

	graph    *Graph
	Operator Operator
	state    State

	voteNumber int

	args         *orderedMap[int] // absIndex -> sign (+1 or -1)
	gateArgs     *orderedMap[*Gate]
	variableArgs *orderedMap[*Variable]
	constantArgs *orderedMap[*Constant]

	mark       bool
	module     bool
	coherent   bool
	descendant int
	ancestor   int
	minTimeSet bool
	minTimeV   int
	maxTimeV   int
}

var _ targetNode = (*Gate)(nil)

func newGate(graph *Graph, index int, op Operator) *Gate {
	return &Gate{
		node:         newNode(index),
		graph:        graph,
		Operator:     op,
		state:        Normal,
		coherent:     true,
		args:         newOrderedMap[int](),
		gateArgs:     newOrderedMap[*Gate](),
		variableArgs: newOrderedMap[*Variable](),
		constantArgs: newOrderedMap[*Constant](),
	}
}

// State returns the gate's current Boolean state.
func (g *Gate) State() State { return g.state }

// VoteNumber returns the K of a VOTE(K/N) gate; meaningless for other
// operators.
func (g *Gate) VoteNumber() int { return g.voteNumber }

// SetVoteNumber sets the K of a VOTE gate. Precondition: operator is
// VOTE and the arity invariant 2 <= k < |args| will hold (checked at
// the point the argument count is known; callers building incrementally
// may set this before all arguments are added).
func (g *Gate) SetVoteNumber(k int) {
	preconditionf(g.Operator == VOTE, "gate %d: SetVoteNumber on non-VOTE operator %s", g.index, g.Operator)
	preconditionf(k >= 2, "gate %d: vote number must be >= 2, got %d", g.index, k)
	g.voteNumber = k
}

// Module reports whether this gate has been marked as a module (its
// variables are disjoint from the rest of the graph).
func (g *Gate) Module() bool { return g.module }

// SetModule sets the module flag.
func (g *Gate) SetModule(v bool) { g.module = v }

// Coherent reports whether this gate is currently believed to be free
// of negative edges reachable from it. Starts true; cleared the first
// time a complement edge is introduced.
func (g *Gate) Coherent() bool { return g.coherent }

// MinTime returns the gate's explicit subgraph minimum time if one has
// been assigned, falling back to the base node's EnterTime.
func (g *Gate) MinTime() int {
	if g.minTimeSet {
		return g.minTimeV
	}
	return g.node.MinTime()
}

// MaxTime returns the gate's explicit subgraph maximum time if one has
// been assigned, falling back to the base node's LastVisit.
func (g *Gate) MaxTime() int {
	if g.minTimeSet {
		return g.maxTimeV
	}
	return g.node.MaxTime()
}

// SetMinMaxTime assigns explicit subgraph times, overriding the
// visit-derived defaults.
func (g *Gate) SetMinMaxTime(min, max int) {
	g.minTimeSet = true
	g.minTimeV = min
	g.maxTimeV = max
}

// ArgCount returns the number of arguments currently in the gate's
// argument set.
func (g *Gate) ArgCount() int { return g.args.len() }

// Args returns the signed argument indices in sorted order, matching
// the graph-wide iteration ordering contract (sort order of signed
// indices).
func (g *Gate) Args() []int {
	out := make([]int, 0, g.args.len())
	g.args.each(func(idx, sign int) { out = append(out, sign*idx) })
	sortInts(out)
	return out
}

// GetArgSign returns the sign (+1 or -1) of the edge to the node with
// the given absolute index, and whether it is present.
func (g *Gate) GetArgSign(absIndex int) (int, bool) {
	return g.args.get(absIndex)
}

// GetArg returns the target node of the edge to the given absolute
// index, and whether it is present.
func (g *Gate) GetArg(absIndex int) (targetNode, bool) {
	return g.argNode(absIndex)
}

func (g *Gate) argNode(absIndex int) (targetNode, bool) {
	if n, ok := g.gateArgs.get(absIndex); ok {
		return n, true
	}
	if n, ok := g.variableArgs.get(absIndex); ok {
		return n, true
	}
	if n, ok := g.constantArgs.get(absIndex); ok {
		return n, true
	}
	return nil, false
}

// AddArg adds a signed edge to n, where |signedIndex| == n.Index().
// Behavior on an already-present edge to the same absolute index
// follows the duplicate/complement rules of the gate's operator
// (spec §4.2.2, §4.2.3).
func (g *Gate) AddArg(signedIndex int, n targetNode) {
	preconditionf(g.state == Normal, "gate %d: AddArg on non-normal gate", g.index)
	idx := n.Index()
	preconditionf(absInt(signedIndex) == idx, "gate %d: signed index %d does not match node index %d", g.index, signedIndex, idx)
	preconditionf(idx != g.index, "gate %d: self-reference via AddArg", g.index)

	sign, ok := g.args.get(idx)
	if !ok {
		if fixed := g.Operator.arity(); fixed > 0 {
			preconditionf(g.args.len() < fixed, "gate %d: operator %s takes exactly %d argument(s)", g.index, g.Operator, fixed)
		}
		g.insertArg(signedIndex, n)
		return
	}
	if sign == signOf(signedIndex) {
		g.processDuplicateArg(idx)
	} else {
		g.processComplementArg(idx)
		if g.coherent {
			g.coherent = false
		}
	}
}

func (g *Gate) insertArg(signedIndex int, n targetNode) {
	idx := n.Index()
	sign := signOf(signedIndex)
	if sign < 0 {
		g.coherent = false
	}
	g.args.set(idx, sign)
	switch t := n.(type) {
	case *Gate:
		g.gateArgs.set(idx, t)
	case *Variable:
		g.variableArgs.set(idx, t)
	case *Constant:
		g.constantArgs.set(idx, t)
	default:
		preconditionf(false, "gate %d: unknown target node kind for index %d", g.index, idx)
	}
	n.addParent(g)
}

// EraseArg removes the edge to the node with the given absolute index.
// Precondition: the edge must be present and the gate must be Normal.
func (g *Gate) EraseArg(absIndex int) {
	preconditionf(g.state == Normal, "gate %d: EraseArg on non-normal gate", g.index)
	g.eraseArgChecked(absIndex)
}

func (g *Gate) eraseArgChecked(absIndex int) {
	_, ok := g.args.get(absIndex)
	preconditionf(ok, "gate %d: no argument with index %d", g.index, absIndex)
	n, _ := g.argNode(absIndex)
	switch n.(type) {
	case *Gate:
		g.gateArgs.erase(absIndex)
	case *Variable:
		g.variableArgs.erase(absIndex)
	case *Constant:
		g.constantArgs.erase(absIndex)
	}
	n.eraseParent(g.index)
	g.args.erase(absIndex)
	if child, ok := n.(*Gate); ok {
		child.maybeRelease()
	}
}

// maybeRelease implements the destructor contract of spec §3's
// Lifecycle section for the one node kind that can transitively own
// other gates: once a gate's last parent edge is gone it is
// unreachable from the root, so it releases its own argument edges in
// turn (each release is itself subject to the same check, cascading
// through a chain of now-dead sub-gates). Variables and the Constant
// are leaves and are never released this way.
func (g *Gate) maybeRelease() {
	if g.parents.len() == 0 && g.state == Normal && g.args.len() > 0 {
		g.eraseAllArgsInternal()
	}
}

// EraseAllArgs removes every argument edge, detaching parent
// back-references on each child. The gate remains Normal with an empty
// argument set.
func (g *Gate) EraseAllArgs() {
	preconditionf(g.state == Normal, "gate %d: EraseAllArgs on non-normal gate", g.index)
	g.eraseAllArgsInternal()
}

func (g *Gate) eraseAllArgsInternal() {
	keys := make([]int, 0, g.args.len())
	g.args.each(func(idx, _ int) { keys = append(keys, idx) })
	for _, idx := range keys {
		g.eraseArgChecked(idx)
	}
}

// setState collapses the gate to a non-normal constant state, clearing
// its arguments and registering it on the graph's const_gates worklist.
// Called while the gate is still Normal.
func (g *Gate) setState(s State) {
	g.eraseAllArgsInternal()
	g.state = s
	g.graph.registerConst(g)
}

// MakeConstant is the terminal operation that collapses the gate to a
// Boolean constant directly, independent of any edge processing
// (spec §4.2.9).
func (g *Gate) MakeConstant(value bool) {
	preconditionf(g.state == Normal, "gate %d: MakeConstant on non-normal gate", g.index)
	g.setState(boolToState(value))
}

func (g *Gate) processDuplicateArg(k int) {
	switch g.Operator {
	case AND, OR, NAND, NOR:
		// idempotent: duplicate add is silently dropped.
	case XOR:
		g.setState(NullState)
	case NOT, NULL:
		preconditionf(false, "gate %d: %s cannot receive a duplicate argument", g.index, g.Operator)
	case VOTE:
		g.voteDuplicateArg(k)
	}
}

func (g *Gate) processComplementArg(k int) {
	switch g.Operator {
	case AND:
		g.setState(NullState)
	case OR:
		g.setState(UnityState)
	case NAND:
		g.setState(UnityState)
	case NOR:
		g.setState(NullState)
	case XOR:
		g.setState(UnityState)
	case NOT, NULL:
		preconditionf(false, "gate %d: %s cannot receive a complement argument", g.index, g.Operator)
	case VOTE:
		g.voteComplementArg(k)
	}
}

// ProcessConstantArg folds the Constant edge at absolute index
// constantIndex into the gate, given the edge's sign (spec §4.2.6).
func (g *Gate) ProcessConstantArg(signedIndex int) {
	preconditionf(absInt(signedIndex) == constantIndex, "gate %d: ProcessConstantArg called with non-constant index %d", g.index, signedIndex)
	value := signedIndex > 0
	switch g.Operator {
	case AND:
		if value {
			g.eraseArgChecked(constantIndex)
			g.graph.registerNullIfSingleton(g)
		} else {
			g.setState(NullState)
		}
	case OR:
		if value {
			g.setState(UnityState)
		} else {
			g.eraseArgChecked(constantIndex)
			g.graph.registerNullIfSingleton(g)
		}
	case NAND:
		if value {
			g.eraseArgChecked(constantIndex)
			g.graph.registerNullIfSingleton(g)
		} else {
			g.setState(UnityState)
		}
	case NOR:
		if value {
			g.setState(NullState)
		} else {
			g.eraseArgChecked(constantIndex)
			g.graph.registerNullIfSingleton(g)
		}
	case XOR:
		g.collapseXORWithConstant(value)
	case NOT:
		g.setState(boolToState(!value))
	case NULL:
		g.setState(boolToState(value))
	case VOTE:
		g.voteProcessConstantArg(value)
	}
}

// collapseXORWithConstant implements the XOR row of §4.2.6: fold the
// Constant leg, flip the remaining edge's sign if the constant leg was
// TRUE, and turn the gate into a single-argument NULL pass-through.
func (g *Gate) collapseXORWithConstant(value bool) {
	var otherIdx, otherSign int
	var other targetNode
	g.args.each(func(idx, sign int) {
		if idx != constantIndex {
			otherIdx, otherSign = idx, sign
		}
	})
	other, _ = g.argNode(otherIdx)
	g.eraseAllArgsInternal()
	g.Operator = NULL
	finalSign := otherSign
	if value {
		finalSign = -finalSign
	}
	g.insertArg(finalSign*otherIdx, other)
	g.graph.registerNull(g)
}

// InvertArgs negates the sign of every argument edge, used to push a
// complement down through a De Morgan conversion (spec §4.2.5).
func (g *Gate) InvertArgs() {
	preconditionf(g.state == Normal, "gate %d: InvertArgs on non-normal gate", g.index)
	if g.Operator == VOTE {
		keys := make([]int, 0, g.args.len())
		g.args.each(func(idx, _ int) { keys = append(keys, idx) })
		for _, idx := range keys {
			g.InvertArg(idx)
		}
		return
	}
	g.args.each(func(idx, sign int) { g.args.update(idx, -sign) })
	g.coherent = false
}

// InvertArg flips the sign of the single edge to absIndex. Because
// signed uniqueness guarantees at most one entry per absolute index,
// this can never collide with a sibling edge; VOTE gates instead route
// the flip through erase+AddArg so the vote-count bookkeeping of
// §4.2.4 stays consistent (the degeneration called for by the open
// question on InvertArg/VOTE interaction in spec §9).
func (g *Gate) InvertArg(absIndex int) {
	preconditionf(g.state == Normal, "gate %d: InvertArg on non-normal gate", g.index)
	sign, ok := g.args.get(absIndex)
	preconditionf(ok, "gate %d: no argument with index %d to invert", g.index, absIndex)
	if g.Operator == VOTE {
		n, _ := g.argNode(absIndex)
		g.eraseArgChecked(absIndex)
		if g.state != Normal {
			return
		}
		g.AddArg(-sign*absIndex, n)
		return
	}
	g.args.update(absIndex, -sign)
	g.coherent = false
}

// CoalesceGate absorbs every argument of the child gate at the given
// positive edge into this gate, then removes the edge to the child
// (spec §4.2.7). Valid only for this.Operator == child.Operator in
// {AND, OR} over a positive edge.
func (g *Gate) CoalesceGate(signedIndex int) {
	preconditionf(g.state == Normal, "gate %d: CoalesceGate on non-normal gate", g.index)
	preconditionf(signedIndex > 0, "gate %d: CoalesceGate requires a positive edge, got %d", g.index, signedIndex)
	preconditionf(g.Operator == AND || g.Operator == OR, "gate %d: CoalesceGate only valid for AND/OR, got %s", g.index, g.Operator)
	absIndex := signedIndex
	child, ok := g.gateArgs.get(absIndex)
	preconditionf(ok, "gate %d: %d is not a child gate", g.index, absIndex)
	preconditionf(child.Operator == g.Operator, "gate %d: cannot coalesce child of operator %s into %s", g.index, child.Operator, g.Operator)

	type childArg struct {
		idx  int
		sign int
		node targetNode
	}
	entries := make([]childArg, 0, child.args.len())
	child.args.each(func(idx, sign int) {
		n, _ := child.argNode(idx)
		entries = append(entries, childArg{idx, sign, n})
	})

	for _, e := range entries {
		if g.state != Normal {
			return
		}
		g.AddArg(e.sign*e.idx, e.node)
	}
	g.eraseArgChecked(absIndex)
}

// JoinNullGate splices out a NULL pass-through child reached via the
// given signed edge, reparenting the child's sole argument directly
// onto this gate with the combined sign (spec §4.2.7).
func (g *Gate) JoinNullGate(signedIndex int) {
	preconditionf(g.state == Normal, "gate %d: JoinNullGate on non-normal gate", g.index)
	absIndex := absInt(signedIndex)
	sigma := signOf(signedIndex)
	child, ok := g.gateArgs.get(absIndex)
	preconditionf(ok, "gate %d: %d is not a child gate", g.index, absIndex)
	preconditionf(child.Operator == NULL, "gate %d: JoinNullGate target %d is not a NULL gate", g.index, absIndex)
	preconditionf(child.args.len() == 1, "gate %d: NULL gate %d does not have exactly one argument", g.index, absIndex)

	var innerSign, innerIdx int
	var innerNode targetNode
	child.args.each(func(idx, sign int) {
		innerIdx, innerSign = idx, sign
		innerNode, _ = child.argNode(idx)
	})

	// Hold innerNode by this gate while the child edge goes, so that
	// releasing the now-parentless child does not release innerNode's
	// own arguments.
	held := !innerNode.hasParent(g.index)
	if held {
		innerNode.addParent(g)
	}
	g.eraseArgChecked(absIndex)
	if held {
		innerNode.eraseParent(g.index)
	}
	if g.state != Normal {
		return
	}
	g.AddArg(sigma*innerSign*innerIdx, innerNode)
}

// Clone returns a new gate of the same operator and vote number, with
// shallow-copied argument maps: children are shared, not duplicated.
// Parents, marks, and the Normal/non-normal state do not carry over;
// each shared child gains the clone as an additional parent.
func (g *Gate) Clone() *Gate {
	clone := g.graph.newGateRaw(g.Operator)
	clone.voteNumber = g.voteNumber
	clone.coherent = g.coherent
	g.args.each(func(idx, sign int) {
		n, _ := g.argNode(idx)
		clone.args.set(idx, sign)
		switch t := n.(type) {
		case *Gate:
			clone.gateArgs.set(idx, t)
		case *Variable:
			clone.variableArgs.set(idx, t)
		case *Constant:
			clone.constantArgs.set(idx, t)
		}
		n.addParent(clone)
	})
	return clone
}
