package pdag

// voteDuplicateArg implements §4.2.4's duplicate-argument rule for
// VOTE gates. Adding a second occurrence of literal a to
// VOTE(k, {a}+B) is resolved by the Boolean identity
//
//	VOTE(k, {a,a}+B) = (a ∧ VOTE(k-1, B)) ∨ VOTE(k, B)
//
// The receiver gate is repurposed in place as the OR root of the two
// branches rather than allocating a fresh top-level gate, so existing
// parent edges into it stay valid.
func (g *Gate) voteDuplicateArg(absIndex int) {
	aSign, _ := g.args.get(absIndex)
	aNode, _ := g.argNode(absIndex)
	oldVote := g.voteNumber

	var b []voteArg
	g.args.each(func(idx, sign int) {
		if idx == absIndex {
			return
		}
		n, _ := g.argNode(idx)
		b = append(b, voteArg{idx, sign, n})
	})

	// The branches are built before the receiver's edges are erased, so
	// every argument already has a new parent and none is released.
	graph := g.graph
	b1Node, b1Sign := graph.buildThresholdGate(oldVote-1, b)

	andGate := graph.newGateRaw(AND)
	andGate.AddArg(aSign*absIndex, aNode)
	if andGate.state == Normal {
		andGate.AddArg(b1Sign*b1Node.Index(), b1Node)
	}
	andNode, andSign := collapseGateRef(andGate)

	b2Node, b2Sign := graph.buildThresholdGate(oldVote, b)

	g.eraseAllArgsInternal()
	g.Operator = OR
	g.voteNumber = 0
	g.AddArg(andSign*andNode.Index(), andNode)
	if g.state == Normal {
		g.AddArg(b2Sign*b2Node.Index(), b2Node)
	}
	if g.state == Normal {
		g.graph.registerNullIfSingleton(g)
	}
}

// voteComplementArg implements §4.2.4's complement-argument rule for
// VOTE gates: a literal and its negation together are a tautology that
// always contributes exactly one true input, so the pair is removed
// entirely and the threshold decrements by one, then the arity
// invariant is re-checked (spec §9 open question (b): this is the same
// degeneration path as a folded TRUE constant argument).
func (g *Gate) voteComplementArg(absIndex int) {
	g.eraseArgChecked(absIndex)
	g.voteNumber--
	g.graph.finalizeVoteArity(g)
}

// voteProcessConstantArg implements the VOTE row of §4.2.6: on TRUE,
// decrement vote_number and drop the edge; on FALSE, just drop the
// edge. Either way the arity invariant is re-checked afterward.
func (g *Gate) voteProcessConstantArg(value bool) {
	g.eraseArgChecked(constantIndex)
	if value {
		g.voteNumber--
	}
	g.graph.finalizeVoteArity(g)
}

type voteArg struct {
	idx  int
	sign int
	node targetNode
}

// buildThresholdGate materializes a VOTE(k, args) subformula, choosing
// the simplest equivalent form at the boundaries: k <= 0 is vacuously
// TRUE, k exceeding the argument count is unsatisfiably FALSE, a
// singleton argument list degenerates to that literal itself, k equal
// to the argument count is an AND, and k == 1 is an OR. Constants are
// returned as a signed reference to the graph's Constant rather than
// folded immediately; folding remains the job of an explicit
// [Gate.ProcessConstantArg] pass, matching how constant edges are
// treated everywhere else in the editing API.
func (g *Graph) buildThresholdGate(k int, args []voteArg) (targetNode, int) {
	n := len(args)
	switch {
	case k <= 0:
		return g.constant, 1
	case k > n:
		return g.constant, -1
	case n == 1:
		return args[0].node, args[0].sign
	case k == n:
		return g.buildNAryGate(AND, args, 0)
	case k == 1:
		return g.buildNAryGate(OR, args, 0)
	default:
		return g.buildNAryGate(VOTE, args, k)
	}
}

func (g *Graph) buildNAryGate(op Operator, args []voteArg, voteK int) (targetNode, int) {
	gt := g.newGateRaw(op)
	if op == VOTE {
		gt.voteNumber = voteK
	}
	for _, a := range args {
		if gt.state != Normal {
			break
		}
		gt.AddArg(a.sign*a.idx, a.node)
	}
	return collapseGateRef(gt)
}

// collapseGateRef reports a freshly built gate as a signed node
// reference, resolving to the graph constant if the gate has already
// degenerated to a non-normal state.
func collapseGateRef(gt *Gate) (targetNode, int) {
	switch gt.state {
	case UnityState:
		return gt.graph.constant, 1
	case NullState:
		return gt.graph.constant, -1
	default:
		return gt, 1
	}
}
