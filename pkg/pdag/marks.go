package pdag

// reachable enumerates every Gate and Variable reachable from the
// root, each exactly once, in a pre-order descent through gateArgs.
// Unlike the mark-based descents spec §4.4 describes for most
// traversal-reset passes, this enumeration dedupes with a plain
// visited-by-index set rather than [Gate.mark], so it stays correct
// even when a prior algorithm exited leaving mark dirty - in
// particular so [Graph.ClearGateMarks] itself can find every gate
// without depending on the very field it is about to clear.
func (g *Graph) reachable() (gates []*Gate, vars []*Variable) {
	if g.root == nil {
		return nil, nil
	}
	visitedGates := make(map[int]bool)
	visitedVars := make(map[int]bool)
	var walk func(gt *Gate)
	walk = func(gt *Gate) {
		if visitedGates[gt.Index()] {
			return
		}
		visitedGates[gt.Index()] = true
		gates = append(gates, gt)
		gt.variableArgs.each(func(idx int, v *Variable) {
			if !visitedVars[idx] {
				visitedVars[idx] = true
				vars = append(vars, v)
			}
		})
		gt.gateArgs.each(func(_ int, child *Gate) { walk(child) })
	}
	walk(g.root)
	return gates, vars
}

// Gates returns every gate reachable from the root, each exactly once.
func (g *Graph) Gates() []*Gate {
	gates, _ := g.reachable()
	return gates
}

// ClearGateMarks resets every reachable gate's traversal mark to its
// clean polarity (false).
func (g *Graph) ClearGateMarks() {
	for _, gt := range g.Gates() {
		gt.mark = false
	}
}

// ClearNodeVisits resets the enter/exit/last-re-enter visit triple on
// every reachable node, including the Constant.
func (g *Graph) ClearNodeVisits() {
	gates, vars := g.reachable()
	for _, gt := range gates {
		gt.ClearVisits()
	}
	for _, v := range vars {
		v.ClearVisits()
	}
	g.constant.ClearVisits()
}

// ClearOptiValues zeroes the failure-propagation optimization scratch
// value on every reachable node.
func (g *Graph) ClearOptiValues() {
	gates, vars := g.reachable()
	for _, gt := range gates {
		gt.SetOptiValue(0)
	}
	for _, v := range vars {
		v.SetOptiValue(0)
	}
	g.constant.SetOptiValue(0)
}

// ClearNodeCounts zeroes the positive/negative occurrence counters on
// every reachable node.
func (g *Graph) ClearNodeCounts() {
	gates, vars := g.reachable()
	for _, gt := range gates {
		gt.ResetCount()
	}
	for _, v := range vars {
		v.ResetCount()
	}
	g.constant.ResetCount()
}

// ClearDescendantMarks zeroes the descendant integer mark on every
// reachable gate. Descendant marks are gate-only scratch state.
func (g *Graph) ClearDescendantMarks() {
	for _, gt := range g.Gates() {
		gt.descendant = 0
	}
}

// ClearAncestorMarks zeroes the ancestor integer mark on every
// reachable gate.
func (g *Graph) ClearAncestorMarks() {
	for _, gt := range g.Gates() {
		gt.ancestor = 0
	}
}

// ClearNodeOrders resets the assigned topological order on every
// reachable node.
func (g *Graph) ClearNodeOrders() {
	gates, vars := g.reachable()
	for _, gt := range gates {
		gt.SetOrder(0)
	}
	for _, v := range vars {
		v.SetOrder(0)
	}
	g.constant.SetOrder(0)
}

// AssignOrder numbers every reachable node in post-order (children
// before parents), starting at 1. This supplements the core reset
// lifecycle with a usable default ordering for printers and renderers
// that want a deterministic node sequence without implementing their
// own DFS.
func (g *Graph) AssignOrder() {
	if g.root == nil {
		return
	}
	counter := 0
	visited := make(map[int]bool)
	var walk func(gt *Gate)
	walk = func(gt *Gate) {
		if visited[gt.Index()] {
			return
		}
		visited[gt.Index()] = true
		gt.gateArgs.each(func(_ int, child *Gate) { walk(child) })
		gt.variableArgs.each(func(idx int, v *Variable) {
			if !visited[idx] {
				visited[idx] = true
				counter++
				v.SetOrder(counter)
			}
		})
		counter++
		gt.SetOrder(counter)
	}
	walk(g.root)
}
