package pdag

// SpliceConstGate rewires every parent edge pointing at a collapsed
// gate (state UnityState or NullState) to reference the graph Constant
// directly instead, combining the parent edge's existing sign with the
// collapsed truth value, then dequeues the gate. This is the splicing
// operation spec §4.2.6 alludes to ("pushed onto const_gates so an
// outer preprocessing pass can splice it out") but does not name; it
// is the const_gates analogue of [Gate.JoinNullGate].
func (g *Graph) SpliceConstGate(gate *Gate) {
	preconditionf(gate.state != Normal, "gate %d: SpliceConstGate called on a Normal gate", gate.Index())
	value := gate.state == UnityState
	for _, parent := range gate.Parents() {
		sign, ok := parent.GetArgSign(gate.Index())
		if !ok {
			continue
		}
		parent.eraseArgChecked(gate.Index())
		if parent.state != Normal {
			continue
		}
		finalSign := sign
		if !value {
			finalSign = -finalSign
		}
		parent.AddArg(finalSign*constantIndex, g.constant)
	}
	g.DequeueConstGate(gate.Index())
}

// SweepConstants drains the const_gates worklist, splicing every
// collapsed gate it finds out of the graph.
func (g *Graph) SweepConstants() {
	for _, gate := range g.ConstGates() {
		if gate.state == Normal {
			g.DequeueConstGate(gate.Index())
			continue
		}
		g.SpliceConstGate(gate)
	}
}

// SweepNullGates drains the null_gates worklist, splicing every
// single-argument NULL pass-through gate it finds out of the graph by
// calling [Gate.JoinNullGate] on each of its parents. A single-argument
// AND or OR is such a pass-through too; its operator is rewritten to
// NULL before it is joined.
func (g *Graph) SweepNullGates() {
	for _, gate := range g.NullGates() {
		passThrough := gate.Operator == NULL || gate.Operator == AND || gate.Operator == OR
		if gate.state != Normal || !passThrough || gate.args.len() != 1 {
			g.DequeueNullGate(gate.Index())
			continue
		}
		gate.Operator = NULL
		for _, parent := range gate.Parents() {
			sign, ok := parent.GetArgSign(gate.Index())
			if !ok {
				continue
			}
			parent.JoinNullGate(sign * gate.Index())
		}
		g.DequeueNullGate(gate.Index())
	}
}

// RescanWorklists walks every reachable gate and queues any that have
// degenerated without being caught by the incremental registration
// hooks - in particular gates collapsed while auto-registration was
// still disabled during [Build]. Safe to call at any time; already
// queued gates are not duplicated.
func (g *Graph) RescanWorklists() {
	wasAuto := g.autoRegister
	g.autoRegister = true
	for _, gate := range g.Gates() {
		if gate.state != Normal {
			g.registerConst(gate)
			continue
		}
		if gate.args.len() == 1 && (gate.Operator == AND || gate.Operator == OR || gate.Operator == NULL) {
			g.registerNull(gate)
		}
	}
	g.autoRegister = wasAuto
}

// SweepConstantArgs folds every literal Constant edge still present on
// a reachable Normal gate by calling [Gate.ProcessConstantArg] on it.
// AddArg never folds a constant edge on its own (spec §4.2.6 treats
// folding as a distinct, explicitly-invoked operation), so a gate built
// or edited with a literal TRUE/FALSE argument sits with that edge
// intact until a sweep like this one runs.
func (g *Graph) SweepConstantArgs() {
	for _, gate := range g.Gates() {
		if gate.state != Normal {
			continue
		}
		if sign, ok := gate.args.get(constantIndex); ok {
			gate.ProcessConstantArg(sign * constantIndex)
		}
	}
}

func (g *Graph) hasConstantArgs() bool {
	for _, gate := range g.Gates() {
		if gate.state == Normal && gate.args.has(constantIndex) {
			return true
		}
	}
	return false
}

// Preprocess runs the worklists to a fixed point: fold literal constant
// edges, splice out NULL pass-throughs and collapsed constants, rescan
// for anything missed, and repeat until nothing changes. Any one of
// these can expose a duplicate or complement collision in a parent
// that collapses the parent in turn, so this must iterate rather than
// assume one pass suffices.
func (g *Graph) Preprocess() {
	g.RescanWorklists()
	for g.nullGates.len() > 0 || g.constGates.len() > 0 || g.hasConstantArgs() {
		g.SweepConstantArgs()
		g.SweepNullGates()
		g.SweepConstants()
		g.RescanWorklists()
		if root := g.Root(); root != nil {
			// The root has no parent edge to splice into, so a collapsed
			// or single-argument root stays as it is.
			g.DequeueNullGate(root.Index())
			g.DequeueConstGate(root.Index())
		}
	}
}
