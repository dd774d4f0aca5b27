// Package pdag implements an indexed Boolean graph (a Propositional
// Directed Acyclic Graph) representing a fault tree, together with the
// local graph-rewriting operations that keep it in canonical form during
// preprocessing for minimal-cut-set and probability analyses.
//
// # Architecture
//
// The graph has three layers, leaves-first:
//
//   - Node identity and parent-back-reference layer ([node]): every node
//     carries a graph-unique positive index and an ordered map of parent
//     gates, referenced weakly.
//   - Typed node layer: [Constant] (the singleton Boolean TRUE, index 1),
//     [Variable] (a Boolean input), and [Gate] (an internal node with an
//     [Operator], a [State], and signed argument indices partitioned into
//     three typed containers by target node kind).
//   - Graph layer ([Graph]): owns the root gate, issues indices, and
//     maintains the null_gates/const_gates worklists of gates that have
//     collapsed during editing.
//
// # Index space
//
// A Graph issues non-zero signed integers. Positive indices identify
// nodes; the opposite-sign integer denotes a node's complement on an
// edge. Index 1 is always the Constant TRUE; -1 is its complement,
// FALSE, which is never materialized as a node. Variables occupy the
// dense range [2, 2+V); every other index belongs to a gate.
//
// # Usage
//
//	g := pdag.NewGraph()
//	v1 := g.NewVariable()
//	v2 := g.NewVariable()
//	root := g.NewGate(pdag.AND)
//	root.AddArg(v1.Index(), v1)
//	root.AddArg(v2.Index(), v2)
//	g.SetRoot(root)
//
// Editing methods on [Gate] preserve the invariants documented on each
// method; degeneration to a non-normal [State] is a normal outcome,
// signaled by the gate landing on [Graph.ConstGates] or
// [Graph.NullGates], not by an error.
package pdag
