// Package print renders a [pdag.Graph] as a flat list of human-readable
// gate equations, the PDAG analogue of an Aralia-format dump: one line
// per gate, each argument spelled as a signed, prefixed name so the
// whole graph can be read top to bottom without a separate legend.
//
// This is a diagnostic aid, not a serialization format: there is no
// corresponding parser, and nothing here is meant to round-trip. The
// "persistence of the PDAG" non-goal applies to this package too — the
// text Print produces is for a human or a test assertion, never for
// reconstructing a graph.
package print

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/openpra/pdag/pkg/pdag"
)

// Graph prints every gate reachable from root, one equation per line, in
// post-order (a gate's children are named before the gate itself is),
// followed by a trailing comment line naming the root and whether the
// graph as a whole is complemented.
//
// Graph calls [pdag.Graph.AssignOrder] to obtain the post-order, and
// clears it again with [pdag.Graph.ClearNodeOrders] before returning —
// unlike [pdag.Graph.Gates] and [pdag.Graph.Variables], which are safe
// to call at any time, AssignOrder's node-order field is shared mutable
// scratch space, so Graph owns its own clean-up rather than leaving
// that to the caller.
func Graph(g *pdag.Graph) string {
	root := g.Root()
	if root == nil {
		return ""
	}

	g.AssignOrder()
	defer g.ClearNodeOrders()

	gates := g.Gates()
	sort.Slice(gates, func(i, j int) bool { return gates[i].Order() < gates[j].Order() })

	var buf strings.Builder
	tw := tabwriter.NewWriter(&buf, 0, 4, 1, ' ', 0)
	for _, gt := range gates {
		fmt.Fprintf(tw, "%s\t:=\t%s\n", gateName(gt), equation(g, gt))
	}
	tw.Flush()

	sign := "+"
	if g.Complement() {
		sign = "-"
	}
	fmt.Fprintf(&buf, "# root: %s%s\n", sign, gateName(root))
	return buf.String()
}

// equation renders one gate's right-hand side as an operator applied to
// its signed argument names, e.g. "and(V2, ~V3)" or "atleast(2, [V2, V3, G5])".
func equation(g *pdag.Graph, gt *pdag.Gate) string {
	args := gt.Args()
	names := make([]string, len(args))
	for i, signed := range args {
		names[i] = literalName(g, signed)
	}
	if gt.Operator == pdag.VOTE {
		return fmt.Sprintf("atleast(%d, [%s])", gt.VoteNumber(), strings.Join(names, ", "))
	}
	return fmt.Sprintf("%s(%s)", gt.Operator, strings.Join(names, ", "))
}

// literalName resolves a signed absolute index into a prefixed display
// name without walking the node itself: the constant is always index 1,
// variables are dense in [2, 2+VariableCount), and every other index is
// a gate. This mirrors the index-space contract spec §2 documents on
// [pdag.Graph] rather than depending on any unexported field.
func literalName(g *pdag.Graph, signed int) string {
	idx, neg := signed, signed < 0
	if neg {
		idx = -idx
	}
	if idx == 1 {
		if neg {
			return "False"
		}
		return "True"
	}
	name := fmt.Sprintf("G%d", idx)
	if idx >= 2 && idx < 2+g.VariableCount() {
		name = fmt.Sprintf("V%d", idx)
	}
	if neg {
		return "~" + name
	}
	return name
}

func gateName(gt *pdag.Gate) string { return fmt.Sprintf("G%d", gt.Index()) }
