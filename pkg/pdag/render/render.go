// Package render draws a [pdag.Graph] as a Graphviz fault-tree diagram:
// gates shaped by operator (the conventional fault-tree symbol set),
// variables as ovals, the Constant as a filled box, and negated edges
// dashed — the PDAG analogue of [dalzilio-rudd]'s BDD dot emission,
// generalized from a single low/high pair per node to a gate's full
// signed argument set.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/google/uuid"

	"github.com/openpra/pdag/pkg/pdag"
	"github.com/openpra/pdag/pkg/render"
)

// Options configures fault-tree diagram rendering.
type Options struct {
	// Detailed annotates each gate node with its argument list, not
	// just its name and operator.
	Detailed bool

	// LeaveMarksDirty skips the [pdag.Graph.ClearNodeVisits] call ToDOT
	// otherwise makes before returning. The traversal marks ToDOT uses
	// are the same visit-triple scratch space other algorithms share;
	// callers that know no prior pass left marks they still need can
	// skip the reset to avoid walking the graph twice.
	LeaveMarksDirty bool
}

// shape returns the Graphviz node shape conventionally used for a given
// operator in a fault-tree diagram.
func shape(op pdag.Operator) string {
	switch op {
	case pdag.OR, pdag.NOR:
		return "invtriangle"
	case pdag.AND, pdag.NAND:
		return "box"
	case pdag.VOTE:
		return "hexagon"
	case pdag.XOR:
		return "diamond"
	case pdag.NOT, pdag.NULL:
		return "triangle"
	default:
		return "box"
	}
}

// ToDOT converts a graph to Graphviz DOT format. The returned string can
// be rendered with [RenderSVG], [RenderPDF], or [RenderPNG].
//
// ToDOT drives its traversal with node Visit timestamps and
// clears them via [pdag.Graph.ClearNodeVisits] before returning, unless
// opts.LeaveMarksDirty is set.
func ToDOT(g *pdag.Graph, opts Options) string {
	root := g.Root()
	if root == nil {
		return "digraph G {\n}\n"
	}
	if !opts.LeaveMarksDirty {
		defer g.ClearNodeVisits()
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n\n")

	t := 1
	markVisited(root, &t)
	writeGateNode(&buf, root, opts)
	writeGateChildren(&buf, g, root, opts, &t)

	buf.WriteString("}\n")
	return buf.String()
}

// visitor is the subset of a [pdag.Gate]/[pdag.Variable]/[pdag.Constant]'s
// promoted visit-triple methods ToDOT needs to dedupe its descent without
// a second, parallel visited set.
type visitor interface {
	Visited() bool
	Visit(t int) bool
}

// markVisited reports whether n was already visited in this traversal,
// then registers the current visit time, matching the enter-time
// bookkeeping [pdag.Graph.ClearNodeVisits] resets afterwards.
func markVisited(n visitor, t *int) bool {
	already := n.Visited()
	n.Visit(*t)
	*t++
	return already
}

func writeGateChildren(buf *bytes.Buffer, g *pdag.Graph, gt *pdag.Gate, opts Options, t *int) {
	for _, signed := range gt.Args() {
		idx := signed
		if idx < 0 {
			idx = -idx
		}
		n, ok := gt.GetArg(idx)
		if !ok {
			continue
		}
		style := "solid"
		if signed < 0 {
			style = "dashed"
		}
		fmt.Fprintf(buf, "  %q -> %q [style=%s];\n", nodeID(gt), nodeID2(idx, n), style)

		switch child := n.(type) {
		case *pdag.Gate:
			if !markVisited(child, t) {
				writeGateNode(buf, child, opts)
				writeGateChildren(buf, g, child, opts, t)
			}
		case *pdag.Variable:
			if !markVisited(child, t) {
				writeVariableNode(buf, child)
			}
		case *pdag.Constant:
			if !markVisited(child, t) {
				writeConstantNode(buf)
			}
		}
	}
}

func writeGateNode(buf *bytes.Buffer, gt *pdag.Gate, opts Options) {
	label := gateLabel(gt, opts)
	fmt.Fprintf(buf, "  %q [shape=%s, label=%q];\n", nodeID(gt), shape(gt.Operator), label)
}

func gateLabel(gt *pdag.Gate, opts Options) string {
	name := fmt.Sprintf("G%d\\n%s", gt.Index(), gt.Operator)
	if gt.Operator == pdag.VOTE {
		name = fmt.Sprintf("G%d\\natleast(%d)", gt.Index(), gt.VoteNumber())
	}
	if !opts.Detailed {
		return name
	}
	return name + "\\n" + strings.ReplaceAll(equationOnly(gt), "\n", "\\n")
}

// equationOnly renders one gate's signed argument list for the detailed
// node label.
func equationOnly(gt *pdag.Gate) string {
	args := gt.Args()
	parts := make([]string, len(args))
	for i, a := range args {
		sign := ""
		if a < 0 {
			sign = "~"
		}
		idx := a
		if idx < 0 {
			idx = -idx
		}
		parts[i] = fmt.Sprintf("%s%d", sign, idx)
	}
	return strings.Join(parts, ", ")
}

func writeVariableNode(buf *bytes.Buffer, v *pdag.Variable) {
	fmt.Fprintf(buf, "  %q [shape=oval, label=%q];\n", nodeID2(v.Index(), v), fmt.Sprintf("V%d", v.Index()))
}

func writeConstantNode(buf *bytes.Buffer) {
	fmt.Fprintln(buf, `  "C1" [shape=box, style=filled, fillcolor=lightgrey, label="TRUE"];`)
}

func nodeID(gt *pdag.Gate) string { return nodeID2(gt.Index(), gt) }

func nodeID2(idx int, n any) string {
	switch n.(type) {
	case *pdag.Variable:
		return "V" + strconv.Itoa(idx)
	case *pdag.Constant:
		return "C1"
	default:
		return "G" + strconv.Itoa(idx)
	}
}

// RunID returns a fresh identifier suitable for tagging one render
// invocation, e.g. in a log line or an output filename, so repeated
// renders of the same graph across a debugging session stay
// distinguishable without embedding any graph state in the name.
func RunID() string { return uuid.NewString() }

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
