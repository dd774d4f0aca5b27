package print

import (
	"strings"
	"testing"

	"github.com/openpra/pdag/pkg/pdag"
)

func TestGraphPrintsEachGateOnce(t *testing.T) {
	g := pdag.NewGraph()
	v1, v2, v3 := g.NewVariable(), g.NewVariable(), g.NewVariable()

	or := g.NewGate(pdag.OR)
	or.AddArg(v1.Index(), v1)
	or.AddArg(v2.Index(), v2)

	root := g.NewGate(pdag.AND)
	root.AddArg(or.Index(), or)
	root.AddArg(v3.Index(), v3)
	g.SetRoot(root)

	out := Graph(g)

	if strings.Count(out, ":=") != 2 {
		t.Fatalf("expected exactly 2 gate equations, got:\n%s", out)
	}
	if !strings.Contains(out, "or(V2, V3)") {
		t.Fatalf("expected the OR gate's equation to name both variables, got:\n%s", out)
	}
	if !strings.Contains(out, "# root: +G") {
		t.Fatalf("expected an uncomplemented root comment, got:\n%s", out)
	}
}

func TestGraphMarksNegatedArgs(t *testing.T) {
	g := pdag.NewGraph()
	v1, v2 := g.NewVariable(), g.NewVariable()
	root := g.NewGate(pdag.AND)
	root.AddArg(v1.Index(), v1)
	root.AddArg(-v2.Index(), v2)
	g.SetRoot(root)

	out := Graph(g)
	if !strings.Contains(out, "~V") {
		t.Fatalf("expected a negated variable reference, got:\n%s", out)
	}
}

func TestGraphVoteEquation(t *testing.T) {
	g := pdag.NewGraph()
	vars := make([]*pdag.Variable, 3)
	for i := range vars {
		vars[i] = g.NewVariable()
	}
	root := g.NewGate(pdag.VOTE)
	root.SetVoteNumber(2)
	for _, v := range vars {
		root.AddArg(v.Index(), v)
	}
	g.SetRoot(root)

	out := Graph(g)
	if !strings.Contains(out, "atleast(2, [") {
		t.Fatalf("expected an atleast(2, [...]) equation, got:\n%s", out)
	}
}

func TestGraphClearsNodeOrdersAfterPrinting(t *testing.T) {
	g := pdag.NewGraph()
	v1 := g.NewVariable()
	root := g.NewGate(pdag.NULL)
	root.AddArg(v1.Index(), v1)
	g.SetRoot(root)

	Graph(g)
	if root.Order() != 0 {
		t.Fatalf("expected Graph to clear node orders after printing, got %d", root.Order())
	}
}

func TestGraphEmptyWithoutRoot(t *testing.T) {
	g := pdag.NewGraph()
	if out := Graph(g); out != "" {
		t.Fatalf("expected empty output for a rootless graph, got %q", out)
	}
}
