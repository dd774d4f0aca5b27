package render

import (
	"strings"
	"testing"

	"github.com/openpra/pdag/pkg/pdag"
)

func buildSmallGraph() *pdag.Graph {
	g := pdag.NewGraph()
	v1, v2 := g.NewVariable(), g.NewVariable()
	or := g.NewGate(pdag.OR)
	or.AddArg(v1.Index(), v1)
	or.AddArg(-v2.Index(), v2)
	g.SetRoot(or)
	return g
}

func TestToDOTShapesGatesByOperator(t *testing.T) {
	g := buildSmallGraph()
	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, "shape=invtriangle") {
		t.Fatalf("expected an OR gate rendered as invtriangle, got:\n%s", dot)
	}
	if !strings.Contains(dot, "shape=oval") {
		t.Fatalf("expected variable nodes rendered as ovals, got:\n%s", dot)
	}
}

func TestToDOTMarksNegatedEdgesDashed(t *testing.T) {
	g := buildSmallGraph()
	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, "style=dashed") {
		t.Fatalf("expected the negated edge to be dashed, got:\n%s", dot)
	}
	if !strings.Contains(dot, "style=solid") {
		t.Fatalf("expected the positive edge to be solid, got:\n%s", dot)
	}
}

func TestToDOTEmptyWithoutRoot(t *testing.T) {
	g := pdag.NewGraph()
	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, "digraph G {") {
		t.Fatalf("expected a valid empty digraph, got:\n%s", dot)
	}
}

func TestToDOTClearsVisitsUnlessLeftDirty(t *testing.T) {
	g := buildSmallGraph()
	root := g.Root()

	root.Visit(1)
	ToDOT(g, Options{})
	if root.Visited() {
		t.Fatalf("expected ToDOT to clear pre-existing visit marks by default")
	}

	root.Visit(1)
	ToDOT(g, Options{LeaveMarksDirty: true})
	if !root.Visited() {
		t.Fatalf("expected LeaveMarksDirty to preserve pre-existing visit marks")
	}
}

func TestRunIDIsUnique(t *testing.T) {
	a, b := RunID(), RunID()
	if a == b {
		t.Fatalf("expected two RunID calls to differ, got %q twice", a)
	}
}
