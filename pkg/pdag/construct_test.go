package pdag

import "testing"

// srcEvent and srcGate are minimal SourceFormula implementations used
// only to exercise Build; production adapters live outside this
// package (see pkg/model).
type srcEvent struct {
	name string
	prob float64
}

func (e *srcEvent) Key() any            { return e.name }
func (e *srcEvent) Probability() float64 { return e.prob }

type srcGate struct {
	name string
	op   Operator
	vote int
	args []SourceArg
}

func (g *srcGate) Key() any         { return g.name }
func (g *srcGate) Operator() Operator { return g.op }
func (g *srcGate) VoteNumber() int  { return g.vote }
func (g *srcGate) Args() []SourceArg { return g.args }

func lit(f SourceFormula) SourceArg      { return SourceArg{Node: f} }
func negLit(f SourceFormula) SourceArg   { return SourceArg{Node: f, Negated: true} }

func TestBuildTwoTrains(t *testing.T) {
	v1 := &srcEvent{name: "V1", prob: 0.5}
	v2 := &srcEvent{name: "V2", prob: 0.5}
	p1 := &srcEvent{name: "P1", prob: 0.7}
	p2 := &srcEvent{name: "P2", prob: 0.7}

	or1 := &srcGate{name: "OR1", op: OR, args: []SourceArg{lit(v1), lit(p1)}}
	or2 := &srcGate{name: "OR2", op: OR, args: []SourceArg{lit(v2), lit(p2)}}
	root := &srcGate{name: "ROOT", op: AND, args: []SourceArg{lit(or1), lit(or2)}}

	g, err := Build(root, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if g.Root().Operator != AND {
		t.Fatalf("root operator = %v, want AND", g.Root().Operator)
	}
	if g.VariableCount() != 4 {
		t.Fatalf("variable count = %d, want 4", g.VariableCount())
	}
	for _, v := range g.Variables() {
		if v.Index() < variableStartIndex || v.Index() >= variableStartIndex+4 {
			t.Fatalf("variable index %d out of dense range", v.Index())
		}
	}
	if g.Root().Index() < variableStartIndex+4 {
		t.Fatalf("root index %d should be >= %d", g.Root().Index(), variableStartIndex+4)
	}

	g.Preprocess()
	if !g.Normal() {
		t.Fatalf("expected normal() = true after preprocessing")
	}
	if !g.Coherent() {
		t.Fatalf("expected coherent() = true (no negated edges)")
	}
}

func TestBuildSharedGateMemoized(t *testing.T) {
	shared := &srcEvent{name: "SHARED", prob: 0.1}
	g1 := &srcGate{name: "G1", op: OR, args: []SourceArg{lit(shared)}}
	root := &srcGate{name: "ROOT", op: AND, args: []SourceArg{lit(g1), lit(g1)}}

	g, err := Build(root, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// AND(g1, g1) is an idempotent duplicate add: root ends up with a
	// single argument referencing the one memoized g1 gate.
	if g.Root().ArgCount() != 1 {
		t.Fatalf("root args = %v, want exactly 1 (deduplicated)", g.Root().Args())
	}
	// g1 = OR(SHARED) has a single argument as well, so the rescan at the
	// end of Build queues both the root and g1.
	if len(g.NullGates()) != 2 {
		t.Fatalf("expected the single-arg AND root and the single-arg OR g1 to be queued on null_gates, got %v", g.NullGates())
	}
}

func TestBuildCyclicModelRejected(t *testing.T) {
	a := &srcGate{name: "A", op: AND}
	b := &srcGate{name: "B", op: AND, args: []SourceArg{lit(a)}}
	a.args = []SourceArg{lit(b)}

	_, err := Build(a, BuildOptions{})
	if err == nil {
		t.Fatalf("expected a validation error for cyclic gate reference")
	}
}

func TestBuildHouseEventFolds(t *testing.T) {
	trueHouse := houseEvent{name: "H", value: true}
	v := &srcEvent{name: "V", prob: 0.2}
	root := &srcGate{name: "ROOT", op: OR, args: []SourceArg{lit(&trueHouse), lit(v)}}

	g, err := Build(root, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := g.Root().GetArgSign(constantIndex); !ok {
		t.Fatalf("expected root to still carry a literal constant edge before preprocessing")
	}

	g.Preprocess()
	if g.Root().State() != UnityState {
		t.Fatalf("expected OR(TRUE, v) to collapse to UnityState after preprocessing, got %v", g.Root().State())
	}
}

type houseEvent struct {
	name  string
	value bool
}

func (h *houseEvent) Key() any   { return h.name }
func (h *houseEvent) Value() bool { return h.value }

func TestBuildNonNormalOperatorReportsNotNormal(t *testing.T) {
	v1 := &srcEvent{name: "V1", prob: 0.5}
	v2 := &srcEvent{name: "V2", prob: 0.5}
	v3 := &srcEvent{name: "V3", prob: 0.5}

	vote := &srcGate{name: "VOTE", op: VOTE, vote: 2, args: []SourceArg{lit(v1), lit(v2), lit(v3)}}
	root := &srcGate{name: "ROOT", op: AND, args: []SourceArg{lit(vote)}}

	g, err := Build(root, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if g.Normal() {
		t.Fatalf("expected Normal() = false for a graph containing a VOTE gate")
	}

	g.Preprocess()
	if g.Normal() {
		t.Fatalf("expected Normal() = false to persist after preprocessing, since Preprocess never normalizes VOTE into AND/OR")
	}
}
