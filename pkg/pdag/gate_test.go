package pdag

import "testing"

func TestAndComplementCollapse(t *testing.T) {
	g := NewGraph()
	x := g.NewVariable()
	root := g.NewGate(AND)
	root.AddArg(x.Index(), x)
	root.AddArg(-x.Index(), x)

	if root.State() != NullState {
		t.Fatalf("state = %v, want NullState", root.State())
	}
	if root.ArgCount() != 0 {
		t.Fatalf("args = %v, want empty", root.Args())
	}
	if len(x.Parents()) != 0 {
		t.Fatalf("variable still has parents after collapse: %v", x.Parents())
	}
}

func TestXorDuplicateCollapse(t *testing.T) {
	g := NewGraph()
	a := g.NewVariable()
	root := g.NewGate(XOR)
	root.AddArg(a.Index(), a)
	root.AddArg(a.Index(), a)

	if root.State() != NullState {
		t.Fatalf("state = %v, want NullState", root.State())
	}
}

func TestOrIdempotence(t *testing.T) {
	g := NewGraph()
	a := g.NewVariable()
	b := g.NewVariable()
	root := g.NewGate(OR)
	root.AddArg(a.Index(), a)
	root.AddArg(a.Index(), a)
	root.AddArg(b.Index(), b)

	args := root.Args()
	if len(args) != 2 {
		t.Fatalf("args = %v, want 2 entries", args)
	}
	want := map[int]bool{a.Index(): true, b.Index(): true}
	for _, k := range args {
		if !want[k] {
			t.Fatalf("unexpected arg %d", k)
		}
	}
}

func TestJoinNullGate(t *testing.T) {
	g := NewGraph()
	x := g.NewVariable()
	y := g.NewVariable()
	inner := g.NewGate(NULL)
	inner.AddArg(x.Index(), x)

	outer := g.NewGate(AND)
	outer.AddArg(inner.Index(), inner)
	outer.AddArg(y.Index(), y)

	outer.JoinNullGate(inner.Index())

	args := outer.Args()
	if len(args) != 2 {
		t.Fatalf("args = %v, want 2 entries", args)
	}
	if _, ok := outer.GetArg(inner.Index()); ok {
		t.Fatalf("NULL gate %d still referenced after join", inner.Index())
	}
	if len(inner.Parents()) != 0 {
		t.Fatalf("NULL gate still has parents after join")
	}
	if _, ok := outer.GetArg(x.Index()); !ok {
		t.Fatalf("expected x to be spliced in directly")
	}
}

func TestJoinNullGateNegatedEdge(t *testing.T) {
	g := NewGraph()
	x := g.NewVariable()
	inner := g.NewGate(NULL)
	inner.AddArg(-x.Index(), x)

	outer := g.NewGate(OR)
	outer.AddArg(-inner.Index(), inner)

	outer.JoinNullGate(-inner.Index())

	sign, ok := outer.GetArgSign(x.Index())
	if !ok {
		t.Fatalf("expected x present after join")
	}
	if sign != 1 {
		t.Fatalf("sign = %d, want 1 (double negation)", sign)
	}
}

func TestCoalesceGate(t *testing.T) {
	g := NewGraph()
	a := g.NewVariable()
	b := g.NewVariable()
	c := g.NewVariable()

	inner := g.NewGate(OR)
	inner.AddArg(a.Index(), a)
	inner.AddArg(b.Index(), b)

	outer := g.NewGate(OR)
	outer.AddArg(inner.Index(), inner)
	outer.AddArg(c.Index(), c)

	outer.CoalesceGate(inner.Index())

	args := outer.Args()
	if len(args) != 3 {
		t.Fatalf("args = %v, want 3 entries", args)
	}
	for _, idx := range []int{a.Index(), b.Index(), c.Index()} {
		if _, ok := outer.GetArg(idx); !ok {
			t.Fatalf("expected %d present after coalesce", idx)
		}
	}
	if len(inner.Parents()) != 0 {
		t.Fatalf("inner gate still has parents after coalesce")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewGraph()
	a := g.NewVariable()
	b := g.NewVariable()
	orig := g.NewGate(AND)
	orig.AddArg(a.Index(), a)
	orig.AddArg(b.Index(), b)

	clone := orig.Clone()
	if clone.Index() == orig.Index() {
		t.Fatalf("clone shares index with original")
	}
	if len(clone.Args()) != len(orig.Args()) {
		t.Fatalf("clone args = %v, want equal to %v", clone.Args(), orig.Args())
	}
	if len(a.Parents()) != 2 {
		t.Fatalf("shared child should gain clone as a second parent, got %d parents", len(a.Parents()))
	}

	clone.EraseArg(b.Index())
	if _, ok := orig.GetArg(b.Index()); !ok {
		t.Fatalf("mutating clone affected original")
	}
}

func TestAddArgEraseArgRoundTrip(t *testing.T) {
	g := NewGraph()
	a := g.NewVariable()
	b := g.NewVariable()
	gate := g.NewGate(AND)
	gate.AddArg(a.Index(), a)
	gate.AddArg(b.Index(), b)

	before := gate.Args()
	gate.EraseArg(b.Index())
	gate.AddArg(b.Index(), b)
	after := gate.Args()

	if len(before) != len(after) {
		t.Fatalf("round trip changed arg count: %v vs %v", before, after)
	}
	if len(b.Parents()) != 1 {
		t.Fatalf("b has %d parents after round trip, want 1", len(b.Parents()))
	}
}

func TestInvertArgsIdempotentWithoutCollisions(t *testing.T) {
	g := NewGraph()
	a := g.NewVariable()
	b := g.NewVariable()
	gate := g.NewGate(OR)
	gate.AddArg(a.Index(), a)
	gate.AddArg(-b.Index(), b)

	before := gate.Args()
	gate.InvertArgs()
	gate.InvertArgs()
	after := gate.Args()

	if len(before) != len(after) {
		t.Fatalf("InvertArgs twice changed arg count")
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("InvertArgs twice not identity: %v vs %v", before, after)
		}
	}
}
