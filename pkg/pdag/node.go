package pdag

// targetNode is implemented by every node kind that can sit on the
// receiving end of a gate's signed argument edge: [Constant], [Variable],
// and [Gate]. It exposes the node identity and parent-back-reference
// layer (spec §4.1) plus the traversal-mark lifecycle (spec §3's
// "Traversal marks"). Gate overrides MinTime/MaxTime with its own
// explicit subgraph-time fields; Constant and Variable fall back to the
// base node's visit-derived defaults.
type targetNode interface {
	Index() int
	Parents() []*Gate
	hasParent(index int) bool
	addParent(g *Gate)
	eraseParent(index int)

	Order() int
	SetOrder(v int)
	Visit(t int) bool
	ClearVisits()
	EnterTime() int
	ExitTime() int
	LastVisit() int
	MinTime() int
	MaxTime() int
	OptiValue() int
	SetOptiValue(v int)
	PosCount() int
	NegCount() int
	AddCount(positive bool)
	ResetCount()
}

// node is the identity and parent-back-reference layer shared by every
// node kind. Parents are held non-owning (weak): a node never keeps its
// own parents alive. The parent map preserves insertion order with
// O(1) amortized insert/erase via swap-and-pop (spec §4.1).
type node struct {
	index   int
	parents *orderedMap[*Gate]

	order      int
	visits     [3]int
	optiValue  int
	posCount   int
	negCount   int
}

func newNode(index int) node {
	return node{index: index, parents: newOrderedMap[*Gate]()}
}

// Index returns the node's graph-unique positive identifier, immutable
// after creation.
func (n *node) Index() int { return n.index }

// Parents returns the node's parent gates in insertion order. The
// returned slice is a snapshot; mutating the node afterwards does not
// affect it.
func (n *node) Parents() []*Gate {
	out := make([]*Gate, 0, n.parents.len())
	n.parents.each(func(_ int, g *Gate) { out = append(out, g) })
	return out
}

func (n *node) hasParent(index int) bool { return n.parents.has(index) }

// addParent registers g as a parent. Precondition: g.Index() must not
// already be present.
func (n *node) addParent(g *Gate) {
	preconditionf(!n.parents.has(g.Index()), "node %d: parent %d already registered", n.index, g.Index())
	n.parents.set(g.Index(), g)
}

// eraseParent removes the parent with the given index. Precondition:
// the index must be present.
func (n *node) eraseParent(index int) {
	ok := n.parents.erase(index)
	preconditionf(ok, "node %d: no parent with index %d", n.index, index)
}

// Order returns the node's assigned topological order, or 0 if unset.
func (n *node) Order() int { return n.order }

// SetOrder assigns a topological order; interpreted by the assigner.
func (n *node) SetOrder(v int) { n.order = v }

// Visit registers the current traversal time, filling the first empty
// slot of the enter/exit/last-re-enter triple. It returns true only on
// the third visit, matching spec §3's "fills the first empty slot and
// returns true only on the third visit".
func (n *node) Visit(t int) bool {
	preconditionf(t > 0, "node %d: visit time must be positive, got %d", n.index, t)
	switch {
	case n.visits[0] == 0:
		n.visits[0] = t
	case n.visits[1] == 0:
		n.visits[1] = t
	default:
		n.visits[2] = t
		return true
	}
	return false
}

// ClearVisits resets all visit times to zero.
func (n *node) ClearVisits() { n.visits = [3]int{} }

// EnterTime returns the time this node was first encountered, or 0.
func (n *node) EnterTime() int { return n.visits[0] }

// ExitTime returns the exit time of this node upon traversal, or 0.
func (n *node) ExitTime() int { return n.visits[1] }

// LastVisit returns the last registered visit time, falling back to
// ExitTime when the node was not revisited.
func (n *node) LastVisit() int {
	if n.visits[2] != 0 {
		return n.visits[2]
	}
	return n.visits[1]
}

// Revisited reports whether this node was visited more than twice.
func (n *node) Revisited() bool { return n.visits[2] != 0 }

// Visited reports whether this node was visited at least once.
func (n *node) Visited() bool { return n.visits[0] != 0 }

// MinTime defaults to EnterTime; Gate overrides this with an explicit
// subgraph time when one has been assigned.
func (n *node) MinTime() int { return n.visits[0] }

// MaxTime defaults to LastVisit; Gate overrides this with an explicit
// subgraph time when one has been assigned.
func (n *node) MaxTime() int { return n.LastVisit() }

// OptiValue returns the failure-propagation optimization scratch value.
func (n *node) OptiValue() int { return n.optiValue }

// SetOptiValue sets the failure-propagation optimization scratch value.
func (n *node) SetOptiValue(v int) { n.optiValue = v }

// PosCount returns the number of times this node was counted positive.
func (n *node) PosCount() int { return n.posCount }

// NegCount returns the number of times this node was counted negative.
func (n *node) NegCount() int { return n.negCount }

// AddCount increments the positive or negative occurrence count.
func (n *node) AddCount(positive bool) {
	if positive {
		n.posCount++
	} else {
		n.negCount++
	}
}

// ResetCount zeroes both occurrence counts.
func (n *node) ResetCount() {
	n.posCount = 0
	n.negCount = 0
}
