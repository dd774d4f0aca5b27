package pdag

// Variable is a plain Boolean leaf, corresponding one-to-one with a
// source basic event. Two Variables exist in a graph iff they represent
// distinct source basic events.
type Variable struct {
	node
}

func newVariable(index int) *Variable {
	return &Variable{node: newNode(index)}
}

var _ targetNode = (*Variable)(nil)
