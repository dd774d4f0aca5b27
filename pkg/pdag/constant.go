package pdag

// Constant is the unique Boolean TRUE node of a graph, always index 1.
// FALSE is never materialized as a node; it is represented as index -1
// on an edge referencing the Constant.
type Constant struct {
	node
}

func newConstant() *Constant {
	c := &Constant{node: newNode(constantIndex)}
	return c
}

var _ targetNode = (*Constant)(nil)
