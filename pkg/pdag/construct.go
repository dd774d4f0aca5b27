package pdag

import "github.com/openpra/pdag/pkg/pdagerr"

// SourceFormula is the identity shared by every node of the symbolic
// fault-tree model that [Build] consumes. Key must return a stable
// value usable as a memoisation key (e.g. a pointer, or a name string
// unique within the source model) so that two references to the same
// symbolic gate or basic event resolve to the same PDAG node.
//
// Concrete source nodes implement exactly one of [SourceGate],
// [SourceBasicEvent], or [SourceHouseEvent]; Build discriminates with a
// type switch rather than a runtime kind tag, the idiomatic-Go
// replacement for the dynamic dispatch spec §9 calls out.
type SourceFormula interface {
	Key() any
}

// SourceArg is one signed argument of a [SourceGate].
type SourceArg struct {
	Negated bool
	Node    SourceFormula
}

// SourceGate is an internal node of the symbolic model.
type SourceGate interface {
	SourceFormula
	Operator() Operator
	VoteNumber() int // meaningful only when Operator() == VOTE
	Args() []SourceArg
}

// SourceBasicEvent is a leaf random Boolean of the symbolic model.
type SourceBasicEvent interface {
	SourceFormula
	Probability() float64
}

// SourceHouseEvent is a leaf deterministic Boolean of the symbolic
// model.
type SourceHouseEvent interface {
	SourceFormula
	Value() bool
}

// CCFSubstitutableBasicEvent is implemented by a SourceBasicEvent that
// participates in a common-cause-failure group. When CCF incorporation
// is requested, Build recurses into CCFSubstitute instead of minting a
// plain variable for the event, per spec §4.3 step 1.
type CCFSubstitutableBasicEvent interface {
	SourceBasicEvent
	CCFSubstitute() (SourceFormula, bool)
}

// BuildOptions configures PDAG construction.
type BuildOptions struct {
	// IncorporateCCF substitutes CCF-group basic events with their CCF
	// gate (and fresh variables for its CCF children) per spec §4.3.
	IncorporateCCF bool
}

type buildState struct {
	graph    *Graph
	opts     BuildOptions
	gateMemo map[any]*Gate
	varMemo  map[any]*Variable
}

// Build traverses a symbolic fault-tree model rooted at root and
// returns the corresponding PDAG, or a *pdagerr.Error with
// [pdagerr.ErrCodeValidation] if the model is malformed or cyclic
// (spec §7's construction-error category; the caller discards the
// partially-built graph on error).
//
// Variable indices are assigned densely starting at index 2 in the
// order basic events are first encountered; a symbolic gate referenced
// by more than one parent is materialised once and shared, matching
// the memoisation contract of spec §4.3 step 2. House events fold in
// immediately as signed references to the graph Constant. Auto
// registration of the null_gates/const_gates worklists is enabled only
// after the full traversal completes.
func Build(root SourceGate, opts BuildOptions) (*Graph, error) {
	g := NewGraph()
	st := &buildState{
		graph:    g,
		opts:     opts,
		gateMemo: make(map[any]*Gate),
		varMemo:  make(map[any]*Variable),
	}

	rootNode, rootSign, err := st.convert(root, make(map[any]bool))
	if err != nil {
		return nil, err
	}

	rootGate, ok := rootNode.(*Gate)
	if !ok {
		wrapper := g.newGateRaw(NULL)
		wrapper.AddArg(rootSign*rootNode.Index(), rootNode)
		rootGate, rootSign = wrapper, 1
	}
	g.SetRoot(rootGate)
	g.SetComplement(rootSign < 0)
	g.EnableAutoRegister()
	g.RescanWorklists()
	g.recomputeFlags()
	return g, nil
}

// convert recursively materialises one symbolic-model node. A
// precondition panic raised by the Gate editing API while wiring a
// malformed source gate (wrong arity for NOT/NULL/XOR, a self-
// referencing argument, an out-of-range vote number) is reclassified
// here from a programmer-error LogicError into the ValidationError
// construction errors of spec §7: at this boundary the panic means the
// *source model* is bad, not that this package's own caller misused
// the Gate API.
func (st *buildState) convert(f SourceFormula, visiting map[any]bool) (node targetNode, sign int, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*pdagerr.Error)
			if !ok || perr.Code != pdagerr.ErrCodeLogic {
				panic(r)
			}
			node, sign = nil, 0
			err = pdagerr.Wrap(pdagerr.ErrCodeValidation, perr, "malformed source model node (key %v)", f.Key())
		}
	}()
	switch src := f.(type) {
	case SourceHouseEvent:
		if src.Value() {
			return st.graph.constant, 1, nil
		}
		return st.graph.constant, -1, nil

	case SourceBasicEvent:
		if st.opts.IncorporateCCF {
			if cs, ok := f.(CCFSubstitutableBasicEvent); ok {
				if sub, has := cs.CCFSubstitute(); has {
					return st.convert(sub, visiting)
				}
			}
		}
		key := src.Key()
		if v, ok := st.varMemo[key]; ok {
			return v, 1, nil
		}
		v := st.graph.NewVariable()
		st.graph.BindBasicEvent(v, src)
		st.varMemo[key] = v
		return v, 1, nil

	case SourceGate:
		key := src.Key()
		if visiting[key] {
			return nil, 0, pdagerr.New(pdagerr.ErrCodeValidation, "cyclic gate reference at key %v", key)
		}
		if gt, ok := st.gateMemo[key]; ok {
			return gt, 1, nil
		}
		visiting[key] = true
		defer delete(visiting, key)

		gt := st.graph.newGateRaw(src.Operator())
		st.gateMemo[key] = gt
		if src.Operator() == VOTE {
			gt.SetVoteNumber(src.VoteNumber())
		}
		for _, a := range src.Args() {
			if gt.state != Normal {
				break
			}
			childNode, childSign, err := st.convert(a.Node, visiting)
			if err != nil {
				return nil, 0, err
			}
			sign := childSign
			if a.Negated {
				sign = -sign
			}
			gt.AddArg(sign*childNode.Index(), childNode)
		}
		if gt.state == Normal && gt.Operator == VOTE {
			st.graph.finalizeVoteArity(gt)
		}
		return gt, 1, nil

	default:
		return nil, 0, pdagerr.New(pdagerr.ErrCodeValidation, "unrecognized source formula kind for key %v", f.Key())
	}
}

// recomputeFlags derives the graph-wide coherent/normal flags from the
// gates actually built. normal holds only while every reachable gate's
// operator is AND, OR, or NULL (original_source/src/pdag.h: "normal"
// means a graph containing only OR and AND gates).
func (g *Graph) recomputeFlags() {
	coherent := !g.complement
	normal := true
	for _, gt := range g.Gates() {
		if coherent && !gt.coherent {
			coherent = false
		}
		switch gt.Operator {
		case AND, OR, NULL:
		default:
			normal = false
		}
	}
	g.SetCoherent(coherent)
	g.SetNormal(normal)
}
