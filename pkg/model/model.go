// Package model implements one concrete, intentionally minimal
// adapter from a plain-text symbolic fault-tree format to the
// [pdag.SourceGate]/[pdag.SourceBasicEvent]/[pdag.SourceHouseEvent]/
// [pdag.CCFSubstitutableBasicEvent] interfaces [pdag.Build] consumes.
//
// The format is a small s-expression dialect, chosen because no
// production model format survives the exercise's non-goals (there is
// no input-format parity requirement) and none of the reference
// repositories carry a Boolean-formula text format to imitate — this
// package exists only to exercise the construction adapter boundary
// end to end, not to be a faithful rendition of any real fault-tree
// interchange format.
//
//	(event P1 0.01)
//	(house H1 true)
//	(ccf-group G1 P1 P2)
//	(gate OR1 (or P1 P2))
//	(gate ROOT (and OR1 (not H1)))
//	(root ROOT)
package model

import (
	"fmt"

	"github.com/openpra/pdag/pkg/pdag"
	"github.com/openpra/pdag/pkg/pdagerr"
)

// Model is a parsed symbolic fault-tree text document.
type Model struct {
	events  map[string]*basicEvent
	houses  map[string]*houseEvent
	gates   map[string]*gate
	groups  map[string]*ccfGroup
	rootRef string
}

// Root returns the model's root gate as a [pdag.SourceGate], ready to
// pass to [pdag.Build].
func (m *Model) Root() (pdag.SourceGate, error) {
	if m.rootRef == "" {
		return nil, pdagerr.New(pdagerr.ErrCodeValidation, "model declares no (root ...) form")
	}
	g, ok := m.gates[m.rootRef]
	if !ok {
		return nil, pdagerr.New(pdagerr.ErrCodeValidation, "root references undefined gate %q", m.rootRef)
	}
	return g, nil
}

// basicEvent is a leaf random Boolean, [pdag.SourceBasicEvent] (and
// [pdag.CCFSubstitutableBasicEvent] when it belongs to a CCF group).
type basicEvent struct {
	name  string
	prob  float64
	group *ccfGroup // nil unless this event belongs to a CCF group
}

func (e *basicEvent) Key() any            { return "event:" + e.name }
func (e *basicEvent) Probability() float64 { return e.prob }

// CCFSubstitute implements [pdag.CCFSubstitutableBasicEvent]. A member's
// failure is modeled as the union of an independent failure mode unique
// to that member and a shared common-cause mode shared by the whole
// group — the minimal formula that demonstrates the memoized sharing
// [pdag.Build] performs across a CCF group's members (spec §4.3 step 1).
func (e *basicEvent) CCFSubstitute() (pdag.SourceFormula, bool) {
	if e.group == nil {
		return nil, false
	}
	independent := &basicEvent{name: e.name + "-IND", prob: e.prob}
	return &gate{
		name: e.name + "-CCF-SUB",
		op:   pdag.OR,
		args: []pdag.SourceArg{{Node: independent}, {Node: e.group.shared}},
	}, true
}

// houseEvent is a leaf deterministic Boolean, [pdag.SourceHouseEvent].
type houseEvent struct {
	name  string
	value bool
}

func (h *houseEvent) Key() any    { return "house:" + h.name }
func (h *houseEvent) Value() bool { return h.value }

// ccfGroup is a named common-cause-failure group: its members all
// substitute in the same shared basic event when CCF incorporation is
// requested.
type ccfGroup struct {
	name    string
	members []string
	shared  *basicEvent
}

// gate is an internal node, [pdag.SourceGate].
type gate struct {
	name string
	op   pdag.Operator
	vote int
	args []pdag.SourceArg
}

func (g *gate) Key() any                { return "gate:" + g.name }
func (g *gate) Operator() pdag.Operator { return g.op }
func (g *gate) VoteNumber() int         { return g.vote }
func (g *gate) Args() []pdag.SourceArg  { return g.args }

// resolve looks up a previously declared name as a [pdag.SourceFormula].
func (m *Model) resolve(name string) (pdag.SourceFormula, error) {
	if g, ok := m.gates[name]; ok {
		return g, nil
	}
	if e, ok := m.events[name]; ok {
		return e, nil
	}
	if h, ok := m.houses[name]; ok {
		return h, nil
	}
	return nil, pdagerr.New(pdagerr.ErrCodeValidation, "undefined reference %q", name)
}

var _ fmt.Stringer = (*gate)(nil)

func (g *gate) String() string { return fmt.Sprintf("gate %s(%s)", g.name, g.op) }
