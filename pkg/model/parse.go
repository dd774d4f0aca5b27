package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/openpra/pdag/pkg/pdag"
	"github.com/openpra/pdag/pkg/pdagerr"
)

// sexpr is a minimal s-expression: either an atom or a list of sexprs.
// Forms must appear in dependency order — a name must be declared
// before any later form references it; this format has no
// forward-reference resolution pass. A (root NAME) form may appear
// anywhere and the last one wins; a document without one still parses,
// and [Model.Root] reports the missing root.
type sexpr struct {
	atom string
	list []sexpr
}

func (s sexpr) isAtom() bool { return s.list == nil }

// Parse reads a symbolic fault-tree text document and returns the
// resulting [Model].
func Parse(src string) (*Model, error) {
	forms, err := tokenizeForms(src)
	if err != nil {
		return nil, err
	}

	m := &Model{
		events: make(map[string]*basicEvent),
		houses: make(map[string]*houseEvent),
		gates:  make(map[string]*gate),
		groups: make(map[string]*ccfGroup),
	}
	anon := 0

	for _, f := range forms {
		if f.isAtom() || len(f.list) == 0 {
			return nil, pdagerr.New(pdagerr.ErrCodeValidation, "expected a top-level (form ...), got %v", f)
		}
		head := f.list[0]
		if !head.isAtom() {
			return nil, pdagerr.New(pdagerr.ErrCodeValidation, "form head must be an atom, got a list")
		}
		switch head.atom {
		case "event":
			if err := m.declareEvent(f.list[1:]); err != nil {
				return nil, err
			}
		case "house":
			if err := m.declareHouse(f.list[1:]); err != nil {
				return nil, err
			}
		case "ccf-group":
			if err := m.declareCCFGroup(f.list[1:]); err != nil {
				return nil, err
			}
		case "gate":
			if err := m.declareGate(f.list[1:], &anon); err != nil {
				return nil, err
			}
		case "root":
			if len(f.list) != 2 || !f.list[1].isAtom() {
				return nil, pdagerr.New(pdagerr.ErrCodeValidation, "(root NAME) takes exactly one name")
			}
			m.rootRef = f.list[1].atom
		default:
			return nil, pdagerr.New(pdagerr.ErrCodeValidation, "unknown form %q", head.atom)
		}
	}
	return m, nil
}

func (m *Model) declareEvent(args []sexpr) error {
	if len(args) != 2 || !args[0].isAtom() || !args[1].isAtom() {
		return pdagerr.New(pdagerr.ErrCodeValidation, "(event NAME PROB) takes a name and a probability")
	}
	name := args[0].atom
	prob, err := strconv.ParseFloat(args[1].atom, 64)
	if err != nil {
		return pdagerr.Wrap(pdagerr.ErrCodeValidation, err, "event %s: invalid probability %q", name, args[1].atom)
	}
	if _, dup := m.events[name]; dup {
		return pdagerr.New(pdagerr.ErrCodeValidation, "event %s declared twice", name)
	}
	m.events[name] = &basicEvent{name: name, prob: prob}
	return nil
}

func (m *Model) declareHouse(args []sexpr) error {
	if len(args) != 2 || !args[0].isAtom() || !args[1].isAtom() {
		return pdagerr.New(pdagerr.ErrCodeValidation, "(house NAME true|false) takes a name and a value")
	}
	name := args[0].atom
	var value bool
	switch args[1].atom {
	case "true":
		value = true
	case "false":
		value = false
	default:
		return pdagerr.New(pdagerr.ErrCodeValidation, "house %s: value must be true or false, got %q", name, args[1].atom)
	}
	if _, dup := m.houses[name]; dup {
		return pdagerr.New(pdagerr.ErrCodeValidation, "house %s declared twice", name)
	}
	m.houses[name] = &houseEvent{name: name, value: value}
	return nil
}

func (m *Model) declareCCFGroup(args []sexpr) error {
	if len(args) < 2 || !args[0].isAtom() {
		return pdagerr.New(pdagerr.ErrCodeValidation, "(ccf-group NAME MEMBER...) takes a name and at least one member")
	}
	name := args[0].atom
	if _, dup := m.groups[name]; dup {
		return pdagerr.New(pdagerr.ErrCodeValidation, "ccf-group %s declared twice", name)
	}
	group := &ccfGroup{name: name}
	var memberProbs []float64
	for _, a := range args[1:] {
		if !a.isAtom() {
			return pdagerr.New(pdagerr.ErrCodeValidation, "ccf-group %s: member must be a name", name)
		}
		member, ok := m.events[a.atom]
		if !ok {
			return pdagerr.New(pdagerr.ErrCodeValidation, "ccf-group %s: member %q is not a declared event", name, a.atom)
		}
		if member.group != nil {
			return pdagerr.New(pdagerr.ErrCodeValidation, "event %s already belongs to ccf-group %s", a.atom, member.group.name)
		}
		group.members = append(group.members, a.atom)
		memberProbs = append(memberProbs, member.prob)
	}
	group.shared = &basicEvent{name: name + "-SHARED", prob: averageOf(memberProbs)}
	for _, a := range args[1:] {
		m.events[a.atom].group = group
	}
	m.groups[name] = group
	return nil
}

func averageOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func (m *Model) declareGate(args []sexpr, anon *int) error {
	if len(args) != 2 || !args[0].isAtom() {
		return pdagerr.New(pdagerr.ErrCodeValidation, "(gate NAME (OP ARG...)) takes a name and one formula")
	}
	name := args[0].atom
	if _, dup := m.gates[name]; dup {
		return pdagerr.New(pdagerr.ErrCodeValidation, "gate %s declared twice", name)
	}
	g, err := m.buildGate(name, args[1], anon)
	if err != nil {
		return err
	}
	m.gates[name] = g
	return nil
}

// buildGate interprets a (OP ARG...) list as a named [gate], resolving
// each argument via [Model.resolveArg].
func (m *Model) buildGate(name string, form sexpr, anon *int) (*gate, error) {
	if form.isAtom() || len(form.list) == 0 {
		return nil, pdagerr.New(pdagerr.ErrCodeValidation, "gate %s: expected a formula (OP ARG...)", name)
	}
	opHead := form.list[0]
	if !opHead.isAtom() {
		return nil, pdagerr.New(pdagerr.ErrCodeValidation, "gate %s: operator must be an atom", name)
	}
	op, err := pdag.ParseOperator(opHead.atom)
	if err != nil {
		return nil, pdagerr.Wrap(pdagerr.ErrCodeValidation, err, "gate %s", name)
	}

	rest := form.list[1:]
	vote := 0
	if op == pdag.VOTE {
		if len(rest) < 1 || !rest[0].isAtom() {
			return nil, pdagerr.New(pdagerr.ErrCodeValidation, "gate %s: (atleast K ARG...) requires a vote number", name)
		}
		vote, err = strconv.Atoi(rest[0].atom)
		if err != nil {
			return nil, pdagerr.Wrap(pdagerr.ErrCodeValidation, err, "gate %s: invalid vote number %q", name, rest[0].atom)
		}
		rest = rest[1:]
	}

	g := &gate{name: name, op: op, vote: vote}
	for _, a := range rest {
		arg, err := m.resolveArg(a, anon)
		if err != nil {
			return nil, fmt.Errorf("gate %s: %w", name, err)
		}
		g.args = append(g.args, arg)
	}
	return g, nil
}

// resolveArg interprets one gate-argument s-expression: a bare name, a
// (not SUBARG) negation, or a nested (OP ARG...) anonymous sub-gate.
func (m *Model) resolveArg(s sexpr, anon *int) (pdag.SourceArg, error) {
	if s.isAtom() {
		f, err := m.resolve(s.atom)
		if err != nil {
			return pdag.SourceArg{}, err
		}
		return pdag.SourceArg{Node: f}, nil
	}
	if len(s.list) == 0 || !s.list[0].isAtom() {
		return pdag.SourceArg{}, pdagerr.New(pdagerr.ErrCodeValidation, "malformed argument form")
	}
	if s.list[0].atom == "not" {
		if len(s.list) != 2 {
			return pdag.SourceArg{}, pdagerr.New(pdagerr.ErrCodeValidation, "(not ARG) takes exactly one argument")
		}
		inner, err := m.resolveArg(s.list[1], anon)
		if err != nil {
			return pdag.SourceArg{}, err
		}
		inner.Negated = !inner.Negated
		return inner, nil
	}

	*anon++
	name := fmt.Sprintf("$anon%d", *anon)
	g, err := m.buildGate(name, s, anon)
	if err != nil {
		return pdag.SourceArg{}, err
	}
	m.gates[name] = g
	return pdag.SourceArg{Node: g}, nil
}

// tokenizeForms splits src into top-level s-expression forms, skipping
// ";"-prefixed line comments and blank lines.
func tokenizeForms(src string) ([]sexpr, error) {
	var toks []string
	for _, line := range strings.Split(src, "\n") {
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		line = strings.ReplaceAll(line, "(", " ( ")
		line = strings.ReplaceAll(line, ")", " ) ")
		toks = append(toks, strings.Fields(line)...)
	}

	pos := 0
	var forms []sexpr
	for pos < len(toks) {
		s, next, err := parseSexpr(toks, pos)
		if err != nil {
			return nil, err
		}
		forms = append(forms, s)
		pos = next
	}
	return forms, nil
}

func parseSexpr(toks []string, pos int) (sexpr, int, error) {
	if pos >= len(toks) {
		return sexpr{}, pos, pdagerr.New(pdagerr.ErrCodeValidation, "unexpected end of input")
	}
	if toks[pos] == "(" {
		pos++
		var list []sexpr
		for {
			if pos >= len(toks) {
				return sexpr{}, pos, pdagerr.New(pdagerr.ErrCodeValidation, "unterminated list")
			}
			if toks[pos] == ")" {
				return sexpr{list: list}, pos + 1, nil
			}
			child, next, err := parseSexpr(toks, pos)
			if err != nil {
				return sexpr{}, pos, err
			}
			list = append(list, child)
			pos = next
		}
	}
	if toks[pos] == ")" {
		return sexpr{}, pos, pdagerr.New(pdagerr.ErrCodeValidation, "unexpected %q", ")")
	}
	return sexpr{atom: toks[pos]}, pos + 1, nil
}
