package pdag

import "github.com/openpra/pdag/pkg/pdagerr"

// Operator is the fixed set of gate operators a PDAG gate can carry.
// NULL is the identity/pass-through operator, not the empty set.
type Operator int

const (
	AND Operator = iota
	OR
	VOTE
	XOR
	NOT
	NAND
	NOR
	NULL
)

func (op Operator) String() string {
	switch op {
	case AND:
		return "and"
	case OR:
		return "or"
	case VOTE:
		return "atleast"
	case XOR:
		return "xor"
	case NOT:
		return "not"
	case NAND:
		return "nand"
	case NOR:
		return "nor"
	case NULL:
		return "null"
	default:
		return "unknown"
	}
}

// arity reports the fixed arity for operators that have one, or -1 for
// operators whose arity is variable (AND, OR, NAND, NOR, VOTE).
func (op Operator) arity() int {
	switch op {
	case NOT, NULL:
		return 1
	case XOR:
		return 2
	default:
		return -1
	}
}

// ParseOperator parses the textual spelling of an operator, the
// supplemented counterpart to [Operator.String] (spec §7: the original's
// kStringToType table). Accepts the same spellings String produces plus
// the common "atleast"/"vote"/"k/n" aliases for VOTE a source model
// adapter is likely to spell.
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "and":
		return AND, nil
	case "or":
		return OR, nil
	case "atleast", "vote", "k/n", "voteK":
		return VOTE, nil
	case "xor":
		return XOR, nil
	case "not":
		return NOT, nil
	case "nand":
		return NAND, nil
	case "nor":
		return NOR, nil
	case "null":
		return NULL, nil
	default:
		return 0, pdagerr.New(pdagerr.ErrCodeValidation, "unknown operator %q", s)
	}
}
