package pdag

import "github.com/openpra/pdag/pkg/pdagerr"

// preconditionf panics with a *pdagerr.Error carrying ErrCodeLogic when
// cond is false. Precondition violations are programming errors in the
// caller (duplicate parent, erasing a missing argument, mutating a
// non-normal gate, a vote number outside its arity invariant); recovery
// is undefined, matching the "assertion or a distinct LogicError kind"
// contract for this failure category.
func preconditionf(cond bool, format string, args ...any) {
	if !cond {
		panic(pdagerr.New(pdagerr.ErrCodeLogic, format, args...))
	}
}
