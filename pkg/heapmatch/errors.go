package heapmatch

import "fmt"

// ContractViolation reports a broken precondition of this package's API:
// duplicate identifiers in a free-variable set, mismatched list lengths,
// two predicates sharing a root within one heap, an empty parameter body,
// or any other situation that is a caller bug rather than an ordinary
// match failure.
//
// Contract violations are never returned as errors and never recovered
// from inside this package; they are raised by panicking with a
// ContractViolation value, the same way an unbound-variable access
// panics rather than returning an error: a direct panic with a
// descriptive message, left for the caller to avoid by respecting the
// documented precondition.
type ContractViolation struct {
	Message string
}

func (e *ContractViolation) Error() string { return e.Message }

func panicContract(format string, args ...any) {
	panic(&ContractViolation{Message: fmt.Sprintf(format, args...)})
}
