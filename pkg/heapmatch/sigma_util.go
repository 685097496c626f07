package heapmatch

// ExprEq is a caller-supplied equality predicate over expressions, used
// wherever an operation needs a pluggable notion of "the given equality
// predicate eq" (sigmaRemoveHpred, FindPartialIso). ExactEq (syntactic
// equality) is the usual choice; a driver with a richer notion of ground
// equality (e.g. one that also walks a pure substitution) can supply its
// own.
type ExprEq func(a, b Expr) bool

// ExactEq is the default ExprEq: syntactic structural equality.
func ExactEq(a, b Expr) bool { return exprEqual(a, b) }

// sigmaRemoveHpred partitions sigma on the predicate whose root is
// eq-equal to e. It returns the removed predicate and the
// remainder. If no predicate has root e, ok is false. Finding two
// predicates with the same root is a contract violation: every
// predicate's root must be unique within a heap.
func sigmaRemoveHpred(eq ExprEq, sigma []Hpred, e Expr) (removed Hpred, rest []Hpred, ok bool) {
	rest = make([]Hpred, 0, len(sigma))
	found := false
	for _, h := range sigma {
		if eq(h.Root(), e) {
			if found {
				panicContract("sigmaRemoveHpred: two predicates share root %s", e)
			}
			removed = h
			found = true
			continue
		}
		rest = append(rest, h)
	}
	if !found {
		return nil, sigma, false
	}
	return removed, rest, true
}
