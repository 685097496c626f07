package heapmatch

// HPat is one entry of a pattern conjunction: a heap predicate together
// with an implication flag. ImplFlag == false requires the predicate be
// matched by an equal predicate; ImplFlag == true additionally permits a
// pattern list segment to be discharged against the empty heap (when PE)
// or by unfolding into its parameter body.
type HPat struct {
	Pred     Hpred
	ImplFlag bool
}

// Prop is a normalised symbolic heap: a pure substitution together with a
// spatial conjunction of heap predicates. Prop values are
// immutable; matching never mutates Sigma in place.
type Prop struct {
	Pure  Subst
	Sigma []Hpred
}

// NewProp builds a Prop with an empty pure part and the given spatial
// conjunction.
func NewProp(sigma ...Hpred) Prop {
	return Prop{Sigma: sigma}
}

// Filter is the predicate an iterator search is driven by: given a
// candidate focused heap predicate it either succeeds, yielding an updated
// (sigma, V), or reports failure. Spatial matcher call sites build Filter
// closures that capture the ambient sigma/V at the point of the call.
type Filter func(h Hpred) (Subst, *VarSet, bool)

// PropIter is the abstract iterator over a Prop's spatial conjunction that
// the matcher is written against. Every method returns a new
// iterator value; none mutate the receiver, keeping the matcher itself
// free of any storage-representation assumption about how a driver lays
// out its heaps.
type PropIter interface {
	// Current yields the focused predicate and the (sigma, V) pair the
	// most recent successful Find produced — the zero Subst and a nil
	// VarSet if Find has not yet been called since the iterator was
	// created or advanced.
	Current() (Hpred, Subst, *VarSet)

	// Next advances one position without testing a filter, discarding any
	// (sigma, V) accumulated by a previous Find. It reports false once
	// there is no next position.
	Next() (PropIter, bool)

	// Find scans forward from the current position (inclusive) for the
	// first focus whose predicate passes filter, returning an iterator
	// positioned there with Current's (sigma, V) set from filter's
	// result. It reports false if no remaining position passes.
	Find(filter Filter) (PropIter, bool)

	// RemoveCurrThenToProp drops the focused predicate and reifies the
	// remaining spatial conjunction as a Prop.
	RemoveCurrThenToProp() Prop

	// ToProp reifies the iterator's full spatial conjunction as a Prop,
	// without removing the focused predicate.
	ToProp() Prop
}

// sliceIter is the concrete PropIter this package ships: a zipper over a slice,
// sufficient for every worked example and test in this repository. The
// spatial matcher builds its iterators with CreateIter, so
// PropMatchWithImpl always runs over a sliceIter on the given Prop; no
// exported entry point accepts another PropIter implementation.
type sliceIter struct {
	pure     Subst
	items    []Hpred
	idx      int
	curSigma Subst
	curV     *VarSet
	hasCur   bool
}

// CreateIter focuses on the first spatial predicate of p, or reports false
// if p's spatial part is empty.
func CreateIter(p Prop) (PropIter, bool) {
	if len(p.Sigma) == 0 {
		return nil, false
	}
	return &sliceIter{pure: p.Pure, items: p.Sigma, idx: 0}, true
}

func (it *sliceIter) Current() (Hpred, Subst, *VarSet) {
	return it.items[it.idx], it.curSigma, it.curV
}

func (it *sliceIter) Next() (PropIter, bool) {
	if it.idx+1 >= len(it.items) {
		return nil, false
	}
	return &sliceIter{pure: it.pure, items: it.items, idx: it.idx + 1}, true
}

func (it *sliceIter) Find(filter Filter) (PropIter, bool) {
	for i := it.idx; i < len(it.items); i++ {
		sigma, V, ok := filter(it.items[i])
		if ok {
			return &sliceIter{pure: it.pure, items: it.items, idx: i, curSigma: sigma, curV: V, hasCur: true}, true
		}
	}
	return nil, false
}

func (it *sliceIter) RemoveCurrThenToProp() Prop {
	rest := make([]Hpred, 0, len(it.items)-1)
	rest = append(rest, it.items[:it.idx]...)
	rest = append(rest, it.items[it.idx+1:]...)
	return Prop{Pure: it.pure, Sigma: rest}
}

func (it *sliceIter) ToProp() Prop {
	return Prop{Pure: it.pure, Sigma: append([]Hpred(nil), it.items...)}
}
