package heapmatch

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
)

// Validate checks a Prop against the data-model invariants that are cheap
// to check structurally: unique predicate roots, non-empty parameter
// bodies, and sorted record/array field lists. It is meant for a driver's
// own sanity checking before handing a heap to the matcher, not for the
// matcher's hot path, and returns every violation found rather than
// stopping at the first (multierror.Append accumulates independent
// failures instead of bailing on the first one).
func Validate(p Prop) error {
	var result *multierror.Error
	result = multierror.Append(result, validateUniqueRoots(p.Sigma)...)
	for _, h := range p.Sigma {
		result = multierror.Append(result, validateHpred(h)...)
	}
	return result.ErrorOrNil()
}

func validateUniqueRoots(sigma []Hpred) []error {
	var errs []error
	seen := make(map[string]bool, len(sigma))
	for _, h := range sigma {
		key := h.Root().String()
		if seen[key] {
			errs = append(errs, fmt.Errorf("duplicate predicate root %s", key))
			continue
		}
		seen[key] = true
	}
	return errs
}

func validateHpred(h Hpred) []error {
	var errs []error
	switch x := h.(type) {
	case PointsTo:
		errs = append(errs, validateStrExp(x.Value)...)
	case Lseg:
		errs = append(errs, validatePara(x.P)...)
	case Dllseg:
		errs = append(errs, validateParaDll(x.PDll)...)
	}
	return errs
}

func validatePara(p Para) []error {
	var errs []error
	if len(p.Body) == 0 {
		errs = append(errs, fmt.Errorf("lseg parameter body is empty (root=%s, next=%s)", p.Root, p.Next))
	}
	for _, h := range p.Body {
		errs = append(errs, validateHpred(h)...)
	}
	return errs
}

func validateParaDll(p ParaDll) []error {
	var errs []error
	if len(p.BodyDll) == 0 {
		errs = append(errs, fmt.Errorf("dllseg parameter body is empty (cell=%s)", p.Cell))
	}
	for _, h := range p.BodyDll {
		errs = append(errs, validateHpred(h)...)
	}
	return errs
}

func validateStrExp(se StrExp) []error {
	var errs []error
	switch x := se.(type) {
	case SERecord:
		if !sort.SliceIsSorted(x.Fields, func(i, j int) bool { return x.Fields[i].Field.Less(x.Fields[j].Field) }) {
			errs = append(errs, fmt.Errorf("record fields not sorted: %s", x))
		}
		for _, f := range x.Fields {
			errs = append(errs, validateStrExp(f.Value)...)
		}
	case SEArray:
		if !sort.SliceIsSorted(x.Cells, func(i, j int) bool { return exprLess(x.Cells[i].Index, x.Cells[j].Index) }) {
			errs = append(errs, fmt.Errorf("array cells not sorted: %s", x))
		}
		for _, c := range x.Cells {
			errs = append(errs, validateStrExp(c.Value)...)
		}
	}
	return errs
}
