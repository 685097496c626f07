package heapmatch

// StrExpMatch dispatches on the StrExp constructor pair: atoms reduce to
// ExpMatch, records to FselMatch, arrays to size-then-cell matching via
// IselMatch. absStruct is the field-forgetting tuning knob; 0 disables it.
//
// This is the one documented soundness gap of the matcher: field
// forgetting lets a concrete record that genuinely has extra fields the
// analyser has forgotten about match a pattern that doesn't mention them,
// even though nothing proves those fields are actually absent. That is
// an intentional approximation; StrExpMatch does not attempt to close
// the gap.
func StrExpMatch(se1 StrExp, sigma Subst, V *VarSet, se2 StrExp, absStruct int) (Subst, *VarSet, bool) {
	switch x1 := se1.(type) {
	case SEAtom:
		x2, ok := se2.(SEAtom)
		if !ok {
			return Subst{}, nil, false
		}
		return ExpMatch(x1.Value, sigma, V, x2.Value)
	case SERecord:
		x2, ok := se2.(SERecord)
		if !ok {
			return Subst{}, nil, false
		}
		return FselMatch(x1.Fields, sigma, V, x2.Fields, absStruct)
	case SEArray:
		x2, ok := se2.(SEArray)
		if !ok {
			return Subst{}, nil, false
		}
		s1, v1, ok1 := ExpMatch(x1.Size, sigma, V, x2.Size)
		if !ok1 {
			return Subst{}, nil, false
		}
		return IselMatch(x1.Cells, s1, v1, x2.Cells, absStruct)
	default:
		return Subst{}, nil, false
	}
}

// FselMatch merges two field lists sorted by FieldIdent. l1 is
// the concrete (left) record's fields, l2 the pattern's.
func FselMatch(l1 []SEField, sigma Subst, V *VarSet, l2 []SEField, absStruct int) (Subst, *VarSet, bool) {
	switch {
	case len(l1) == 0 && len(l2) == 0:
		return sigma, V, true
	case len(l1) == 0 && len(l2) != 0:
		// left is missing a field the pattern requires.
		return Subst{}, nil, false
	case len(l1) != 0 && len(l2) == 0:
		// left carries extra fields; only tolerated under field-forgetting.
		if absStruct > 0 {
			return sigma, V, true
		}
		return Subst{}, nil, false
	}

	f1, f2 := l1[0], l2[0]
	switch {
	case f1.Field.Equal(f2.Field):
		s1, v1, ok := StrExpMatch(f1.Value, sigma, V, f2.Value, absStruct)
		if !ok {
			return Subst{}, nil, false
		}
		return FselMatch(l1[1:], s1, v1, l2[1:], absStruct)
	case f1.Field.Less(f2.Field) && absStruct > 0:
		// left-field forgetting: f1 does not occur in the (sorted) right
		// list at all, drop it and keep looking.
		return FselMatch(l1[1:], sigma, V, l2, absStruct)
	default:
		return Subst{}, nil, false
	}
}

// IselMatch walks two array-cell lists in lock-step. Index
// expressions on the pattern side (se2) must already be ground after
// sigma is applied — indices are compared syntactically, never unified.
// A V-variable surviving in an index after substitution is a contract
// violation: the caller handed the matcher an index that was supposed to
// already be instantiated.
func IselMatch(l1 []SECell, sigma Subst, V *VarSet, l2 []SECell, absStruct int) (Subst, *VarSet, bool) {
	if len(l1) != len(l2) {
		return Subst{}, nil, false
	}
	curSigma, curV := sigma, V
	for i := range l1 {
		c1, c2 := l1[i], l2[i]
		i2 := curSigma.Apply(c2.Index)
		if !isFullyInstantiated(i2, curV) {
			panicContract("IselMatch: index %s still contains a free variable from V after substitution", i2)
		}
		if !exprEqual(c1.Index, i2) {
			return Subst{}, nil, false
		}
		s, v, ok := StrExpMatch(c1.Value, curSigma, curV, c2.Value, absStruct)
		if !ok {
			return Subst{}, nil, false
		}
		curSigma, curV = s, v
	}
	return curSigma, curV, true
}
