package heapmatch

// ExpMatch is the one-sided expression unifier: it decides
// whether there is a substitution sigma'' with domain contained in V such
// that e1 = e2[sigma ⋈ sigma''], returning sigma' = sigma ⋈ sigma'' and
// V' = V minus the newly-bound identifiers.
//
// e2 is the pattern side: only e2 may abstract over expression position
// through a primed variable in V. e1 is the concrete side and is never
// itself bound. On failure ExpMatch returns the zero Subst, a nil VarSet,
// and false — callers must not inspect the first two results when the
// third is false.
func ExpMatch(e1 Expr, sigma Subst, V *VarSet, e2 Expr) (Subst, *VarSet, bool) {
	// Rule (1): e2 is a primed pattern variable still available to bind.
	if v2, ok := e2.(ExprVar); ok {
		if v2.ID.IsPrimed() && V.Has(v2.ID) {
			return sigma.Bind(v2.ID, e1), V.Remove(v2.ID), true
		}
		// Rule (2), Var case: e2 is a variable not eligible for binding
		// (unprimed, or primed but already consumed) — require syntactic
		// agreement with sigma applied to it.
		if exprEqual(e1, sigma.Apply(e2)) {
			return sigma, V, true
		}
		return Subst{}, nil, false
	}

	// Rule (2), remaining ground-comparison cases: constants, sizeof, and
	// program variables never abstract, on either side.
	if isConst(e1) || isConst(e2) || isSizeof(e1) || isSizeof(e2) || isLvar(e1) || isLvar(e2) {
		if exprEqual(e1, sigma.Apply(e2)) {
			return sigma, V, true
		}
		return Subst{}, nil, false
	}

	// Rule (3): patterns never abstract over expression position on the
	// left; if e1 is a bare variable and none of the rule-(2) triggers
	// fired above, matching fails.
	if _, ok := e1.(ExprVar); ok {
		return Subst{}, nil, false
	}

	// Rules (4)-(8): recurse structurally on matching constructor shapes.
	switch x1 := e1.(type) {
	case ExprCast:
		if x2, ok := e2.(ExprCast); ok {
			return ExpMatch(x1.Sub, sigma, V, x2.Sub)
		}
	case ExprUnOp:
		if x2, ok := e2.(ExprUnOp); ok && x1.Op == x2.Op {
			return ExpMatch(x1.Sub, sigma, V, x2.Sub)
		}
	case ExprBinOp:
		if x2, ok := e2.(ExprBinOp); ok && x1.Op == x2.Op {
			s1, v1, ok1 := ExpMatch(x1.Left, sigma, V, x2.Left)
			if !ok1 {
				return Subst{}, nil, false
			}
			return ExpMatch(x1.Right, s1, v1, x2.Right)
		}
	case ExprLfield:
		if x2, ok := e2.(ExprLfield); ok && x1.Field.Equal(x2.Field) {
			return ExpMatch(x1.Base, sigma, V, x2.Base)
		}
	case ExprLindex:
		if x2, ok := e2.(ExprLindex); ok {
			s1, v1, ok1 := ExpMatch(x1.Base, sigma, V, x2.Base)
			if !ok1 {
				return Subst{}, nil, false
			}
			return ExpMatch(x1.Index, s1, v1, x2.Index)
		}
	}

	// Rule (9): no other cross-constructor pair matches.
	return Subst{}, nil, false
}

func isConst(e Expr) bool  { _, ok := e.(ExprConst); return ok }
func isSizeof(e Expr) bool { _, ok := e.(ExprSizeof); return ok }
func isLvar(e Expr) bool   { _, ok := e.(ExprLvar); return ok }

// ExpListMatch zips two expression lists and folds ExpMatch left to
// right. The two lists must have equal length: callers pass aligned lists
// built from the same arity of predicate (e.g. [from;to]++shared for two
// Lseg predicates), so a length mismatch is a contract violation, not an
// ordinary match failure.
func ExpListMatch(es1 []Expr, sigma Subst, V *VarSet, es2 []Expr) (Subst, *VarSet, bool) {
	if len(es1) != len(es2) {
		panicContract("ExpListMatch: length mismatch (%d vs %d)", len(es1), len(es2))
	}
	curSigma, curV := sigma, V
	for i := range es1 {
		s, v, ok := ExpMatch(es1[i], curSigma, curV, es2[i])
		if !ok {
			return Subst{}, nil, false
		}
		curSigma, curV = s, v
	}
	return curSigma, curV, true
}
