package heapmatch

// Phi is the side-condition predicate threaded through every match: a
// black box the implementation calls exactly once per candidate leftover
// heap. It must not fail; it returns true or false only.
type Phi func(leftover Prop, sigma Subst) bool

// TruePhi is the trivial side condition used by hpara_common_match and by
// callers with no pure constraint of their own.
func TruePhi(Prop, Subst) bool { return true }

// PropMatchWithImpl is the public entry point of the spatial matcher: it
// decides whether p entails an instance of the pattern head::tail under
// free-variable set V and side condition phi, returning the witnessing
// substitution and the heap left over after consuming the pattern.
func PropMatchWithImpl(cfg *Config, p Prop, phi Phi, V *VarSet, head HPat, tail []HPat) (Subst, Prop, bool) {
	return propMatchWithImplSub(cfg, p, phi, EmptySubst(), V, head, tail)
}

// propMatchWithImplSub is the internal form that threads a starting
// substitution, used by every recursive call once matching is underway.
func propMatchWithImplSub(cfg *Config, p Prop, phi Phi, sigma Subst, V *VarSet, head HPat, tail []HPat) (Subst, Prop, bool) {
	iter, ok := CreateIter(p)
	if !ok {
		pats := make([]HPat, 0, len(tail)+1)
		pats = append(pats, head)
		pats = append(pats, tail...)
		return instantiateToEmp(p, phi, sigma, V, pats)
	}
	return iterMatchWithImpl(cfg, iter, phi, sigma, V, head, tail)
}

// chainResult bundles a substitution and a leftover heap so firstSuccess
// (which is generic over a single result type) can drive the two-branch
// backtracks below.
type chainResult struct {
	sigma Subst
	prop  Prop
}

// commit closes a completed match: it extends sigma with a fresh-primed
// renaming of every identifier still in leftoverV (so that existentials
// the pattern left unbound do not escape into the caller's result), then
// checks the side condition against the candidate leftover heap.
func commit(cfg *Config, leftover Prop, phi Phi, sigma Subst, leftoverV *VarSet) (Subst, Prop, bool) {
	sigmaExt := freshRenameLeftover(cfg, sigma, leftoverV)
	if !phi(leftover, sigmaExt) {
		return Subst{}, Prop{}, false
	}
	return sigmaExt, leftover, true
}

func freshRenameLeftover(cfg *Config, sigma Subst, leftoverV *VarSet) Subst {
	out := sigma
	for _, id := range leftoverV.ToSlice() {
		out = out.Bind(id, ExprVar{ID: cfg.freshGen().Fresh(id.Name())})
	}
	return out
}

// afterFocusFound implements the backtracking shared by all three predicate
// kinds once iter.Find has located a focus passing the kind's filter:
// commit immediately if there is no tail, otherwise try consuming the
// focus and continuing over the tail, falling back to advancing the
// iterator past this focus and retrying the same head.
func afterFocusFound(cfg *Config, found PropIter, phi Phi, origSigma Subst, origV *VarSet, head HPat, tail []HPat) (Subst, Prop, bool) {
	_, sigmaNew, vNew := found.Current()
	if len(tail) == 0 {
		return commit(cfg, found.RemoveCurrThenToProp(), phi, sigmaNew, vNew)
	}

	consume := func() (chainResult, bool) {
		residual := found.RemoveCurrThenToProp()
		s, p, ok := propMatchWithImplSub(cfg, residual, phi, sigmaNew, vNew, tail[0], tail[1:])
		return chainResult{s, p}, ok
	}
	advance := func() (chainResult, bool) {
		next, ok := found.Next()
		if !ok {
			return chainResult{}, false
		}
		s, p, ok := iterMatchWithImpl(cfg, next, phi, origSigma, origV, head, tail)
		return chainResult{s, p}, ok
	}
	r, ok := firstSuccess(consume, advance)
	return r.sigma, r.prop, ok
}

// iterMatchWithImpl dispatches on the pattern head's predicate kind. It is
// the hub of the mutual recursion between spatial matching and
// parameter-body unfolding: PointsTo focuses directly; Lseg and Dllseg each
// try a focus match first and fall back to the empty branch and the unfold
// branch as permitted by the head's implication flag and segment kind.
func iterMatchWithImpl(cfg *Config, iter PropIter, phi Phi, sigma Subst, V *VarSet, head HPat, tail []HPat) (Subst, Prop, bool) {
	switch pat := head.Pred.(type) {
	case PointsTo:
		found, ok := iter.Find(pointsToFilter(pat, sigma, V, cfg.absStruct()))
		if !ok {
			return Subst{}, Prop{}, false
		}
		return afterFocusFound(cfg, found, phi, sigma, V, head, tail)

	case Lseg:
		found, ok := iter.Find(lsegFilter(cfg, pat, sigma, V))
		if ok {
			cfg.log().Trace("lseg: focus found", "from", pat.From, "to", pat.To)
			return afterFocusFound(cfg, found, phi, sigma, V, head, tail)
		}
		cfg.log().Trace("lseg: no focus", "kind", pat.K, "impl_flag", head.ImplFlag)
		if !head.ImplFlag {
			return Subst{}, Prop{}, false
		}
		if pat.K == NE {
			cfg.log().Trace("lseg: unfold branch (NE, no empty branch possible)")
			return tryUnfoldLseg(cfg, iter, phi, sigma, V, pat, tail)
		}
		empty := func() (chainResult, bool) {
			cfg.log().Trace("lseg: empty branch taken")
			s, p, ok := tryEmptyLseg(cfg, iter, phi, sigma, V, pat, tail)
			return chainResult{s, p}, ok
		}
		unfold := func() (chainResult, bool) {
			cfg.log().Trace("lseg: unfold branch taken")
			s, p, ok := tryUnfoldLseg(cfg, iter, phi, sigma, V, pat, tail)
			return chainResult{s, p}, ok
		}
		r, ok := firstSuccess(empty, unfold)
		return r.sigma, r.prop, ok

	case Dllseg:
		found, ok := iter.Find(dllsegFilter(cfg, pat, sigma, V))
		if ok {
			cfg.log().Trace("dllseg: focus found", "iF", pat.IF, "iB", pat.IB)
			return afterFocusFound(cfg, found, phi, sigma, V, head, tail)
		}
		cfg.log().Trace("dllseg: no focus", "kind", pat.K, "impl_flag", head.ImplFlag)
		if !head.ImplFlag {
			return Subst{}, Prop{}, false
		}
		if pat.K == NE {
			cfg.log().Trace("dllseg: unfold branch (NE, no empty branch possible)")
			return tryUnfoldDllseg(cfg, iter, phi, sigma, V, pat, tail)
		}
		empty := func() (chainResult, bool) {
			cfg.log().Trace("dllseg: empty branch taken")
			s, p, ok := tryEmptyDllseg(cfg, iter, phi, sigma, V, pat, tail)
			return chainResult{s, p}, ok
		}
		unfold := func() (chainResult, bool) {
			cfg.log().Trace("dllseg: unfold branch taken")
			s, p, ok := tryUnfoldDllseg(cfg, iter, phi, sigma, V, pat, tail)
			return chainResult{s, p}, ok
		}
		r, ok := firstSuccess(empty, unfold)
		return r.sigma, r.prop, ok

	default:
		panicContract("iter_match_with_impl: unknown pattern predicate type %T", head.Pred)
		panic("unreachable")
	}
}

func pointsToFilter(pat PointsTo, sigma Subst, V *VarSet, absStruct int) Filter {
	return func(h Hpred) (Subst, *VarSet, bool) {
		concrete, ok := h.(PointsTo)
		if !ok {
			return Subst{}, nil, false
		}
		if !exprEqual(concrete.Typ, pat.Typ) {
			return Subst{}, nil, false
		}
		s1, v1, ok := ExpMatch(concrete.RootE, sigma, V, pat.RootE)
		if !ok {
			return Subst{}, nil, false
		}
		return StrExpMatch(concrete.Value, s1, v1, pat.Value, absStruct)
	}
}

func lsegFilter(cfg *Config, pat Lseg, sigma Subst, V *VarSet) Filter {
	es2 := append([]Expr{pat.From, pat.To}, pat.Shared...)
	return func(h Hpred) (Subst, *VarSet, bool) {
		concrete, ok := h.(Lseg)
		if !ok {
			return Subst{}, nil, false
		}
		if !kindSubsumes(concrete.K, pat.K) {
			return Subst{}, nil, false
		}
		if !HparaMatch(cfg, true, concrete.P, pat.P) {
			return Subst{}, nil, false
		}
		es1 := append([]Expr{concrete.From, concrete.To}, concrete.Shared...)
		if len(es1) != len(es2) {
			return Subst{}, nil, false
		}
		return ExpListMatch(es1, sigma, V, es2)
	}
}

func dllsegFilter(cfg *Config, pat Dllseg, sigma Subst, V *VarSet) Filter {
	es2 := append([]Expr{pat.IF, pat.OB, pat.OF, pat.IB}, pat.Shared...)
	return func(h Hpred) (Subst, *VarSet, bool) {
		concrete, ok := h.(Dllseg)
		if !ok {
			return Subst{}, nil, false
		}
		if !kindSubsumes(concrete.K, pat.K) {
			return Subst{}, nil, false
		}
		if !HparaDllMatch(cfg, true, concrete.PDll, pat.PDll) {
			return Subst{}, nil, false
		}
		es1 := append([]Expr{concrete.IF, concrete.OB, concrete.OF, concrete.IB}, concrete.Shared...)
		if len(es1) != len(es2) {
			return Subst{}, nil, false
		}
		return ExpListMatch(es1, sigma, V, es2)
	}
}

// tryEmptyLseg discharges a possibly-empty list-segment pattern against the
// empty heap without consuming any concrete predicate: emptyBranchReady
// must hold (the start is fully instantiated, or the end is a still-unbound
// pattern variable), and the start must unify with the end.
func tryEmptyLseg(cfg *Config, iter PropIter, phi Phi, sigma Subst, V *VarSet, pat Lseg, tail []HPat) (Subst, Prop, bool) {
	start := sigma.Apply(pat.From)
	if !emptyBranchReady(start, pat.To, V) {
		return Subst{}, Prop{}, false
	}
	s1, v1, ok := ExpMatch(start, sigma, V, pat.To)
	if !ok {
		return Subst{}, Prop{}, false
	}
	if len(tail) == 0 {
		return commit(cfg, iter.ToProp(), phi, s1, v1)
	}
	return propMatchWithImplSub(cfg, iter.ToProp(), phi, s1, v1, tail[0], tail[1:])
}

// tryUnfoldLseg discharges a list-segment pattern by unfolding its
// parameter body one cell deep: fresh
// existentials stand in for the body's own evars, the body's root/next/
// svars are instantiated to the segment's from/to/shared, and the
// instantiated conjunction is prepended to the tail with impl_flag forced
// true.
func tryUnfoldLseg(cfg *Config, iter PropIter, phi Phi, sigma Subst, V *VarSet, pat Lseg, tail []HPat) (Subst, Prop, bool) {
	if len(pat.P.Body) == 0 {
		panicContract("lseg unfold: parameter body is empty")
	}
	if len(pat.P.Svars) != len(pat.Shared) {
		panicContract("lseg unfold: svars/shared arity mismatch (%d vs %d)", len(pat.P.Svars), len(pat.Shared))
	}

	bodySubst := EmptySubst()
	bodySubst = bodySubst.Bind(pat.P.Root, pat.From)
	bodySubst = bodySubst.Bind(pat.P.Next, pat.To)
	for i, sv := range pat.P.Svars {
		bodySubst = bodySubst.Bind(sv, pat.Shared[i])
	}
	vNew := V
	fresh := make([]Ident, len(pat.P.Evars))
	for i, ev := range pat.P.Evars {
		id := cfg.freshGen().Fresh(ev.Name())
		bodySubst = bodySubst.Bind(ev, ExprVar{ID: id})
		vNew = vNew.Add(id)
		fresh[i] = id
	}

	instantiated := applyHpredList(bodySubst, pat.P.Body)
	newHead := HPat{Pred: instantiated[0], ImplFlag: true}
	newTail := make([]HPat, 0, len(instantiated)-1+len(tail))
	for _, h := range instantiated[1:] {
		newTail = append(newTail, HPat{Pred: h, ImplFlag: true})
	}
	newTail = append(newTail, tail...)

	s, p, ok := iterMatchWithImpl(cfg, iter, phi, sigma, vNew, newHead, newTail)
	if !ok {
		return Subst{}, Prop{}, false
	}
	return s.Filter(func(id Ident) bool { return !containsIdent(fresh, id) }), p, true
}

// tryEmptyDllseg is the Dllseg analogue of tryEmptyLseg: emptyBranchReady
// must hold for both entry pointers (iF against oF, oB against iB), and the
// forward/backward exits must unify in lock-step.
func tryEmptyDllseg(cfg *Config, iter PropIter, phi Phi, sigma Subst, V *VarSet, pat Dllseg, tail []HPat) (Subst, Prop, bool) {
	iF := sigma.Apply(pat.IF)
	oB := sigma.Apply(pat.OB)
	if !emptyBranchReady(iF, pat.OF, V) || !emptyBranchReady(oB, pat.IB, V) {
		return Subst{}, Prop{}, false
	}
	s1, v1, ok := ExpListMatch([]Expr{iF, oB}, sigma, V, []Expr{pat.OF, pat.IB})
	if !ok {
		return Subst{}, Prop{}, false
	}
	if len(tail) == 0 {
		return commit(cfg, iter.ToProp(), phi, s1, v1)
	}
	return propMatchWithImplSub(cfg, iter.ToProp(), phi, s1, v1, tail[0], tail[1:])
}

// tryUnfoldDllseg is the Dllseg analogue of tryUnfoldLseg, with
// one extra precondition: iF must be fully instantiated and unify with iB
// before the body is unfolded.
func tryUnfoldDllseg(cfg *Config, iter PropIter, phi Phi, sigma Subst, V *VarSet, pat Dllseg, tail []HPat) (Subst, Prop, bool) {
	iF := sigma.Apply(pat.IF)
	if !isFullyInstantiated(iF, V) {
		return Subst{}, Prop{}, false
	}
	sigma, V, ok := ExpMatch(iF, sigma, V, pat.IB)
	if !ok {
		return Subst{}, Prop{}, false
	}

	if len(pat.PDll.BodyDll) == 0 {
		panicContract("dllseg unfold: parameter body is empty")
	}
	if len(pat.PDll.SvarsDll) != len(pat.Shared) {
		panicContract("dllseg unfold: svars/shared arity mismatch (%d vs %d)", len(pat.PDll.SvarsDll), len(pat.Shared))
	}

	bodySubst := EmptySubst()
	bodySubst = bodySubst.Bind(pat.PDll.Cell, pat.IF)
	bodySubst = bodySubst.Bind(pat.PDll.Blink, pat.OB)
	bodySubst = bodySubst.Bind(pat.PDll.Flink, pat.OF)
	for i, sv := range pat.PDll.SvarsDll {
		bodySubst = bodySubst.Bind(sv, pat.Shared[i])
	}
	vNew := V
	fresh := make([]Ident, len(pat.PDll.EvarsDll))
	for i, ev := range pat.PDll.EvarsDll {
		id := cfg.freshGen().Fresh(ev.Name())
		bodySubst = bodySubst.Bind(ev, ExprVar{ID: id})
		vNew = vNew.Add(id)
		fresh[i] = id
	}

	instantiated := applyHpredList(bodySubst, pat.PDll.BodyDll)
	newHead := HPat{Pred: instantiated[0], ImplFlag: true}
	newTail := make([]HPat, 0, len(instantiated)-1+len(tail))
	for _, h := range instantiated[1:] {
		newTail = append(newTail, HPat{Pred: h, ImplFlag: true})
	}
	newTail = append(newTail, tail...)

	s, p, ok := iterMatchWithImpl(cfg, iter, phi, sigma, vNew, newHead, newTail)
	if !ok {
		return Subst{}, Prop{}, false
	}
	return s.Filter(func(id Ident) bool { return !containsIdent(fresh, id) }), p, true
}

// emptyBranchReady is the precondition for collapsing a list/dllseg segment
// to the empty heap: it
// holds either when start has no residual V-variable, or when the pattern
// side it will be compared against is itself a still-unbound pattern
// variable in V. In the latter case exp_match's own rule (1) binds that
// variable directly to start — no syntactic comparison of an unresolved
// expression ever happens, so the instantiation precondition that guards
// against a spurious structural coincidence does not apply.
func emptyBranchReady(start Expr, to Expr, V *VarSet) bool {
	if v, ok := to.(ExprVar); ok && v.ID.IsPrimed() && V.Has(v.ID) {
		return true
	}
	return isFullyInstantiated(start, V)
}

func containsIdent(ids []Ident, id Ident) bool {
	for _, x := range ids {
		if x.Equal(id) {
			return true
		}
	}
	return false
}

// instantiateToEmp collapses every remaining pattern entry against the
// empty heap: PointsTo and NE segments are rejected outright,
// and PE segments require emptyBranchReady on their start side and a start
// side unifiable with their end side.
func instantiateToEmp(p Prop, phi Phi, sigma Subst, V *VarSet, pats []HPat) (Subst, Prop, bool) {
	if len(pats) == 0 {
		if !phi(p, sigma) {
			return Subst{}, Prop{}, false
		}
		return sigma, p, true
	}

	head, rest := pats[0], pats[1:]
	if !head.ImplFlag {
		return Subst{}, Prop{}, false
	}

	switch pat := head.Pred.(type) {
	case PointsTo:
		return Subst{}, Prop{}, false

	case Lseg:
		if pat.K == NE {
			return Subst{}, Prop{}, false
		}
		start := sigma.Apply(pat.From)
		if !emptyBranchReady(start, pat.To, V) {
			return Subst{}, Prop{}, false
		}
		s1, v1, ok := ExpMatch(start, sigma, V, pat.To)
		if !ok {
			return Subst{}, Prop{}, false
		}
		return instantiateToEmp(p, phi, s1, v1, rest)

	case Dllseg:
		if pat.K == NE {
			return Subst{}, Prop{}, false
		}
		iF := sigma.Apply(pat.IF)
		oB := sigma.Apply(pat.OB)
		if !emptyBranchReady(iF, pat.OF, V) || !emptyBranchReady(oB, pat.IB, V) {
			return Subst{}, Prop{}, false
		}
		s1, v1, ok := ExpListMatch([]Expr{iF, oB}, sigma, V, []Expr{pat.OF, pat.IB})
		if !ok {
			return Subst{}, Prop{}, false
		}
		return instantiateToEmp(p, phi, s1, v1, rest)

	default:
		panicContract("instantiate_to_emp: unknown pattern predicate type %T", head.Pred)
		panic("unreachable")
	}
}
