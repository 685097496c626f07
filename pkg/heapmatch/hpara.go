package heapmatch

// hparaCommonMatch decides alpha-equivalence of two inductive predicate
// bodies modulo renaming of their identifier lists: ids2 is
// renamed pointwise onto ids1, evars2 is given a fresh renaming local to
// this call, and the renamed body2 is matched as a pattern against body1
// normalised as a heap, requiring every predicate of body2 to be consumed
// and nothing left over.
//
// The fresh identifiers minted for evars2 never escape this function: they
// exist only to let body2's own existentials unify freely against body1,
// and the boolean result carries no substitution a caller could observe
// them through. A FreshGen local to the call is enough; there is no need
// to thread the matcher's shared generator in here, unlike the places
// where minted identifiers do escape (the unfold branches, commit's
// leftover renaming, and parameter synthesis), which use cfg.freshGen().
func hparaCommonMatch(cfg *Config, implOk bool, ids1 []Ident, body1 []Hpred, evars2 []Ident, ids2 []Ident, body2 []Hpred) bool {
	if len(ids1) != len(ids2) {
		panicContract("hpara_common_match: identifier list arity mismatch (%d vs %d)", len(ids1), len(ids2))
	}
	if len(body1) == 0 || len(body2) == 0 {
		panicContract("hpara_common_match: parameter body is empty")
	}

	renaming := EmptySubst()
	for i := range ids1 {
		renaming = renaming.Bind(ids2[i], ExprVar{ID: ids1[i]})
	}

	gen := NewFreshGen()
	v := NewVarSet()
	for _, ev := range evars2 {
		id := gen.Fresh(ev.Name())
		renaming = renaming.Bind(ev, ExprVar{ID: id})
		v = v.Add(id)
	}

	renamedBody2 := applyHpredList(renaming, body2)
	pattern := make([]HPat, len(renamedBody2))
	for i, h := range renamedBody2 {
		pattern[i] = HPat{Pred: h, ImplFlag: implOk}
	}

	matchCfg := cfg
	if matchCfg == nil {
		matchCfg = NewConfig()
	}
	_, leftover, ok := PropMatchWithImpl(matchCfg, NewProp(body1...), TruePhi, v, pattern[0], pattern[1:])
	if !ok {
		return false
	}
	return len(leftover.Sigma) == 0
}

// HparaMatch decides whether a concrete list-cell parameter p1 can stand in
// for pattern parameter p2, using [root;next]++svars as the identifier
// list.
func HparaMatch(cfg *Config, implOk bool, p1, p2 Para) bool {
	return hparaCommonMatch(cfg, implOk, p1.IdentList(), p1.Body, p2.Evars, p2.IdentList(), p2.Body)
}

// HparaDllMatch is the doubly-linked analogue of HparaMatch, using
// [cell;blink;flink]++svars_dll as the identifier list.
func HparaDllMatch(cfg *Config, implOk bool, p1, p2 ParaDll) bool {
	return hparaCommonMatch(cfg, implOk, p1.IdentList(), p1.BodyDll, p2.EvarsDll, p2.IdentList(), p2.BodyDll)
}

// HparaIso reports whether two parameters describe the same cell shape up
// to renaming, checking hpara_match in both directions. Every
// parameter is iso to itself: HparaIso(p, p) always holds.
func HparaIso(cfg *Config, p1, p2 Para) bool {
	return HparaMatch(cfg, false, p1, p2) && HparaMatch(cfg, false, p2, p1)
}

// HparaDllIso is the doubly-linked analogue of HparaIso.
func HparaDllIso(cfg *Config, p1, p2 ParaDll) bool {
	return HparaDllMatch(cfg, false, p1, p2) && HparaDllMatch(cfg, false, p2, p1)
}
