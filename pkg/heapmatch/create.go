package heapmatch

// exprIdentPair records the fresh primed identifier assigned to a source
// expression during parameter synthesis. A slice-plus-linear-
// scan stands in for a map here because Expr values are not guaranteed
// comparable with ==: an ExprConst's Value is `any` and could wrap a
// non-comparable type.
type exprIdentPair struct {
	E  Expr
	ID Ident
}

func lookupFreshID(pairs []exprIdentPair, e Expr) (Ident, bool) {
	for _, p := range pairs {
		if exprEqual(p.E, e) {
			return p.ID, true
		}
	}
	return Ident{}, false
}

func exprInList(list []Expr, e Expr) bool {
	for _, x := range list {
		if exprEqual(x, e) {
			return true
		}
	}
	return false
}

// renameExprs rewrites e by replacing every subterm structurally equal to
// some pair's source expression with a reference to its assigned fresh
// identifier, recursing structurally elsewhere. This is the expression-
// keyed counterpart of Subst.Apply (which is keyed by Ident), needed
// because parameter synthesis renames by expression identity, not by
// variable identity.
func renameExprs(pairs []exprIdentPair, e Expr) Expr {
	if id, ok := lookupFreshID(pairs, e); ok {
		return ExprVar{ID: id}
	}
	switch x := e.(type) {
	case ExprSizeof:
		return ExprSizeof{Type: renameExprs(pairs, x.Type)}
	case ExprCast:
		return ExprCast{Type: renameExprs(pairs, x.Type), Sub: renameExprs(pairs, x.Sub)}
	case ExprUnOp:
		var t Expr
		if x.Type != nil {
			t = renameExprs(pairs, x.Type)
		}
		return ExprUnOp{Op: x.Op, Sub: renameExprs(pairs, x.Sub), Type: t}
	case ExprBinOp:
		return ExprBinOp{Op: x.Op, Left: renameExprs(pairs, x.Left), Right: renameExprs(pairs, x.Right)}
	case ExprLfield:
		return ExprLfield{Base: renameExprs(pairs, x.Base), Field: x.Field, Type: renameExprs(pairs, x.Type)}
	case ExprLindex:
		return ExprLindex{Base: renameExprs(pairs, x.Base), Index: renameExprs(pairs, x.Index)}
	default:
		return e
	}
}

func renameExprsInStrExp(pairs []exprIdentPair, se StrExp) StrExp {
	switch x := se.(type) {
	case SEAtom:
		return SEAtom{Value: renameExprs(pairs, x.Value), Inst: x.Inst}
	case SERecord:
		fields := make([]SEField, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = SEField{Field: f.Field, Value: renameExprsInStrExp(pairs, f.Value)}
		}
		return SERecord{Fields: fields, Inst: x.Inst}
	case SEArray:
		cells := make([]SECell, len(x.Cells))
		for i, c := range x.Cells {
			cells[i] = SECell{Index: renameExprs(pairs, c.Index), Value: renameExprsInStrExp(pairs, c.Value)}
		}
		return SEArray{Size: renameExprs(pairs, x.Size), Cells: cells, Inst: x.Inst}
	default:
		return se
	}
}

func renameExprsInHpred(pairs []exprIdentPair, h Hpred) Hpred {
	switch x := h.(type) {
	case PointsTo:
		return PointsTo{RootE: renameExprs(pairs, x.RootE), Value: renameExprsInStrExp(pairs, x.Value), Typ: renameExprs(pairs, x.Typ)}
	case Lseg:
		return Lseg{K: x.K, P: x.P, From: renameExprs(pairs, x.From), To: renameExprs(pairs, x.To), Shared: renameExprList(pairs, x.Shared)}
	case Dllseg:
		return Dllseg{K: x.K, PDll: x.PDll, IF: renameExprs(pairs, x.IF), OB: renameExprs(pairs, x.OB), OF: renameExprs(pairs, x.OF), IB: renameExprs(pairs, x.IB), Shared: renameExprList(pairs, x.Shared)}
	default:
		return h
	}
}

func renameExprList(pairs []exprIdentPair, es []Expr) []Expr {
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = renameExprs(pairs, e)
	}
	return out
}

func renameExprsInHpredList(pairs []exprIdentPair, hs []Hpred) []Hpred {
	out := make([]Hpred, len(hs))
	for i, h := range hs {
		out[i] = renameExprsInHpred(pairs, h)
	}
	return out
}

// genericParaCreate fabricates a canonical parameter body from a
// correspondence: every corres pair not relating two equal
// constants gets a fresh primed identifier (drawn from cfg's shared
// generator, since these identifiers end up embedded in the returned
// Para/ParaDll and must not collide with anything else the matcher later
// mints); pairs outside elist1 are partitioned into shared (svars, where
// e1 = e2) and existential (evars, otherwise); the PE-lifted body1 is then
// rewritten through the full e1-to-fresh-id renaming.
func genericParaCreate(cfg *Config, corres []CorresPair, body1 []Hpred, elist1 []Expr) (svars []Ident, sharedSrc []Expr, evars []Ident, body []Hpred, idFor []exprIdentPair) {
	gen := cfg.freshGen()

	for _, c := range corres {
		if isConst(c.E1) && isConst(c.E2) && exprEqual(c.E1, c.E2) {
			continue
		}
		base := "x"
		if v, ok := c.E1.(ExprVar); ok {
			base = v.ID.Name()
		}
		idFor = append(idFor, exprIdentPair{E: c.E1, ID: gen.Fresh(base)})
	}

	for _, c := range corres {
		if isConst(c.E1) && isConst(c.E2) && exprEqual(c.E1, c.E2) {
			continue
		}
		if exprInList(elist1, c.E1) {
			continue
		}
		id, ok := lookupFreshID(idFor, c.E1)
		if !ok {
			panicContract("generic_para_create: no fresh identifier assigned to %s", c.E1)
		}
		if exprEqual(c.E1, c.E2) {
			svars = append(svars, id)
			sharedSrc = append(sharedSrc, c.E1)
		} else {
			evars = append(evars, id)
		}
	}

	body = renameExprsInHpredList(idFor, sigmaLiftToPE(body1))
	return svars, sharedSrc, evars, body, idFor
}

// HparaCreate synthesises a list-cell parameter from a correspondence
// between two isomorphic sub-heaps. The returned es_shared
// lists, in the same order as the returned Para's Svars, the source
// expressions to pass as actual parameters at each use site.
func HparaCreate(cfg *Config, corres []CorresPair, body1 []Hpred, root1, next1 Expr) (Para, []Expr) {
	svars, sharedSrc, evars, body, idFor := genericParaCreate(cfg, corres, body1, []Expr{root1, next1})
	rootID, ok := lookupFreshID(idFor, root1)
	if !ok {
		panicContract("hpara_create: no fresh identifier assigned to root %s", root1)
	}
	nextID, ok := lookupFreshID(idFor, next1)
	if !ok {
		panicContract("hpara_create: no fresh identifier assigned to next %s", next1)
	}
	return Para{Root: rootID, Next: nextID, Svars: svars, Evars: evars, Body: body}, sharedSrc
}

// HparaDllCreate is the doubly-linked analogue of HparaCreate.
func HparaDllCreate(cfg *Config, corres []CorresPair, body1 []Hpred, cell1, blink1, flink1 Expr) (ParaDll, []Expr) {
	svars, sharedSrc, evars, body, idFor := genericParaCreate(cfg, corres, body1, []Expr{cell1, blink1, flink1})
	cellID, ok := lookupFreshID(idFor, cell1)
	if !ok {
		panicContract("hpara_dll_create: no fresh identifier assigned to cell %s", cell1)
	}
	blinkID, ok := lookupFreshID(idFor, blink1)
	if !ok {
		panicContract("hpara_dll_create: no fresh identifier assigned to blink %s", blink1)
	}
	flinkID, ok := lookupFreshID(idFor, flink1)
	if !ok {
		panicContract("hpara_dll_create: no fresh identifier assigned to flink %s", flink1)
	}
	return ParaDll{Cell: cellID, Blink: blinkID, Flink: flinkID, SvarsDll: svars, EvarsDll: evars, BodyDll: body}, sharedSrc
}
