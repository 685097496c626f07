package heapmatch

// IsoMode controls how generous generate_todos_from_strexp is about record
// fields one side has that the other lacks.
type IsoMode int

const (
	// Exact requires both records to carry exactly the same field set.
	Exact IsoMode = iota
	// LFieldForget tolerates the left (se1) record carrying extra fields.
	LFieldForget
	// RFieldForget tolerates the right (se2) record carrying extra fields.
	RFieldForget
)

// CorresPair is one entry of a correspondence: a bijection witness between
// an expression of the first sub-heap and an expression of the second.
type CorresPair struct {
	E1, E2 Expr
}

func corresContains(corres []CorresPair, e1, e2 Expr) bool {
	for _, c := range corres {
		if exprEqual(c.E1, e1) && exprEqual(c.E2, e2) {
			return true
		}
	}
	return false
}

func corresMentions(corres []CorresPair, e Expr) bool {
	for _, c := range corres {
		if exprEqual(c.E1, e) || exprEqual(c.E2, e) {
			return true
		}
	}
	return false
}

// corresRelated reports whether (e1, e2) is already witnessed by corres, or
// both expressions are absent from corres and syntactically identical.
func corresRelated(corres []CorresPair, e1, e2 Expr) bool {
	if corresContains(corres, e1, e2) {
		return true
	}
	return !corresMentions(corres, e1) && !corresMentions(corres, e2) && exprEqual(e1, e2)
}

// corresExtensible reports whether (e1, e2) can be turned into a new
// correspondence entry: neither side already appears in corres, and the
// two expressions are not themselves identical.
func corresExtensible(corres []CorresPair, e1, e2 Expr) bool {
	return !corresMentions(corres, e1) && !corresMentions(corres, e2) && !exprEqual(e1, e2)
}

// isoUpdate extracts the rooted predicates (if any) at e1 and e2 from
// whatever remaining-heap bookkeeping state T represents, returning the
// two predicates (nil where absent) and the updated state. The one-heap and two-heap variants below share this shape but
// differ in what T is.
type isoUpdate[T any] func(e1, e2 Expr, state T) (h1, h2 Hpred, next T)

// genericFindPartialIso builds a correspondence between two sub-heaps one
// todo pair at a time. It terminates because each step either
// consumes a todo without growing the list, or removes the rooted
// predicates it matched from state (which never grows) before adding the
// obligations extracted from them.
func genericFindPartialIso[T any](cfg *Config, mode IsoMode, update isoUpdate[T], corres []CorresPair, sigma1, sigma2 []Hpred, todos []CorresPair, state T) ([]CorresPair, []Hpred, []Hpred, T, bool) {
	if len(todos) == 0 {
		return corres, sigma1, sigma2, state, true
	}
	e1, e2 := todos[0].E1, todos[0].E2
	rest := todos[1:]

	if corresRelated(corres, e1, e2) {
		next := corres
		if !corresContains(corres, e1, e2) {
			next = append(append([]CorresPair{}, corres...), CorresPair{e1, e2})
		}
		return genericFindPartialIso(cfg, mode, update, next, sigma1, sigma2, rest, state)
	}

	if !corresExtensible(corres, e1, e2) {
		var zero T
		return nil, nil, nil, zero, false
	}

	h1, h2, state2 := update(e1, e2, state)
	switch {
	case h1 == nil && h2 == nil:
		cfg.log().Trace("find_partial_iso: both sides absent, committing identity", "e1", e1, "e2", e2)
		next := append(append([]CorresPair{}, corres...), CorresPair{e1, e2})
		return genericFindPartialIso(cfg, mode, update, next, sigma1, sigma2, rest, state2)

	case h1 == nil || h2 == nil:
		cfg.log().Trace("find_partial_iso: one side absent, failing", "e1", e1, "e2", e2)
		var zero T
		return nil, nil, nil, zero, false
	}

	switch x1 := h1.(type) {
	case PointsTo:
		x2, ok := h2.(PointsTo)
		if !ok || !exprEqual(x1.Typ, x2.Typ) {
			var zero T
			return nil, nil, nil, zero, false
		}
		newTodos, ok := generateTodosFromStrexp(mode, nil, x1.Value, x2.Value)
		if !ok {
			var zero T
			return nil, nil, nil, zero, false
		}
		next := append(append([]CorresPair{}, corres...), CorresPair{e1, e2})
		ns1 := append(append([]Hpred{}, sigma1...), h1)
		ns2 := append(append([]Hpred{}, sigma2...), h2)
		merged := append(append([]CorresPair{}, newTodos...), rest...)
		return genericFindPartialIso(cfg, mode, update, next, ns1, ns2, merged, state2)

	case Lseg:
		x2, ok := h2.(Lseg)
		if !ok || x1.K != x2.K || !HparaIso(cfg, x1.P, x2.P) {
			var zero T
			return nil, nil, nil, zero, false
		}
		if len(x1.Shared) != len(x2.Shared) {
			panicContract("generic_find_partial_iso: lseg shared arity mismatch (%d vs %d)", len(x1.Shared), len(x2.Shared))
		}
		newTodos := []CorresPair{{x1.From, x2.From}, {x1.To, x2.To}}
		for i := range x1.Shared {
			newTodos = append(newTodos, CorresPair{x1.Shared[i], x2.Shared[i]})
		}
		next := append(append([]CorresPair{}, corres...), CorresPair{e1, e2})
		ns1 := append(append([]Hpred{}, sigma1...), h1)
		ns2 := append(append([]Hpred{}, sigma2...), h2)
		merged := append(newTodos, rest...)
		return genericFindPartialIso(cfg, mode, update, next, ns1, ns2, merged, state2)

	case Dllseg:
		x2, ok := h2.(Dllseg)
		if !ok || x1.K != x2.K || !HparaDllIso(cfg, x1.PDll, x2.PDll) {
			var zero T
			return nil, nil, nil, zero, false
		}
		if len(x1.Shared) != len(x2.Shared) {
			panicContract("generic_find_partial_iso: dllseg shared arity mismatch (%d vs %d)", len(x1.Shared), len(x2.Shared))
		}
		newTodos := []CorresPair{{x1.IF, x2.IF}, {x1.OB, x2.OB}, {x1.OF, x2.OF}, {x1.IB, x2.IB}}
		for i := range x1.Shared {
			newTodos = append(newTodos, CorresPair{x1.Shared[i], x2.Shared[i]})
		}
		next := append(append([]CorresPair{}, corres...), CorresPair{e1, e2})
		ns1 := append(append([]Hpred{}, sigma1...), h1)
		ns2 := append(append([]Hpred{}, sigma2...), h2)
		merged := append(newTodos, rest...)
		return genericFindPartialIso(cfg, mode, update, next, ns1, ns2, merged, state2)

	default:
		var zero T
		return nil, nil, nil, zero, false
	}
}

// generateTodosFromStrexp walks two structured-expression values, emitting
// a correspondence obligation per matching atom position.
// Record field handling honours mode; arrays require equal size and equal
// cardinality.
func generateTodosFromStrexp(mode IsoMode, todos []CorresPair, se1, se2 StrExp) ([]CorresPair, bool) {
	switch x1 := se1.(type) {
	case SEAtom:
		x2, ok := se2.(SEAtom)
		if !ok {
			return nil, false
		}
		return append(append([]CorresPair{}, todos...), CorresPair{x1.Value, x2.Value}), true

	case SERecord:
		x2, ok := se2.(SERecord)
		if !ok {
			return nil, false
		}
		return fieldTodos(mode, todos, x1.Fields, x2.Fields)

	case SEArray:
		x2, ok := se2.(SEArray)
		if !ok {
			return nil, false
		}
		if !exprEqual(x1.Size, x2.Size) {
			return nil, false
		}
		return cellTodos(mode, todos, x1.Cells, x2.Cells)

	default:
		return nil, false
	}
}

// fieldTodos is generate_todos_from_strexp's fsel analogue: it merges two
// sorted field lists, tolerating one side's extra fields according to mode.
func fieldTodos(mode IsoMode, todos []CorresPair, l1, l2 []SEField) ([]CorresPair, bool) {
	switch {
	case len(l1) == 0 && len(l2) == 0:
		return todos, true
	case len(l1) == 0 && len(l2) != 0:
		if mode == RFieldForget {
			return todos, true
		}
		return nil, false
	case len(l1) != 0 && len(l2) == 0:
		if mode == LFieldForget {
			return todos, true
		}
		return nil, false
	}

	f1, f2 := l1[0], l2[0]
	switch {
	case f1.Field.Equal(f2.Field):
		next, ok := generateTodosFromStrexp(mode, todos, f1.Value, f2.Value)
		if !ok {
			return nil, false
		}
		return fieldTodos(mode, next, l1[1:], l2[1:])
	case f1.Field.Less(f2.Field) && mode == LFieldForget:
		return fieldTodos(mode, todos, l1[1:], l2)
	case f2.Field.Less(f1.Field) && mode == RFieldForget:
		return fieldTodos(mode, todos, l1, l2[1:])
	default:
		return nil, false
	}
}

// cellTodos is generate_todos_from_strexp's isel analogue: arrays must
// share cardinality, and cell indices must agree syntactically (no
// substitution is threaded through isomorphism finding).
func cellTodos(mode IsoMode, todos []CorresPair, l1, l2 []SECell) ([]CorresPair, bool) {
	if len(l1) != len(l2) {
		return nil, false
	}
	cur := todos
	for i := range l1 {
		if !exprEqual(l1[i].Index, l2[i].Index) {
			return nil, false
		}
		next, ok := generateTodosFromStrexp(mode, cur, l1[i].Value, l2[i].Value)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func oneHeapUpdate(eq ExprEq) isoUpdate[[]Hpred] {
	return func(e1, e2 Expr, remaining []Hpred) (Hpred, Hpred, []Hpred) {
		var h1, h2 Hpred
		state := remaining
		if r, rest, ok := sigmaRemoveHpred(eq, state, e1); ok {
			h1, state = r, rest
		}
		if r, rest, ok := sigmaRemoveHpred(eq, state, e2); ok {
			h2, state = r, rest
		}
		return h1, h2, state
	}
}

// FindPartialIso locates a partial isomorphism within a single heap: both
// sides of every correspondence are extracted from, and removed from, the
// same remaining sigma.
func FindPartialIso(cfg *Config, eq ExprEq, mode IsoMode, sigma []Hpred, todos []CorresPair) (corres []CorresPair, sigma1, sigma2, leftover []Hpred, ok bool) {
	corres, sigma1, sigma2, leftover, ok = genericFindPartialIso(cfg, mode, oneHeapUpdate(eq), nil, nil, nil, todos, sigma)
	return
}

type twoSigmaState struct {
	remaining1, remaining2 []Hpred
}

func twoHeapUpdate(eq ExprEq) isoUpdate[twoSigmaState] {
	return func(e1, e2 Expr, state twoSigmaState) (Hpred, Hpred, twoSigmaState) {
		var h1, h2 Hpred
		next := state
		if r, rest, ok := sigmaRemoveHpred(eq, next.remaining1, e1); ok {
			h1, next.remaining1 = r, rest
		}
		if r, rest, ok := sigmaRemoveHpred(eq, next.remaining2, e2); ok {
			h2, next.remaining2 = r, rest
		}
		return h1, h2, next
	}
}

// FindPartialIsoFromTwoSigmas locates a partial isomorphism between two
// separate heaps: e1's predicate is extracted from sigma1,
// e2's from sigma2.
func FindPartialIsoFromTwoSigmas(cfg *Config, eq ExprEq, mode IsoMode, sigma1, sigma2 []Hpred, todos []CorresPair) (corres, outSigma1, outSigma2, leftover1, leftover2 []Hpred, ok bool) {
	var state twoSigmaState
	corres, outSigma1, outSigma2, state, ok = genericFindPartialIso(cfg, mode, twoHeapUpdate(eq), nil, nil, nil, todos, twoSigmaState{sigma1, sigma2})
	return corres, outSigma1, outSigma2, state.remaining1, state.remaining2, ok
}
