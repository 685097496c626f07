package heapmatch

import (
	"sort"
	"strings"
)

// Subst is a finite mapping from identifiers to expressions — the
// substitution σ of . The matcher binds primed pattern variables; the
// parameter renamings (unfolding, hpara_common_match) also bind a Para's
// own identifiers, whatever their kind. Values are immutable; every mutating
// operation returns a new Subst and leaves its receiver untouched.
type Subst struct {
	bindings map[Ident]Expr
}

// EmptySubst returns the substitution with no bindings.
func EmptySubst() Subst { return Subst{} }

// Lookup returns the expression bound to id and true, or the zero Expr and
// false if id is unbound.
func (s Subst) Lookup(id Ident) (Expr, bool) {
	if s.bindings == nil {
		return nil, false
	}
	e, ok := s.bindings[id]
	return e, ok
}

// Bind records id ↦ e unconditionally, as required by exp_match rule (1)
// when id is a member of the caller's free-variable set V. The data-model
// invariant "dom(σ) is disjoint from V" guarantees id is not already bound;
// if it is, that is a caller bug (a duplicate in V), not a match failure,
// so Bind raises a ContractViolation rather than silently overwriting or
// returning false.
func (s Subst) Bind(id Ident, e Expr) Subst {
	if existing, ok := s.Lookup(id); ok {
		panicContract("Subst.Bind: %s already bound to %s, cannot rebind to %s (duplicate in free-variable set V)", id, existing, e)
	}
	return s.with(id, e)
}

// Extend records id ↦ e, but (unlike Bind) tolerates id already being
// bound: it succeeds as a no-op if the existing binding is syntactically
// equal to e, and fails (returning the receiver unchanged and false)
// otherwise. This is the general "fails if already bound differently"
// extend operation of , used by Join.
func (s Subst) Extend(id Ident, e Expr) (Subst, bool) {
	if existing, ok := s.Lookup(id); ok {
		if exprEqual(existing, e) {
			return s, true
		}
		return s, false
	}
	return s.with(id, e), true
}

func (s Subst) with(id Ident, e Expr) Subst {
	out := make(map[Ident]Expr, len(s.bindings)+1)
	for k, v := range s.bindings {
		out[k] = v
	}
	out[id] = e
	return Subst{bindings: out}
}

// Join merges two substitutions, succeeding iff they agree on every
// identifier bound by both (comparing bound expressions with Apply'd
// syntactic equality is not performed — callers that need structural
// congruence beyond literal equality should Apply before comparing).
func (s Subst) Join(other Subst) (Subst, bool) {
	result := s
	for id, e := range other.bindings {
		var ok bool
		result, ok = result.Extend(id, e)
		if !ok {
			return s, false
		}
	}
	return result, true
}

// Filter returns the sub-substitution of bindings whose identifier
// satisfies keep.
func (s Subst) Filter(keep func(Ident) bool) Subst {
	out := make(map[Ident]Expr, len(s.bindings))
	for k, v := range s.bindings {
		if keep(k) {
			out[k] = v
		}
	}
	return Subst{bindings: out}
}

// Apply substitutes every identifier of e that is in the domain of s
// (primed or unprimed) with its bound expression, recursively, leaving
// unbound identifiers untouched. Applying an idempotent substitution (as produced
// throughout this package, since bindings are never themselves further
// substituted) to its own output is a no-op.
func (s Subst) Apply(e Expr) Expr {
	switch x := e.(type) {
	case ExprVar:
		if bound, ok := s.Lookup(x.ID); ok {
			return bound
		}
		return x
	case ExprSizeof:
		return ExprSizeof{Type: s.Apply(x.Type)}
	case ExprCast:
		return ExprCast{Type: s.Apply(x.Type), Sub: s.Apply(x.Sub)}
	case ExprUnOp:
		var t Expr
		if x.Type != nil {
			t = s.Apply(x.Type)
		}
		return ExprUnOp{Op: x.Op, Sub: s.Apply(x.Sub), Type: t}
	case ExprBinOp:
		return ExprBinOp{Op: x.Op, Left: s.Apply(x.Left), Right: s.Apply(x.Right)}
	case ExprLfield:
		return ExprLfield{Base: s.Apply(x.Base), Field: x.Field, Type: s.Apply(x.Type)}
	case ExprLindex:
		return ExprLindex{Base: s.Apply(x.Base), Index: s.Apply(x.Index)}
	default:
		// ExprConst, ExprLvar: no sub-structure to rewrite.
		return e
	}
}

// ApplyStrExp applies s throughout a structured-expression value.
func (s Subst) ApplyStrExp(se StrExp) StrExp {
	switch x := se.(type) {
	case SEAtom:
		return SEAtom{Value: s.Apply(x.Value), Inst: x.Inst}
	case SERecord:
		fields := make([]SEField, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = SEField{Field: f.Field, Value: s.ApplyStrExp(f.Value)}
		}
		return SERecord{Fields: fields, Inst: x.Inst}
	case SEArray:
		cells := make([]SECell, len(x.Cells))
		for i, c := range x.Cells {
			cells[i] = SECell{Index: s.Apply(c.Index), Value: s.ApplyStrExp(c.Value)}
		}
		return SEArray{Size: s.Apply(x.Size), Cells: cells, Inst: x.Inst}
	default:
		return se
	}
}

// Domain returns the bound identifiers in ascending Ident order (Less),
// giving callers (and tests) deterministic iteration.
func (s Subst) Domain() []Ident {
	out := make([]Ident, 0, len(s.bindings))
	for k := range s.bindings {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Size returns the number of bindings.
func (s Subst) Size() int { return len(s.bindings) }

// String renders the substitution for debugging and trace logging.
func (s Subst) String() string {
	dom := s.Domain()
	if len(dom) == 0 {
		return "{}"
	}
	parts := make([]string, len(dom))
	for i, id := range dom {
		e, _ := s.Lookup(id)
		parts[i] = id.String() + "=" + e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// VarSet is the free-variable set V threaded through matching: the set of
// primed identifiers the matcher is still permitted to bind. VarSet values
// are immutable; Add/Remove/Without return new sets.
type VarSet struct {
	ids map[Ident]struct{}
}

// NewVarSet builds a VarSet containing exactly the given identifiers.
// Passing a duplicate is itself harmless (sets dedup), but callers must
// never rely on a duplicate being present twice; NewVarSet does not check
// for this since a set cannot represent it.
func NewVarSet(ids ...Ident) *VarSet {
	m := make(map[Ident]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return &VarSet{ids: m}
}

// Has reports whether id is a member.
func (v *VarSet) Has(id Ident) bool {
	if v == nil {
		return false
	}
	_, ok := v.ids[id]
	return ok
}

// Remove returns a new VarSet without id.
func (v *VarSet) Remove(id Ident) *VarSet {
	out := make(map[Ident]struct{}, len(v.ids))
	for k := range v.ids {
		if k != id {
			out[k] = struct{}{}
		}
	}
	return &VarSet{ids: out}
}

// Add returns a new VarSet with id inserted.
func (v *VarSet) Add(id Ident) *VarSet {
	out := make(map[Ident]struct{}, len(v.ids)+1)
	for k := range v.ids {
		out[k] = struct{}{}
	}
	out[id] = struct{}{}
	return &VarSet{ids: out}
}

// Union returns a new VarSet containing every member of v and other.
func (v *VarSet) Union(other *VarSet) *VarSet {
	out := make(map[Ident]struct{}, len(v.ids)+len(other.ids))
	for k := range v.ids {
		out[k] = struct{}{}
	}
	for k := range other.ids {
		out[k] = struct{}{}
	}
	return &VarSet{ids: out}
}

// Without returns a new VarSet with every identifier in ids removed.
func (v *VarSet) Without(ids []Ident) *VarSet {
	out := v
	for _, id := range ids {
		out = out.Remove(id)
	}
	return out
}

// Len returns the number of members.
func (v *VarSet) Len() int { return len(v.ids) }

// ToSlice returns the members in ascending Ident order.
func (v *VarSet) ToSlice() []Ident {
	out := make([]Ident, 0, len(v.ids))
	for k := range v.ids {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (v *VarSet) String() string {
	ids := v.ToSlice()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
