package heapmatch

import "fmt"

// Expr is the term-algebra expression type the matcher operates over:
// variables (primed/unprimed), constants, sizeof, casts, unary/binary
// operators, program variables, field access, and array indexing.
//
// Expr is a closed sum type implemented as an interface with a private
// method so that heapmatch is the only package that can add variants; the
// unifier's exhaustive type switches (unify.go) depend on that closure.
type Expr interface {
	fmt.Stringer
	exprNode()
}

// ExprVar is a logic (or program-level) variable occurring in expression
// position. Whether it is eligible for unification depends on its Ident's
// Kind and on membership in the caller's free-variable set, not on its
// syntactic position.
type ExprVar struct{ ID Ident }

func (ExprVar) exprNode() {}
func (e ExprVar) String() string { return e.ID.String() }

// ExprConst is a literal constant: a number, string, or other comparable
// Go value standing for itself.
type ExprConst struct{ Value any }

func (ExprConst) exprNode() {}
func (e ExprConst) String() string { return fmt.Sprintf("%v", e.Value) }

// ExprSizeof is `sizeof(t)` for some type expression t.
type ExprSizeof struct{ Type Expr }

func (ExprSizeof) exprNode() {}
func (e ExprSizeof) String() string { return fmt.Sprintf("sizeof(%s)", e.Type) }

// ExprCast is `(t) e`, a type cast applied to a sub-expression. The cast's
// type is carried for pretty-printing only: exp_match ignores it and recurses on the sub-expression alone.
type ExprCast struct {
	Type Expr
	Sub  Expr
}

func (ExprCast) exprNode() {}
func (e ExprCast) String() string { return fmt.Sprintf("(%s)%s", e.Type, e.Sub) }

// ExprUnOp is a unary operator applied to a sub-expression, with an
// optional result type (nil when absent). Matching requires equal
// operators; the type is not compared.
type ExprUnOp struct {
	Op   string
	Sub  Expr
	Type Expr // may be nil
}

func (ExprUnOp) exprNode() {}
func (e ExprUnOp) String() string { return fmt.Sprintf("%s%s", e.Op, e.Sub) }

// ExprBinOp is a binary operator applied to two sub-expressions, matched
// syntactically: operators must agree and the two sides are compared
// left-to-right, with no commutativity normalisation.
type ExprBinOp struct {
	Op          string
	Left, Right Expr
}

func (ExprBinOp) exprNode() {}
func (e ExprBinOp) String() string { return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right) }

// ExprLvar is a program variable (as opposed to a logic variable): it is
// compared for syntactic equality only, never bound by the matcher.
type ExprLvar struct{ PV Ident }

func (ExprLvar) exprNode() {}
func (e ExprLvar) String() string { return "&" + e.PV.String() }

// ExprLfield is field access `base->field` (or `base.field`) at the given
// type. Matching requires equal field identifiers and recurses on the
// base.
type ExprLfield struct {
	Base  Expr
	Field FieldIdent
	Type  Expr
}

func (ExprLfield) exprNode() {}
func (e ExprLfield) String() string { return fmt.Sprintf("%s.%s", e.Base, e.Field) }

// ExprLindex is array indexing `base[index]`. Matching recurses on the
// base then on the index.
type ExprLindex struct {
	Base  Expr
	Index Expr
}

func (ExprLindex) exprNode() {}
func (e ExprLindex) String() string { return fmt.Sprintf("%s[%s]", e.Base, e.Index) }

// exprEqual is syntactic (non-unifying) structural equality: used by the
// unprimed-variable rule of ExpMatch, the index comparison in IselMatch,
// and the isomorphism finder's extensibility check (e1 != e2).
func exprEqual(a, b Expr) bool {
	switch x := a.(type) {
	case ExprVar:
		y, ok := b.(ExprVar)
		return ok && x.ID.Equal(y.ID)
	case ExprConst:
		y, ok := b.(ExprConst)
		return ok && x.Value == y.Value
	case ExprSizeof:
		y, ok := b.(ExprSizeof)
		return ok && exprEqual(x.Type, y.Type)
	case ExprCast:
		y, ok := b.(ExprCast)
		return ok && exprEqual(x.Sub, y.Sub)
	case ExprUnOp:
		y, ok := b.(ExprUnOp)
		return ok && x.Op == y.Op && exprEqual(x.Sub, y.Sub)
	case ExprBinOp:
		y, ok := b.(ExprBinOp)
		return ok && x.Op == y.Op && exprEqual(x.Left, y.Left) && exprEqual(x.Right, y.Right)
	case ExprLvar:
		y, ok := b.(ExprLvar)
		return ok && x.PV.Equal(y.PV)
	case ExprLfield:
		y, ok := b.(ExprLfield)
		return ok && x.Field.Equal(y.Field) && exprEqual(x.Base, y.Base)
	case ExprLindex:
		y, ok := b.(ExprLindex)
		return ok && exprEqual(x.Base, y.Base) && exprEqual(x.Index, y.Index)
	default:
		return false
	}
}

// exprVars collects, in order of first occurrence, every primed Ident
// occurring free in e. Used by the empty-heap instantiator and the
// unfold branch to check "fully instantiated under V" side conditions.
func exprVars(e Expr) []Ident {
	var out []Ident
	seen := map[Ident]bool{}
	var walk func(Expr)
	walk = func(e Expr) {
		switch x := e.(type) {
		case ExprVar:
			if x.ID.IsPrimed() && !seen[x.ID] {
				seen[x.ID] = true
				out = append(out, x.ID)
			}
		case ExprSizeof:
			walk(x.Type)
		case ExprCast:
			walk(x.Type)
			walk(x.Sub)
		case ExprUnOp:
			walk(x.Sub)
			if x.Type != nil {
				walk(x.Type)
			}
		case ExprBinOp:
			walk(x.Left)
			walk(x.Right)
		case ExprLfield:
			walk(x.Base)
			walk(x.Type)
		case ExprLindex:
			walk(x.Base)
			walk(x.Index)
		}
	}
	walk(e)
	return out
}

// exprLess gives array index expressions the total order required for
// sorted array-cell lists. Ordering indices structurally would need a
// full term comparison; the canonical printed form is enough to keep
// construction deterministic and is never consulted by matching itself
// (IselMatch walks both cell lists in lock-step rather than re-sorting
// them).
func exprLess(a, b Expr) bool { return a.String() < b.String() }

// isFullyInstantiated reports whether no identifier in V occurs free in e.
// It is the side condition checked by emptyBranchReady, by the Dllseg
// unfold branch (on iF), and by IselMatch on pattern indices.
func isFullyInstantiated(e Expr, V *VarSet) bool {
	for _, id := range exprVars(e) {
		if V.Has(id) {
			return false
		}
	}
	return true
}
