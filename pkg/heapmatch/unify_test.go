package heapmatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func vvar(name string, seq int64) ExprVar { return ExprVar{ID: NewPrimed(name, seq)} }
func pv(name string) ExprLvar             { return ExprLvar{PV: NewIdent(name)} }
func konst(v any) ExprConst               { return ExprConst{Value: v} }

func TestExpMatchBindsPatternVariable(t *testing.T) {
	V := NewVarSet(NewPrimed("v", 1))
	sigma, v, ok := ExpMatch(konst(7), EmptySubst(), V, vvar("v", 1))
	require.True(t, ok)
	bound, found := sigma.Lookup(NewPrimed("v", 1))
	require.True(t, found)
	require.Equal(t, konst(7), bound)
	require.False(t, v.Has(NewPrimed("v", 1)))
}

func TestExpMatchUnprimedVarRequiresSyntacticAgreement(t *testing.T) {
	V := NewVarSet()
	_, _, ok := ExpMatch(konst(1), EmptySubst(), V, ExprVar{ID: NewIdent("x")})
	require.False(t, ok)

	sigma := EmptySubst()
	x := ExprVar{ID: NewIdent("x")}
	_, _, ok = ExpMatch(x, sigma, V, x)
	require.True(t, ok)
}

func TestExpMatchConstsCompareBySyntacticEquality(t *testing.T) {
	V := NewVarSet()
	_, _, ok := ExpMatch(konst(1), EmptySubst(), V, konst(1))
	require.True(t, ok)
	_, _, ok = ExpMatch(konst(1), EmptySubst(), V, konst(2))
	require.False(t, ok)
}

func TestExpMatchLvarNeverBinds(t *testing.T) {
	V := NewVarSet(NewPrimed("v", 1))
	_, _, ok := ExpMatch(pv("p"), EmptySubst(), V, pv("p"))
	require.True(t, ok)
	_, _, ok = ExpMatch(pv("p"), EmptySubst(), V, pv("q"))
	require.False(t, ok)
}

func TestExpMatchLeftBareVarNeverAbstracts(t *testing.T) {
	V := NewVarSet()
	_, _, ok := ExpMatch(ExprVar{ID: NewIdent("x")}, EmptySubst(), V, konst(1))
	require.False(t, ok)
}

func TestExpMatchStructuralRecursion(t *testing.T) {
	V := NewVarSet(NewPrimed("v", 1))
	e1 := ExprBinOp{Op: "+", Left: konst(1), Right: konst(2)}
	e2 := ExprBinOp{Op: "+", Left: konst(1), Right: vvar("v", 1)}
	sigma, _, ok := ExpMatch(e1, EmptySubst(), V, e2)
	require.True(t, ok)
	bound, _ := sigma.Lookup(NewPrimed("v", 1))
	require.Equal(t, konst(2), bound)

	_, _, ok = ExpMatch(e1, EmptySubst(), V, ExprBinOp{Op: "-", Left: konst(1), Right: vvar("v", 1)})
	require.False(t, ok)
}

func TestExpMatchCastIgnoresType(t *testing.T) {
	V := NewVarSet()
	e1 := ExprCast{Type: konst("int"), Sub: konst(1)}
	e2 := ExprCast{Type: konst("long"), Sub: konst(1)}
	_, _, ok := ExpMatch(e1, EmptySubst(), V, e2)
	require.True(t, ok)
}

func TestExpMatchLfieldRequiresEqualField(t *testing.T) {
	V := NewVarSet()
	base := konst(0)
	e1 := ExprLfield{Base: base, Field: NewField("next"), Type: konst("T")}
	e2 := ExprLfield{Base: base, Field: NewField("prev"), Type: konst("T")}
	_, _, ok := ExpMatch(e1, EmptySubst(), V, e2)
	require.False(t, ok)
}

func TestExpListMatchPanicsOnLengthMismatch(t *testing.T) {
	require.Panics(t, func() {
		ExpListMatch([]Expr{konst(1)}, EmptySubst(), NewVarSet(), nil)
	})
}

func TestExpListMatchThreadsSubstitutionAcrossElements(t *testing.T) {
	V := NewVarSet(NewPrimed("v", 1), NewPrimed("v", 1))
	es1 := []Expr{konst(1), konst(1)}
	es2 := []Expr{vvar("v", 1), vvar("v", 1)}
	sigma, _, ok := ExpListMatch(es1, EmptySubst(), V, es2)
	require.True(t, ok)
	require.Equal(t, 1, sigma.Size())
}
