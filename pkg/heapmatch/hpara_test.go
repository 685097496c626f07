package heapmatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHparaMatchRenamesIdentifiersConsistently(t *testing.T) {
	r1, n1 := NewIdent("r1"), NewIdent("n1")
	p1 := Para{Root: r1, Next: n1, Body: []Hpred{
		PointsTo{RootE: ExprVar{ID: r1}, Value: SEAtom{Value: ExprVar{ID: n1}}, Typ: konst("cell")},
	}}
	r2, n2 := NewIdent("r2"), NewIdent("n2")
	p2 := Para{Root: r2, Next: n2, Body: []Hpred{
		PointsTo{RootE: ExprVar{ID: r2}, Value: SEAtom{Value: ExprVar{ID: n2}}, Typ: konst("cell")},
	}}
	require.True(t, HparaMatch(NewConfig(), false, p1, p2))
}

func TestHparaMatchPanicsOnArityMismatch(t *testing.T) {
	p1 := trivialPara()
	p2 := Para{Root: NewIdent("r2"), Next: NewIdent("n2"), Svars: []Ident{NewIdent("s2")}, Body: []Hpred{
		PointsTo{RootE: ExprVar{ID: NewIdent("r2")}, Value: SEAtom{Value: konst(1)}, Typ: konst("cell")},
	}}
	require.Panics(t, func() { HparaMatch(NewConfig(), false, p1, p2) })
}

func TestHparaMatchFailsWhenBodiesDiffer(t *testing.T) {
	r1, n1 := NewIdent("r1"), NewIdent("n1")
	p1 := Para{Root: r1, Next: n1, Body: []Hpred{
		PointsTo{RootE: ExprVar{ID: r1}, Value: SEAtom{Value: konst(1)}, Typ: konst("cell")},
	}}
	r2, n2 := NewIdent("r2"), NewIdent("n2")
	p2 := Para{Root: r2, Next: n2, Body: []Hpred{
		PointsTo{RootE: ExprVar{ID: r2}, Value: SEAtom{Value: konst(2)}, Typ: konst("cell")},
	}}
	require.False(t, HparaMatch(NewConfig(), false, p1, p2))
}

func TestHparaDllIsoReflexive(t *testing.T) {
	cell, blink, flink := NewIdent("c"), NewIdent("b"), NewIdent("f")
	p := ParaDll{Cell: cell, Blink: blink, Flink: flink, BodyDll: []Hpred{
		PointsTo{RootE: ExprVar{ID: cell}, Value: SEAtom{Value: ExprVar{ID: flink}}, Typ: konst("cell")},
	}}
	require.True(t, HparaDllIso(NewConfig(), p, p))
}
