package heapmatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindPartialIsoFromTwoSigmasDisjointHeaps(t *testing.T) {
	a, b := pv("a"), pv("b")
	sigma1 := []Hpred{PointsTo{RootE: a, Value: SEAtom{Value: konst(1)}, Typ: konst("int")}}
	sigma2 := []Hpred{PointsTo{RootE: b, Value: SEAtom{Value: konst(1)}, Typ: konst("int")}}

	corres, out1, out2, left1, left2, ok := FindPartialIsoFromTwoSigmas(NewConfig(), ExactEq, Exact, sigma1, sigma2, []CorresPair{{a, b}})
	require.True(t, ok)
	require.Empty(t, left1)
	require.Empty(t, left2)
	require.Len(t, out1, 1)
	require.Len(t, out2, 1)
	require.True(t, corresContains(corres, a, b))
}

func TestFindPartialIsoFailsOnTypeMismatch(t *testing.T) {
	a, b := pv("a"), pv("b")
	sigma := []Hpred{
		PointsTo{RootE: a, Value: SEAtom{Value: konst(1)}, Typ: konst("int")},
		PointsTo{RootE: b, Value: SEAtom{Value: konst(1)}, Typ: konst("long")},
	}
	_, _, _, _, ok := FindPartialIso(NewConfig(), ExactEq, Exact, sigma, []CorresPair{{a, b}})
	require.False(t, ok)
}

func TestFindPartialIsoLsegRequiresParaIso(t *testing.T) {
	p1 := trivialPara()
	p2 := Para{Root: NewIdent("r2"), Next: NewIdent("n2"), Body: []Hpred{
		PointsTo{RootE: ExprVar{ID: NewIdent("r2")}, Value: SEAtom{Value: konst(99)}, Typ: konst("cell")},
	}}
	a, b := pv("a"), pv("b")
	c, d := pv("c"), pv("d")
	sigma := []Hpred{
		Lseg{K: NE, P: p1, From: a, To: c},
		Lseg{K: NE, P: p2, From: b, To: d},
	}
	_, _, _, _, ok := FindPartialIso(NewConfig(), ExactEq, Exact, sigma, []CorresPair{{a, b}})
	require.False(t, ok, "the two lseg parameters bind structurally different bodies and are not isomorphic")
}

func TestFieldTodosRFieldForgetToleratesExtraRightFields(t *testing.T) {
	l := []SEField{field("f", SEAtom{Value: konst(1)})}
	r := []SEField{field("f", SEAtom{Value: konst(1)}), field("g", SEAtom{Value: konst(2)})}
	todos, ok := fieldTodos(RFieldForget, nil, l, r)
	require.True(t, ok)
	require.Len(t, todos, 1)
}

func TestCellTodosRequireMatchingIndicesAndCardinality(t *testing.T) {
	l1 := []SECell{{Index: konst(0), Value: SEAtom{Value: konst(1)}}}
	l2 := []SECell{{Index: konst(1), Value: SEAtom{Value: konst(1)}}}
	_, ok := cellTodos(Exact, nil, l1, l2)
	require.False(t, ok)

	l2 = []SECell{{Index: konst(0), Value: SEAtom{Value: konst(1)}}}
	todos, ok := cellTodos(Exact, nil, l1, l2)
	require.True(t, ok)
	require.Equal(t, []CorresPair{{konst(1), konst(1)}}, todos)
}

func TestCorresRelatedAndExtensible(t *testing.T) {
	a, b, c := pv("a"), pv("b"), pv("c")
	corres := []CorresPair{{a, b}}
	require.True(t, corresRelated(corres, a, b))
	require.False(t, corresRelated(corres, a, c))
	require.False(t, corresExtensible(corres, a, b), "a is already mentioned, cannot be re-extended")
	require.False(t, corresExtensible(corres, c, c), "identical expressions are never extensible")
}
