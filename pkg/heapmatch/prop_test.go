package heapmatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateIterEmptyProp(t *testing.T) {
	_, ok := CreateIter(NewProp())
	require.False(t, ok)
}

func TestSliceIterFindAndRemove(t *testing.T) {
	a, b := pv("a"), pv("b")
	h1 := PointsTo{RootE: a, Value: SEAtom{Value: konst(1)}, Typ: konst("int")}
	h2 := PointsTo{RootE: b, Value: SEAtom{Value: konst(2)}, Typ: konst("int")}
	p := NewProp(h1, h2)

	iter, ok := CreateIter(p)
	require.True(t, ok)

	found, ok := iter.Find(func(h Hpred) (Subst, *VarSet, bool) {
		concrete, isPT := h.(PointsTo)
		if !isPT || !exprEqual(concrete.RootE, b) {
			return Subst{}, nil, false
		}
		return EmptySubst(), NewVarSet(), true
	})
	require.True(t, ok)
	cur, _, _ := found.Current()
	require.Equal(t, h2, cur)

	rest := found.RemoveCurrThenToProp()
	require.Len(t, rest.Sigma, 1)
	require.Equal(t, h1, rest.Sigma[0])
}

func TestSliceIterNextExhausts(t *testing.T) {
	p := NewProp(
		PointsTo{RootE: pv("a"), Value: SEAtom{Value: konst(1)}, Typ: konst("int")},
		PointsTo{RootE: pv("b"), Value: SEAtom{Value: konst(2)}, Typ: konst("int")},
	)
	iter, ok := CreateIter(p)
	require.True(t, ok)

	iter, ok = iter.Next()
	require.True(t, ok)

	_, ok = iter.Next()
	require.False(t, ok)
}
