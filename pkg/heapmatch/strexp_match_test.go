package heapmatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func field(name string, se StrExp) SEField { return SEField{Field: NewField(name), Value: se} }

func TestStrExpMatchAtom(t *testing.T) {
	V := NewVarSet(NewPrimed("v", 1))
	se1 := SEAtom{Value: konst(7)}
	se2 := SEAtom{Value: vvar("v", 1)}
	sigma, _, ok := StrExpMatch(se1, EmptySubst(), V, se2, 0)
	require.True(t, ok)
	bound, _ := sigma.Lookup(NewPrimed("v", 1))
	require.Equal(t, konst(7), bound)
}

func TestFselMatchExactRequiresEqualFieldSets(t *testing.T) {
	V := NewVarSet()
	l1 := NewRecord([]SEField{field("f", SEAtom{Value: konst(1)}), field("g", SEAtom{Value: konst(2)})}, nil).Fields
	l2 := NewRecord([]SEField{field("f", SEAtom{Value: konst(1)})}, nil).Fields
	_, _, ok := FselMatch(l1, EmptySubst(), V, l2, 0)
	require.False(t, ok)
}

func TestFselMatchLeftFieldForgettingToleratesExtraLeftFields(t *testing.T) {
	V := NewVarSet()
	l1 := NewRecord([]SEField{field("f", SEAtom{Value: konst(1)}), field("g", SEAtom{Value: konst(2)})}, nil).Fields
	l2 := NewRecord([]SEField{field("f", SEAtom{Value: konst(1)})}, nil).Fields
	_, _, ok := FselMatch(l1, EmptySubst(), V, l2, 1)
	require.True(t, ok)
}

func TestFselMatchMissingLeftFieldAlwaysFails(t *testing.T) {
	V := NewVarSet()
	l1 := NewRecord([]SEField{field("f", SEAtom{Value: konst(1)})}, nil).Fields
	l2 := NewRecord([]SEField{field("f", SEAtom{Value: konst(1)}), field("g", SEAtom{Value: konst(2)})}, nil).Fields
	_, _, ok := FselMatch(l1, EmptySubst(), V, l2, 1)
	require.False(t, ok, "field-forgetting only tolerates extra fields on the left, never a missing required field")
}

func TestIselMatchRequiresEqualCardinalityAndGroundIndices(t *testing.T) {
	V := NewVarSet()
	l1 := NewArray(konst(2), []SECell{
		{Index: konst(0), Value: SEAtom{Value: konst(10)}},
		{Index: konst(1), Value: SEAtom{Value: konst(11)}},
	}, nil).Cells
	l2 := NewArray(konst(2), []SECell{
		{Index: konst(0), Value: SEAtom{Value: konst(10)}},
		{Index: konst(1), Value: SEAtom{Value: konst(11)}},
	}, nil).Cells
	_, _, ok := IselMatch(l1, EmptySubst(), V, l2, 0)
	require.True(t, ok)

	short := l2[:1]
	_, _, ok = IselMatch(l1, EmptySubst(), V, short, 0)
	require.False(t, ok)
}

func TestIselMatchPanicsWhenIndexStillFree(t *testing.T) {
	V := NewVarSet(NewPrimed("i", 1))
	l1 := []SECell{{Index: konst(0), Value: SEAtom{Value: konst(1)}}}
	l2 := []SECell{{Index: vvar("i", 1), Value: SEAtom{Value: konst(1)}}}
	require.Panics(t, func() {
		IselMatch(l1, EmptySubst(), V, l2, 0)
	})
}

func TestStrExpMatchArrayRequiresEqualSize(t *testing.T) {
	V := NewVarSet()
	se1 := NewArray(konst(2), nil, nil)
	se2 := NewArray(konst(3), nil, nil)
	_, _, ok := StrExpMatch(se1, EmptySubst(), V, se2, 0)
	require.False(t, ok)
}
