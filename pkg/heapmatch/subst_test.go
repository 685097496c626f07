package heapmatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubstBindPanicsOnRebind(t *testing.T) {
	id := NewPrimed("v", 1)
	s := EmptySubst().Bind(id, konst(1))
	require.Panics(t, func() { s.Bind(id, konst(2)) })
}

func TestSubstExtendToleratesEqualRebind(t *testing.T) {
	id := NewPrimed("v", 1)
	s := EmptySubst().Bind(id, konst(1))
	s2, ok := s.Extend(id, konst(1))
	require.True(t, ok)
	require.Equal(t, s, s2)

	_, ok = s.Extend(id, konst(2))
	require.False(t, ok)
}

func TestSubstJoinFailsOnDisagreement(t *testing.T) {
	id := NewPrimed("v", 1)
	a := EmptySubst().Bind(id, konst(1))
	b := EmptySubst().Bind(id, konst(2))
	_, ok := a.Join(b)
	require.False(t, ok)
}

func TestSubstApplyIsIdempotentOnItsOwnOutput(t *testing.T) {
	id := NewPrimed("v", 1)
	s := EmptySubst().Bind(id, konst(42))
	once := s.Apply(vvar("v", 1))
	twice := s.Apply(once)
	require.Equal(t, once, twice)
}

func TestVarSetAddRemoveImmutable(t *testing.T) {
	v := NewVarSet(NewPrimed("a", 1))
	v2 := v.Add(NewPrimed("b", 1))
	require.False(t, v.Has(NewPrimed("b", 1)), "Add must not mutate the receiver")
	require.True(t, v2.Has(NewPrimed("b", 1)))

	v3 := v2.Remove(NewPrimed("a", 1))
	require.True(t, v2.Has(NewPrimed("a", 1)), "Remove must not mutate the receiver")
	require.False(t, v3.Has(NewPrimed("a", 1)))
}
