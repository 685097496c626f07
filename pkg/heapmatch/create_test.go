package heapmatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHparaCreateRoundTrip checks the round-trip-of-hpara_create testable
// property from : given a correspondence built from two isomorphic
// sub-heaps, the synthesised para's body, instantiated at the first heap's
// root/next and the returned shared-expression list, matches the first
// heap lifted to PE.
func TestHparaCreateRoundTrip(t *testing.T) {
	r1, n1 := pv("r1"), pv("n1")
	r2, n2 := pv("r2"), pv("n2")
	body1 := []Hpred{PointsTo{RootE: r1, Value: SEAtom{Value: n1}, Typ: konst("cell")}}
	corres := []CorresPair{{r1, r2}, {n1, n2}}

	para, shared := HparaCreate(NewConfig(), corres, body1, r1, n1)
	require.Empty(t, shared, "root/next are excluded from the shared-variable list")
	require.Empty(t, para.Svars)
	require.Empty(t, para.Evars, "n1 is next1, so it is in elist1 and is excluded from the evars as well")

	instantiated := EmptySubst().
		Bind(para.Root, r1).
		Bind(para.Next, n1)
	got := applyHpredList(instantiated, para.Body)
	want := sigmaLiftToPE(body1)
	require.Equal(t, want, got)
}

// TestHparaCreateSharedVariablesSurvive checks that a corres pair whose two
// sides are syntactically equal becomes a shared formal parameter (svar),
// threaded back out through es_shared in the same order as Svars.
func TestHparaCreateSharedVariablesSurvive(t *testing.T) {
	r1, n1 := pv("r1"), pv("n1")
	shared1 := pv("s")
	body1 := []Hpred{PointsTo{RootE: r1, Value: SEAtom{Value: shared1}, Typ: konst("cell")}}
	corres := []CorresPair{{r1, pv("r2")}, {n1, pv("n2")}, {shared1, shared1}}

	para, sharedSrc := HparaCreate(NewConfig(), corres, body1, r1, n1)
	require.Len(t, para.Svars, 1)
	require.Equal(t, []Expr{shared1}, sharedSrc)
}

func TestHparaDllCreateProducesNonEmptyBody(t *testing.T) {
	cell1, blink1, flink1 := pv("c1"), pv("b1"), pv("f1")
	body1 := []Hpred{PointsTo{RootE: cell1, Value: SEAtom{Value: flink1}, Typ: konst("cell")}}
	corres := []CorresPair{{cell1, pv("c2")}, {blink1, pv("b2")}, {flink1, pv("f2")}}

	para, shared := HparaDllCreate(NewConfig(), corres, body1, cell1, blink1, flink1)
	require.NotEmpty(t, para.BodyDll)
	require.Empty(t, shared)
}
