package heapmatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// trivialPara is a one-cell Lseg parameter whose body is a single PointsTo
// fact rooted at Root, used wherever a scenario needs "some para" without
// caring about its internal shape.
func trivialPara() Para {
	root := NewIdent("r")
	next := NewIdent("n")
	return Para{
		Root: root,
		Next: next,
		Body: []Hpred{
			PointsTo{RootE: ExprVar{ID: root}, Value: SEAtom{Value: ExprVar{ID: next}}, Typ: konst("cell")},
		},
	}
}

// Scenario 1: a single points-to fact matches a points-to pattern
// whose value side is an unbound pattern variable; the variable gets bound
// and the heap is fully consumed.
func TestScenario1_PointsToBindsValue(t *testing.T) {
	x := pv("x")
	tau := konst("int")
	p := NewProp(PointsTo{RootE: x, Value: SEAtom{Value: konst(7)}, Typ: tau})
	V := NewVarSet(NewPrimed("v", 1))
	pattern := PointsTo{RootE: x, Value: SEAtom{Value: vvar("v", 1)}, Typ: tau}

	sigma, leftover, ok := PropMatchWithImpl(NewConfig(), p, TruePhi, V, HPat{Pred: pattern}, nil)
	require.True(t, ok)
	bound, found := sigma.Lookup(NewPrimed("v", 1))
	require.True(t, found)
	require.Equal(t, konst(7), bound)
	require.Empty(t, leftover.Sigma)
}

// Scenario 2: a PE focus can never stand in for an NE pattern,
// and unfolding an NE pattern against a heap with no matching predicate
// shape still fails.
func TestScenario2_PEFocusCannotSatisfyNEPattern(t *testing.T) {
	para := trivialPara()
	a, b := pv("a"), pv("b")
	p := NewProp(Lseg{K: PE, P: para, From: a, To: b})
	pattern := Lseg{K: NE, P: para, From: a, To: b}

	_, _, ok := PropMatchWithImpl(NewConfig(), p, TruePhi, NewVarSet(), HPat{Pred: pattern, ImplFlag: true}, nil)
	require.False(t, ok)
}

// Scenario 3: an NE focus satisfies a PE pattern with the
// substitution left unchanged and the heap fully consumed.
func TestScenario3_NEFocusSatisfiesPEPattern(t *testing.T) {
	para := trivialPara()
	a, b := pv("a"), pv("b")
	p := NewProp(Lseg{K: NE, P: para, From: a, To: b})
	pattern := Lseg{K: PE, P: para, From: a, To: b}

	sigma, leftover, ok := PropMatchWithImpl(NewConfig(), p, TruePhi, NewVarSet(), HPat{Pred: pattern, ImplFlag: true}, nil)
	require.True(t, ok)
	require.Equal(t, 0, sigma.Size())
	require.Empty(t, leftover.Sigma)
}

// Scenario 4: an empty heap satisfies a PE list-segment pattern
// whose endpoints are the same still-unbound pattern variable, collapsing
// via instantiate_to_emp.
func TestScenario4_EmptyHeapCollapsesReflexiveSegment(t *testing.T) {
	para := trivialPara()
	u := vvar("u", 1)
	V := NewVarSet(NewPrimed("u", 1))
	pattern := Lseg{K: PE, P: para, From: u, To: u}

	_, leftover, ok := PropMatchWithImpl(NewConfig(), NewProp(), TruePhi, V, HPat{Pred: pattern, ImplFlag: true}, nil)
	require.True(t, ok)
	require.Empty(t, leftover.Sigma)
}

// Scenario 5: find_partial_iso discovers the correspondence
// between two points-to facts whose roots are swapped, leaving no leftover.
func TestScenario5_FindPartialIsoMatchesSwappedRoots(t *testing.T) {
	a, b := pv("a"), pv("b")
	sigma := []Hpred{
		PointsTo{RootE: a, Value: SEAtom{Value: konst(5)}, Typ: konst("int")},
		PointsTo{RootE: b, Value: SEAtom{Value: konst(5)}, Typ: konst("int")},
	}
	corres, sigma1, sigma2, leftover, ok := FindPartialIso(NewConfig(), ExactEq, Exact, sigma, []CorresPair{{a, b}})
	require.True(t, ok)
	require.Empty(t, leftover)
	require.Len(t, sigma1, 1)
	require.Len(t, sigma2, 1)
	require.Equal(t, a, sigma1[0].Root())
	require.Equal(t, b, sigma2[0].Root())
	require.True(t, corresContains(corres, a, b))
}

// Scenario 6: record field-set mismatch fails under Exact but
// succeeds under LFieldForget when the larger record is on the left,
// emitting obligations only for the shared fields.
func TestScenario6_FieldForgettingTolerance(t *testing.T) {
	fg := []SEField{field("f", SEAtom{Value: konst(1)}), field("g", SEAtom{Value: konst(2)})}
	f := []SEField{field("f", SEAtom{Value: konst(1)})}

	_, ok := generateTodosFromStrexp(Exact, nil, SERecord{Fields: fg}, SERecord{Fields: f})
	require.False(t, ok)

	todos, ok := generateTodosFromStrexp(LFieldForget, nil, SERecord{Fields: fg}, SERecord{Fields: f})
	require.True(t, ok)
	require.Len(t, todos, 1)
	require.Equal(t, CorresPair{konst(1), konst(1)}, todos[0])
}

// Empty-pattern identity: instantiate_to_emp on
// an empty pattern list is the identity on (sigma, P).
func TestEmptyPatternIdentity(t *testing.T) {
	p := NewProp(PointsTo{RootE: pv("x"), Value: SEAtom{Value: konst(1)}, Typ: konst("int")})
	sigma := EmptySubst().Bind(NewPrimed("v", 1), konst(9))
	outSigma, outProp, ok := instantiateToEmp(p, TruePhi, sigma, NewVarSet(), nil)
	require.True(t, ok)
	require.Equal(t, sigma, outSigma)
	require.Equal(t, p, outProp)
}

// Kind subsumption.
func TestKindSubsumptionExhaustive(t *testing.T) {
	require.True(t, kindSubsumes(NE, NE))
	require.True(t, kindSubsumes(NE, PE))
	require.True(t, kindSubsumes(PE, PE))
	require.False(t, kindSubsumes(PE, NE))
}

// Parameter-match symmetry for hpara_iso.
func TestHparaIsoReflexive(t *testing.T) {
	para := trivialPara()
	require.True(t, HparaIso(NewConfig(), para, para))
}
