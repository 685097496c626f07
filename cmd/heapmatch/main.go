// This program walks through the matcher's main operations end to end:
// matching a points-to fact, matching and discharging a list segment,
// finding a partial isomorphism between two heaps, and synthesising a
// list-cell parameter from a pair of concrete cells.
package main

import (
	"fmt"

	"github.com/gitrdm/heapmatch/pkg/heapmatch"
)

func main() {
	fmt.Println("=== heapmatch walkthrough ===")
	fmt.Println()

	pointsToMatch()
	listSegmentMatch()
	partialIsomorphism()
	parameterSynthesis()
}

// pointsToMatch demonstrates matching a single points-to fact and reading
// the binding it produces out of the resulting substitution.
func pointsToMatch() {
	fmt.Println("1. Points-to match:")

	m := heapmatch.NewMatcher()
	x := heapmatch.ExprVar{ID: heapmatch.NewIdent("x")}
	typ := heapmatch.ExprConst{Value: "int"}

	heap := heapmatch.NewProp(heapmatch.PointsTo{
		RootE: x,
		Value: heapmatch.SEAtom{Value: heapmatch.ExprConst{Value: 7}},
		Typ:   typ,
	})

	result := heapmatch.NewPrimed("v", 1)
	pattern := heapmatch.HPat{Pred: heapmatch.PointsTo{
		RootE: x,
		Value: heapmatch.SEAtom{Value: heapmatch.ExprVar{ID: result}},
		Typ:   typ,
	}}

	sigma, leftover, ok := m.Match(heap, heapmatch.TruePhi, heapmatch.NewVarSet(result), pattern, nil)
	fmt.Printf("   x |-> 7 : int  matched against  x |-> v' : int  => ok=%v\n", ok)
	if ok {
		bound, _ := sigma.Lookup(result)
		fmt.Printf("   v' = %s, leftover sigma length = %d\n", bound, len(leftover.Sigma))
	}
	fmt.Println()
}

// listSegmentMatch demonstrates discharging a possibly-empty list segment
// against a heap that turns out to be empty.
func listSegmentMatch() {
	fmt.Println("2. List segment, empty-branch discharge:")

	m := heapmatch.NewMatcher()
	para := cellPara()
	u := heapmatch.NewPrimed("u", 1)
	pattern := heapmatch.HPat{
		Pred: heapmatch.Lseg{
			K:    heapmatch.PE,
			P:    para,
			From: heapmatch.ExprVar{ID: u},
			To:   heapmatch.ExprVar{ID: u},
		},
		ImplFlag: true,
	}

	_, leftover, ok := m.Match(heapmatch.NewProp(), heapmatch.TruePhi, heapmatch.NewVarSet(u), pattern, nil)
	fmt.Printf("   empty heap matched against  lseg(PE, u, u)  => ok=%v, leftover sigma length = %d\n", ok, len(leftover.Sigma))
	fmt.Println()
}

// partialIsomorphism demonstrates finding a correspondence between two
// points-to facts that agree on value but differ on root.
func partialIsomorphism() {
	fmt.Println("3. Partial isomorphism:")

	a := heapmatch.ExprVar{ID: heapmatch.NewIdent("a")}
	b := heapmatch.ExprVar{ID: heapmatch.NewIdent("b")}
	sigma := []heapmatch.Hpred{
		heapmatch.PointsTo{RootE: a, Value: heapmatch.SEAtom{Value: heapmatch.ExprConst{Value: 5}}, Typ: heapmatch.ExprConst{Value: "int"}},
		heapmatch.PointsTo{RootE: b, Value: heapmatch.SEAtom{Value: heapmatch.ExprConst{Value: 5}}, Typ: heapmatch.ExprConst{Value: "int"}},
	}

	m := heapmatch.NewMatcher()
	corres, sigma1, sigma2, leftover, ok := m.FindPartialIso(
		heapmatch.ExactEq, heapmatch.Exact, sigma, []heapmatch.CorresPair{{E1: a, E2: b}},
	)
	fmt.Printf("   corres seed (a, b) over two identical-valued cells => ok=%v\n", ok)
	fmt.Printf("   correspondence pairs found: %d, matched cells: %d/%d, leftover: %d\n",
		len(corres), len(sigma1), len(sigma2), len(leftover))
	fmt.Println()
}

// parameterSynthesis demonstrates building a list-cell parameter from one
// concrete cell and a correspondence to its sibling cell.
func parameterSynthesis() {
	fmt.Println("4. Parameter synthesis:")

	r1 := heapmatch.ExprVar{ID: heapmatch.NewIdent("r1")}
	n1 := heapmatch.ExprVar{ID: heapmatch.NewIdent("n1")}
	r2 := heapmatch.ExprVar{ID: heapmatch.NewIdent("r2")}
	n2 := heapmatch.ExprVar{ID: heapmatch.NewIdent("n2")}
	body1 := []heapmatch.Hpred{
		heapmatch.PointsTo{RootE: r1, Value: heapmatch.SEAtom{Value: n1}, Typ: heapmatch.ExprConst{Value: "cell"}},
	}

	m := heapmatch.NewMatcher()
	para, shared := m.HparaCreate([]heapmatch.CorresPair{{E1: r1, E2: r2}, {E1: n1, E2: n2}}, body1, r1, n1)
	fmt.Printf("   synthesised parameter: root=%s next=%s svars=%v evars=%v\n", para.Root, para.Next, para.Svars, para.Evars)
	fmt.Printf("   shared sources (actual parameters for svars): %v\n", shared)
}

func cellPara() heapmatch.Para {
	root := heapmatch.NewIdent("r")
	next := heapmatch.NewIdent("n")
	return heapmatch.Para{
		Root: root,
		Next: next,
		Body: []heapmatch.Hpred{
			heapmatch.PointsTo{
				RootE: heapmatch.ExprVar{ID: root},
				Value: heapmatch.SEAtom{Value: heapmatch.ExprVar{ID: next}},
				Typ:   heapmatch.ExprConst{Value: "cell"},
			},
		},
	}
}
