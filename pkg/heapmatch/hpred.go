package heapmatch

import "fmt"

// SegKind distinguishes non-empty from possibly-empty list and
// doubly-linked-list segments.
type SegKind int

const (
	// NE ("non-empty") forbids the segment from denoting the empty heap:
	// from must differ from to (enforced by the analyser that builds the
	// heap, not by this package).
	NE SegKind = iota
	// PE ("possibly-empty") additionally permits the segment to collapse
	// to the empty heap when from == to.
	PE
)

func (k SegKind) String() string {
	if k == PE {
		return "PE"
	}
	return "NE"
}

// kindSubsumes reports whether a focused segment of kind have may stand in
// for a pattern segment requiring kind want: NE ≤ NE, NE ≤ PE, PE ≤ PE, but
// never PE ≤ NE.
func kindSubsumes(have, want SegKind) bool {
	if want == PE {
		return true
	}
	return have == NE
}

// Hpred is a heap predicate: a points-to fact or a (possibly doubly-linked)
// list segment. Like Expr, it is a closed sum with a private
// method restricting implementations to this package.
type Hpred interface {
	fmt.Stringer
	hpredNode()
	// Root returns the expression that must be unique per heap among all
	// predicates' roots.
	Root() Expr
}

// PointsTo is "location Root currently stores structured value Value of
// type Typ".
type PointsTo struct {
	RootE Expr
	Value StrExp
	Typ   Expr
}

func (PointsTo) hpredNode()    {}
func (h PointsTo) Root() Expr  { return h.RootE }
func (h PointsTo) String() string {
	return fmt.Sprintf("%s |-> %s : %s", h.RootE, h.Value, h.Typ)
}

// Lseg is "there is a linked list from From to To laid out by parameter P,
// sharing free variables Shared", of kind K.
type Lseg struct {
	K      SegKind
	P      Para
	From   Expr
	To     Expr
	Shared []Expr
}

func (Lseg) hpredNode()   {}
func (h Lseg) Root() Expr { return h.From }
func (h Lseg) String() string {
	return fmt.Sprintf("lseg_%s(%s, %s; %s)", h.K, h.From, h.To, exprListString(h.Shared))
}

// Dllseg is the doubly-linked analogue of Lseg, with independent forward
// and backward entry/exit pointers: IF (in-front), OB (out-back), OF
// (out-front), IB (in-back).
type Dllseg struct {
	K      SegKind
	PDll   ParaDll
	IF     Expr
	OB     Expr
	OF     Expr
	IB     Expr
	Shared []Expr
}

func (Dllseg) hpredNode()   {}
func (h Dllseg) Root() Expr { return h.IF }
func (h Dllseg) String() string {
	return fmt.Sprintf("dllseg_%s(%s, %s, %s, %s; %s)", h.K, h.IF, h.OB, h.OF, h.IB, exprListString(h.Shared))
}

func exprListString(es []Expr) string {
	out := ""
	for i, e := range es {
		if i > 0 {
			out += ", "
		}
		out += e.String()
	}
	return out
}

// applyHpred applies s throughout every expression position of h,
// producing a structurally renamed copy. Nested Para/ParaDll values are
// copied unchanged; their bodies are not substituted into. This is the workhorse behind the unfold branch of the Lseg/Dllseg
// matcher and the renaming step of hpara_common_match.
func applyHpred(s Subst, h Hpred) Hpred {
	switch x := h.(type) {
	case PointsTo:
		return PointsTo{RootE: s.Apply(x.RootE), Value: s.ApplyStrExp(x.Value), Typ: s.Apply(x.Typ)}
	case Lseg:
		return Lseg{
			K:      x.K,
			P:      x.P,
			From:   s.Apply(x.From),
			To:     s.Apply(x.To),
			Shared: applyExprList(s, x.Shared),
		}
	case Dllseg:
		return Dllseg{
			K:      x.K,
			PDll:   x.PDll,
			IF:     s.Apply(x.IF),
			OB:     s.Apply(x.OB),
			OF:     s.Apply(x.OF),
			IB:     s.Apply(x.IB),
			Shared: applyExprList(s, x.Shared),
		}
	default:
		return h
	}
}

func applyExprList(s Subst, es []Expr) []Expr {
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = s.Apply(e)
	}
	return out
}

func applyHpredList(s Subst, hs []Hpred) []Hpred {
	out := make([]Hpred, len(hs))
	for i, h := range hs {
		out[i] = applyHpred(s, h)
	}
	return out
}

// hpredLiftToPE rewrites any Lseg/Dllseg to kind PE, passing PointsTo
// through unchanged.
func hpredLiftToPE(h Hpred) Hpred {
	switch x := h.(type) {
	case Lseg:
		x.K = PE
		return x
	case Dllseg:
		x.K = PE
		return x
	default:
		return h
	}
}

// sigmaLiftToPE applies hpredLiftToPE pointwise.
func sigmaLiftToPE(sigma []Hpred) []Hpred {
	out := make([]Hpred, len(sigma))
	for i, h := range sigma {
		out[i] = hpredLiftToPE(h)
	}
	return out
}
