package heapmatch

// Para is a singly-linked list-segment parameter: the shape of one cell of
// a list, parameterised by its root, next pointer, shared formal
// parameters, and existential locals.
//
// Body must be a non-empty spatial conjunction over Root, Next, Svars, and
// Evars; Validate checks that Body is non-empty. Validate does not check
// that Svars and Evars are disjoint from each other or from Root/Next.
type Para struct {
	Root  Ident
	Next  Ident
	Svars []Ident // ordered shared formal parameters
	Evars []Ident // existential locals
	Body  []Hpred
}

// IdentList returns [Root, Next] ++ Svars, the identifier list
// hpara_match uses to build its renaming.
func (p Para) IdentList() []Ident {
	out := make([]Ident, 0, 2+len(p.Svars))
	out = append(out, p.Root, p.Next)
	out = append(out, p.Svars...)
	return out
}

// ParaDll is the doubly-linked analogue of Para: a list-segment parameter
// with a cell identity and two link directions (blink, flink).
type ParaDll struct {
	Cell     Ident
	Blink    Ident
	Flink    Ident
	SvarsDll []Ident
	EvarsDll []Ident
	BodyDll  []Hpred
}

// IdentList returns [Cell, Blink, Flink] ++ SvarsDll, the identifier list
// hpara_dll_match uses to build its renaming.
func (p ParaDll) IdentList() []Ident {
	out := make([]Ident, 0, 3+len(p.SvarsDll))
	out = append(out, p.Cell, p.Blink, p.Flink)
	out = append(out, p.SvarsDll...)
	return out
}
