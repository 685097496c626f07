package heapmatch

// Matcher is the façade a driver holds on to: a bundle of a Config (the
// abs_struct knob, logger, and fresh-identifier generator) with the
// package's top-level operations hung off it as methods, so a caller
// configures once and then calls Match/FindPartialIso/HparaCreate without
// re-threading cfg through every call site itself.
type Matcher struct {
	cfg *Config
}

// NewMatcher builds a Matcher from functional options (see config.go).
func NewMatcher(opts ...Option) *Matcher {
	return &Matcher{cfg: NewConfig(opts...)}
}

// Trace emits a trace-level log entry through the Matcher's configured
// logger (a null logger by default). Spatial and isomorphism matching log
// to that same logger at their key decision points; Trace lets a driver
// interleave its own trace entries in the same stream.
func (m *Matcher) Trace(msg string, args ...any) {
	m.cfg.log().Trace(msg, args...)
}

// Match runs the spatial matcher under this Matcher's
// configuration.
func (m *Matcher) Match(p Prop, phi Phi, V *VarSet, head HPat, tail []HPat) (Subst, Prop, bool) {
	return PropMatchWithImpl(m.cfg, p, phi, V, head, tail)
}

// HparaMatch decides whether a concrete list-cell parameter can stand in
// for a pattern parameter.
func (m *Matcher) HparaMatch(implOk bool, p1, p2 Para) bool {
	return HparaMatch(m.cfg, implOk, p1, p2)
}

// HparaDllMatch is the doubly-linked analogue of HparaMatch.
func (m *Matcher) HparaDllMatch(implOk bool, p1, p2 ParaDll) bool {
	return HparaDllMatch(m.cfg, implOk, p1, p2)
}

// HparaIso reports shape equivalence between two parameters.
func (m *Matcher) HparaIso(p1, p2 Para) bool { return HparaIso(m.cfg, p1, p2) }

// HparaDllIso is the doubly-linked analogue of HparaIso.
func (m *Matcher) HparaDllIso(p1, p2 ParaDll) bool { return HparaDllIso(m.cfg, p1, p2) }

// FindPartialIso locates a partial isomorphism within a single heap.
func (m *Matcher) FindPartialIso(eq ExprEq, mode IsoMode, sigma []Hpred, todos []CorresPair) ([]CorresPair, []Hpred, []Hpred, []Hpred, bool) {
	return FindPartialIso(m.cfg, eq, mode, sigma, todos)
}

// FindPartialIsoFromTwoSigmas locates a partial isomorphism between two
// separate heaps.
func (m *Matcher) FindPartialIsoFromTwoSigmas(eq ExprEq, mode IsoMode, sigma1, sigma2 []Hpred, todos []CorresPair) ([]CorresPair, []Hpred, []Hpred, []Hpred, []Hpred, bool) {
	return FindPartialIsoFromTwoSigmas(m.cfg, eq, mode, sigma1, sigma2, todos)
}

// HparaCreate synthesises a list-cell parameter from a correspondence.
func (m *Matcher) HparaCreate(corres []CorresPair, body1 []Hpred, root1, next1 Expr) (Para, []Expr) {
	return HparaCreate(m.cfg, corres, body1, root1, next1)
}

// HparaDllCreate is the doubly-linked analogue of HparaCreate.
func (m *Matcher) HparaDllCreate(corres []CorresPair, body1 []Hpred, cell1, blink1, flink1 Expr) (ParaDll, []Expr) {
	return HparaDllCreate(m.cfg, corres, body1, cell1, blink1, flink1)
}

// Fresh mints a fresh primed identifier from the Matcher's shared
// generator, letting a driver mint identifiers (e.g. to build a fresh V)
// from the same sequence the matcher itself draws from.
func (m *Matcher) Fresh(name string) Ident {
	return m.cfg.freshGen().Fresh(name)
}
