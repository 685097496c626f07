package heapmatch

import "fmt"

// Kind classifies an Ident as logical (eligible for unification) or
// program-level (never bound by the matcher).
type Kind int

const (
	// Unprimed identifiers name program variables, constants, and other
	// ground entities. They are never bound by exp_match — they must
	// already agree syntactically with whatever they are compared to.
	Unprimed Kind = iota

	// Primed identifiers are logical (existential) variables. Only primed
	// identifiers that are members of the caller-supplied free-variable
	// set V are eligible to be bound during matching.
	Primed
)

func (k Kind) String() string {
	if k == Primed {
		return "primed"
	}
	return "unprimed"
}

// Ident is a named, kinded identifier: the atomic unit that Var and
// program-variable names are built from (field names are FieldIdent
// values, not Idents). Two idents
// are the same identifier iff their (name, kind, seq) triples agree; seq
// disambiguates identifiers sharing a name, e.g. fresh variables minted
// during unfolding (see FreshGen).
type Ident struct {
	name string
	kind Kind
	seq  int64
}

// NewIdent constructs an unprimed identifier. Program variables and
// parameter identifiers (Para roots, next pointers) are represented this
// way.
func NewIdent(name string) Ident {
	return Ident{name: name, kind: Unprimed}
}

// NewPrimed constructs a primed (logical) identifier with an explicit
// disambiguating sequence number. Two primed idents with the same name but
// different seq are distinct variables; FreshGen is the usual source of
// seq values.
func NewPrimed(name string, seq int64) Ident {
	return Ident{name: name, kind: Primed, seq: seq}
}

// Name returns the identifier's base name.
func (id Ident) Name() string { return id.name }

// Kind returns whether the identifier is Primed or Unprimed.
func (id Ident) Kind() Kind { return id.kind }

// Seq returns the disambiguating sequence number.
func (id Ident) Seq() int64 { return id.seq }

// IsPrimed reports whether id is a logical variable eligible for
// unification.
func (id Ident) IsPrimed() bool { return id.kind == Primed }

// Equal reports whether two idents name the same identifier.
func (id Ident) Equal(other Ident) bool {
	return id.kind == other.kind && id.seq == other.seq && id.name == other.name
}

// Less gives idents a total order, used for giving deterministic
// iteration order to the free-variable sets used throughout the matcher.
// The order is lexicographic on name, then kind, then seq.
func (id Ident) Less(other Ident) bool {
	if id.name != other.name {
		return id.name < other.name
	}
	if id.kind != other.kind {
		return id.kind < other.kind
	}
	return id.seq < other.seq
}

// String renders an identifier with a prime mark for logical variables,
// the name, and (for disambiguation) the sequence number when non-zero.
func (id Ident) String() string {
	prefix := ""
	if id.kind == Primed {
		prefix = "'"
	}
	if id.seq != 0 {
		return fmt.Sprintf("%s%s_%d", prefix, id.name, id.seq)
	}
	return prefix + id.name
}

// FreshGen mints fresh primed identifiers with a monotonically increasing
// sequence number. It is threaded explicitly as a value callers hold and
// pass along, rather than kept as an implicit process-wide counter, so
// that two independent matches never share generator state by accident.
type FreshGen struct {
	next int64
}

// NewFreshGen creates a generator starting at 1 (0 is reserved to mean
// "no disambiguation needed" on identifiers built by NewIdent/NewPrimed
// directly).
func NewFreshGen() *FreshGen {
	return &FreshGen{next: 1}
}

// Fresh returns a new primed identifier with the given base name (used only
// for readability in String()/error messages) and a sequence number no
// previous call on this generator has returned.
func (g *FreshGen) Fresh(name string) Ident {
	seq := g.next
	g.next++
	return NewPrimed(name, seq)
}
