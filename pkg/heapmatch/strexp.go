package heapmatch

import (
	"sort"
	"strings"
)

// StrExp is a structured-expression value: the contents a PointsTo
// predicate assigns to its root, built from atoms, records, and arrays.
// Like Expr it is a closed sum implemented with a private method.
type StrExp interface {
	strExpNode()
	String() string
}

// SEAtom is an atomic structured value: a bare expression with no further
// decomposition.
type SEAtom struct {
	Value Expr
	Inst  any // opaque provenance metadata, ignored by matching
}

func (SEAtom) strExpNode()   {}
func (s SEAtom) String() string { return s.Value.String() }

// SEField is one (field, value) entry of a Record, kept in the Fields
// slice in FieldIdent order.
type SEField struct {
	Field FieldIdent
	Value StrExp
}

// SERecord is a struct-shaped structured value. Fields must be sorted by
// FieldIdent; NewRecord enforces this.
type SERecord struct {
	Fields []SEField
	Inst   any
}

func (SERecord) strExpNode() {}

func (s SERecord) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = f.Field.String() + ":" + f.Value.String()
	}
	return "{" + strings.Join(parts, "; ") + "}"
}

// NewRecord builds a SERecord from possibly-unsorted fields, sorting them
// by FieldIdent so the invariant holds by construction.
func NewRecord(fields []SEField, inst any) SERecord {
	sorted := append([]SEField(nil), fields...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Field.Less(sorted[j].Field) })
	return SERecord{Fields: sorted, Inst: inst}
}

// SECell is one (index, value) entry of an Array, kept in the Cells slice
// in index order (exprLess).
type SECell struct {
	Index Expr
	Value StrExp
}

// SEArray is an array-shaped structured value with a symbolic size. Cells
// must be sorted by their stored index expression;
// NewArray enforces this.
type SEArray struct {
	Size  Expr
	Cells []SECell
	Inst  any
}

func (SEArray) strExpNode() {}

func (s SEArray) String() string {
	parts := make([]string, len(s.Cells))
	for i, c := range s.Cells {
		parts[i] = c.Index.String() + ":" + c.Value.String()
	}
	return "[" + s.Size.String() + "]{" + strings.Join(parts, "; ") + "}"
}

// NewArray builds a SEArray from possibly-unsorted cells, sorting them by
// index expression so the invariant holds by construction.
func NewArray(size Expr, cells []SECell, inst any) SEArray {
	sorted := append([]SECell(nil), cells...)
	sort.Slice(sorted, func(i, j int) bool { return exprLess(sorted[i].Index, sorted[j].Index) })
	return SEArray{Size: size, Cells: sorted, Inst: inst}
}
