package heapmatch

// FieldIdent names a struct field. Record field lists are kept sorted by
// this total order throughout the package (array cells are ordered by
// exprLess on their index expressions instead); Tag
// exists purely to break ties between identically-named fields declared
// in different structs, the same way a numeric id disambiguates two
// identically-named logic variables.
type FieldIdent struct {
	Name string
	Tag  int
}

// NewField constructs a FieldIdent with no tie-break tag.
func NewField(name string) FieldIdent { return FieldIdent{Name: name} }

// Equal reports whether two field identifiers name the same field.
func (f FieldIdent) Equal(other FieldIdent) bool {
	return f.Name == other.Name && f.Tag == other.Tag
}

// Less gives FieldIdent the total order required for sorted record-field
// lists: lexicographic on Name, then Tag.
func (f FieldIdent) Less(other FieldIdent) bool {
	if f.Name != other.Name {
		return f.Name < other.Name
	}
	return f.Tag < other.Tag
}

func (f FieldIdent) String() string { return f.Name }
