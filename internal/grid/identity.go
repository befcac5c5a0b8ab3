package grid

// DefaultIdentityField is the field read when no identity function is set.
const DefaultIdentityField = "id"

// Identity derives the stable string identifier used for selection.
//
// When Func is set it is trusted as-is. Otherwise Field (default "id") is
// read off the row and stringified; a missing value yields "".
type Identity[R Record] struct {
	Field string
	Func  func(row R) string
}

// Resolve returns the identifier for row.
func (id Identity[R]) Resolve(row R) string {
	if id.Func != nil {
		return id.Func(row)
	}
	field := id.Field
	if field == "" {
		field = DefaultIdentityField
	}
	return Stringify(row.Field(field))
}
