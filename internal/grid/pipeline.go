package grid

import "golang.org/x/text/language"

// Input is everything one recomputation depends on.
type Input[R Record] struct {
	Rows      []R
	Columns   []Column[R]
	Search    string
	Sort      SortConfig
	Page      PageState
	Predicate Predicate[R]
	Locale    language.Tag
}

// Result is the output of one recomputation.
type Result[R Record] struct {
	Ordered    []R // every row that passed the filter, in sort order
	Rows       []R // the requested page of Ordered
	TotalRows  int
	TotalPages int
	From       int
	To         int
}

// Recompute runs filter, sort and paginate over in. It has no side effects
// and never modifies in.Rows.
func Recompute[R Record](in Input[R]) Result[R] {
	filtered := Filter(in.Rows, in.Search, in.Columns, in.Predicate)
	ordered := SortLocale(filtered, in.Sort, in.Locale)
	page := Paginate(ordered, in.Page)

	return Result[R]{
		Ordered:    ordered,
		Rows:       page.Rows,
		TotalRows:  page.Total,
		TotalPages: page.TotalPages,
		From:       page.From,
		To:         page.To,
	}
}
