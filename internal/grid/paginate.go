package grid

// PageState selects a page. Page is 1-indexed. A Size of zero or less
// disables pagination.
type PageState struct {
	Page int
	Size int
}

// Enabled reports whether pagination applies.
func (p PageState) Enabled() bool {
	return p.Size > 0
}

// PageResult is one page of rows plus the numbers needed for
// "showing From-To of Total".
type PageResult[R any] struct {
	Rows       []R
	TotalPages int
	Total      int // rows before slicing
	From       int // 1-based position of the first row on the page, 0 when empty
	To         int // 1-based position of the last row on the page, 0 when empty
}

// Paginate slices rows for p. An out-of-range page yields an empty page,
// never an error. With pagination disabled the whole input is one page.
func Paginate[R any](rows []R, p PageState) PageResult[R] {
	total := len(rows)
	if !p.Enabled() {
		res := PageResult[R]{Rows: rows, TotalPages: 1, Total: total}
		if total > 0 {
			res.From, res.To = 1, total
		}
		return res
	}

	res := PageResult[R]{TotalPages: total / p.Size, Total: total}
	if total%p.Size != 0 {
		res.TotalPages++
	}
	if p.Page < 1 || p.Page > res.TotalPages {
		res.Rows = []R{}
		return res
	}

	start := (p.Page - 1) * p.Size
	end := start + min(p.Size, total-start)

	res.Rows = rows[start:end]
	res.From, res.To = start+1, end
	return res
}
