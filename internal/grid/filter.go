package grid

import "strings"

// Predicate decides whether row matches term. term is already trimmed and
// lower-cased; lower-casing row values is the predicate's job.
type Predicate[R Record] func(row R, term string) bool

// Filter returns the rows matching term.
//
// A blank term returns rows unchanged. With a predicate, each row is tested
// with the normalized term. Otherwise a row matches when any column's
// stringified value contains the term, case-insensitively; nil values never
// match. rows is never modified.
func Filter[R Record](rows []R, term string, columns []Column[R], predicate Predicate[R]) []R {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return rows
	}

	match := predicate
	if match == nil {
		match = func(row R, needle string) bool {
			return rowContains(row, columns, needle)
		}
	}

	out := make([]R, 0, len(rows))
	for _, row := range rows {
		if match(row, needle) {
			out = append(out, row)
		}
	}
	return out
}

// rowContains reports whether any column value of row contains needle.
func rowContains[R Record](row R, columns []Column[R], needle string) bool {
	for _, col := range columns {
		v := row.Field(col.Key)
		if isNull(v) {
			continue
		}
		if strings.Contains(strings.ToLower(Stringify(v)), needle) {
			return true
		}
	}
	return false
}
