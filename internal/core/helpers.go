package core

import "strings"

// quoteIdentifier quotes a SQL identifier to prevent injection.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteColumns quotes each column name.
func quoteColumns(cols []string) []string {
	out := make([]string, len(cols))
	for i, col := range cols {
		out[i] = quoteIdentifier(col)
	}
	return out
}

// columnNames returns the Column of every spec, in order.
func columnNames(specs []FieldSpec) []string {
	out := make([]string, len(specs))
	for i, spec := range specs {
		out[i] = spec.Column
	}
	return out
}
