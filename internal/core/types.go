package core

import (
	"context"

	"github.com/JonMunkholm/coachgrid/internal/grid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// FieldType represents the stored data type of a column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldDate
	FieldNumeric
	FieldBool
)

// FieldSpec describes one column of a coaching table.
type FieldSpec struct {
	Name       string              // Display label: "Full name"
	Column     string              // Database column and grid key: "full_name"
	Type       FieldType           // Stored type
	Required   bool                // Must be non-empty on create
	EnumValues []string            // Valid values for FieldEnum
	Normalizer func(string) string // Optional transformation applied before validation

	Unsortable bool       // Header clicks do not sort by this column
	Hidden     bool       // Loaded and searchable by id only, not displayed
	Align      grid.Align // Display alignment hint
	Width      string     // Display width hint
}

// TableInfo contains display information about a table.
type TableInfo struct {
	Key     string   `json:"key"`     // Table name and URL key: "clients"
	Group   string   `json:"group"`   // Section of the back office: "Coaching"
	Label   string   `json:"label"`   // Display name: "Clients"
	Columns []string `json:"columns"` // Displayed column keys in order
}

// TableDefinition contains everything needed to serve a table.
type TableDefinition struct {
	Info       TableInfo
	FieldSpecs []FieldSpec

	// IDColumn holds each row's uuid identity (default "id").
	IDColumn string

	// OrderBy is the base ORDER BY used when loading rows, which is the
	// order the grid shows while unsorted (default: IDColumn).
	OrderBy string

	// DefaultSort is applied when a grid session opens without a sort.
	DefaultSort grid.SortConfig

	// Schema holds the CREATE statements run by EnsureSchema.
	Schema []string
}

// idColumn returns the configured identity column.
func (t TableDefinition) idColumn() string {
	if t.IDColumn == "" {
		return grid.DefaultIdentityField
	}
	return t.IDColumn
}

// Spec returns the field spec whose Column or Name matches col.
func (t TableDefinition) Spec(col string) (FieldSpec, bool) {
	for _, spec := range t.FieldSpecs {
		if spec.Column == col || spec.Name == col {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// GridColumns returns the displayed columns as grid descriptors.
func (t TableDefinition) GridColumns() []grid.Column[grid.Map] {
	cols := make([]grid.Column[grid.Map], 0, len(t.FieldSpecs))
	for _, spec := range t.FieldSpecs {
		if spec.Hidden {
			continue
		}
		col := grid.Column[grid.Map]{
			Key:        spec.Column,
			Label:      spec.Name,
			Unsortable: spec.Unsortable,
			Align:      spec.Align,
			Width:      spec.Width,
		}
		switch spec.Type {
		case FieldNumeric:
			if col.Align == "" {
				col.Align = grid.AlignRight
			}
			col.Render = renderNumber
		case FieldBool:
			if col.Align == "" {
				col.Align = grid.AlignCenter
			}
			col.Render = renderBool
		}
		cols = append(cols, col)
	}
	return cols
}

// Identity returns the grid identity resolver for the table.
func (t TableDefinition) Identity() grid.Identity[grid.Map] {
	return grid.Identity[grid.Map]{Field: t.idColumn()}
}
