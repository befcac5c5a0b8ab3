package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/JonMunkholm/coachgrid/internal/core"
	"github.com/JonMunkholm/coachgrid/internal/grid"
	"github.com/spf13/cobra"
)

// gridFlags are the options of the 'grid' command.
type gridFlags struct {
	table      string
	file       string
	search     string
	sortKey    string
	dir        string
	page       int
	pageSize   int
	idField    string
	selected   []string
	outputJSON bool
}

// newGridCmd creates the 'grid' command.
func newGridCmd() *cobra.Command {
	f := &gridFlags{}

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Search, sort and page through a table",
		Long: `Run the grid pipeline over a table and print one page.

Rows come from --file (JSON array of objects, or CSV with a header) when
given, otherwise from the database table named by --table. With --table the
table's columns and labels are used; without it every field in the file
becomes a column.

Examples:
  coachctl grid --table clients --search lee --sort joined_on --dir desc
  coachctl grid --file checkins.csv --sort weight_kg --page 2 --page-size 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrid(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.table, "table", "t", "", "Registered table key")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read rows from a .json or .csv file")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Case-insensitive search term")
	cmd.Flags().StringVar(&f.sortKey, "sort", "", "Column key to sort by")
	cmd.Flags().StringVar(&f.dir, "dir", "asc", "Sort direction: asc or desc")
	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "Rows per page (default GRID_DEFAULT_PAGE_SIZE)")
	cmd.Flags().StringVar(&f.idField, "id-field", "", "Field holding each row's identity (default id)")
	cmd.Flags().StringSliceVar(&f.selected, "select", nil, "Mark these row ids as selected")
	cmd.Flags().BoolVar(&f.outputJSON, "json", false, "Output the view as JSON")
	return cmd
}

func runGrid(cmd *cobra.Command, f *gridFlags) error {
	if f.table == "" && f.file == "" {
		return errors.New("one of --table or --file is required")
	}
	gcfg, err := gridConfig()
	if err != nil {
		return err
	}

	var columns []grid.Column[grid.Map]
	var identity grid.Identity[grid.Map]
	if f.table != "" {
		def, err := core.Lookup(f.table)
		if err != nil {
			return err
		}
		columns = def.GridColumns()
		identity = def.Identity()
	}
	if f.idField != "" {
		identity = grid.Identity[grid.Map]{Field: f.idField}
	}

	rows, err := loadGridRows(cmd, f)
	if err != nil {
		return err
	}
	if columns == nil {
		columns = inferColumns(rows)
	}

	size := f.pageSize
	switch {
	case size <= 0:
		size = gcfg.DefaultPageSize
	case size > gcfg.MaxPageSize:
		size = gcfg.MaxPageSize
	}

	g := grid.New(grid.Options[grid.Map]{
		Columns:    columns,
		Identity:   identity,
		PageSize:   size,
		Selectable: len(f.selected) > 0,
		Locale:     gcfg.LocaleTag(),
	})
	g.SetRows(rows)
	g.ResetSelection(f.selected)
	g.SetSearch(f.search)
	if f.sortKey != "" {
		g.SetSort(grid.SortConfig{Key: f.sortKey, Direction: grid.ParseSortDirection(f.dir)})
	}
	g.SetPage(f.page)

	view := g.View()
	if f.outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	return renderView(cmd.OutOrStdout(), view)
}

// loadGridRows reads rows from the file flag or, failing that, the database.
func loadGridRows(cmd *cobra.Command, f *gridFlags) ([]grid.Map, error) {
	if f.file != "" {
		file, err := os.Open(f.file)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return core.DecodeRows(file, core.FormatFromPath(f.file))
	}

	svc, pool, err := openService(cmd.Context())
	if err != nil {
		return nil, err
	}
	defer pool.Close()
	return svc.LoadRows(cmd.Context(), f.table)
}

// inferColumns makes one column per field seen in rows, in key order.
func inferColumns(rows []grid.Map) []grid.Column[grid.Map] {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			seen[k] = struct{}{}
		}
	}
	var keys []string
	for k := range seen {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	cols := make([]grid.Column[grid.Map], len(keys))
	for i, k := range keys {
		cols[i] = grid.Column[grid.Map]{Key: k, Label: k}
	}
	return cols
}

// renderView prints the page as an aligned table followed by a range line.
func renderView(w io.Writer, v grid.View[grid.Map]) error {
	lead := 0
	header := make([]string, 0, len(v.Columns)+1)
	if v.Selectable {
		lead = 1
		header = append(header, "")
	}
	for _, col := range v.Columns {
		header = append(header, strings.ToUpper(col.Label)+sortMarker(v.Sort, col.Key))
	}

	table := newTable(w, columnAligns(v.Columns, lead))
	table.Header(header)
	for _, row := range v.Rows {
		cells := row.Cells
		if v.Selectable {
			mark := ""
			if row.Selected {
				mark = "*"
			}
			cells = append([]string{mark}, cells...)
		}
		if err := table.Append(cells); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, rangeSummary(v))
	return err
}

// rangeSummary describes which rows of the result are on the page.
func rangeSummary(v grid.View[grid.Map]) string {
	switch {
	case v.TotalRows == 0:
		return "no matching rows"
	case len(v.Rows) == 0:
		return fmt.Sprintf("page %d is past the last page (%d) of %d rows", v.Page, v.TotalPages, v.TotalRows)
	}
	s := fmt.Sprintf("rows %d-%d of %d, page %d/%d", v.From, v.To, v.TotalRows, v.Page, v.TotalPages)
	if v.SelectedCount > 0 {
		s += fmt.Sprintf(", %d selected", v.SelectedCount)
	}
	return s
}

// sortMarker flags the sorted column in the header.
func sortMarker(cfg grid.SortConfig, key string) string {
	if !cfg.Active() || cfg.Key != key {
		return ""
	}
	if cfg.Direction == grid.SortDescending {
		return " v"
	}
	return " ^"
}
