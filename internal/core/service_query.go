package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/coachgrid/internal/grid"
)

// queryRows loads every row of def in its base order.
func (s *Service) queryRows(ctx context.Context, def TableDefinition) ([]grid.Map, error) {
	cols := columnNames(def.FieldSpecs)
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s ASC",
		strings.Join(quoteColumns(cols), ", "),
		quoteIdentifier(def.Info.Key),
		quoteIdentifier(def.OrderBy),
	)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var result []grid.Map
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}
		row := make(grid.Map, len(cols))
		for i, spec := range def.FieldSpecs {
			row[spec.Column] = FromDB(spec, values[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

// LoadRows returns every row of tableKey, unfiltered and in base order.
func (s *Service) LoadRows(ctx context.Context, tableKey string) ([]grid.Map, error) {
	def, err := Lookup(tableKey)
	if err != nil {
		return nil, err
	}
	return s.loadRows(ctx, def)
}

// TableState is the grid state a client owns in controlled mode. The client
// sends it with every request and stores the State of each response.
type TableState struct {
	Search   string          `json:"search"`
	Sort     grid.SortConfig `json:"sort"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Selected []string        `json:"selected"`
}

// TableQueryResult is the answer to a controlled query.
type TableQueryResult struct {
	Table TableInfo           `json:"table"`
	State TableState          `json:"state"`
	View  grid.View[grid.Map] `json:"view"`
}

// QueryTable runs a controlled query: the grid reads every value from state,
// applies action, and reports the requested changes in the returned State
// instead of keeping them.
func (s *Service) QueryTable(ctx context.Context, tableKey string, state TableState, action Action) (*TableQueryResult, error) {
	def, err := Lookup(tableKey)
	if err != nil {
		return nil, err
	}
	rows, err := s.loadRows(ctx, def)
	if err != nil {
		return nil, fmt.Errorf("query table %s: %w", tableKey, err)
	}
	return s.controlled(def, rows, state, action)
}

// controlled wires a grid to state through bindings whose callbacks collect
// the requested changes, then feeds those changes back the way a client
// would on its next render.
func (s *Service) controlled(def TableDefinition, rows []grid.Map, state TableState, action Action) (*TableQueryResult, error) {
	state.PageSize = s.pageSize(state.PageSize)
	if state.Page == 0 {
		state.Page = 1
	}
	next := state

	g := s.newGrid(def, grid.Options[grid.Map]{
		PageSize:  state.PageSize,
		Search:    grid.Binding[string]{Value: &state.Search, OnChange: func(v string) { next.Search = v }},
		Sort:      grid.Binding[grid.SortConfig]{Value: &state.Sort, OnChange: func(v grid.SortConfig) { next.Sort = v }},
		Page:      grid.Binding[int]{Value: &state.Page, OnChange: func(v int) { next.Page = v }},
		Selection: grid.Binding[[]string]{Value: &state.Selected, OnChange: func(v []string) { next.Selected = v }},
	})
	g.SetRows(rows)

	if err := action.Apply(g); err != nil {
		return nil, err
	}

	g.SupplySearch(next.Search)
	g.SupplySort(next.Sort)
	g.SupplyPage(next.Page)
	g.ResetSelection(next.Selected)
	if next.Selected == nil {
		next.Selected = []string{}
	}

	return &TableQueryResult{Table: def.Info, State: next, View: g.View()}, nil
}

// Export writes the rows matching state's search, in its sort order and
// without paging, as CSV with a label header.
func (s *Service) Export(ctx context.Context, tableKey string, state TableState, w io.Writer) (int, error) {
	def, err := Lookup(tableKey)
	if err != nil {
		return 0, err
	}
	rows, err := s.loadRows(ctx, def)
	if err != nil {
		return 0, fmt.Errorf("export %s: %w", tableKey, err)
	}

	cols := def.GridColumns()
	res := grid.Recompute(grid.Input[grid.Map]{
		Rows:    rows,
		Columns: cols,
		Search:  state.Search,
		Sort:    state.Sort,
		Locale:  s.opts.Locale,
	})

	cw := csv.NewWriter(w)
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.Label
	}
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(cols))
	for i, row := range res.Ordered {
		for c, col := range cols {
			record[c] = col.Cell(row, i)
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}
	return len(res.Ordered), nil
}
