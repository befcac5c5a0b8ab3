package grid

import (
	"log/slog"

	"golang.org/x/text/language"
)

// DefaultPageSize is used when Options.PageSize is not positive.
const DefaultPageSize = 10

// Options configure a Grid. Zero values are usable: pagination on with
// DefaultPageSize rows, selection off, identity read from "id".
type Options[R Record] struct {
	Columns           []Column[R]
	Identity          Identity[R]
	Predicate         Predicate[R]
	PageSize          int
	DisablePagination bool
	Selectable        bool
	Locale            language.Tag
	Logger            *slog.Logger

	Search    Binding[string]
	Sort      Binding[SortConfig]
	Page      Binding[int]
	Selection Binding[[]string]
}

// Grid is one table instance: the caller's rows plus search, sort, page and
// selection state. A Grid is not safe for concurrent use.
type Grid[R Record] struct {
	columns   []Column[R]
	identity  Identity[R]
	predicate Predicate[R]
	pageSize  int
	locale    language.Tag
	logger    *slog.Logger

	rows      []R
	search    *State[string]
	sort      *State[SortConfig]
	page      *State[int]
	selection *Selection
}

// New builds a Grid from opts.
func New[R Record](opts Options[R]) *Grid[R] {
	size := opts.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if opts.DisablePagination {
		size = 0
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var initialSelection []string
	if opts.Selection.Value != nil {
		initialSelection = *opts.Selection.Value
	}

	return &Grid[R]{
		columns:   opts.Columns,
		identity:  opts.Identity,
		predicate: opts.Predicate,
		pageSize:  size,
		locale:    opts.Locale,
		logger:    logger,
		search:    NewState(opts.Search, ""),
		sort:      NewState(opts.Sort, SortConfig{}),
		page:      NewState(opts.Page, 1),
		selection: NewSelection(opts.Selectable, initialSelection, opts.Selection.OnChange),
	}
}

// SetRows replaces the row collection. Selection is kept.
func (g *Grid[R]) SetRows(rows []R) {
	g.rows = rows
}

// Rows returns the current, unfiltered row collection.
func (g *Grid[R]) Rows() []R {
	return g.rows
}

// Columns returns the column descriptors in display order.
func (g *Grid[R]) Columns() []Column[R] {
	return g.columns
}

// Search returns the effective search term.
func (g *Grid[R]) Search() string {
	return g.search.Get()
}

// Sort returns the effective sort config.
func (g *Grid[R]) Sort() SortConfig {
	return g.sort.Get()
}

// Page returns the effective current page.
func (g *Grid[R]) Page() int {
	return g.page.Get()
}

// PageSize returns the page size, or 0 when pagination is disabled.
func (g *Grid[R]) PageSize() int {
	return g.pageSize
}

// Selected returns the selected identities in selection order.
func (g *Grid[R]) Selected() []string {
	return g.selection.IDs()
}

// SetSearch requests a new search term and a return to page 1. Both writes
// follow their own state's routing.
func (g *Grid[R]) SetSearch(term string) {
	g.search.Set(term)
	g.page.Set(1)
}

// ClickSort applies a header click on key. Clicks on unknown or
// unsortable columns are ignored.
func (g *Grid[R]) ClickSort(key string) {
	col, ok := columnByKey(g.columns, key)
	if !ok || !col.Sortable() {
		return
	}
	g.sort.Set(NextSort(g.sort.Get(), key))
}

// SetSort requests cfg directly.
func (g *Grid[R]) SetSort(cfg SortConfig) {
	g.sort.Set(cfg)
}

// SetPage requests page n.
func (g *Grid[R]) SetPage(n int) {
	g.page.Set(n)
}

// SupplySearch feeds the caller's search term back in.
func (g *Grid[R]) SupplySearch(term string) {
	g.search.Supply(term)
}

// SupplySort feeds the caller's sort config back in.
func (g *Grid[R]) SupplySort(cfg SortConfig) {
	g.sort.Supply(cfg)
}

// SupplyPage feeds the caller's current page back in.
func (g *Grid[R]) SupplyPage(n int) {
	g.page.Supply(n)
}

// ToggleRow flips the selection of id.
func (g *Grid[R]) ToggleRow(id string) {
	g.selection.ToggleRow(id)
}

// ToggleAllOnPage selects every row on the current page, or deselects them
// all when they are already all selected.
func (g *Grid[R]) ToggleAllOnPage() {
	g.selection.ToggleAll(g.pageIDs(g.Result().Rows))
}

// ResetSelection replaces the selection with ids without notifying.
func (g *Grid[R]) ResetSelection(ids []string) {
	g.selection.Reset(ids)
}

// Input returns the recompute input for the current effective state.
func (g *Grid[R]) Input() Input[R] {
	return Input[R]{
		Rows:      g.rows,
		Columns:   g.columns,
		Search:    g.search.Get(),
		Sort:      g.sort.Get(),
		Page:      PageState{Page: g.page.Get(), Size: g.pageSize},
		Predicate: g.predicate,
		Locale:    g.locale,
	}
}

// Result recomputes the pipeline for the current state.
func (g *Grid[R]) Result() Result[R] {
	return Recompute(g.Input())
}

// ViewRow is one materialized row.
type ViewRow[R Record] struct {
	Row      R        `json:"row"`
	ID       string   `json:"id"`
	Index    int      `json:"index"`
	Selected bool     `json:"selected"`
	Cells    []string `json:"cells"`
}

// View is a render-ready snapshot of the grid.
type View[R Record] struct {
	Columns       []Column[R]  `json:"columns"`
	Rows          []ViewRow[R] `json:"rows"`
	Search        string       `json:"search"`
	Sort          SortConfig   `json:"sort"`
	Page          int          `json:"page"`
	PageSize      int          `json:"page_size"`
	TotalPages    int          `json:"total_pages"`
	TotalRows     int          `json:"total_rows"`
	From          int          `json:"from"`
	To            int          `json:"to"`
	Selectable    bool         `json:"selectable"`
	AllSelected   bool         `json:"all_selected"`
	AnySelected   bool         `json:"any_selected"`
	SelectedCount int          `json:"selected_count"`
}

// View recomputes the pipeline and annotates the current page.
func (g *Grid[R]) View() View[R] {
	res := g.Result()
	ids := g.pageIDs(res.Rows)

	rows := make([]ViewRow[R], len(res.Rows))
	for i, row := range res.Rows {
		cells := make([]string, len(g.columns))
		for c, col := range g.columns {
			cells[c] = col.Cell(row, i)
		}
		rows[i] = ViewRow[R]{
			Row:      row,
			ID:       ids[i],
			Index:    i,
			Selected: g.selection.Contains(ids[i]),
			Cells:    cells,
		}
	}

	return View[R]{
		Columns:       g.columns,
		Rows:          rows,
		Search:        g.search.Get(),
		Sort:          g.sort.Get(),
		Page:          g.page.Get(),
		PageSize:      g.pageSize,
		TotalPages:    res.TotalPages,
		TotalRows:     res.TotalRows,
		From:          res.From,
		To:            res.To,
		Selectable:    g.selection.Enabled(),
		AllSelected:   g.selection.AllSelected(ids),
		AnySelected:   g.selection.AnySelected(ids),
		SelectedCount: g.selection.Len(),
	}
}

// pageIDs resolves identities for rows and logs any collisions.
func (g *Grid[R]) pageIDs(rows []R) []string {
	ids := make([]string, len(rows))
	seen := make(map[string]struct{}, len(rows))
	var dups []string
	for i, row := range rows {
		id := g.identity.Resolve(row)
		ids[i] = id
		if _, ok := seen[id]; ok {
			dups = append(dups, id)
			continue
		}
		seen[id] = struct{}{}
	}
	if len(dups) > 0 {
		g.logger.Warn("grid: duplicate row identities on page", "ids", dups)
	}
	return ids
}
