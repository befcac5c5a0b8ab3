package grid

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func viewField(v View[Map], key string) []string {
	out := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = Stringify(r.Row.Field(key))
	}
	return out
}

func TestGrid_UncontrolledSearchResetsPage(t *testing.T) {
	g := New(Options[Map]{Columns: []Column[Map]{{Key: "id"}}, PageSize: 5})
	g.SetRows(numbered(20))

	g.SetPage(3)
	if g.Page() != 3 {
		t.Fatalf("Page() = %d, want 3", g.Page())
	}

	g.SetSearch("r1")
	if g.Search() != "r1" {
		t.Errorf("Search() = %q, want %q", g.Search(), "r1")
	}
	if g.Page() != 1 {
		t.Errorf("Page() = %d, want 1 after search", g.Page())
	}

	v := g.View()
	// r1, r10..r19
	if v.TotalRows != 11 {
		t.Errorf("TotalRows = %d, want 11", v.TotalRows)
	}
	if v.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", v.TotalPages)
	}
}

func TestGrid_ControlledSearchAndPage(t *testing.T) {
	var searches []string
	var pages []int
	search, page := "", 2

	g := New(Options[Map]{
		Columns:  peopleColumns(),
		PageSize: 1,
		Search:   Binding[string]{Value: &search, OnChange: func(s string) { searches = append(searches, s) }},
		Page:     Binding[int]{Value: &page, OnChange: func(p int) { pages = append(pages, p) }},
	})
	g.SetRows(people())

	g.SetSearch("an")
	if diff := cmp.Diff([]string{"an"}, searches); diff != "" {
		t.Errorf("search notifications (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1}, pages); diff != "" {
		t.Errorf("page notifications (-want +got):\n%s", diff)
	}

	// Nothing changes until the caller feeds the values back.
	if g.Search() != "" || g.Page() != 2 {
		t.Errorf("effective state = (%q, %d), want (\"\", 2)", g.Search(), g.Page())
	}

	g.SupplySearch("an")
	g.SupplyPage(1)
	if diff := cmp.Diff([]string{"Ann"}, viewField(g.View(), "name")); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}
}

func TestGrid_ControlledSearchResetsUncontrolledPage(t *testing.T) {
	var searches []string
	g := New(Options[Map]{
		Columns:  peopleColumns(),
		PageSize: 1,
		Search:   Binding[string]{OnChange: func(s string) { searches = append(searches, s) }},
	})
	g.SetRows(people())
	g.SetPage(3)

	g.SetSearch("b")
	if g.Page() != 1 {
		t.Errorf("Page() = %d, want 1", g.Page())
	}
	if len(searches) != 1 {
		t.Errorf("got %d search notifications, want 1", len(searches))
	}
}

func TestGrid_ScenarioE(t *testing.T) {
	g := New(Options[Map]{Columns: peopleColumns()})
	g.SetRows(people())
	before := viewField(g.View(), "name")

	g.ClickSort("name")
	if got := g.Sort(); got != (SortConfig{Key: "name", Direction: SortAscending}) {
		t.Fatalf("first click sort = %+v", got)
	}
	if diff := cmp.Diff([]string{"Ann", "Bob", "cat"}, viewField(g.View(), "name")); diff != "" {
		t.Errorf("ascending (-want +got):\n%s", diff)
	}

	g.ClickSort("name")
	if got := g.Sort().Direction; got != SortDescending {
		t.Fatalf("second click direction = %v", got)
	}
	if diff := cmp.Diff([]string{"cat", "Bob", "Ann"}, viewField(g.View(), "name")); diff != "" {
		t.Errorf("descending (-want +got):\n%s", diff)
	}

	g.ClickSort("name")
	if got := g.Sort().Direction; got != SortNone {
		t.Fatalf("third click direction = %v", got)
	}
	if diff := cmp.Diff(before, viewField(g.View(), "name")); diff != "" {
		t.Errorf("third click should restore order (-want +got):\n%s", diff)
	}
}

func TestGrid_ClickSortIgnoresUnsortableAndUnknown(t *testing.T) {
	g := New(Options[Map]{Columns: []Column[Map]{
		{Key: "id", Unsortable: true},
		{Key: "name"},
	}})

	g.ClickSort("id")
	g.ClickSort("nope")
	if g.Sort().Active() {
		t.Errorf("Sort() = %+v, want inactive", g.Sort())
	}
}

func TestGrid_ControlledSort(t *testing.T) {
	var got []SortConfig
	g := New(Options[Map]{
		Columns: peopleColumns(),
		Sort:    Binding[SortConfig]{OnChange: func(c SortConfig) { got = append(got, c) }},
	})

	g.ClickSort("name")
	g.SupplySort(got[len(got)-1])
	g.ClickSort("name")

	want := []SortConfig{
		{Key: "name", Direction: SortAscending},
		{Key: "name", Direction: SortDescending},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
}

func TestGrid_SelectionSurvivesFiltering(t *testing.T) {
	var notified [][]string
	g := New(Options[Map]{
		Columns:    peopleColumns(),
		Selectable: true,
		Selection:  Binding[[]string]{OnChange: func(ids []string) { notified = append(notified, ids) }},
	})
	g.SetRows(people())

	g.ToggleRow("2")
	g.SetSearch("bob")

	v := g.View()
	if diff := cmp.Diff([]string{"Bob"}, viewField(v, "name")); diff != "" {
		t.Fatalf("filtered view (-want +got):\n%s", diff)
	}
	if v.AnySelected {
		t.Error("AnySelected = true for a page without selected rows")
	}
	if diff := cmp.Diff([]string{"2"}, g.Selected()); diff != "" {
		t.Errorf("selection lost while filtered out (-want +got):\n%s", diff)
	}

	g.SetSearch("")
	for _, r := range g.View().Rows {
		if r.Selected != (r.ID == "2") {
			t.Errorf("row %s Selected = %v", r.ID, r.Selected)
		}
	}
	if len(notified) != 1 {
		t.Errorf("got %d selection notifications, want 1", len(notified))
	}
}

func TestGrid_ToggleAllOnPageUsesCurrentPage(t *testing.T) {
	g := New(Options[Map]{Columns: []Column[Map]{{Key: "id"}}, PageSize: 10, Selectable: true})
	g.SetRows(numbered(25))
	g.SetPage(3)

	g.ToggleAllOnPage()
	want := []string{"r21", "r22", "r23", "r24", "r25"}
	if diff := cmp.Diff(want, g.Selected()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	v := g.View()
	if !v.AllSelected || !v.AnySelected {
		t.Errorf("All/Any = %v/%v, want true/true", v.AllSelected, v.AnySelected)
	}

	g.SetPage(2)
	v = g.View()
	if v.AllSelected || v.AnySelected {
		t.Errorf("page 2 All/Any = %v/%v, want false/false", v.AllSelected, v.AnySelected)
	}
	if v.SelectedCount != 5 {
		t.Errorf("SelectedCount = %d, want 5", v.SelectedCount)
	}

	g.SetPage(3)
	g.ToggleAllOnPage()
	if len(g.Selected()) != 0 {
		t.Errorf("Selected() = %v, want empty", g.Selected())
	}
}

func TestGrid_ResetSelection(t *testing.T) {
	initial := []string{"1"}
	calls := 0
	g := New(Options[Map]{
		Columns:    peopleColumns(),
		Selectable: true,
		Selection:  Binding[[]string]{Value: &initial, OnChange: func([]string) { calls++ }},
	})
	g.SetRows(people())

	if diff := cmp.Diff([]string{"1"}, g.Selected()); diff != "" {
		t.Errorf("initial selection (-want +got):\n%s", diff)
	}
	g.ResetSelection([]string{"3"})
	if diff := cmp.Diff([]string{"3"}, g.Selected()); diff != "" {
		t.Errorf("after reset (-want +got):\n%s", diff)
	}
	if calls != 0 {
		t.Errorf("ResetSelection notified %d times", calls)
	}
}

func TestGrid_ViewCellsAndRange(t *testing.T) {
	cols := []Column[Map]{
		{Key: "id"},
		{Key: "n", Render: func(v any, row Map, i int) string {
			return Stringify(v) + "@" + Stringify(i)
		}},
	}
	g := New(Options[Map]{Columns: cols, PageSize: 4})
	g.SetRows(numbered(10))
	g.SetPage(2)

	v := g.View()
	if v.From != 5 || v.To != 8 || v.TotalRows != 10 || v.TotalPages != 3 {
		t.Errorf("range = %d-%d of %d (%d pages)", v.From, v.To, v.TotalRows, v.TotalPages)
	}
	want := [][]string{{"r5", "5@0"}, {"r6", "6@1"}, {"r7", "7@2"}, {"r8", "8@3"}}
	got := make([][]string, len(v.Rows))
	for i, r := range v.Rows {
		got[i] = r.Cells
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cells (-want +got):\n%s", diff)
	}
}

func TestGrid_DisablePagination(t *testing.T) {
	g := New(Options[Map]{Columns: []Column[Map]{{Key: "id"}}, DisablePagination: true})
	g.SetRows(numbered(30))
	v := g.View()
	if len(v.Rows) != 30 || v.TotalPages != 1 || v.PageSize != 0 {
		t.Errorf("rows=%d pages=%d size=%d", len(v.Rows), v.TotalPages, v.PageSize)
	}
}

func TestGrid_LogsDuplicateIdentities(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	g := New(Options[Map]{Columns: peopleColumns(), Logger: logger})
	g.SetRows([]Map{{"id": 1, "name": "a"}, {"id": 1, "name": "b"}})
	g.View()

	if !strings.Contains(buf.String(), "duplicate row identities") {
		t.Errorf("expected duplicate identity warning, got %q", buf.String())
	}
}

func TestGrid_ViewIsRepeatable(t *testing.T) {
	g := New(Options[Map]{Columns: peopleColumns(), Selectable: true})
	g.SetRows(people())
	g.ClickSort("name")
	g.ToggleRow("3")

	first, err := json.Marshal(g.View())
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	second, _ := json.Marshal(g.View())
	if string(first) != string(second) {
		t.Errorf("View changed between calls:\n%s\n%s", first, second)
	}
}

// client is a typed row used to check the grid works beyond Map.
type client struct {
	ID    string
	Name  string
	Email *string
}

func (c client) Field(key string) any {
	switch key {
	case "id":
		return c.ID
	case "name":
		return c.Name
	case "email":
		return c.Email
	}
	return nil
}

func TestGrid_TypedRows(t *testing.T) {
	email := "zoe@example.com"
	g := New(Options[client]{
		Columns:  []Column[client]{{Key: "name"}, {Key: "email"}},
		Identity: Identity[client]{Func: func(c client) string { return "client-" + c.ID }},
	})
	g.SetRows([]client{
		{ID: "1", Name: "Zoe", Email: &email},
		{ID: "2", Name: "Adam"},
	})
	g.SetSort(SortConfig{Key: "email", Direction: SortDescending})

	v := g.View()
	ids := []string{v.Rows[0].ID, v.Rows[1].ID}
	if diff := cmp.Diff([]string{"client-1", "client-2"}, ids); diff != "" {
		t.Errorf("nil email should sort last (-want +got):\n%s", diff)
	}
	if v.Rows[1].Cells[1] != "" {
		t.Errorf("nil email cell = %q, want empty", v.Rows[1].Cells[1])
	}
}
