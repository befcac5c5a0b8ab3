package core

import (
	"bytes"
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/JonMunkholm/coachgrid/internal/grid"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewNames(v grid.View[grid.Map]) []string {
	names := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		names[i] = r.Row["name"].(string)
	}
	return names
}

func TestQueryTable_Defaults(t *testing.T) {
	rows := memberRows(25)
	svc := newTestService(t, nil, Options{}, &rows)

	res, err := svc.QueryTable(context.Background(), "members", TableState{}, Action{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.State.Page)
	assert.Equal(t, 10, res.State.PageSize)
	assert.NotNil(t, res.State.Selected)
	assert.Empty(t, res.State.Selected)
	assert.Equal(t, "Members", res.Table.Label)

	assert.Equal(t, 3, res.View.TotalPages)
	assert.Equal(t, 25, res.View.TotalRows)
	assert.Len(t, res.View.Rows, 10)
	assert.Equal(t, 1, res.View.From)
	assert.Equal(t, 10, res.View.To)
	assert.False(t, res.View.Sort.Active(), "controlled queries ignore the table's default sort")
}

func TestQueryTable_PageSizeClamped(t *testing.T) {
	rows := memberRows(3)
	svc := newTestService(t, nil, Options{DefaultPageSize: 2, MaxPageSize: 50}, &rows)

	tests := []struct {
		requested int
		want      int
	}{
		{0, 2},
		{-5, 2},
		{20, 20},
		{500, 50},
	}
	for _, tt := range tests {
		res, err := svc.QueryTable(context.Background(), "members", TableState{PageSize: tt.requested}, Action{})
		require.NoError(t, err)
		assert.Equal(t, tt.want, res.State.PageSize, "requested %d", tt.requested)
	}
}

func TestQueryTable_SearchResetsPage(t *testing.T) {
	rows := memberRows(25)
	svc := newTestService(t, nil, Options{}, &rows)

	state := TableState{Page: 3, PageSize: 5}
	res, err := svc.QueryTable(context.Background(), "members", state, Action{Op: OpSearch, Query: "member 1"})
	require.NoError(t, err)

	assert.Equal(t, "member 1", res.State.Search)
	assert.Equal(t, 1, res.State.Page)
	assert.Equal(t, 10, res.View.TotalRows)
	assert.Equal(t, 2, res.View.TotalPages)
	assert.Equal(t, []string{"member 10", "member 11", "member 12", "member 13", "member 14"}, viewNames(res.View))
}

func TestQueryTable_SortCycle(t *testing.T) {
	rows := memberRows(12)
	svc := newTestService(t, nil, Options{}, &rows)
	ctx := context.Background()
	click := Action{Op: OpSort, Key: "sessions"}

	state := TableState{}
	want := []grid.SortDirection{grid.SortAscending, grid.SortDescending, grid.SortNone}
	for i, dir := range want {
		res, err := svc.QueryTable(ctx, "members", state, click)
		require.NoError(t, err)
		assert.Equal(t, dir, res.State.Sort.Direction, "click %d", i+1)
		state = res.State
	}

	res, err := svc.QueryTable(ctx, "members", TableState{Sort: grid.SortConfig{Key: "sessions", Direction: grid.SortDescending}}, Action{})
	require.NoError(t, err)
	assert.Equal(t, "member 12", viewNames(res.View)[0])
}

func TestQueryTable_UnsortableColumnIgnored(t *testing.T) {
	rows := memberRows(3)
	svc := newTestService(t, nil, Options{}, &rows)

	res, err := svc.QueryTable(context.Background(), "members", TableState{}, Action{Op: OpSort, Key: "notes"})
	require.NoError(t, err)
	assert.False(t, res.State.Sort.Active())
}

func TestQueryTable_Toggle(t *testing.T) {
	rows := memberRows(5)
	svc := newTestService(t, nil, Options{}, &rows)
	ctx := context.Background()

	res, err := svc.QueryTable(ctx, "members", TableState{}, Action{Op: OpToggle, ID: memberID(3)})
	require.NoError(t, err)
	assert.Equal(t, []string{memberID(3)}, res.State.Selected)
	assert.True(t, res.View.Rows[2].Selected)
	assert.Equal(t, 1, res.View.SelectedCount)
	assert.True(t, res.View.AnySelected)
	assert.False(t, res.View.AllSelected)

	res, err = svc.QueryTable(ctx, "members", res.State, Action{Op: OpToggle, ID: memberID(3)})
	require.NoError(t, err)
	assert.NotNil(t, res.State.Selected)
	assert.Empty(t, res.State.Selected)
	assert.False(t, res.View.AnySelected)
}

func TestQueryTable_ToggleAllOnCurrentPage(t *testing.T) {
	rows := memberRows(25)
	svc := newTestService(t, nil, Options{}, &rows)
	ctx := context.Background()

	res, err := svc.QueryTable(ctx, "members", TableState{Page: 2}, Action{Op: OpToggleAll})
	require.NoError(t, err)

	var want []string
	for n := 11; n <= 20; n++ {
		want = append(want, memberID(n))
	}
	assert.ElementsMatch(t, want, res.State.Selected)
	assert.True(t, res.View.AllSelected)

	res, err = svc.QueryTable(ctx, "members", res.State, Action{Op: OpToggleAll})
	require.NoError(t, err)
	assert.Empty(t, res.State.Selected)
}

func TestQueryTable_SelectionSurvivesSearch(t *testing.T) {
	rows := memberRows(25)
	svc := newTestService(t, nil, Options{}, &rows)

	state := TableState{Selected: []string{memberID(2), memberID(24)}}
	res, err := svc.QueryTable(context.Background(), "members", state, Action{Op: OpSearch, Query: "member 24"})
	require.NoError(t, err)

	assert.Equal(t, []string{memberID(2), memberID(24)}, res.State.Selected)
	require.Len(t, res.View.Rows, 1)
	assert.True(t, res.View.Rows[0].Selected)
	assert.Equal(t, 2, res.View.SelectedCount)
}

func TestQueryTable_PageOutOfRange(t *testing.T) {
	rows := memberRows(5)
	svc := newTestService(t, nil, Options{}, &rows)

	res, err := svc.QueryTable(context.Background(), "members", TableState{Page: 9}, Action{})
	require.NoError(t, err)
	assert.Equal(t, 9, res.State.Page)
	assert.Empty(t, res.View.Rows)
	assert.Equal(t, 5, res.View.TotalRows)
}

func TestQueryTable_Errors(t *testing.T) {
	rows := memberRows(5)
	svc := newTestService(t, nil, Options{}, &rows)
	ctx := context.Background()

	_, err := svc.QueryTable(ctx, "nope", TableState{}, Action{})
	assert.ErrorIs(t, err, ErrTableNotFound)

	_, err = svc.QueryTable(ctx, "members", TableState{}, Action{Op: "explode"})
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = svc.QueryTable(ctx, "members", TableState{}, Action{Op: OpSort})
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = svc.QueryTable(ctx, "members", TableState{}, Action{Op: OpToggle})
	assert.ErrorIs(t, err, ErrInvalidAction)

	svc.loadRows = func(context.Context, TableDefinition) ([]grid.Map, error) {
		return nil, ErrTooManyLoads
	}
	_, err = svc.QueryTable(ctx, "members", TableState{}, Action{})
	require.ErrorIs(t, err, ErrTooManyLoads)
	assert.Equal(t, "GRID005", MapError(err).Code)
}

func TestExport(t *testing.T) {
	rows := memberRows(25)
	svc := newTestService(t, nil, Options{}, &rows)

	var buf bytes.Buffer
	state := TableState{
		Search: "member 0",
		Sort:   grid.SortConfig{Key: "sessions", Direction: grid.SortDescending},
		Page:   3,
	}
	n, err := svc.Export(context.Background(), "members", state, &buf)
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "Name,Plan,Sessions,Active,Notes", lines[0])
	assert.Equal(t, "member 09,basic,9,yes,", lines[1])
	assert.Equal(t, "member 01,pro,1,yes,", lines[9])
}

func TestQueryRows(t *testing.T) {
	registerTestTable(t)
	id := uuid.MustParse(memberID(7))
	db := &fakeDB{rows: &fakeRows{values: [][]any{
		{[16]byte(id), "Ann", "pro", pgtype.Numeric{Int: big.NewInt(125), Exp: -1, Valid: true}, true, nil},
		{[16]byte(id), "Bo", nil, pgtype.Numeric{}, false, "late"},
	}}}
	svc := NewService(db, Options{Logger: discardLogger()})

	rows, err := svc.LoadRows(context.Background(), "members")
	require.NoError(t, err)

	want := []grid.Map{
		{"id": memberID(7), "name": "Ann", "plan": "pro", "sessions": 12.5, "active": true, "notes": nil},
		{"id": memberID(7), "name": "Bo", "plan": nil, "sessions": nil, "active": false, "notes": "late"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("LoadRows mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, db.queries, 1)
	assert.Equal(t,
		`SELECT "id", "name", "plan", "sessions", "active", "notes" FROM "members" ORDER BY "id" ASC`,
		db.queries[0])
	assert.Equal(t, 0, svc.LoadStatus().Active, "load slot released")
}
