package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/JonMunkholm/coachgrid/internal/grid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// testTable is a small members table used across the service tests.
var testTable = TableDefinition{
	Info:        TableInfo{Key: "members", Group: "Test", Label: "Members"},
	DefaultSort: grid.SortConfig{Key: "sessions", Direction: grid.SortDescending},
	FieldSpecs: []FieldSpec{
		{Name: "ID", Column: "id", Hidden: true},
		{Name: "Name", Column: "name", Type: FieldText, Required: true},
		{Name: "Plan", Column: "plan", Type: FieldEnum, EnumValues: []string{"basic", "pro"}},
		{Name: "Sessions", Column: "sessions", Type: FieldNumeric},
		{Name: "Active", Column: "active", Type: FieldBool},
		{Name: "Notes", Column: "notes", Type: FieldText, Unsortable: true},
	},
	Schema: []string{"CREATE TABLE IF NOT EXISTS members (id uuid PRIMARY KEY)"},
}

func memberID(n int) string {
	return fmt.Sprintf("00000000-0000-0000-0000-%012d", n)
}

// memberRows builds n rows named "member 01".. with sessions 1..n.
// Every third row is on the pro plan and odd-numbered members are active.
func memberRows(n int) []grid.Map {
	rows := make([]grid.Map, n)
	for i := range rows {
		plan := "basic"
		if i%3 == 0 {
			plan = "pro"
		}
		rows[i] = grid.Map{
			"id":       memberID(i + 1),
			"name":     fmt.Sprintf("member %02d", i+1),
			"plan":     plan,
			"sessions": float64(i + 1),
			"active":   i%2 == 0,
			"notes":    nil,
		}
	}
	return rows
}

func registerTestTable(t *testing.T) {
	t.Helper()
	Clear()
	Register(testTable)
	t.Cleanup(Clear)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestService registers the members table and serves rows from memory.
func newTestService(t *testing.T, db DBTX, opts Options, rows *[]grid.Map) *Service {
	t.Helper()
	registerTestTable(t)
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	if db == nil {
		db = &fakeDB{}
	}
	svc := NewService(db, opts)
	svc.loadRows = func(context.Context, TableDefinition) ([]grid.Map, error) {
		return *rows, nil
	}
	return svc
}

type execCall struct {
	sql  string
	args []any
}

// fakeDB records statements and answers with canned results.
type fakeDB struct {
	mu      sync.Mutex
	execs   []execCall
	queries []string
	tag     pgconn.CommandTag
	err     error
	rows    *fakeRows
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	return f.tag, f.err
}

func (f *fakeDB) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, sql)
	if f.err != nil {
		return nil, f.err
	}
	if f.rows == nil {
		return &fakeRows{}, nil
	}
	return f.rows, nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{errors.New("fakeDB: QueryRow not supported")}
}

func (f *fakeDB) calls() []execCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]execCall(nil), f.execs...)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// fakeRows yields fixed Values results.
type fakeRows struct {
	values [][]any
	pos    int
	err    error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) Scan(...any) error                            { return errors.New("fakeRows: Scan not supported") }

func (r *fakeRows) Next() bool {
	if r.pos < len(r.values) {
		r.pos++
		return true
	}
	return false
}

func (r *fakeRows) Values() ([]any, error) {
	return r.values[r.pos-1], nil
}
