package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/JonMunkholm/coachgrid/internal/core"
	_ "github.com/JonMunkholm/coachgrid/internal/core/tables"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDB struct {
	stmts []string
	err   error
}

func (d *recordingDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	d.stmts = append(d.stmts, sql)
	return pgconn.NewCommandTag("TRUNCATE TABLE"), d.err
}

func (d *recordingDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not used")
}

func (d *recordingDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func TestReset(t *testing.T) {
	db := &recordingDB{}
	r := &Resetter{DB: db}

	require.NoError(t, r.Reset(context.Background(), "clients", "check_ins"))
	assert.Equal(t, []string{`TRUNCATE TABLE "clients"`, `TRUNCATE TABLE "check_ins"`}, db.stmts)
}

func TestReset_UnknownTable(t *testing.T) {
	db := &recordingDB{}
	r := &Resetter{DB: db}

	err := r.Reset(context.Background(), "clients", "payroll")
	assert.ErrorIs(t, err, core.ErrTableNotFound)
	assert.Empty(t, db.stmts)
}

func TestResetAll(t *testing.T) {
	db := &recordingDB{}
	r := &Resetter{DB: db}

	require.NoError(t, r.ResetAll(context.Background()))
	assert.Equal(t, []string{`TRUNCATE TABLE "check_ins"`, `TRUNCATE TABLE "clients"`, `TRUNCATE TABLE "programs"`}, db.stmts)

	db.err = errors.New("permission denied")
	assert.ErrorContains(t, r.ResetAll(context.Background()), "reset check_ins")
}
