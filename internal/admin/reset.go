// Package admin provides destructive maintenance operations on the
// coaching tables.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JonMunkholm/coachgrid/internal/core"
	"github.com/jackc/pgx/v5"
)

// ResetTimeout is the maximum duration for a reset.
const ResetTimeout = 30 * time.Second

// Resetter empties registered tables.
type Resetter struct {
	DB core.DBTX
}

// Reset truncates the named tables in order. Unknown keys fail before any
// table is touched.
func (r *Resetter) Reset(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := core.Lookup(key); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	for _, key := range keys {
		stmt := "TRUNCATE TABLE " + pgx.Identifier{key}.Sanitize()
		if _, err := r.DB.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
		slog.Warn("table reset", "table", key)
	}
	return nil
}

// ResetAll truncates every registered table.
func (r *Resetter) ResetAll(ctx context.Context) error {
	defs := core.All()
	keys := make([]string, len(defs))
	for i, def := range defs {
		keys[i] = def.Info.Key
	}
	return r.Reset(ctx, keys...)
}
