package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/JonMunkholm/coachgrid/internal/core"
	"github.com/JonMunkholm/coachgrid/internal/grid"
	"github.com/spf13/cobra"
)

// rowCreator is the part of core.Service that imports use.
type rowCreator interface {
	CreateRow(ctx context.Context, tableKey string, values map[string]string) (string, error)
}

// ImportFailure is one row that could not be created.
type ImportFailure struct {
	Row int // 1-based position in the file
	Err error
}

// ImportResult summarizes an import.
type ImportResult struct {
	Total    int
	Inserted int
	Failed   []ImportFailure
}

// newImportCmd creates the 'import' command.
func newImportCmd() *cobra.Command {
	var table, file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Insert rows from a JSON or CSV file",
		Long: `Validate and insert every row of a file into a table. Each row gets a
new id; an id field in the file is ignored. Rows that fail validation are
reported and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := core.Lookup(table)
			if err != nil {
				return err
			}
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			rows, err := core.DecodeRows(f, core.FormatFromPath(file))
			if err != nil {
				return err
			}

			svc, pool, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			res := importRows(cmd.Context(), svc, def, rows)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d of %d rows into %s\n", res.Inserted, res.Total, def.Info.Key)
			for _, fail := range res.Failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "row %d: %v\n", fail.Row, fail.Err)
			}
			if len(res.Failed) > 0 {
				return fmt.Errorf("%d rows failed", len(res.Failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "Registered table key")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON or CSV file to import")
	cmd.MarkFlagRequired("table")
	cmd.MarkFlagRequired("file")
	return cmd
}

// importRows creates each row in turn. A cancelled context stops the import
// and marks the remaining rows failed.
func importRows(ctx context.Context, svc rowCreator, def core.TableDefinition, rows []grid.Map) ImportResult {
	res := ImportResult{Total: len(rows)}
	idField := def.Identity().Field

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(rows); j++ {
				res.Failed = append(res.Failed, ImportFailure{Row: j + 1, Err: err})
			}
			break
		}

		values := make(map[string]string, len(row))
		for k, v := range row {
			if k == idField || v == nil {
				continue
			}
			values[k] = grid.Stringify(v)
		}

		if _, err := svc.CreateRow(ctx, def.Info.Key, values); err != nil {
			var verrs core.ValidationErrors
			if !errors.As(err, &verrs) && core.IsUserFacing(err) {
				err = errors.New(core.FormatUserError(err))
			}
			res.Failed = append(res.Failed, ImportFailure{Row: i + 1, Err: err})
			continue
		}
		res.Inserted++
	}
	return res
}
