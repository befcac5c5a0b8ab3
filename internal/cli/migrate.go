package cli

import (
	"fmt"

	"github.com/JonMunkholm/coachgrid/internal/core"
	"github.com/spf13/cobra"
)

// newMigrateCmd creates the 'migrate' command.
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create any missing tables",
		Long:  `Run the CREATE TABLE IF NOT EXISTS statements of every registered table against DATABASE_URL.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, pool, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := svc.EnsureSchema(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema ready for %d tables\n", core.TableCount())
			return nil
		},
	}
}
