package cli

import (
	"errors"
	"fmt"

	"github.com/JonMunkholm/coachgrid/internal/admin"
	"github.com/spf13/cobra"
)

// newResetCmd creates the 'reset' command.
func newResetCmd() *cobra.Command {
	var (
		all bool
		yes bool
	)

	cmd := &cobra.Command{
		Use:   "reset [table...]",
		Short: "Delete every row of the given tables",
		Long: `Truncate the named tables, or every registered table with --all.
This cannot be undone; --yes is required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case all && len(args) > 0:
				return errors.New("name tables or use --all, not both")
			case !all && len(args) == 0:
				return errors.New("name at least one table, or use --all")
			case !yes:
				return errors.New("reset deletes data; pass --yes to confirm")
			}

			_, pool, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			r := &admin.Resetter{DB: pool}
			if all {
				err = r.ResetAll(cmd.Context())
			} else {
				err = r.Reset(cmd.Context(), args...)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "reset complete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Reset every registered table")
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
