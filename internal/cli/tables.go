package cli

import (
	"encoding/json"
	"strings"

	"github.com/JonMunkholm/coachgrid/internal/core"
	"github.com/spf13/cobra"
)

// newTablesCmd creates the 'tables' command.
func newTablesCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List registered tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs := core.All()

			if outputJSON {
				infos := make([]core.TableInfo, len(defs))
				for i, def := range defs {
					infos[i] = def.Info
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			table := newTable(cmd.OutOrStdout(), nil)
			table.Header([]string{"GROUP", "KEY", "LABEL", "COLUMNS"})
			for _, def := range defs {
				row := []string{def.Info.Group, def.Info.Key, def.Info.Label, strings.Join(def.Info.Columns, ", ")}
				if err := table.Append(row); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output as JSON")
	return cmd
}
