// Package cli implements coachctl, the command-line tool for the coaching
// tables.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/coachgrid/internal/config"
	"github.com/JonMunkholm/coachgrid/internal/core"
	"github.com/JonMunkholm/coachgrid/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set by the main package at startup.
var Version = "dev"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	envFiles  []string
	logLevel  string
	logFormat string
}

// NewRootCmd creates the coachctl root command.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "coachctl",
		Short: "Inspect and maintain the coaching tables",
		Long: `coachctl lists the registered coaching tables, creates their schema,
imports rows and runs the grid pipeline (search, sort, paginate) from the
terminal, against the database or a local JSON/CSV file.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnvFiles(flags.envFiles); err != nil {
				return err
			}
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), flags.logLevel, flags.logFormat))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringSliceVar(&flags.envFiles, "env-file", []string{".env"}, "Environment files to load (missing files are skipped)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "error", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(
		newTablesCmd(),
		newGridCmd(),
		newMigrateCmd(),
		newImportCmd(),
		newResetCmd(),
	)
	return rootCmd
}

// Execute runs coachctl and prints any error in its user-facing form.
func Execute(ctx context.Context) int {
	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		msg := err.Error()
		if core.IsUserFacing(err) {
			msg = core.FormatUserError(err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", msg)
		return 1
	}
	return 0
}

// loadEnvFiles loads each existing file without overriding variables that
// are already set.
func loadEnvFiles(files []string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// gridConfig reads the GRID_* settings.
func gridConfig() (config.GridConfig, error) {
	var cfg config.GridConfig
	if err := config.LoadInto(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openService connects to the database named by DATABASE_URL and builds a
// service over it. The caller closes the pool.
func openService(ctx context.Context) (*core.Service, *pgxpool.Pool, error) {
	var dbCfg config.DatabaseConfig
	if err := config.LoadInto(&dbCfg); err != nil {
		return nil, nil, err
	}
	gcfg, err := gridConfig()
	if err != nil {
		return nil, nil, err
	}

	pool, err := core.OpenPool(ctx, dbCfg)
	if err != nil {
		return nil, nil, err
	}
	svc := core.NewService(pool, core.Options{
		DefaultPageSize: gcfg.DefaultPageSize,
		MaxPageSize:     gcfg.MaxPageSize,
		Locale:          gcfg.LocaleTag(),
		MaxLoads:        gcfg.MaxConcurrentLoads,
		LoadWait:        gcfg.LoadWaitTime,
	})
	return svc, pool, nil
}
