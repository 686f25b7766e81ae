package cli

import (
	"database/sql"
	"fmt"
	"log/slog"

	repository "github.com/LeoR1u/ProyectoLegos/internal/repositories"
	"github.com/spf13/cobra"
)

// MigrateOptions holds flags for the migrate subcommands.
type MigrateOptions struct {
	*RootOptions
	Steps int
}

// NewMigrateCommand creates the migrate command and its up, down and version
// subcommands.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MigrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:          "up",
		Short:        "Apply every pending migration",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(opts.RootOptions, func(db *sql.DB) error {
				if err := repository.MigrateUp(db); err != nil {
					return err
				}

				slog.Info("Migrations applied")

				return nil
			})
		},
	})

	down := &cobra.Command{
		Use:          "down",
		Short:        "Roll back migrations",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(opts.RootOptions, func(db *sql.DB) error {
				if err := repository.MigrateDown(db, opts.Steps); err != nil {
					return err
				}

				slog.Info("Migrations rolled back", slog.Int("steps", opts.Steps))

				return nil
			})
		},
	}
	down.Flags().IntVar(&opts.Steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:          "version",
		Short:        "Print the applied schema version",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(opts.RootOptions, func(db *sql.DB) error {
				version, dirty, err := repository.MigrationVersion(db)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)

				return nil
			})
		},
	})

	return cmd
}

func withDatabase(opts *RootOptions, fn func(db *sql.DB) error) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	db, err := repository.Open(&cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db)
}
