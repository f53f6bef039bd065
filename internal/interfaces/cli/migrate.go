package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/database/postgres"
)

// newMigrateCmd manages the database schema from the command line. The
// API server also applies pending migrations at startup; these commands
// cover rollbacks and inspection.
func newMigrateCmd(opts *RootOptions) *cobra.Command {
	var migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}
	cmd.PersistentFlags().StringVar(&migrationsPath, "path", "", "migrations directory (default: database.migration_path from config)")

	resolve := func() (dbURL, path string, err error) {
		cfg, err := loadConfig(opts)
		if err != nil {
			return "", "", err
		}
		path = migrationsPath
		if path == "" {
			path = cfg.Database.MigrationPath
		}
		if path == "" {
			return "", "", fmt.Errorf("no migrations path: set --path or database.migration_path")
		}
		return postgres.DSN(cfg.Database), path, nil
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL, path, err := resolve()
			if err != nil {
				return err
			}
			if err := postgres.RunMigrations(dbURL, path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	var steps int
	rollback := &cobra.Command{
		Use:   "rollback",
		Short: "Roll back the most recent migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL, path, err := resolve()
			if err != nil {
				return err
			}
			if err := postgres.RollbackMigration(dbURL, path, steps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
			return nil
		},
	}
	rollback.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL, path, err := resolve()
			if err != nil {
				return err
			}
			version, dirty, err := postgres.MigrationStatus(dbURL, path)
			if err != nil {
				return err
			}
			if version == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version: %d  dirty: %t\n", version, dirty)
			return nil
		},
	}

	cmd.AddCommand(up, rollback, status)
	return cmd
}
