package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/pageza/alchemorsel-pantry/backend/config"
	"github.com/pageza/alchemorsel-pantry/backend/internal/database"
	"github.com/pageza/alchemorsel-pantry/backend/internal/logging"
	"github.com/pageza/alchemorsel-pantry/backend/migrations"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the pantry database schema",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", "", "read migrations from this directory instead of the embedded set")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, closeDB, err := openMigrator(dir)
				if err != nil {
					return err
				}
				defer closeDB()

				applied, err := m.Up(cmd.Context())
				if err != nil {
					return err
				}
				if len(applied) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date.")
				}
				for _, name := range applied {
					fmt.Fprintf(cmd.OutOrStdout(), "Applied migration: %s\n", name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "rollback",
			Short: "Roll back the most recently applied migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, closeDB, err := openMigrator(dir)
				if err != nil {
					return err
				}
				defer closeDB()

				name, err := m.Rollback(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rolled back migration: %s\n", name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, closeDB, err := openMigrator(dir)
				if err != nil {
					return err
				}
				defer closeDB()

				statuses, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED")
				for _, s := range statuses {
					applied := "pending"
					if s.Applied {
						applied = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(w, "%s\t%s\t%s\n", s.Version, s.Name, applied)
				}
				return w.Flush()
			},
		},
	)
	return root
}

// openMigrator connects with DATABASE_URL, falling back to the DB_* settings.
func openMigrator(dir string) (*database.Migrator, func(), error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg := &config.Config{
			DBHost:     envOr("DB_HOST", "localhost"),
			DBPort:     envOr("DB_PORT", "5432"),
			DBUser:     envOr("DB_USER", "postgres"),
			DBPassword: os.Getenv("DB_PASSWORD"),
			DBName:     envOr("DB_NAME", "pantry"),
			DBSSLMode:  envOr("DB_SSL_MODE", "disable"),
		}
		dsn = cfg.DSN()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var files fs.FS = migrations.FS
	if dir != "" {
		files = os.DirFS(dir)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL"), config.GetEnvironment(), os.Stderr)
	return database.NewMigrator(db, files, logger), func() { db.Close() }, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
