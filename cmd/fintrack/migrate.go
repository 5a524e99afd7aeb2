package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Every other command migrates on startup; this one is for doing it
explicitly or checking where a database stands.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	slog.Info("Starting database migration",
		"database", store.Path(),
		"current_version", current,
		"status_only", status)

	if status {
		printLine(out, cli.FormatInfo(fmt.Sprintf("Database: %s", store.Path())))
		printLine(out, cli.FormatInfo(fmt.Sprintf("Schema version %d of %d", current, storage.ExpectedSchemaVersion)))
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if current == storage.ExpectedSchemaVersion {
		printLine(out, cli.FormatSuccess(fmt.Sprintf("Database already at version %d", current)))
		return nil
	}

	printLine(out, cli.FormatSuccess(fmt.Sprintf("Migrated database from version %d to %d", current, storage.ExpectedSchemaVersion)))
	return nil
}
