package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/ofx"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const maxParallelParses = 4

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import expenses from OFX/QFX files",
		Long: `Import expenses from OFX or QFX (Quicken) files exported from your bank.
Only debits are imported; deposits and refunds are skipped. A transaction
that appears in several of the given files is imported once.

Examples:
  # Import single file
  fintrack import-ofx ~/Downloads/checking_jan_2024.qfx

  # Import every export in a directory into category 3
  fintrack import-ofx ~/Downloads/*.qfx --category 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().Int64P("category", "c", 0, "category ID for the imported expenses")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	files, err := expandImportPatterns(args)
	if err != nil {
		return err
	}

	slog.Info("Importing OFX files",
		"file_count", len(files),
		"dry_run", dryRun)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("Parsing statements"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	perFile, err := parseOFXFiles(ctx, files, func() { _ = bar.Add(1) })
	_ = bar.Finish()
	if err != nil {
		return err
	}

	expenses, duplicates := mergeEntries(perFile)

	if cmd.Flags().Changed("category") {
		id, _ := cmd.Flags().GetInt64("category")
		for i := range expenses {
			expenses[i].CategoryID = &id
		}
	}

	if len(expenses) == 0 {
		printLine(out, cli.FormatWarning("No expenses found in the given files"))
		return nil
	}

	if dryRun {
		printLine(out, cli.FormatInfo(fmt.Sprintf("Dry run: would import %d expenses (%d duplicates skipped)", len(expenses), duplicates)))
		return writeExpenseTable(out, expenses)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if cm, err := store.Checkpoints(); err != nil {
		slog.Warn("Skipping checkpoint before import", "error", err)
	} else if _, err := cm.AutoCheckpoint(ctx, "import"); err != nil {
		slog.Warn("Failed to checkpoint before import", "error", err)
	}

	saved, err := store.SaveExpenses(ctx, expenses)
	if err != nil {
		return fmt.Errorf("failed to save expenses: %w", err)
	}

	printLine(out, cli.FormatSuccess(fmt.Sprintf("Imported %d expenses from %d files (%d duplicates skipped)", saved, len(files), duplicates)))
	return nil
}

func expandImportPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("invalid pattern %s", pattern), err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, common.NewUserError("no files found to import", common.ErrValidation)
	}
	return files, nil
}

// parseOFXFiles parses every file concurrently. Results keep the order of files.
func parseOFXFiles(ctx context.Context, files []string, done func()) ([][]ofx.Entry, error) {
	parser := ofx.NewParser()
	results := make([][]ofx.Entry, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelParses)

	for i, path := range files {
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			entries, err := parser.ParseFile(gctx, f)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
			}

			slog.Debug("Parsed file", "file", filepath.Base(path), "expenses", len(entries))
			results[i] = entries
			if done != nil {
				done()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// mergeEntries flattens per-file results, keeping the first occurrence of
// each account/FITID pair.
func mergeEntries(perFile [][]ofx.Entry) ([]model.Expense, int) {
	seen := make(map[string]bool)
	var expenses []model.Expense
	duplicates := 0

	for _, entries := range perFile {
		for _, entry := range entries {
			if entry.FitID != "" {
				if seen[entry.Key()] {
					duplicates++
					continue
				}
				seen[entry.Key()] = true
			}
			expenses = append(expenses, entry.Expense)
		}
	}

	return expenses, duplicates
}
