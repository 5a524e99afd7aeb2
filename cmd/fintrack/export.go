package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/config"
	"github.com/Veraticus/fintrack/internal/service"
	"github.com/Veraticus/fintrack/internal/sheets"
	"github.com/spf13/cobra"
)

// newReportWriter is swapped out in tests.
var newReportWriter = func(ctx context.Context) (service.ReportWriter, error) {
	cfg, err := config.LoadSheetsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load sheets config: %w", err)
	}
	return sheets.NewWriter(ctx, *cfg, slog.Default())
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger",
	}

	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Write a ledger report to Google Sheets",
		Long: `Write category totals, budgets, subscriptions and every expense to a
Google Sheets spreadsheet. With --month the report also includes that month's
budget check.

Credentials come from sheets.service_account_path, or from
sheets.client_id, sheets.client_secret and sheets.refresh_token
(GOOGLE_SHEETS_* environment variables work too).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			month, _ := cmd.Flags().GetString("month")
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			report, err := buildReport(ctx, store, month, time.Now())
			if err != nil {
				return err
			}

			writer, err := newReportWriter(ctx)
			if err != nil {
				return err
			}

			if err := writer.Write(ctx, report); err != nil {
				return fmt.Errorf("failed to export report: %w", err)
			}

			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d expenses to Google Sheets", len(report.Expenses))))
			return nil
		},
	}

	cmd.Flags().String("month", "", "include the budget check for this month (YYYY-MM)")

	return cmd
}

// buildReport snapshots the ledger for export.
func buildReport(ctx context.Context, ledger service.Ledger, month string, now time.Time) (*service.Report, error) {
	report := &service.Report{GeneratedAt: now}
	var err error

	if report.Categories, err = ledger.GetCategories(ctx); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	if report.CategoryTotals, err = ledger.CategoryReport(ctx); err != nil {
		return nil, fmt.Errorf("failed to build category report: %w", err)
	}
	if report.Expenses, err = ledger.ListExpenses(ctx); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if report.Subscriptions, err = ledger.GetSubscriptions(ctx); err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	if report.Budgets, err = ledger.GetBudgets(ctx); err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	if month != "" {
		if report.Alert, err = ledger.BudgetAlert(ctx, month); err != nil {
			return nil, fmt.Errorf("failed to check budget: %w", err)
		}
	}

	return report, nil
}
