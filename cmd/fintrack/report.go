package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize spending",
	}

	cmd.AddCommand(categoryReportCmd())
	cmd.AddCommand(monthReportCmd())

	return cmd
}

func categoryReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Total spent per category",
		Long: `Total spent per category. Categories without expenses and expenses
without a (valid) category are left out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			totals, err := store.CategoryReport(ctx)
			if err != nil {
				return fmt.Errorf("failed to build category report: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(totals) == 0 {
				printLine(out, cli.FormatInfo("No categorized expenses yet"))
				return nil
			}

			printLine(out, cli.FormatTitle("Spending by category"))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\n", cli.BoldStyle.Render("Category"), cli.BoldStyle.Render("Total"))
			for _, ct := range totals {
				fmt.Fprintf(w, "%s\t%s\n", ct.Name, cli.FormatAmount(ct.Total))
			}
			return w.Flush()
		},
	}
}

func monthReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month <YYYY-MM>",
		Short: "Total spent in a month",
		Long: `Total spent in a month. Every expense whose date starts with the given
text is counted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			total, err := store.MonthlyTotal(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to total month: %w", err)
			}

			printLine(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("Spent %s in %s", cli.FormatAmount(total), args[0])))
			return nil
		},
	}
}
