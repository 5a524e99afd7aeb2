package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/spf13/cobra"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Set and check monthly budgets",
	}

	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(budgetAlertCmd())
	cmd.AddCommand(listBudgetsCmd())

	return cmd
}

func setBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <YYYY-MM> <limit>",
		Short: "Set a spending limit for a month",
		Long: `Set a spending limit for a month. Setting a month twice keeps both
records; alerts compare against the first one.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := parseAmount("limit", args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budget, err := store.CreateBudget(ctx, args[0], limit)
			if err != nil {
				return fmt.Errorf("failed to set budget: %w", err)
			}

			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Budget of %s set for %s",
				cli.FormatAmount(budget.Limit), budget.Month)))
			return nil
		},
	}
}

func budgetAlertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alert <YYYY-MM>",
		Short: "Compare a month's spending with its budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			alert, err := store.BudgetAlert(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to check budget: %w", err)
			}

			printLine(cmd.OutOrStdout(), cli.FormatAlert(*alert))
			return nil
		},
	}
}

func listBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every budget record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budgets, err := store.GetBudgets(ctx)
			if err != nil {
				return fmt.Errorf("failed to list budgets: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(budgets) == 0 {
				printLine(out, cli.InfoStyle.Render("No budgets set. Use 'fintrack budget set' to add one."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"), cli.BoldStyle.Render("Month"), cli.BoldStyle.Render("Limit"))
			for _, b := range budgets {
				fmt.Fprintf(w, "%d\t%s\t%s\n", b.ID, b.Month, cli.FormatAmount(b.Limit))
			}
			return w.Flush()
		},
	}
}
