package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/spf13/cobra"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Record and manage expenses",
	}

	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(updateExpenseCmd())
	cmd.AddCommand(deleteExpenseCmd())
	cmd.AddCommand(searchExpensesCmd())
	cmd.AddCommand(listExpensesCmd())

	return cmd
}

func addExpenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title> <amount> <date>",
		Short: "Record an expense",
		Long: `Record an expense. Dates are stored as given; use YYYY-MM-DD so month
reports pick them up.

Example:
  fintrack expenses add "Lunch" 12.50 2024-01-15 --category 3`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", args[1])
			if err != nil {
				return err
			}

			var categoryID *int64
			if cmd.Flags().Changed("category") {
				id, _ := cmd.Flags().GetInt64("category")
				categoryID = &id
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			exp, err := store.CreateExpense(ctx, args[0], amount, args[2], categoryID)
			if err != nil {
				return fmt.Errorf("failed to add expense: %w", err)
			}

			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added expense %q for %s (ID %d)",
				exp.Title, cli.FormatAmount(exp.Amount), exp.ID)))
			return nil
		},
	}

	cmd.Flags().Int64P("category", "c", 0, "category ID")

	return cmd
}

func updateExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <title> <amount>",
		Short: "Change an expense's title and amount",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("expense ID", args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount("amount", args[2])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			out := cmd.OutOrStdout()
			exp, err := store.UpdateExpense(ctx, id, args[1], amount)
			if errors.Is(err, common.ErrNotFound) {
				printNotFound(out, "Expense", id)
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to update expense: %w", err)
			}

			printLine(out, cli.FormatSuccess(fmt.Sprintf("Updated expense %d: %q %s",
				exp.ID, exp.Title, cli.FormatAmount(exp.Amount))))
			return nil
		},
	}
}

func deleteExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("expense ID", args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			out := cmd.OutOrStdout()
			err = store.DeleteExpense(ctx, id)
			if errors.Is(err, common.ErrNotFound) {
				printNotFound(out, "Expense", id)
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to delete expense: %w", err)
			}

			printLine(out, cli.FormatSuccess(fmt.Sprintf("Deleted expense %d", id)))
			return nil
		},
	}
}

func searchExpensesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <date>",
		Short: "Find expenses recorded on an exact date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expenses, err := store.FindExpensesByDate(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to search expenses: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(expenses) == 0 {
				printLine(out, cli.FormatInfo(fmt.Sprintf("No expenses on %s", args[0])))
				return nil
			}
			return writeExpenseTable(out, expenses)
		},
	}
}

func listExpensesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all expenses by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expenses, err := store.ListExpenses(ctx)
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(expenses) == 0 {
				printLine(out, cli.InfoStyle.Render("No expenses recorded yet."))
				return nil
			}
			return writeExpenseTable(out, expenses)
		},
	}
}

func writeExpenseTable(out io.Writer, expenses []model.Expense) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("ID"),
		cli.BoldStyle.Render("Date"),
		cli.BoldStyle.Render("Title"),
		cli.BoldStyle.Render("Amount"),
		cli.BoldStyle.Render("Category"))

	var total float64
	for _, exp := range expenses {
		category := cli.SubtleStyle.Render("-")
		if exp.HasCategory() {
			category = fmt.Sprintf("%d", *exp.CategoryID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", exp.ID, exp.Date, exp.Title, cli.FormatAmount(exp.Amount), category)
		total += exp.Amount
	}
	if err := w.Flush(); err != nil {
		return err
	}

	printLine(out, "\n"+cli.SubtleStyle.Render(fmt.Sprintf("%d expenses, %s total", len(expenses), cli.FormatAmount(total))))
	return nil
}
