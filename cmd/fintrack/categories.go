package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
		Long:  `List and add the categories expenses can be filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(categories) == 0 {
				printLine(out, cli.InfoStyle.Render("No categories found. Use 'fintrack categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\n", cli.BoldStyle.Render("ID"), cli.BoldStyle.Render("Name"))
			fmt.Fprintf(w, "%s\t%s\n", strings.Repeat("-", 4), strings.Repeat("-", 20))
			for _, cat := range categories {
				fmt.Fprintf(w, "%d\t%s\n", cat.ID, cat.Name)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			printLine(out, "\n"+cli.SubtleStyle.Render(fmt.Sprintf("Total: %d categories", len(categories))))
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long: `Add a new expense category. Names are not required to be unique.

Example:
  fintrack categories add "Groceries"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := store.CreateCategory(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created category %q (ID %d)", cat.Name, cat.ID)))
			return nil
		},
	}
}
