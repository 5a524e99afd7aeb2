package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/spf13/cobra"
)

func subscriptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subs"},
		Short:   "Track recurring subscriptions",
	}

	cmd.AddCommand(addSubscriptionCmd())
	cmd.AddCommand(listSubscriptionsCmd())

	return cmd
}

func addSubscriptionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <amount> <next-date>",
		Short: "Add a subscription",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sub, err := store.CreateSubscription(ctx, args[0], amount, args[2])
			if err != nil {
				return fmt.Errorf("failed to add subscription: %w", err)
			}

			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added subscription %q for %s, next due %s (ID %d)",
				sub.Name, cli.FormatAmount(sub.Amount), sub.NextDate, sub.ID)))
			return nil
		},
	}
}

func listSubscriptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions by next due date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			due, _ := cmd.Flags().GetString("due")

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var subs []model.Subscription
			if due != "" {
				subs, err = store.GetSubscriptionsDueBy(ctx, due)
			} else {
				subs, err = store.GetSubscriptions(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list subscriptions: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(subs) == 0 {
				printLine(out, cli.InfoStyle.Render("No subscriptions found."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"), cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Amount"), cli.BoldStyle.Render("Next due"))
			for _, s := range subs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID, s.Name, cli.FormatAmount(s.Amount), s.NextDate)
			}
			return w.Flush()
		},
	}

	cmd.Flags().String("due", "", "only subscriptions due on or before this date (YYYY-MM-DD)")

	return cmd
}
