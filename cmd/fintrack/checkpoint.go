package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/spf13/cobra"
)

func checkpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Manage ledger checkpoints",
		Long: `Create, list, restore, and delete snapshots of the ledger database.

Checkpoints live in a "checkpoints" directory next to the database file.
import-ofx takes one automatically before saving; the last five automatic
checkpoints are kept.`,
		Example: `  # Snapshot before cleaning up old expenses
  fintrack checkpoint create --tag before-cleanup

  # Go back to it
  fintrack checkpoint restore before-cleanup`,
	}

	cmd.AddCommand(createCheckpointCmd())
	cmd.AddCommand(listCheckpointsCmd())
	cmd.AddCommand(restoreCheckpointCmd())
	cmd.AddCommand(deleteCheckpointCmd())

	return cmd
}

func createCheckpointCmd() *cobra.Command {
	var tag string
	var description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cm, err := store.Checkpoints()
			if err != nil {
				return err
			}

			info, err := cm.Create(ctx, tag, description)
			if err != nil {
				return fmt.Errorf("failed to create checkpoint: %w", err)
			}

			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created checkpoint %s (%d expenses, %d categories)",
				info.ID, info.RowCounts["expenses"], info.RowCounts["categories"])))
			return nil
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "checkpoint name (default: timestamp)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what this checkpoint is for")

	return cmd
}

func listCheckpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List checkpoints, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cm, err := store.Checkpoints()
			if err != nil {
				return err
			}

			checkpoints, err := cm.List(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(checkpoints) == 0 {
				printLine(out, cli.InfoStyle.Render("No checkpoints found."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"), cli.BoldStyle.Render("Created"),
				cli.BoldStyle.Render("Expenses"), cli.BoldStyle.Render("Size"),
				cli.BoldStyle.Render("Description"))
			for _, cp := range checkpoints {
				desc := cp.Description
				if cp.IsAuto {
					desc = cli.SubtleStyle.Render(desc)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					cp.ID, cp.CreatedAt.Format("2006-01-02 15:04"), cp.RowCounts["expenses"],
					formatSize(cp.FileSize), desc)
			}
			return w.Flush()
		},
	}
}

func restoreCheckpointCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Replace the ledger with a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			// Restore closes the store itself on success
			defer func() { _ = store.Close() }()

			cm, err := store.Checkpoints()
			if err != nil {
				return err
			}

			if _, err := cm.AutoCheckpoint(ctx, "restore"); err != nil {
				return err
			}

			if err := cm.Restore(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to restore checkpoint: %w", err)
			}

			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Restored checkpoint %s", args[0])))
			return nil
		},
	}
}

func deleteCheckpointCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cm, err := store.Checkpoints()
			if err != nil {
				return err
			}

			if err := cm.Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete checkpoint: %w", err)
			}

			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted checkpoint %s", args[0])))
			return nil
		},
	}
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
