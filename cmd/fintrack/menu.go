package main

import (
	"os"

	"github.com/Veraticus/fintrack/internal/cli"
	"github.com/Veraticus/fintrack/internal/tui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func menuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu",
		Long: `Interactive menu for the everyday actions: add categories and expenses,
update or delete expenses, search by date, category report, set a monthly
budget and check it.

On a terminal the action is picked with the arrow keys; with --plain (or when
input is piped) it is typed as a number.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plain, _ := cmd.Flags().GetBool("plain")

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			in := cmd.InOrStdin()
			out := cmd.OutOrStdout()

			handler := cli.NewInterruptHandler(out)
			ctx, stop := handler.HandleInterrupts(cmd.Context())
			defer stop()

			var opts []cli.MenuOption
			if !plain && isTerminal(in) && isTerminal(out) {
				opts = append(opts, cli.WithChooser(tui.NewChooser(in, out)))
			}

			return cli.NewMenu(store, in, out, opts...).Run(ctx)
		},
	}

	cmd.Flags().Bool("plain", false, "type menu choices as numbers instead of using the picker")

	return cmd
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
