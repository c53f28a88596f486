package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/practice/internal/model"
)

func newListCmd(a *app) *cobra.Command {
	var f model.Filter
	var output string
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List sessions, newest first",
		Args:    exactArgs(0, "ls [--instrument NAME] [--since YYYY-MM-DD] [--output table|json|yaml]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validOutput(output) {
				return usagef("ls: unknown output format %q", output)
			}
			sessions, err := a.store.List(f)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, sessions, func() {
				renderSessions(cmd.OutOrStdout(), sessions)
			})
		},
	}
	addFilterFlags(cmd, &f)
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	return cmd
}

func newTotalCmd(a *app) *cobra.Command {
	var f model.Filter
	cmd := &cobra.Command{
		Use:   "total",
		Short: "Sum practice minutes",
		Args:  exactArgs(0, "total [--instrument NAME] [--since YYYY-MM-DD]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := a.store.TotalMinutes(f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d minutes\n", total)
			return nil
		},
	}
	addFilterFlags(cmd, &f)
	return cmd
}

func addFilterFlags(cmd *cobra.Command, f *model.Filter) {
	cmd.Flags().StringVarP(&f.Instrument, "instrument", "i", "", "only this instrument (case-insensitive)")
	cmd.Flags().StringVarP(&f.Since, "since", "s", "", "only sessions on or after YYYY-MM-DD")
}
