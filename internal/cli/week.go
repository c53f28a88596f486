package cli

import (
	"github.com/spf13/cobra"
)

func newWeekCmd(a *app) *cobra.Command {
	var top int
	var output string
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Summarize this week (Monday through today)",
		Args:  exactArgs(0, "week [--top N] [--output table|json|yaml]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validOutput(output) {
				return usagef("week: unknown output format %q", output)
			}
			if !cmd.Flags().Changed("top") {
				top = a.cfg.Week.TopN
			}
			summary, err := a.store.WeeklySummary(top)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, summary, func() {
				renderWeek(cmd.OutOrStdout(), summary)
			})
		},
	}
	cmd.Flags().IntVarP(&top, "top", "t", 5, "number of top pieces to show (0 = all)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	return cmd
}
