package cli

import (
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/practice/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit sessions interactively",
		Args:  exactArgs(0, "tui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(a.store, tui.Options{
				TopN:   a.cfg.Week.TopN,
				Logger: a.logger.Zerolog().With().Str("component", "tui").Logger(),
			})
		},
	}
}
