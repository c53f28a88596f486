package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/practice/internal/ui"
)

func newAddCmd(a *app) *cobra.Command {
	var notes, date string
	cmd := &cobra.Command{
		Use:   "add <instrument> <piece> <minutes>",
		Short: "Log a practice session",
		Example: `  practice add Piano "Clair de lune" 30
  practice add Guitar "Sor study 5" 20 --date 2026-10-12 --notes "watch the barre"`,
		Args: exactArgs(3, "add <instrument> <piece> <minutes> [--notes ...] [--date YYYY-MM-DD]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			mins, err := strconv.Atoi(strings.TrimSpace(args[2]))
			if err != nil {
				return usagef("add: not a number: %s", args[2])
			}
			ss, err := a.store.Add(args[0], args[1], mins, notes, date)
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("saved %s | %s | %s | %d min  %s",
				ss.Date, ss.Instrument, ss.Piece, ss.DurationMinutes, ui.Dim(shortID(ss.ID))))
			return nil
		},
	}
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "free-form notes")
	cmd.Flags().StringVarP(&date, "date", "d", "", "session date YYYY-MM-DD (default today)")
	return cmd
}
