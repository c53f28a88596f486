package cli

import (
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/practice/internal/model"
	"github.com/Makepad-fr/practice/internal/ui"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id-prefix>",
		Short: "Show one session",
		Args:  exactArgs(1, "show <id-prefix>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ss, err := a.store.ResolveIDPrefix(args[0])
			if err != nil {
				return err
			}
			renderSession(cmd.OutOrStdout(), ss)
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	var (
		date, instrument, piece, notes string
		minutes                        int
	)
	cmd := &cobra.Command{
		Use:     "edit <id-prefix>",
		Short:   "Change fields of a session",
		Example: `  practice edit 3f2a --minutes 45 --notes "metronome at 80"`,
		Args:    exactArgs(1, "edit <id-prefix> [--date --instrument --piece --minutes --notes]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p model.Patch
			flags := cmd.Flags()
			if flags.Changed("date") {
				p.Date = &date
			}
			if flags.Changed("instrument") {
				p.Instrument = &instrument
			}
			if flags.Changed("piece") {
				p.Piece = &piece
			}
			if flags.Changed("minutes") {
				p.DurationMinutes = &minutes
			}
			if flags.Changed("notes") {
				p.Notes = &notes
			}
			if p.Empty() {
				return usagef("edit: nothing to change")
			}

			ss, err := a.store.ResolveIDPrefix(args[0])
			if err != nil {
				return err
			}
			updated, err := a.store.Update(ss.ID, p)
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "updated "+shortID(updated.ID))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&date, "date", "d", "", "new date YYYY-MM-DD")
	f.StringVarP(&instrument, "instrument", "i", "", "new instrument")
	f.StringVarP(&piece, "piece", "p", "", "new piece")
	f.IntVarP(&minutes, "minutes", "m", 0, "new duration in minutes")
	f.StringVarP(&notes, "notes", "n", "", "new notes (empty string clears)")
	return cmd
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id-prefix>",
		Aliases: []string{"delete"},
		Short:   "Delete a session",
		Args:    exactArgs(1, "rm <id-prefix>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ss, err := a.store.ResolveIDPrefix(args[0])
			if err != nil {
				return err
			}
			if err := a.store.Delete(ss.ID); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "removed "+shortID(ss.ID))
			return nil
		},
	}
}
