package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/practice/internal/store/jsonstore"
	"github.com/Makepad-fr/practice/internal/ui"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write all sessions to CSV",
		Args:  rangeArgs(0, 1, "export [path]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			out, err := a.store.ExportCSV(path)
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "exported CSV to "+out)
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv>",
		Short: "Append sessions from a CSV export",
		Args:  exactArgs(1, "import <csv>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open: %w", err)
			}
			defer f.Close()

			sessions, err := jsonstore.ReadCSV(f)
			if err != nil {
				return err
			}
			n, err := a.store.Import(sessions)
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("imported %d sessions", n))
			return nil
		},
	}
}
