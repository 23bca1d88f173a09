package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"orderrate/internal/spreadsheet"
)

// newInspectCommand creates the inspect command, which previews a workbook
// so an analyst can verify sheet names and shape before a run.
func (a *App) newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <workbook.xlsx>",
		Short: "List a workbook's sheets with dimensions and a short preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := spreadsheet.Inspect(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found %d sheet(s) in %s:\n", len(infos), args[0])
			for i, info := range infos {
				fmt.Fprintf(out, "\n%d. %q (%d rows, %d columns)\n", i+1, info.Name, info.Rows, info.Columns)
				for _, row := range info.Preview {
					fmt.Fprintf(out, "   %s\n", strings.Join(row, " | "))
				}
			}
			return nil
		},
	}
}
