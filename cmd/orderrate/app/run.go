package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"orderrate/internal/report"
	"orderrate/internal/runner"
	"orderrate/internal/spreadsheet"
	"orderrate/pkg/errors"
)

// newRunCommand creates the run command, the main batch workflow.
func (a *App) newRunCommand() *cobra.Command {
	var (
		baseData     []string
		spreadsheets []string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process lookup/workbook file pairs into success-rate reports",
		Long: `Run processes one or more (lookup file, workbook) pairs. Each pair gets
its own timestamped output directory. A failing pair does not stop the
remaining pairs; the command fails only when no pair succeeds.`,
		Example: `  # Single file pair
  orderrate run --base-data yilian_output.txt --spreadsheet data.xlsx

  # Multiple file pairs
  orderrate run --base-data a.txt --base-data b.txt --spreadsheet a.xlsx --spreadsheet b.xlsx

  # Custom output directory prefix
  orderrate run --base-data a.txt --spreadsheet a.xlsx --output-prefix my_analysis`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPairs(cmd, baseData, spreadsheets)
		},
	}

	cmd.Flags().StringSliceVar(&baseData, "base-data", nil, "lookup file(s) with hashed model mappings (required)")
	cmd.Flags().StringSliceVar(&spreadsheets, "spreadsheet", nil, "workbook file(s) to analyze (required)")
	cmd.Flags().StringVar(&a.config.OutputPrefix, "output-prefix", a.config.OutputPrefix, "output directory prefix")
	cmd.Flags().StringVar(&a.config.ConnectSheet, "connect-sheet", a.config.ConnectSheet, "sheet holding call-connected numbers (first row skipped)")
	cmd.Flags().StringVar(&a.config.IntentionSheet, "intention-sheet", a.config.IntentionSheet, "sheet holding purchase-intention numbers")
	_ = cmd.MarkFlagRequired("base-data")
	_ = cmd.MarkFlagRequired("spreadsheet")

	return cmd
}

// runPairs validates the pair lists, runs them, and prints the summary.
func (a *App) runPairs(cmd *cobra.Command, baseData, spreadsheets []string) error {
	if len(baseData) != len(spreadsheets) {
		return fmt.Errorf("%w: %d lookup file(s) but %d spreadsheet(s); counts must match",
			errors.ErrInvalidInput, len(baseData), len(spreadsheets))
	}

	pairs := make([]runner.Pair, len(baseData))
	for i := range baseData {
		pairs[i] = runner.Pair{LookupPath: baseData[i], SpreadsheetPath: spreadsheets[i]}
	}

	r := runner.New(runner.Options{
		OutputPrefix: a.config.OutputPrefix,
		Sheets: spreadsheet.Config{
			ConnectSheet:   a.config.ConnectSheet,
			IntentionSheet: a.config.IntentionSheet,
		},
		Logger: a.logger,
	})

	summary := r.Run(cmd.Context(), pairs)

	out := cmd.OutOrStdout()
	for _, result := range summary.Succeeded() {
		fmt.Fprintf(out, "\nResults for %s (%s):\n", result.Pair.Name(), result.OutputDir)
		fmt.Fprintln(out, report.SummaryTable(result.Rates))
	}

	fmt.Fprintf(out, "\nFile pairs attempted: %d, succeeded: %d, failed: %d\n",
		len(summary.Results), len(summary.Succeeded()), summary.FailedCount())
	for _, result := range summary.Succeeded() {
		fmt.Fprintf(out, "  %s\n", result.OutputDir)
	}

	if len(summary.Results) > 0 && len(summary.Succeeded()) == 0 {
		return errors.New("no file pairs were processed successfully")
	}
	return nil
}
