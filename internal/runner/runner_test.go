package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"orderrate/internal/lookup"
	"orderrate/internal/report"
	"orderrate/internal/runner"
	"orderrate/internal/spreadsheet"
	"orderrate/pkg/errors"
	"orderrate/pkg/logging"
)

var testSheets = spreadsheet.Config{ConnectSheet: "connected", IntentionSheet: "intent"}

// writeLookup writes a lookup file mapping each identifier to a model.
func writeLookup(t *testing.T, dir string, mapping map[string]string) string {
	t.Helper()
	content := "mobile_id_md5\tmodel_name\n"
	for identifier, model := range mapping {
		content += lookup.Key(identifier) + "\t" + model + "\n"
	}
	path := filepath.Join(dir, "lookup.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeWorkbook writes an xlsx with a title-prefixed connect sheet and a
// plain intention sheet.
func writeWorkbook(t *testing.T, dir string, connect, intention []string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", testSheets.ConnectSheet))
	_, err := f.NewSheet(testSheets.IntentionSheet)
	require.NoError(t, err)

	connectRows := append([]string{"phone numbers"}, connect...)
	for i, v := range connectRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(testSheets.ConnectSheet, cell, v))
	}
	for i, v := range intention {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(testSheets.IntentionSheet, cell, v))
	}

	path := filepath.Join(dir, "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func newRunner(t *testing.T, prefix string) *runner.Runner {
	t.Helper()
	return runner.New(runner.Options{
		OutputPrefix: prefix,
		Sheets:       testSheets,
		Now:          func() time.Time { return time.Date(2025, 3, 1, 10, 30, 0, 0, time.Local) },
		Logger:       &logging.Nop,
	})
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestProcessPair(t *testing.T) {
	dir := t.TempDir()
	lookupPath := writeLookup(t, dir, map[string]string{
		"111": "Model A",
		"222": "Model B",
		"333": "Model A",
	})
	// connect: A=2 (111, 333), B=1 (222), one unmatched (999)
	// intention: A=1 (111), unmatched 999
	xlsxPath := writeWorkbook(t, dir,
		[]string{"111", "222", "333", "999"},
		[]string{"111", "999"},
	)

	r := newRunner(t, filepath.Join(dir, "results"))
	result := r.ProcessPair(runner.Pair{LookupPath: lookupPath, SpreadsheetPath: xlsxPath})
	require.NoError(t, result.Err)

	t.Run("run directory is timestamped and hashed", func(t *testing.T) {
		base := filepath.Base(result.OutputDir)
		assert.Regexp(t, `^results_20250301_103000_[0-9a-f]{8}$`, base)
	})

	t.Run("final report content", func(t *testing.T) {
		content := readFile(t, filepath.Join(result.OutputDir, "order_success_rate_results.csv"))
		assert.Equal(t,
			"model_name,a_intention_count,call_connect_count,order_success_rate\n"+
				"Model A,1,2,50.00%\n"+
				"Model B,0,1,0.00%\n",
			content)
	})

	t.Run("rate rows returned", func(t *testing.T) {
		require.Len(t, result.Rates, 2)
		assert.Equal(t, "Model A", result.Rates[0].Model)
		assert.Equal(t, 0.5, result.Rates[0].SuccessRate)
	})

	t.Run("intermediate files", func(t *testing.T) {
		intermediate := filepath.Join(result.OutputDir, "intermediate")

		assert.Equal(t, "111\n222\n333\n999\n", readFile(t, filepath.Join(intermediate, "call_connect.csv")))
		assert.Equal(t, "111\n999\n", readFile(t, filepath.Join(intermediate, "A_intention.csv")))

		matches := readFile(t, filepath.Join(intermediate, "call_connect_model.csv"))
		assert.Contains(t, matches, "111,"+lookup.Key("111")+",Model A\n")
		assert.Contains(t, matches, "999,"+lookup.Key("999")+",\n")

		counts := readFile(t, filepath.Join(intermediate, "call_connect_model_count.csv"))
		assert.Equal(t, "model_name,count\nModel A,2\nModel B,1\n", counts)

		intentionCounts := readFile(t, filepath.Join(intermediate, "A_intention_model_count.csv"))
		assert.Equal(t, "model_name,count\nModel A,1\n", intentionCounts)
	})

	t.Run("metadata records success", func(t *testing.T) {
		var md report.Metadata
		require.NoError(t, yaml.Unmarshal([]byte(readFile(t, filepath.Join(result.OutputDir, "run_info.yaml"))), &md))
		assert.Equal(t, report.StatusSuccess, md.Status)
		assert.Equal(t, lookupPath, md.LookupFile)
		assert.Equal(t, xlsxPath, md.SpreadsheetFile)
		assert.NotEmpty(t, md.Files)
	})
}

func TestProcessPairIdempotent(t *testing.T) {
	dir := t.TempDir()
	lookupPath := writeLookup(t, dir, map[string]string{"111": "Model A"})
	xlsxPath := writeWorkbook(t, dir, []string{"111", "222"}, []string{"111"})
	pair := runner.Pair{LookupPath: lookupPath, SpreadsheetPath: xlsxPath}

	first := newRunner(t, filepath.Join(dir, "first")).ProcessPair(pair)
	second := newRunner(t, filepath.Join(dir, "second")).ProcessPair(pair)
	require.NoError(t, first.Err)
	require.NoError(t, second.Err)

	assert.Equal(t,
		readFile(t, filepath.Join(first.OutputDir, "order_success_rate_results.csv")),
		readFile(t, filepath.Join(second.OutputDir, "order_success_rate_results.csv")))
}

func TestProcessPairFailures(t *testing.T) {
	t.Run("missing lookup file", func(t *testing.T) {
		dir := t.TempDir()
		xlsxPath := writeWorkbook(t, dir, []string{"111"}, []string{"111"})

		r := newRunner(t, filepath.Join(dir, "results"))
		result := r.ProcessPair(runner.Pair{
			LookupPath:      filepath.Join(dir, "missing.txt"),
			SpreadsheetPath: xlsxPath,
		})
		require.Error(t, result.Err)
		assert.True(t, errors.IsNotFound(result.Err))

		var pipeErr *errors.PipelineError
		require.ErrorAs(t, result.Err, &pipeErr)
		assert.Equal(t, "lookup", pipeErr.Stage)

		// No report, but metadata still records the failure.
		assert.NoFileExists(t, filepath.Join(result.OutputDir, "order_success_rate_results.csv"))

		var md report.Metadata
		require.NoError(t, yaml.Unmarshal([]byte(readFile(t, filepath.Join(result.OutputDir, "run_info.yaml"))), &md))
		assert.Equal(t, report.StatusFailed, md.Status)
		assert.NotEmpty(t, md.Error)
	})

	t.Run("missing workbook", func(t *testing.T) {
		dir := t.TempDir()
		lookupPath := writeLookup(t, dir, map[string]string{"111": "Model A"})

		r := newRunner(t, filepath.Join(dir, "results"))
		result := r.ProcessPair(runner.Pair{
			LookupPath:      lookupPath,
			SpreadsheetPath: filepath.Join(dir, "missing.xlsx"),
		})
		require.Error(t, result.Err)

		var pipeErr *errors.PipelineError
		require.ErrorAs(t, result.Err, &pipeErr)
		assert.Equal(t, "extract", pipeErr.Stage)
	})
}

func TestRun(t *testing.T) {
	t.Run("one failing pair does not stop the rest", func(t *testing.T) {
		dir := t.TempDir()
		lookupPath := writeLookup(t, dir, map[string]string{"111": "Model A"})
		xlsxPath := writeWorkbook(t, dir, []string{"111"}, []string{"111"})

		r := newRunner(t, filepath.Join(dir, "results"))
		summary := r.Run(context.Background(), []runner.Pair{
			{LookupPath: filepath.Join(dir, "missing.txt"), SpreadsheetPath: xlsxPath},
			{LookupPath: lookupPath, SpreadsheetPath: xlsxPath},
		})

		require.Len(t, summary.Results, 2)
		assert.Error(t, summary.Results[0].Err)
		assert.NoError(t, summary.Results[1].Err)
		assert.Len(t, summary.Succeeded(), 1)
		assert.Equal(t, 1, summary.FailedCount())
	})

	t.Run("cancelled context skips remaining pairs", func(t *testing.T) {
		dir := t.TempDir()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r := newRunner(t, filepath.Join(dir, "results"))
		summary := r.Run(ctx, []runner.Pair{
			{LookupPath: "a", SpreadsheetPath: "b"},
		})
		assert.Empty(t, summary.Results)
	})
}

func TestPairName(t *testing.T) {
	pair := runner.Pair{LookupPath: "/data/lookup.txt", SpreadsheetPath: "/data/sheet.xlsx"}
	assert.Equal(t, "lookup.txt+sheet.xlsx", pair.Name())
}
