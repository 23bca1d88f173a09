// Package report writes every file a run produces: the per-category match
// and count files, the final success-rate report, flattened sheet
// snapshots, and the run metadata. It also renders the console summary.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"orderrate/internal/pipeline"
	"orderrate/pkg/errors"
)

// FormatRate renders a success rate as a percentage with two decimals,
// e.g. 0.3 -> "30.00%". Rounding happens only here; the underlying ratio
// keeps full precision.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

// WriteLines writes raw identifier lines, one per line. Used to snapshot
// the flattened sheets into the intermediate directory.
func WriteLines(path string, lines []string) error {
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	return errors.WrapIO("write", path, os.WriteFile(path, []byte(content), 0o644))
}

// WriteMatches writes one row per matched record with header
// phone_number, phone_md5, model_name. model_name is empty for unmatched
// records.
func WriteMatches(path string, records []pipeline.MatchedRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Identifier, r.Key, r.Model})
	}
	return writeCSV(path, []string{"phone_number", "phone_md5", "model_name"}, rows)
}

// WriteCounts writes a frequency table with header model_name, count,
// sorted ascending by model name as the table already is.
func WriteCounts(path string, table pipeline.FrequencyTable) error {
	rows := make([][]string, 0, len(table))
	for _, mc := range table {
		rows = append(rows, []string{mc.Model, strconv.Itoa(mc.Count)})
	}
	return writeCSV(path, []string{"model_name", "count"}, rows)
}

// WriteRates writes the final report with header model_name,
// a_intention_count, call_connect_count, order_success_rate.
func WriteRates(path string, rates []pipeline.RateRow) error {
	rows := make([][]string, 0, len(rates))
	for _, r := range rates {
		rows = append(rows, []string{
			r.Model,
			strconv.Itoa(r.IntentionCount),
			strconv.Itoa(r.ConnectCount),
			FormatRate(r.SuccessRate),
		})
	}
	return writeCSV(path, []string{"model_name", "a_intention_count", "call_connect_count", "order_success_rate"}, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
