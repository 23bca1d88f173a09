package report

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"orderrate/internal/pipeline"
)

var countPrinter = message.NewPrinter(language.English)

// FormatCount renders an integer with digit grouping, e.g. 12345 ->
// "12,345", for the console summary.
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// SummaryTable renders the final report as a fixed-width console table.
func SummaryTable(rows []pipeline.RateRow) string {
	headers := []string{"Model Name", "A_Intention", "Call_Connect", "Success Rate"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.Model,
			FormatCount(r.IntentionCount),
			FormatCount(r.ConnectCount),
			FormatRate(r.SuccessRate),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	return strings.Join(formatTable(headers, cells, rightAlign), "\n")
}

func formatTable(headers []string, rows [][]string, rightAlign map[int]bool) []string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, formatRow(headers, widths, rightAlign))
	total := 2 * (len(widths) - 1) // cells are separated by two spaces
	for _, w := range widths {
		total += w
	}
	lines = append(lines, strings.Repeat("-", total))
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlign))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlign map[int]bool) string {
	var b strings.Builder
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		pad := strings.Repeat(" ", w-utf8.RuneCountInString(cell))
		if rightAlign[i] {
			b.WriteString(pad + cell)
		} else {
			b.WriteString(cell + pad)
		}
	}
	return strings.TrimRight(b.String(), " ")
}
