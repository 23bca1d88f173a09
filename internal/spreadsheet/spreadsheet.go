// Package spreadsheet reads the analyst workbook and flattens its two
// category sheets into one-identifier-per-line slices for the pipeline.
// All workbook specifics live here; the pipeline never sees xlsx.
package spreadsheet

import (
	"os"

	"github.com/xuri/excelize/v2"

	"orderrate/pkg/constants"
	"orderrate/pkg/errors"
)

// Config names the two category sheets in the workbook.
type Config struct {
	// ConnectSheet holds call-connected numbers; its first row is a
	// title row and is skipped.
	ConnectSheet string

	// IntentionSheet holds purchase-intention numbers; every row is data.
	IntentionSheet string
}

// DefaultConfig returns the sheet names used by the source workbooks.
func DefaultConfig() Config {
	return Config{
		ConnectSheet:   constants.DefaultConnectSheet,
		IntentionSheet: constants.DefaultIntentionSheet,
	}
}

// Sheets holds the flattened identifier lines of both categories, one raw
// identifier per entry, taken from the first column of each row.
type Sheets struct {
	Connect   []string
	Intention []string
}

// Extract opens the workbook and flattens both category sheets.
// A missing workbook is fatal for the file pair.
func Extract(path string, cfg Config) (*Sheets, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.WrapIO("open", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	defer f.Close()

	connect, err := flatten(f, cfg.ConnectSheet, 1)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	intention, err := flatten(f, cfg.IntentionSheet, 0)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}

	return &Sheets{Connect: connect, Intention: intention}, nil
}

// flatten returns the first-column string value of each row after skipping
// skipRows leading rows. Rows with no cells flatten to the empty string;
// the matcher skips those downstream.
func flatten(f *excelize.File, sheet string, skipRows int) ([]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if skipRows > len(rows) {
		skipRows = len(rows)
	}

	lines := make([]string, 0, len(rows)-skipRows)
	for _, row := range rows[skipRows:] {
		value := ""
		if len(row) > 0 {
			value = row[0]
		}
		lines = append(lines, value)
	}
	return lines, nil
}

// SheetInfo describes one sheet for workbook inspection.
type SheetInfo struct {
	Name    string
	Rows    int
	Columns int
	Preview [][]string
}

// Inspect lists every sheet of the workbook with its dimensions and a
// short preview, so an analyst can verify sheet names before a run.
func Inspect(path string) ([]SheetInfo, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.WrapIO("open", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	defer f.Close()

	var infos []SheetInfo
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, errors.WrapParse("xlsx", path, err)
		}

		info := SheetInfo{Name: name, Rows: len(rows)}
		for _, row := range rows {
			if len(row) > info.Columns {
				info.Columns = len(row)
			}
		}
		preview := len(rows)
		if preview > constants.PreviewRows {
			preview = constants.PreviewRows
		}
		info.Preview = rows[:preview]
		infos = append(infos, info)
	}
	return infos, nil
}
