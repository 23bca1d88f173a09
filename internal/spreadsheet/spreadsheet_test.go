package spreadsheet_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"orderrate/internal/spreadsheet"
	"orderrate/pkg/errors"
)

// writeWorkbook creates an xlsx file with the given sheets, one value per
// row in column A.
func writeWorkbook(t *testing.T, sheets map[string][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, values := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(name, cell, v))
		}
	}

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestExtract(t *testing.T) {
	cfg := spreadsheet.Config{ConnectSheet: "connected", IntentionSheet: "intent"}

	t.Run("skips connect title row, keeps all intention rows", func(t *testing.T) {
		path := writeWorkbook(t, map[string][]string{
			"connected": {"title", "111", "222"},
			"intent":    {"111", "333"},
		})

		sheets, err := spreadsheet.Extract(path, cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"111", "222"}, sheets.Connect)
		assert.Equal(t, []string{"111", "333"}, sheets.Intention)
	})

	t.Run("empty connect sheet", func(t *testing.T) {
		path := writeWorkbook(t, map[string][]string{
			"connected": {"title"},
			"intent":    {"111"},
		})

		sheets, err := spreadsheet.Extract(path, cfg)
		require.NoError(t, err)
		assert.Empty(t, sheets.Connect)
		assert.Equal(t, []string{"111"}, sheets.Intention)
	})

	t.Run("missing workbook fails with IOError", func(t *testing.T) {
		_, err := spreadsheet.Extract(filepath.Join(t.TempDir(), "missing.xlsx"), cfg)
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("missing sheet fails with ParseError", func(t *testing.T) {
		path := writeWorkbook(t, map[string][]string{"connected": {"title", "111"}})

		_, err := spreadsheet.Extract(path, cfg)
		require.Error(t, err)

		var parseErr *errors.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "xlsx", parseErr.Format)
	})
}

func TestInspect(t *testing.T) {
	t.Run("reports sheets with dimensions and preview", func(t *testing.T) {
		path := writeWorkbook(t, map[string][]string{
			"connected": {"title", "111", "222", "333", "444"},
		})

		infos, err := spreadsheet.Inspect(path)
		require.NoError(t, err)
		require.Len(t, infos, 1)

		info := infos[0]
		assert.Equal(t, "connected", info.Name)
		assert.Equal(t, 5, info.Rows)
		assert.Equal(t, 1, info.Columns)
		require.Len(t, info.Preview, 3)
		assert.Equal(t, []string{"title"}, info.Preview[0])
	})

	t.Run("missing workbook fails with IOError", func(t *testing.T) {
		_, err := spreadsheet.Inspect(filepath.Join(t.TempDir(), "missing.xlsx"))
		assert.True(t, errors.IsNotFound(err))
	})
}
