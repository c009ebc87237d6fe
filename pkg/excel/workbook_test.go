package excel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, fill func(f *excelize.File)) *Workbook {
	t.Helper()
	f := excelize.NewFile()
	fill(f)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	wb, err := OpenBytes(buf.Bytes())
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

func TestColumnLetter(t *testing.T) {
	cases := map[int]string{
		1:   "A",
		2:   "B",
		26:  "Z",
		27:  "AA",
		28:  "AB",
		52:  "AZ",
		53:  "BA",
		702: "ZZ",
		703: "AAA",
	}
	for n, want := range cases {
		assert.Equal(t, want, ColumnLetter(n), "column %d", n)
	}
}

func TestReadSheet_Normalization(t *testing.T) {
	wb := buildWorkbook(t, func(f *excelize.File) {
		_ = f.SetCellValue("Sheet1", "A1", "Name")
		_ = f.SetCellValue("Sheet1", "B1", 42)
		_ = f.SetCellValue("Sheet1", "C1", 3.5)
		_ = f.SetCellBool("Sheet1", "D1", true)
		_ = f.SetCellValue("Sheet1", "E1", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	})

	sheet, err := wb.ReadSheet("Sheet1")
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)

	row := sheet.Rows[0]
	require.Len(t, row, 5)
	assert.Equal(t, "Name", row[0])
	assert.Equal(t, float64(42), row[1])
	assert.Equal(t, 3.5, row[2])
	assert.Equal(t, true, row[3])
	assert.Equal(t, "2024-05-01T00:00:00Z", row[4])
}

func TestReadSheet_TextCellsKeepStringness(t *testing.T) {
	wb := buildWorkbook(t, func(f *excelize.File) {
		_ = f.SetCellStr("Sheet1", "A1", "00123")
		_ = f.SetCellStr("Sheet1", "B1", "123")
		_ = f.SetCellStr("Sheet1", "C1", "3.50")
		_ = f.SetCellValue("Sheet1", "D1", 123)
	})

	sheet, err := wb.ReadSheet("Sheet1")
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)

	row := sheet.Rows[0]
	require.Len(t, row, 4)
	assert.Equal(t, "00123", row[0], "zero-padded code must keep its leading zeros")
	assert.Equal(t, "123", row[1], "digit-only text cell stays a string")
	assert.Equal(t, "3.50", row[2])
	assert.Equal(t, float64(123), row[3], "numeric cell still normalizes to float64")
}

func TestReadSheet_MissingSheet(t *testing.T) {
	wb := buildWorkbook(t, func(f *excelize.File) {
		_ = f.SetCellValue("Sheet1", "A1", "x")
	})

	_, err := wb.ReadSheet("Nope")
	require.Error(t, err)
}

func TestDetectHeaderRow(t *testing.T) {
	t.Run("picks densest string row", func(t *testing.T) {
		rows := [][]any{
			{"Inventory", nil, nil},
			{"Code", "Type", "Region", "District"},
			{"C1", "Camera", "North", "D1"},
		}
		row, ok := DetectHeaderRow(rows)
		require.True(t, ok)
		assert.Equal(t, 2, row)
	})

	t.Run("no string-heavy row", func(t *testing.T) {
		rows := [][]any{
			{1.0, 2.0, 3.0},
			{4.0, 5.0, 6.0},
		}
		_, ok := DetectHeaderRow(rows)
		assert.False(t, ok)
	})

	t.Run("ignores rows past the scan window", func(t *testing.T) {
		rows := make([][]any, 30)
		for i := range rows {
			rows[i] = []any{1.0}
		}
		rows[28] = []any{"a", "b", "c", "d"}
		_, ok := DetectHeaderRow(rows)
		assert.False(t, ok)
	})
}

func TestColumnLabels(t *testing.T) {
	sheet := &Sheet{
		Name: "S",
		Rows: [][]any{
			{"ID", nil, "  Region  "},
			{"r1", "x", "North", "extra"},
		},
	}

	t.Run("header labels with letter fallback", func(t *testing.T) {
		labels := ColumnLabels(sheet, 1, 4)
		assert.Equal(t, []string{"ID", "B", "Region", "D"}, labels)
	})

	t.Run("letters only without header", func(t *testing.T) {
		labels := ColumnLabels(sheet, 0, 3)
		assert.Equal(t, []string{"A", "B", "C"}, labels)
	})
}
