package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fieldgrid-io/fieldgrid/pkg/excel"
)

func workbookWithSheets(t *testing.T, sheets map[string][][]any) *excel.Workbook {
	t.Helper()
	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	wb, err := excel.OpenBytes(buf.Bytes())
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

func TestDetectLayout_BySheetName(t *testing.T) {
	tests := []struct {
		name  string
		sheet string
		want  Layout
	}{
		{"enum sheet", "Enum-1", LayoutComponentInventory},
		{"field device sheet", "Field Device Details - Poles", LayoutPoleSchema},
		{"jb sheet", "JB List", LayoutPoleSchema},
		{"region sheet", "JAMMU", LayoutCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := workbookWithSheets(t, map[string][][]any{tt.sheet: {{"x"}}})
			assert.Equal(t, tt.want, DetectLayout(wb))
		})
	}
}

func TestDetectLayout_ByHeaders(t *testing.T) {
	t.Run("component inventory", func(t *testing.T) {
		wb := workbookWithSheets(t, map[string][][]any{
			"Data": {
				{"Title row"},
				{"Component ID", "Component Type", "Region", "District"},
			},
		})
		assert.Equal(t, LayoutComponentInventory, DetectLayout(wb))
	})

	t.Run("credentials by username label", func(t *testing.T) {
		wb := workbookWithSheets(t, map[string][][]any{
			"Data": {
				{"Hostname", "Username"},
			},
		})
		assert.Equal(t, LayoutCredentials, DetectLayout(wb))
	})
}

func TestDetectLayout_Unknown(t *testing.T) {
	wb := workbookWithSheets(t, map[string][][]any{
		"Data": {{"nothing", "recognizable", "here"}},
	})
	assert.Equal(t, LayoutUnknown, DetectLayout(wb))
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout("enum1")
	require.NoError(t, err)
	assert.Equal(t, LayoutComponentInventory, l)

	_, err = ParseLayout("csv")
	assert.Error(t, err)
}
