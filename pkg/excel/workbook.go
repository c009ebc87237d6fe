package excel

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

// Workbook is a read-only view over an .xlsx file. Cells are surfaced as
// cached raw values, never re-evaluated formulas.
type Workbook struct {
	file *excelize.File
}

func OpenBytes(b []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	return &Workbook{file: f}, nil
}

func OpenFile(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	return &Workbook{file: f}, nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames returns sheet names in file order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// Sheet holds normalized cell values. Rows and cells are 0-indexed here;
// persisted row indexes are 1-based like the spreadsheet itself. Blank cells
// are nil. Rows are ragged: trailing blanks are not padded.
type Sheet struct {
	Name string
	Rows [][]any
}

func (s *Sheet) MaxRow() int {
	return len(s.Rows)
}

func (s *Sheet) MaxCol() int {
	maxCol := 0
	for _, row := range s.Rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	return maxCol
}

// ReadSheet loads a sheet with every cell normalized to a JSON-safe scalar:
// bool, float64, or string; date-formatted numbers become ISO-8601 strings
// with a trailing "Z".
func (w *Workbook) ReadSheet(name string) (*Sheet, error) {
	if !w.HasSheet(name) {
		return nil, errors.Errorf("sheet %q not found", name)
	}
	rawRows, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrap(err, "read sheet")
	}
	fmtRows, err := w.file.GetRows(name)
	if err != nil {
		return nil, errors.Wrap(err, "read sheet")
	}

	sheet := &Sheet{Name: name, Rows: make([][]any, len(rawRows))}
	for r, rawRow := range rawRows {
		row := make([]any, len(rawRow))
		for c, raw := range rawRow {
			formatted := ""
			if r < len(fmtRows) && c < len(fmtRows[r]) {
				formatted = fmtRows[r][c]
			}
			row[c] = w.normalizeCell(name, r+1, c+1, raw, formatted)
		}
		sheet.Rows[r] = row
	}
	return sheet, nil
}

// Layouts excelize produces for date/time number formats; used to recognize
// date cells from their formatted rendering.
var dateLayouts = []string{
	"1/2/06 15:04",
	"1/2/06",
	"01-02-06",
	"01-02-2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2-Jan-06",
	"Jan-06",
}

func (w *Workbook) normalizeCell(sheet string, row, col int, raw, formatted string) any {
	if raw == "" && formatted == "" {
		return nil
	}

	// The stored cell type decides the scalar kind. A text cell holding
	// digits stays a string: "00123" must not collapse into 123.
	if axis, err := excelize.CoordinatesToCellName(col, row); err == nil {
		if ctype, err := w.file.GetCellType(sheet, axis); err == nil {
			switch ctype {
			case excelize.CellTypeBool:
				return raw == "1" || strings.EqualFold(raw, "true")
			case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
				if raw != "" {
					return raw
				}
				return formatted
			}
		}
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		// A numeric cell whose rendering is a date is stored as the
		// instant, not the serial number.
		if formatted != raw {
			for _, layout := range dateLayouts {
				if _, err := time.Parse(layout, formatted); err == nil {
					if ts, err := excelize.ExcelDateToTime(serial, false); err == nil {
						return ts.UTC().Format("2006-01-02T15:04:05") + "Z"
					}
				}
			}
		}
		return serial
	}

	if raw != "" {
		return raw
	}
	return formatted
}

// ColumnLetter converts a 1-based column number to its spreadsheet label
// (A..Z, AA, AB, ...).
func ColumnLetter(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// DetectHeaderRow picks the row with the most non-blank string cells within
// the first 25 rows. Returns a 1-based row number; ok is false when no row
// reaches three string cells, meaning column letters should be synthesized.
func DetectHeaderRow(rows [][]any) (int, bool) {
	const (
		scanLimit  = 25
		minStrings = 3
	)
	bestRow, bestScore := 0, 0
	for i, row := range rows {
		if i >= scanLimit {
			break
		}
		score := 0
		for _, v := range row {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestRow = i + 1
		}
	}
	if bestScore >= minStrings {
		return bestRow, true
	}
	return 0, false
}

// ColumnLabels derives the ordered column labels for a sheet: header text
// where present and non-blank, else the column letter.
func ColumnLabels(sheet *Sheet, headerRow int, maxCol int) []string {
	labels := make([]string, 0, maxCol)
	var header []any
	if headerRow > 0 && headerRow <= len(sheet.Rows) {
		header = sheet.Rows[headerRow-1]
	}
	for c := 1; c <= maxCol; c++ {
		label := ColumnLetter(c)
		if header != nil && c-1 < len(header) {
			if s, ok := header[c-1].(string); ok && strings.TrimSpace(s) != "" {
				label = strings.TrimSpace(s)
			}
		}
		labels = append(labels, label)
	}
	return labels
}
