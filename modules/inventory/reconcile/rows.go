package reconcile

import (
	"fmt"
	"strconv"
)

// Result summarizes one reconciler pass over one sheet.
type Result struct {
	RowsIngested int    `json:"rows_ingested"`
	RowsSkipped  int    `json:"rows_skipped"`
	Message      string `json:"message"`
}

// headerIndex maps a column label to its 0-based column number.
type headerIndex map[string]int

// value returns the cell under the given label, or nil when the label was
// never registered or the row is shorter than the column.
func (h headerIndex) value(row []any, label string) any {
	idx, ok := h[label]
	if !ok || idx >= len(row) {
		return nil
	}
	return row[idx]
}

// present reports whether a cell carries usable data. Empty strings, zero
// numbers and false mirror the emptiness rules the importers were built
// around: a zero "code" cell is as good as missing.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case bool:
		return t
	default:
		return true
	}
}

// asString renders a cell for storage in a text field. Whole floats drop
// the ".0" so numeric codes round-trip as written.
func asString(v any) *string {
	if v == nil {
		return nil
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		if t == float64(int64(t)) {
			s = strconv.FormatInt(int64(t), 10)
		} else {
			s = strconv.FormatFloat(t, 'f', -1, 64)
		}
	default:
		s = fmt.Sprint(t)
	}
	return &s
}

// mustString is asString for cells already checked with present.
func mustString(v any) string {
	s := asString(v)
	if s == nil {
		return ""
	}
	return *s
}

func asFloat(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return &f
		}
	}
	return nil
}

// firstPresent returns the first usable cell of the given labels.
func firstPresent(h headerIndex, row []any, labels ...string) any {
	for _, label := range labels {
		if v := h.value(row, label); present(v) {
			return v
		}
	}
	return nil
}
