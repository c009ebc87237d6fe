package reconcile

import (
	"fmt"
	"net/http"

	"github.com/fieldgrid-io/fieldgrid/pkg/httpapi"
)

// Each known layout locates its header differently; these are deliberately
// separate from the best-effort heuristic the raw archive uses.

// findHeaderByColumns scans rows in order for the first one whose string
// cells include every required column name. Returns the label index and the
// 0-based index of the first data row.
func findHeaderByColumns(rows [][]any, required []string) (headerIndex, int, error) {
	for i, row := range rows {
		index := headerIndex{}
		for col, cell := range row {
			if s, ok := cell.(string); ok {
				index[s] = col
			}
		}
		found := true
		for _, name := range required {
			if _, ok := index[name]; !ok {
				found = false
				break
			}
		}
		if found {
			return index, i + 1, nil
		}
	}
	return nil, 0, httpapi.NewStatusError(http.StatusBadRequest, "Could not find header row with required columns")
}

// findHeaderByMarker locates the header as the first row whose first cell
// equals the marker (the pole/JB schema sheets start theirs with "Sr.").
func findHeaderByMarker(rows [][]any, marker string) (headerIndex, int, error) {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if s, ok := row[0].(string); !ok || s != marker {
			continue
		}
		index := headerIndex{}
		for col, cell := range row {
			if s, ok := cell.(string); ok {
				index[s] = col
			}
		}
		return index, i + 1, nil
	}
	return nil, 0, httpapi.NewStatusError(http.StatusBadRequest, fmt.Sprintf("Could not find header row with %q column", marker))
}

// mergeTwoRowHeader combines the credentials layout's fixed two header rows
// (primary names in row 1, location names in row 2) into one label index.
// A row-2 label claims a column outright when new; it may displace an
// existing mapping only where row 1 left that column blank. Data begins
// unconditionally at row 3.
func mergeTwoRowHeader(rows [][]any) (headerIndex, int, error) {
	if len(rows) < 3 {
		return nil, 0, httpapi.NewStatusError(http.StatusBadRequest, "Insufficient rows in sheet")
	}
	main, location := rows[0], rows[1]

	index := headerIndex{}
	for col, cell := range main {
		if s, ok := cell.(string); ok && s != "" {
			index[s] = col
		}
	}
	for col, cell := range location {
		s, ok := cell.(string)
		if !ok || s == "" {
			continue
		}
		mainBlank := col >= len(main) || !present(main[col])
		if _, taken := index[s]; !taken || mainBlank {
			index[s] = col
		}
	}
	return index, 2, nil
}
