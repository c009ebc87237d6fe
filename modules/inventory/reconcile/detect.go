package reconcile

import (
	"fmt"
	"strings"

	"github.com/fieldgrid-io/fieldgrid/pkg/excel"
)

// Layout identifies one of the known spreadsheet layouts. Reconciler
// dispatch is explicit by layout; nothing infers schemas beyond this set.
type Layout string

const (
	LayoutComponentInventory Layout = "enum1"
	LayoutPoleSchema         Layout = "ip-schema"
	LayoutCredentials        Layout = "credentials"
	LayoutUnknown            Layout = "unknown"
)

var credentialRegionNames = []string{"jammu", "samba", "kathua", "awantipura", "baramulla", "srinagar", "udhampur"}

func (l Layout) Valid() bool {
	switch l {
	case LayoutComponentInventory, LayoutPoleSchema, LayoutCredentials:
		return true
	}
	return false
}

func ParseLayout(s string) (Layout, error) {
	l := Layout(s)
	if !l.Valid() {
		return LayoutUnknown, fmt.Errorf("unknown import type: %s", s)
	}
	return l, nil
}

// DetectLayout classifies a workbook by sheet names first, then by scanning
// the first rows of each sheet for telltale column labels. Sheets that fail
// to read are passed over; detection is best effort and may come back
// LayoutUnknown.
func DetectLayout(wb *excel.Workbook) Layout {
	names := wb.SheetNames()

	for _, name := range names {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "enum") {
			return LayoutComponentInventory
		}
	}
	for _, name := range names {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "field device") || strings.Contains(lower, "pole") || strings.Contains(lower, "jb") {
			return LayoutPoleSchema
		}
	}
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, region := range credentialRegionNames {
			if lower == region {
				return LayoutCredentials
			}
		}
	}

	for _, name := range names {
		sheet, err := wb.ReadSheet(name)
		if err != nil {
			continue
		}
		if l := classifyByHeaders(sheet.Rows); l != LayoutUnknown {
			return l
		}
	}
	return LayoutUnknown
}

// classifyByHeaders joins string cells of the first five rows and looks for
// labels unique to each layout.
func classifyByHeaders(rows [][]any) Layout {
	var cells []string
	for i, row := range rows {
		if i >= 5 {
			break
		}
		for _, cell := range row {
			if s, ok := cell.(string); ok {
				cells = append(cells, strings.ToLower(s))
			}
		}
	}
	joined := strings.Join(cells, " ")

	if strings.Contains(joined, "component id") || strings.Contains(joined, "component type") {
		return LayoutComponentInventory
	}
	if strings.Contains(joined, "pole location") || strings.Contains(joined, "jb id") {
		return LayoutPoleSchema
	}
	if strings.Contains(joined, "username") || strings.Contains(joined, "user id") ||
		strings.Contains(joined, "password") || strings.Contains(joined, "appliance") {
		return LayoutCredentials
	}
	return LayoutUnknown
}
