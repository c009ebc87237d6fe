package workbook

import (
	"context"
	"time"

	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

// The raw archive: an untouched, content-addressed copy of every ingested
// workbook. Write-once except for explicit spreadsheet-style cell edits.

type Workbook struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	SHA256     string    `json:"sha256"`
	ImportedAt time.Time `json:"imported_at"`
}

type Sheet struct {
	ID         int64    `json:"id"`
	WorkbookID int64    `json:"workbook_id"`
	Name       string   `json:"name"`
	HeaderRow  *int     `json:"header_row,omitempty"`
	MaxRow     int      `json:"max_row"`
	MaxCol     int      `json:"max_col"`
	Columns    []string `json:"columns"`
}

// Row keeps only non-blank cells, keyed by column label.
type Row struct {
	ID       int64          `json:"id"`
	SheetID  int64          `json:"sheet_id"`
	RowIndex int            `json:"row_index"`
	Data     map[string]any `json:"data"`
}

// RowHit is a search result row joined with its sheet/workbook context.
type RowHit struct {
	WorkbookID int64          `json:"workbook_id"`
	Workbook   string         `json:"workbook"`
	SheetID    int64          `json:"sheet_id"`
	Sheet      string         `json:"sheet"`
	Columns    []string       `json:"columns"`
	ImportedAt time.Time      `json:"imported_at"`
	RowID      int64          `json:"row_id"`
	RowIndex   int            `json:"row_index"`
	Data       map[string]any `json:"data"`
}

type RowQuery struct {
	repo.ListParams
	Contains string
	SortCol  string
	SortDesc bool
}

type Repository interface {
	GetByHash(ctx context.Context, sha256 string) (*Workbook, error)
	GetByID(ctx context.Context, id int64) (*Workbook, error)
	List(ctx context.Context, params repo.ListParams) ([]*Workbook, error)
	Create(ctx context.Context, wb *Workbook) (*Workbook, error)

	CreateSheet(ctx context.Context, sheet *Sheet) (*Sheet, error)
	GetSheet(ctx context.Context, id int64) (*Sheet, error)
	ListSheets(ctx context.Context, workbookID int64) ([]*Sheet, error)

	CreateRows(ctx context.Context, rows []*Row) error
	GetRow(ctx context.Context, id int64) (*Row, error)
	ListRows(ctx context.Context, sheetID int64, q RowQuery) ([]*Row, error)
	UpdateRowData(ctx context.Context, id int64, data map[string]any) error
	SearchRows(ctx context.Context, q string, limit int) ([]*RowHit, error)
}
