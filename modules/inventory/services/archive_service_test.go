package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/workbook"
	"github.com/fieldgrid-io/fieldgrid/pkg/composables"
	"github.com/fieldgrid-io/fieldgrid/pkg/eventbus"
	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

// stubTx satisfies the transaction the archive joins; nothing in these
// tests reaches the database itself.
type stubTx struct {
	pgx.Tx
}

func archiveCtx() context.Context {
	return composables.WithTx(context.Background(), &stubTx{})
}

// memArchive is an in-memory workbook.Repository in the reconciler fakes
// style.
type memArchive struct {
	workbooks []*workbook.Workbook
	sheets    []*workbook.Sheet
	rows      []*workbook.Row
	nextID    int64
}

func (m *memArchive) GetByHash(_ context.Context, sha256 string) (*workbook.Workbook, error) {
	for _, wb := range m.workbooks {
		if wb.SHA256 == sha256 {
			return wb, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memArchive) GetByID(_ context.Context, id int64) (*workbook.Workbook, error) {
	for _, wb := range m.workbooks {
		if wb.ID == id {
			return wb, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memArchive) List(_ context.Context, params repo.ListParams) ([]*workbook.Workbook, error) {
	return m.workbooks, nil
}

func (m *memArchive) Create(_ context.Context, wb *workbook.Workbook) (*workbook.Workbook, error) {
	m.nextID++
	wb.ID = m.nextID
	m.workbooks = append(m.workbooks, wb)
	return wb, nil
}

func (m *memArchive) CreateSheet(_ context.Context, sheet *workbook.Sheet) (*workbook.Sheet, error) {
	m.nextID++
	sheet.ID = m.nextID
	m.sheets = append(m.sheets, sheet)
	return sheet, nil
}

func (m *memArchive) GetSheet(_ context.Context, id int64) (*workbook.Sheet, error) {
	for _, s := range m.sheets {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memArchive) ListSheets(_ context.Context, workbookID int64) ([]*workbook.Sheet, error) {
	var out []*workbook.Sheet
	for _, s := range m.sheets {
		if s.WorkbookID == workbookID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memArchive) CreateRows(_ context.Context, rows []*workbook.Row) error {
	for _, r := range rows {
		m.nextID++
		r.ID = m.nextID
		m.rows = append(m.rows, r)
	}
	return nil
}

func (m *memArchive) GetRow(_ context.Context, id int64) (*workbook.Row, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memArchive) ListRows(_ context.Context, sheetID int64, q workbook.RowQuery) ([]*workbook.Row, error) {
	var out []*workbook.Row
	for _, r := range m.rows {
		if r.SheetID == sheetID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memArchive) UpdateRowData(_ context.Context, id int64, data map[string]any) error {
	for _, r := range m.rows {
		if r.ID == id {
			r.Data = data
			return nil
		}
	}
	return repo.ErrNotFound
}

func (m *memArchive) SearchRows(_ context.Context, q string, limit int) ([]*workbook.RowHit, error) {
	return nil, nil
}

func workbookBytes(t *testing.T, sheets map[string][][]any) []byte {
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
	require.NoError(t, f.Close())
	return buf.Bytes()
}

func newArchiveFixture() (*ArchiveService, *memArchive, *int) {
	store := &memArchive{}
	bus := eventbus.NewEventPublisher(logrus.New())
	archived := 0
	bus.Subscribe(func(e *WorkbookArchivedEvent) {
		archived++
	})
	return NewArchiveService(store, bus), store, &archived
}

func TestArchiveService_StoreBytes(t *testing.T) {
	svc, store, archived := newArchiveFixture()

	blob := workbookBytes(t, map[string][][]any{
		"Enum-1": {
			{"Inventory Export"},
			{"Code", "Type", "Region"},
			{nil, nil, nil},
			{"C1", "Camera", "North"},
		},
	})

	result, err := svc.StoreBytes(archiveCtx(), "export.xlsx", blob)
	require.NoError(t, err)
	assert.False(t, result.Deduped)
	assert.Equal(t, "export.xlsx", result.Filename)
	assert.Len(t, result.SHA256, 64)

	require.Len(t, store.sheets, 1)
	sheet := store.sheets[0]
	require.NotNil(t, sheet.HeaderRow)
	assert.Equal(t, 2, *sheet.HeaderRow)
	assert.Equal(t, []string{"Code", "Type", "Region"}, sheet.Columns)

	// the blank third row is suppressed, everything else keeps its
	// spreadsheet row index
	require.Len(t, store.rows, 3)
	indexes := make([]int, 0, len(store.rows))
	for _, r := range store.rows {
		indexes = append(indexes, r.RowIndex)
	}
	assert.Equal(t, []int{1, 2, 4}, indexes)
	assert.Equal(t, map[string]any{"Code": "C1", "Type": "Camera", "Region": "North"}, store.rows[2].Data)

	assert.Equal(t, 1, *archived)
}

func TestArchiveService_StoreBytes_Idempotent(t *testing.T) {
	svc, store, archived := newArchiveFixture()

	blob := workbookBytes(t, map[string][][]any{
		"Enum-1": {
			{"Code", "Type", "Region"},
			{"C1", "Camera", "North"},
		},
	})

	first, err := svc.StoreBytes(archiveCtx(), "export.xlsx", blob)
	require.NoError(t, err)
	require.False(t, first.Deduped)
	sheetsAfterFirst := len(store.sheets)
	rowsAfterFirst := len(store.rows)

	second, err := svc.StoreBytes(archiveCtx(), "renamed.xlsx", blob)
	require.NoError(t, err)
	assert.True(t, second.Deduped)
	assert.Equal(t, first.WorkbookID, second.WorkbookID)
	assert.Equal(t, first.SHA256, second.SHA256)

	assert.Len(t, store.workbooks, 1)
	assert.Len(t, store.sheets, sheetsAfterFirst)
	assert.Len(t, store.rows, rowsAfterFirst)
	assert.Equal(t, 1, *archived, "deduplicated stores do not publish")
}

func TestArchiveService_StoreBytes_LetterColumnsWithoutHeader(t *testing.T) {
	svc, store, _ := newArchiveFixture()

	blob := workbookBytes(t, map[string][][]any{
		"Readings": {
			{1.0, 2.0},
			{3.0, 4.0},
		},
	})

	_, err := svc.StoreBytes(archiveCtx(), "readings.xlsx", blob)
	require.NoError(t, err)

	require.Len(t, store.sheets, 1)
	sheet := store.sheets[0]
	assert.Nil(t, sheet.HeaderRow)
	assert.Equal(t, []string{"A", "B"}, sheet.Columns)

	require.Len(t, store.rows, 2)
	assert.Equal(t, map[string]any{"A": 1.0, "B": 2.0}, store.rows[0].Data)
}
