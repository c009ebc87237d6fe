package services

import (
	"context"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/workbook"
	"github.com/fieldgrid-io/fieldgrid/pkg/composables"
	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

// ExcelService is the raw archive's read/browse surface, plus
// spreadsheet-style inline cell edits.
type ExcelService struct {
	Repo workbook.Repository
}

func NewExcelService(repo workbook.Repository) *ExcelService {
	return &ExcelService{Repo: repo}
}

func (s *ExcelService) ListWorkbooks(ctx context.Context, params repo.ListParams) ([]*workbook.Workbook, error) {
	return s.Repo.List(ctx, params)
}

func (s *ExcelService) GetWorkbook(ctx context.Context, id int64) (*workbook.Workbook, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *ExcelService) ListSheets(ctx context.Context, workbookID int64) ([]*workbook.Sheet, error) {
	return s.Repo.ListSheets(ctx, workbookID)
}

func (s *ExcelService) GetSheet(ctx context.Context, id int64) (*workbook.Sheet, error) {
	return s.Repo.GetSheet(ctx, id)
}

func (s *ExcelService) ListRows(ctx context.Context, sheetID int64, q workbook.RowQuery) ([]*workbook.Row, error) {
	return s.Repo.ListRows(ctx, sheetID, q)
}

// PatchRow merges a cell patch into one archived row: present keys
// overwrite, explicit nulls delete the cell.
func (s *ExcelService) PatchRow(ctx context.Context, rowID int64, patch map[string]any) (*workbook.Row, error) {
	var updated *workbook.Row
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		row, err := s.Repo.GetRow(txCtx, rowID)
		if err != nil {
			return err
		}
		data := map[string]any{}
		for k, v := range row.Data {
			data[k] = v
		}
		for k, v := range patch {
			if v == nil {
				delete(data, k)
				continue
			}
			data[k] = v
		}
		if err := s.Repo.UpdateRowData(txCtx, rowID, data); err != nil {
			return err
		}
		row.Data = data
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
