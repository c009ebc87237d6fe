package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/workbook"
	"github.com/fieldgrid-io/fieldgrid/pkg/composables"
	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

// WorkbookRepository persists the raw spreadsheet archive. Sheet columns and
// row data go to jsonb so unknown layouts survive untouched.
type WorkbookRepository struct{}

func NewWorkbookRepository() *WorkbookRepository {
	return &WorkbookRepository{}
}

func (r *WorkbookRepository) GetByHash(ctx context.Context, sha256 string) (*workbook.Workbook, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var v workbook.Workbook
	if err := tx.QueryRow(ctx, `
	SELECT id, filename, sha256, imported_at FROM raw_workbooks WHERE sha256=$1
	`, sha256).Scan(&v.ID, &v.Filename, &v.SHA256, &v.ImportedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *WorkbookRepository) GetByID(ctx context.Context, id int64) (*workbook.Workbook, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var v workbook.Workbook
	if err := tx.QueryRow(ctx, `
	SELECT id, filename, sha256, imported_at FROM raw_workbooks WHERE id=$1
	`, id).Scan(&v.ID, &v.Filename, &v.SHA256, &v.ImportedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *WorkbookRepository) List(ctx context.Context, params repo.ListParams) ([]*workbook.Workbook, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT id, filename, sha256, imported_at FROM raw_workbooks ORDER BY id DESC LIMIT $1 OFFSET $2
	`, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*workbook.Workbook
	for rows.Next() {
		var v workbook.Workbook
		if err := rows.Scan(&v.ID, &v.Filename, &v.SHA256, &v.ImportedAt); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *WorkbookRepository) Create(ctx context.Context, v *workbook.Workbook) (*workbook.Workbook, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if err := tx.QueryRow(ctx, `
	INSERT INTO raw_workbooks (filename, sha256) VALUES ($1, $2) RETURNING id, imported_at
	`, v.Filename, v.SHA256).Scan(&v.ID, &v.ImportedAt); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *WorkbookRepository) CreateSheet(ctx context.Context, v *workbook.Sheet) (*workbook.Sheet, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	columns, err := json.Marshal(v.Columns)
	if err != nil {
		return nil, err
	}
	if err := tx.QueryRow(ctx, `
	INSERT INTO raw_sheets (workbook_id, name, header_row, max_row, max_col, columns)
	VALUES ($1, $2, $3, $4, $5, $6::jsonb)
	RETURNING id
	`, v.WorkbookID, v.Name, v.HeaderRow, v.MaxRow, v.MaxCol, string(columns)).Scan(&v.ID); err != nil {
		return nil, err
	}
	return v, nil
}

func scanSheet(row pgx.Row) (*workbook.Sheet, error) {
	var v workbook.Sheet
	var columns []byte
	if err := row.Scan(&v.ID, &v.WorkbookID, &v.Name, &v.HeaderRow, &v.MaxRow, &v.MaxCol, &columns); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(columns, &v.Columns); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *WorkbookRepository) GetSheet(ctx context.Context, id int64) (*workbook.Sheet, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanSheet(tx.QueryRow(ctx, `
	SELECT id, workbook_id, name, header_row, max_row, max_col, columns FROM raw_sheets WHERE id=$1
	`, id))
}

func (r *WorkbookRepository) ListSheets(ctx context.Context, workbookID int64) ([]*workbook.Sheet, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT id, workbook_id, name, header_row, max_row, max_col, columns
	FROM raw_sheets WHERE workbook_id=$1 ORDER BY id
	`, workbookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*workbook.Sheet
	for rows.Next() {
		v, err := scanSheet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *WorkbookRepository) CreateRows(ctx context.Context, batch []*workbook.Row) error {
	if len(batch) == 0 {
		return nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	for _, v := range batch {
		data, err := json.Marshal(v.Data)
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, `
	INSERT INTO raw_rows (sheet_id, row_index, data) VALUES ($1, $2, $3::jsonb) RETURNING id
	`, v.SheetID, v.RowIndex, string(data)).Scan(&v.ID); err != nil {
			return err
		}
	}
	return nil
}

func scanRow(row pgx.Row) (*workbook.Row, error) {
	var v workbook.Row
	var data []byte
	if err := row.Scan(&v.ID, &v.SheetID, &v.RowIndex, &data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &v.Data); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *WorkbookRepository) GetRow(ctx context.Context, id int64) (*workbook.Row, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanRow(tx.QueryRow(ctx, `SELECT id, sheet_id, row_index, data FROM raw_rows WHERE id=$1`, id))
}

func (r *WorkbookRepository) ListRows(ctx context.Context, sheetID int64, q workbook.RowQuery) ([]*workbook.Row, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, sheet_id, row_index, data FROM raw_rows WHERE sheet_id=$1`
	args := []any{sheetID}
	if q.Contains != "" {
		query += ` AND data::text ILIKE '%' || $2 || '%'`
		args = append(args, q.Contains)
	}
	if q.SortCol != "" {
		args = append(args, q.SortCol)
		dir := "ASC"
		if q.SortDesc {
			dir = "DESC"
		}
		query += ` ORDER BY COALESCE(data->>$` + strconv.Itoa(len(args)) + `, '') ` + dir + `, row_index`
	} else {
		query += ` ORDER BY row_index`
	}
	args = append(args, q.Limit, q.Offset)
	query += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*workbook.Row
	for rows.Next() {
		v, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *WorkbookRepository) UpdateRowData(ctx context.Context, id int64, data map[string]any) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `UPDATE raw_rows SET data=$2::jsonb WHERE id=$1`, id, string(b))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *WorkbookRepository) SearchRows(ctx context.Context, q string, limit int) ([]*workbook.RowHit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT wb.id, wb.filename, sh.id, sh.name, sh.columns, wb.imported_at, rr.id, rr.row_index, rr.data
	FROM raw_rows rr
	JOIN raw_sheets sh ON sh.id = rr.sheet_id
	JOIN raw_workbooks wb ON wb.id = sh.workbook_id
	WHERE rr.data::text ILIKE '%' || $1 || '%'
	ORDER BY rr.id DESC
	LIMIT $2
	`, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*workbook.RowHit
	for rows.Next() {
		var v workbook.RowHit
		var columns, data []byte
		if err := rows.Scan(&v.WorkbookID, &v.Workbook, &v.SheetID, &v.Sheet, &columns, &v.ImportedAt, &v.RowID, &v.RowIndex, &data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(columns, &v.Columns); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &v.Data); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}
