package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/workbook"
	"github.com/fieldgrid-io/fieldgrid/pkg/composables"
	"github.com/fieldgrid-io/fieldgrid/pkg/eventbus"
	"github.com/fieldgrid-io/fieldgrid/pkg/excel"
	"github.com/fieldgrid-io/fieldgrid/pkg/httpapi"
	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

// ArchiveResult reports one raw-store pass over one workbook file.
type ArchiveResult struct {
	WorkbookID int64  `json:"workbook_id"`
	Filename   string `json:"filename"`
	SHA256     string `json:"sha256"`
	Deduped    bool   `json:"deduped"`
}

// WorkbookArchivedEvent fires after a workbook lands in the raw archive for
// the first time. Deduplicated stores do not publish.
type WorkbookArchivedEvent struct {
	Result ArchiveResult
}

// ArchiveService stores untouched copies of every ingested workbook,
// content-addressed by SHA-256. Re-storing identical bytes is a no-op that
// reports the already archived record.
type ArchiveService struct {
	repo workbook.Repository
	bus  eventbus.EventBus
}

func NewArchiveService(repo workbook.Repository, bus eventbus.EventBus) *ArchiveService {
	return &ArchiveService{repo: repo, bus: bus}
}

func (s *ArchiveService) StoreFile(ctx context.Context, path string) (*ArchiveResult, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, httpapi.NewStatusError(http.StatusBadRequest, "File not found: "+path)
	}
	return s.StoreBytes(ctx, filepath.Base(path), blob)
}

func (s *ArchiveService) StoreBytes(ctx context.Context, filename string, blob []byte) (*ArchiveResult, error) {
	sum := sha256.Sum256(blob)
	sha := hex.EncodeToString(sum[:])

	var result *ArchiveResult
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByHash(txCtx, sha)
		if err == nil {
			result = &ArchiveResult{WorkbookID: existing.ID, Filename: existing.Filename, SHA256: sha, Deduped: true}
			return nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return err
		}

		wb, err := excel.OpenBytes(blob)
		if err != nil {
			return httpapi.NewStatusError(http.StatusBadRequest, "Failed to open workbook: "+err.Error())
		}
		defer func() { _ = wb.Close() }()

		book, err := s.repo.Create(txCtx, &workbook.Workbook{Filename: filename, SHA256: sha})
		if err != nil {
			return err
		}

		for _, name := range wb.SheetNames() {
			if err := s.archiveSheet(txCtx, wb, book.ID, name); err != nil {
				return errors.Wrap(err, "sheet "+name)
			}
		}

		result = &ArchiveResult{WorkbookID: book.ID, Filename: filename, SHA256: sha, Deduped: false}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Deduped {
		s.bus.Publish(&WorkbookArchivedEvent{Result: *result})
	}
	return result, nil
}

func (s *ArchiveService) archiveSheet(ctx context.Context, wb *excel.Workbook, workbookID int64, name string) error {
	sheet, err := wb.ReadSheet(name)
	if err != nil {
		return err
	}

	maxCol := sheet.MaxCol()
	var headerRow *int
	columns := make([]string, 0, maxCol)
	if hr, ok := excel.DetectHeaderRow(sheet.Rows); ok {
		headerRow = &hr
		columns = excel.ColumnLabels(sheet, hr, maxCol)
	} else {
		for c := 1; c <= maxCol; c++ {
			columns = append(columns, excel.ColumnLetter(c))
		}
	}

	stored, err := s.repo.CreateSheet(ctx, &workbook.Sheet{
		WorkbookID: workbookID,
		Name:       name,
		HeaderRow:  headerRow,
		MaxRow:     sheet.MaxRow(),
		MaxCol:     maxCol,
		Columns:    columns,
	})
	if err != nil {
		return err
	}

	var batch []*workbook.Row
	for i, row := range sheet.Rows {
		data := map[string]any{}
		for c, cell := range row {
			if cell == nil {
				continue
			}
			label := excel.ColumnLetter(c + 1)
			if c < len(columns) {
				label = columns[c]
			}
			data[label] = cell
		}
		// fully blank rows never reach the archive
		if len(data) == 0 {
			continue
		}
		batch = append(batch, &workbook.Row{SheetID: stored.ID, RowIndex: i + 1, Data: data})
	}
	return s.repo.CreateRows(ctx, batch)
}
