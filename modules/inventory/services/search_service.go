package services

import (
	"context"
	"time"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/component"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/credential"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/site"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/workbook"
)

// rawRowSearchLimit caps the archive portion of a global search.
const rawRowSearchLimit = 500

// GlobalSearchResults groups matches per entity type. Slices are always
// non-nil so empty groups serialize as [].
type GlobalSearchResults struct {
	Regions       []*site.Region            `json:"regions"`
	Districts     []*site.District          `json:"districts"`
	Landmarks     []*site.Landmark          `json:"landmarks"`
	Poles         []*site.Pole              `json:"poles"`
	JunctionBoxes []*site.JunctionBox       `json:"junction_boxes"`
	Components    []*component.Component    `json:"components"`
	Credentials   []*credential.Credential  `json:"credentials"`
	Excel         []*workbook.RowHit        `json:"excel"`
}

type GlobalSearchResponse struct {
	Query        string               `json:"query"`
	TotalResults int                  `json:"total_results"`
	Results      *GlobalSearchResults `json:"results"`
}

// SearchService answers cross-entity text queries over the normalized graph
// and the raw archive.
type SearchService struct {
	Regions       site.RegionRepository
	Districts     site.DistrictRepository
	Landmarks     site.LandmarkRepository
	Poles         site.PoleRepository
	JunctionBoxes site.JunctionBoxRepository
	Components    component.Repository
	Credentials   credential.Repository
	Workbooks     workbook.Repository
}

func NewSearchService(
	regions site.RegionRepository,
	districts site.DistrictRepository,
	landmarks site.LandmarkRepository,
	poles site.PoleRepository,
	junctionBoxes site.JunctionBoxRepository,
	components component.Repository,
	credentials credential.Repository,
	workbooks workbook.Repository,
) *SearchService {
	return &SearchService{
		Regions:       regions,
		Districts:     districts,
		Landmarks:     landmarks,
		Poles:         poles,
		JunctionBoxes: junctionBoxes,
		Components:    components,
		Credentials:   credentials,
		Workbooks:     workbooks,
	}
}

func (s *SearchService) Global(ctx context.Context, q string, limit int) (*GlobalSearchResponse, error) {
	results := &GlobalSearchResults{
		Regions:       []*site.Region{},
		Districts:     []*site.District{},
		Landmarks:     []*site.Landmark{},
		Poles:         []*site.Pole{},
		JunctionBoxes: []*site.JunctionBox{},
		Components:    []*component.Component{},
		Credentials:   []*credential.Credential{},
		Excel:         []*workbook.RowHit{},
	}

	var err error
	if results.Regions, err = s.Regions.Search(ctx, q, limit); err != nil {
		return nil, err
	}
	if results.Districts, err = s.Districts.Search(ctx, q, limit); err != nil {
		return nil, err
	}
	if results.Landmarks, err = s.Landmarks.Search(ctx, q, limit); err != nil {
		return nil, err
	}
	if results.Poles, err = s.Poles.Search(ctx, q, limit); err != nil {
		return nil, err
	}
	if results.JunctionBoxes, err = s.JunctionBoxes.Search(ctx, q, limit); err != nil {
		return nil, err
	}
	if results.Components, err = s.Components.Search(ctx, q, limit); err != nil {
		return nil, err
	}
	if results.Credentials, err = s.Credentials.Search(ctx, q, limit); err != nil {
		return nil, err
	}
	if results.Excel, err = s.Workbooks.SearchRows(ctx, q, rawRowSearchLimit); err != nil {
		return nil, err
	}

	total := len(results.Regions) + len(results.Districts) + len(results.Landmarks) +
		len(results.Poles) + len(results.JunctionBoxes) + len(results.Components) +
		len(results.Credentials) + len(results.Excel)

	return &GlobalSearchResponse{Query: q, TotalResults: total, Results: results}, nil
}

// ExcelValueSheet groups archive matches of one sheet.
type ExcelValueSheet struct {
	SheetID int64           `json:"sheet_id"`
	Sheet   string          `json:"sheet"`
	Columns []string        `json:"columns"`
	Rows    []*workbook.Row `json:"rows"`
}

// ExcelValueWorkbook groups archive matches of one workbook.
type ExcelValueWorkbook struct {
	WorkbookID int64              `json:"workbook_id"`
	Workbook   string             `json:"workbook"`
	ImportedAt time.Time          `json:"imported_at"`
	Sheets     []*ExcelValueSheet `json:"sheets"`
}

// ExcelByValue finds every archived row containing the value and groups the
// hits workbook by workbook, sheet by sheet, preserving hit order.
func (s *SearchService) ExcelByValue(ctx context.Context, q string, limit int) ([]*ExcelValueWorkbook, error) {
	hits, err := s.Workbooks.SearchRows(ctx, q, limit)
	if err != nil {
		return nil, err
	}

	out := []*ExcelValueWorkbook{}
	byWorkbook := map[int64]*ExcelValueWorkbook{}
	bySheet := map[int64]*ExcelValueSheet{}
	for _, hit := range hits {
		wb, ok := byWorkbook[hit.WorkbookID]
		if !ok {
			wb = &ExcelValueWorkbook{
				WorkbookID: hit.WorkbookID,
				Workbook:   hit.Workbook,
				ImportedAt: hit.ImportedAt,
				Sheets:     []*ExcelValueSheet{},
			}
			byWorkbook[hit.WorkbookID] = wb
			out = append(out, wb)
		}
		sheet, ok := bySheet[hit.SheetID]
		if !ok {
			sheet = &ExcelValueSheet{
				SheetID: hit.SheetID,
				Sheet:   hit.Sheet,
				Columns: hit.Columns,
				Rows:    []*workbook.Row{},
			}
			bySheet[hit.SheetID] = sheet
			wb.Sheets = append(wb.Sheets, sheet)
		}
		sheet.Rows = append(sheet.Rows, &workbook.Row{
			ID:       hit.RowID,
			SheetID:  hit.SheetID,
			RowIndex: hit.RowIndex,
			Data:     hit.Data,
		})
	}
	return out, nil
}
