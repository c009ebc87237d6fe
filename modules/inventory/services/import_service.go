package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/component"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/credential"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/site"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/reconcile"
	"github.com/fieldgrid-io/fieldgrid/pkg/composables"
	"github.com/fieldgrid-io/fieldgrid/pkg/configuration"
	"github.com/fieldgrid-io/fieldgrid/pkg/eventbus"
	"github.com/fieldgrid-io/fieldgrid/pkg/excel"
	"github.com/fieldgrid-io/fieldgrid/pkg/httpapi"
)

// ImportCompletedEvent fires after every reconciliation pass, successful or
// not on the row level (structural failures surface as errors instead).
type ImportCompletedEvent struct {
	Layout reconcile.Layout
	Sheet  string
	Result reconcile.Result
}

// ImportService sequences reconcilers over workbook sources. Every source
// runs in its own transaction: a failed source rolls back alone and the
// remaining sources still run.
type ImportService struct {
	archive *ArchiveService
	stores  *reconcile.Stores
	bus     eventbus.EventBus
}

func NewImportService(
	archive *ArchiveService,
	regions site.RegionRepository,
	districts site.DistrictRepository,
	landmarks site.LandmarkRepository,
	poles site.PoleRepository,
	junctionBoxes site.JunctionBoxRepository,
	components component.Repository,
	credentials credential.Repository,
	bus eventbus.EventBus,
) *ImportService {
	return &ImportService{
		archive: archive,
		stores: &reconcile.Stores{
			Regions:       regions,
			Districts:     districts,
			Landmarks:     landmarks,
			Poles:         poles,
			JunctionBoxes: junctionBoxes,
			Components:    components,
			Credentials:   credentials,
		},
		bus: bus,
	}
}

type reconcilerFunc func(ctx context.Context, s *reconcile.Stores, sheet *excel.Sheet) (*reconcile.Result, error)

func (s *ImportService) runReconciler(ctx context.Context, wb *excel.Workbook, sheetName string, layout reconcile.Layout, fn reconcilerFunc) (*reconcile.Result, error) {
	if !wb.HasSheet(sheetName) {
		available := strings.Join(wb.SheetNames(), ", ")
		return nil, httpapi.NewStatusError(http.StatusBadRequest,
			fmt.Sprintf("Sheet '%s' not found. Available sheets: %s", sheetName, available))
	}
	sheet, err := wb.ReadSheet(sheetName)
	if err != nil {
		return nil, err
	}

	var result *reconcile.Result
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		result, err = fn(txCtx, s.stores, sheet)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(&ImportCompletedEvent{Layout: layout, Sheet: sheetName, Result: *result})
	return result, nil
}

func openWorkbookFile(path string) (*excel.Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, httpapi.NewStatusError(http.StatusBadRequest, "File not found: "+path)
	}
	wb, err := excel.OpenFile(path)
	if err != nil {
		return nil, httpapi.NewStatusError(http.StatusBadRequest, "Failed to open workbook: "+err.Error())
	}
	return wb, nil
}

// ImportInventory runs the component inventory reconciler over one sheet.
func (s *ImportService) ImportInventory(ctx context.Context, path, sheetName string) (*reconcile.Result, error) {
	wb, err := openWorkbookFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()
	return s.runReconciler(ctx, wb, sheetName, reconcile.LayoutComponentInventory, reconcile.ComponentInventory)
}

// ImportPoles runs the pole schema reconciler over one sheet.
func (s *ImportService) ImportPoles(ctx context.Context, path, sheetName string) (*reconcile.Result, error) {
	wb, err := openWorkbookFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()
	return s.runReconciler(ctx, wb, sheetName, reconcile.LayoutPoleSchema, reconcile.PoleSchema)
}

// ImportJunctionBoxes runs the strict junction-box variant over one sheet.
func (s *ImportService) ImportJunctionBoxes(ctx context.Context, path, sheetName string) (*reconcile.Result, error) {
	wb, err := openWorkbookFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()
	return s.runReconciler(ctx, wb, sheetName, reconcile.LayoutPoleSchema, reconcile.JunctionBoxSchema)
}

// ImportCredentials runs the credentials reconciler over one sheet.
func (s *ImportService) ImportCredentials(ctx context.Context, path, sheetName string) (*reconcile.Result, error) {
	wb, err := openWorkbookFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()
	return s.runReconciler(ctx, wb, sheetName, reconcile.LayoutCredentials, reconcile.Credentials)
}

// SheetList describes a workbook on disk: its sheet names and the layout
// detection verdict.
type SheetList struct {
	Sheets       []string         `json:"sheets"`
	FilePath     string           `json:"file_path,omitempty"`
	DetectedType reconcile.Layout `json:"detected_type"`
}

func (s *ImportService) ListSheets(ctx context.Context, path string) (*SheetList, error) {
	wb, err := openWorkbookFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()
	return &SheetList{
		Sheets:       wb.SheetNames(),
		FilePath:     path,
		DetectedType: reconcile.DetectLayout(wb),
	}, nil
}

// ImportAllRequest names the sources the full import sequence reads. Empty
// sheet names fall back to the layouts' conventional sheet names.
type ImportAllRequest struct {
	InventoryPath    string `json:"enum1_path"`
	InventorySheet   string `json:"enum1_sheet,omitempty"`
	IPSchemaPath     string `json:"ip_path"`
	PolesSheet       string `json:"ip_poles_sheet,omitempty"`
	JBsSheet         string `json:"ip_jbs_sheet,omitempty"`
	CredentialsPath  string `json:"credentials_path"`
	CredentialsSheet string `json:"credentials_sheet,omitempty"`
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// resultOrError folds a per-source outcome into the summary map the way the
// API reports it: either the result document or {"error": ...}.
func resultOrError(result *reconcile.Result, err error) any {
	if err != nil {
		return map[string]string{"error": err.Error()}
	}
	return result
}

// ImportAll runs the four known sources in sequence. Source failures are
// recorded per source; the sequence itself always completes.
func (s *ImportService) ImportAll(ctx context.Context, req ImportAllRequest) map[string]any {
	results := map[string]any{}

	r, err := s.ImportInventory(ctx, req.InventoryPath, orDefault(req.InventorySheet, "Enum-1"))
	results["enum1"] = resultOrError(r, err)

	r, err = s.ImportPoles(ctx, req.IPSchemaPath, orDefault(req.PolesSheet, "Field Device Details - Poles"))
	results["ip_poles"] = resultOrError(r, err)

	r, err = s.ImportJunctionBoxes(ctx, req.IPSchemaPath, orDefault(req.JBsSheet, "Field Device Details - JB"))
	results["ip_jbs"] = resultOrError(r, err)

	r, err = s.ImportCredentials(ctx, req.CredentialsPath, orDefault(req.CredentialsSheet, "Sheet1"))
	results["credentials"] = resultOrError(r, err)

	return results
}

// ImportAuto runs the full configured sequence: raw-archives each configured
// workbook, then reconciles the inventory sheet, both field device sheets
// and every region credentials sheet present in the credentials workbook.
func (s *ImportService) ImportAuto(ctx context.Context) map[string]any {
	cfg := configuration.Use().Import

	results := map[string]any{}
	raw := map[string]any{}
	for _, path := range []string{cfg.InventoryPath, cfg.IPSchemaPath, cfg.CredentialsPath} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		ar, err := s.archive.StoreFile(ctx, path)
		if err != nil {
			raw[path] = map[string]string{"error": err.Error()}
			continue
		}
		raw[path] = ar
	}
	results["raw"] = raw

	r, err := s.ImportInventory(ctx, cfg.InventoryPath, cfg.InventorySheet)
	results["enum1"] = resultOrError(r, err)

	r, err = s.ImportPoles(ctx, cfg.IPSchemaPath, cfg.PolesSheet)
	results["ip_poles"] = resultOrError(r, err)

	r, err = s.ImportJunctionBoxes(ctx, cfg.IPSchemaPath, cfg.JBsSheet)
	results["ip_jbs"] = resultOrError(r, err)

	results["credentials"] = s.importRegionCredentials(ctx, cfg.CredentialsPath, cfg.RegionSheets)
	return results
}

func (s *ImportService) importRegionCredentials(ctx context.Context, path string, regionSheets []string) any {
	wb, err := openWorkbookFile(path)
	if err != nil {
		return map[string]string{"error": err.Error()}
	}
	names := wb.SheetNames()
	_ = wb.Close()

	present := map[string]bool{}
	for _, n := range names {
		present[n] = true
	}

	perSheet := map[string]any{}
	for _, sheetName := range regionSheets {
		if !present[sheetName] {
			continue
		}
		r, err := s.ImportCredentials(ctx, path, sheetName)
		perSheet[sheetName] = resultOrError(r, err)
	}
	return perSheet
}

// UploadedFileInfo is the detection report for an uploaded workbook.
type UploadedFileInfo struct {
	Filename     string           `json:"filename"`
	Sheets       []string         `json:"sheets"`
	DetectedType reconcile.Layout `json:"detected_type"`
}

// DetectSchema classifies uploaded workbook bytes without importing them.
func (s *ImportService) DetectSchema(ctx context.Context, filename string, blob []byte) (*UploadedFileInfo, error) {
	wb, err := excel.OpenBytes(blob)
	if err != nil {
		return nil, httpapi.NewStatusError(http.StatusBadRequest, "Failed to process file: "+err.Error())
	}
	defer func() { _ = wb.Close() }()

	return &UploadedFileInfo{
		Filename:     filename,
		Sheets:       wb.SheetNames(),
		DetectedType: reconcile.DetectLayout(wb),
	}, nil
}

// UploadOutcome reports one upload-and-import request end to end.
type UploadOutcome struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	ImportType reconcile.Layout  `json:"import_type,omitempty"`
	Sheet      string            `json:"sheet,omitempty"`
	Raw        *ArchiveResult    `json:"raw,omitempty"`
	Result     *reconcile.Result `json:"result,omitempty"`
	Poles      *reconcile.Result `json:"poles,omitempty"`
	JBs        *reconcile.Result `json:"jbs,omitempty"`
}

// UploadAndImport archives uploaded bytes, resolves layout and sheet (both
// default to auto-detection) and runs the matching reconcilers. A pole
// schema workbook imports both field device sheets when the JB sheet is
// present.
func (s *ImportService) UploadAndImport(ctx context.Context, filename string, blob []byte, sheetName, importType string) (*UploadOutcome, error) {
	wb, err := excel.OpenBytes(blob)
	if err != nil {
		return nil, httpapi.NewStatusError(http.StatusBadRequest, "Failed to open workbook: "+err.Error())
	}
	available := wb.SheetNames()

	// The raw archive runs before any layout validation: a workbook we
	// cannot classify is still kept, byte for byte.
	raw, err := s.archive.StoreBytes(ctx, filename, blob)
	if err != nil {
		_ = wb.Close()
		return nil, err
	}

	layout := reconcile.Layout(importType)
	if importType == "" || importType == "auto" {
		layout = reconcile.DetectLayout(wb)
		if layout == reconcile.LayoutUnknown {
			_ = wb.Close()
			return nil, httpapi.NewStatusError(http.StatusBadRequest, "Could not auto-detect file type. Please specify import_type.")
		}
	} else if !layout.Valid() {
		_ = wb.Close()
		return nil, httpapi.NewStatusError(http.StatusBadRequest, "Unknown import type: "+importType)
	}

	if sheetName == "" || sheetName == "auto" {
		sheetName = defaultSheetFor(layout, available)
	}

	outcome := &UploadOutcome{Success: true, ImportType: layout, Sheet: sheetName, Raw: raw}
	switch layout {
	case reconcile.LayoutComponentInventory:
		outcome.Result, err = s.runReconciler(ctx, wb, sheetName, layout, reconcile.ComponentInventory)
	case reconcile.LayoutCredentials:
		outcome.Result, err = s.runReconciler(ctx, wb, sheetName, layout, reconcile.Credentials)
	case reconcile.LayoutPoleSchema:
		outcome.Poles, err = s.runReconciler(ctx, wb, sheetName, layout, reconcile.PoleSchema)
		if err == nil && wb.HasSheet("Field Device Details - JB") {
			outcome.JBs, err = s.runReconciler(ctx, wb, "Field Device Details - JB", layout, reconcile.JunctionBoxSchema)
		}
	}
	_ = wb.Close()
	if err != nil {
		return nil, err
	}

	outcome.Message = "Successfully imported from " + filename
	return outcome, nil
}

func defaultSheetFor(layout reconcile.Layout, available []string) string {
	preferred := ""
	switch layout {
	case reconcile.LayoutComponentInventory:
		preferred = "Enum-1"
	case reconcile.LayoutPoleSchema:
		preferred = "Field Device Details - Poles"
	}
	for _, name := range available {
		if name == preferred {
			return name
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return ""
}
