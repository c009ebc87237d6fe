package controllers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/reconcile"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/services"
	"github.com/fieldgrid-io/fieldgrid/pkg/application"
	"github.com/fieldgrid-io/fieldgrid/pkg/configuration"
	"github.com/fieldgrid-io/fieldgrid/pkg/httpapi"
)

// ImportController exposes the reconciliation pipeline: path-based imports
// for workbooks already on disk, and multipart endpoints for uploads.
type ImportController struct {
	app      application.Application
	importer *services.ImportService
}

func NewImportController(app application.Application) application.Controller {
	return &ImportController{
		app:      app,
		importer: app.Service(services.ImportService{}).(*services.ImportService),
	}
}

func (c *ImportController) Key() string {
	return "/import"
}

func (c *ImportController) Register(r *mux.Router) {
	api := r.PathPrefix("/import").Subrouter()

	api.HandleFunc("/enum1", c.ImportInventory).Methods(http.MethodPost)
	api.HandleFunc("/ip-schema/poles", c.ImportPoles).Methods(http.MethodPost)
	api.HandleFunc("/ip-schema/jbs", c.ImportJunctionBoxes).Methods(http.MethodPost)
	api.HandleFunc("/credentials", c.ImportCredentials).Methods(http.MethodPost)
	api.HandleFunc("/all", c.ImportAll).Methods(http.MethodPost)
	api.HandleFunc("/auto", c.ImportAuto).Methods(http.MethodPost)
	api.HandleFunc("/upload", c.Upload).Methods(http.MethodPost)
	api.HandleFunc("/detect", c.DetectSchema).Methods(http.MethodPost)
	api.HandleFunc("/sheets", c.ListSheets).Methods(http.MethodGet)
}

type importFileRequest struct {
	FilePath  string `json:"file_path"`
	SheetName string `json:"sheet_name,omitempty"`
}

func (c *ImportController) decodeFileRequest(w http.ResponseWriter, r *http.Request, defaultSheet string) (*importFileRequest, bool) {
	var req importFileRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, "invalid json body")
		return nil, false
	}
	if req.FilePath == "" {
		writeBadRequest(w, "file_path is required")
		return nil, false
	}
	if req.SheetName == "" {
		req.SheetName = defaultSheet
	}
	return &req, true
}

func (c *ImportController) writeResult(w http.ResponseWriter, result *reconcile.Result, err error) {
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, result)
}

func (c *ImportController) ImportInventory(w http.ResponseWriter, r *http.Request) {
	req, ok := c.decodeFileRequest(w, r, "Enum-1")
	if !ok {
		return
	}
	result, err := c.importer.ImportInventory(r.Context(), req.FilePath, req.SheetName)
	c.writeResult(w, result, err)
}

func (c *ImportController) ImportPoles(w http.ResponseWriter, r *http.Request) {
	req, ok := c.decodeFileRequest(w, r, "Field Device Details - Poles")
	if !ok {
		return
	}
	result, err := c.importer.ImportPoles(r.Context(), req.FilePath, req.SheetName)
	c.writeResult(w, result, err)
}

func (c *ImportController) ImportJunctionBoxes(w http.ResponseWriter, r *http.Request) {
	req, ok := c.decodeFileRequest(w, r, "Field Device Details - JB")
	if !ok {
		return
	}
	result, err := c.importer.ImportJunctionBoxes(r.Context(), req.FilePath, req.SheetName)
	c.writeResult(w, result, err)
}

func (c *ImportController) ImportCredentials(w http.ResponseWriter, r *http.Request) {
	req, ok := c.decodeFileRequest(w, r, "Sheet1")
	if !ok {
		return
	}
	result, err := c.importer.ImportCredentials(r.Context(), req.FilePath, req.SheetName)
	c.writeResult(w, result, err)
}

func (c *ImportController) ImportAll(w http.ResponseWriter, r *http.Request) {
	var req services.ImportAllRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, "invalid json body")
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, c.importer.ImportAll(r.Context(), req))
}

func (c *ImportController) ImportAuto(w http.ResponseWriter, r *http.Request) {
	_ = httpapi.WriteJSON(w, http.StatusOK, c.importer.ImportAuto(r.Context()))
}

func (c *ImportController) ListSheets(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeBadRequest(w, "path is required")
		return
	}
	list, err := c.importer.ListSheets(r.Context(), path)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, list)
}

// readUpload pulls the workbook out of a multipart form. The whole body is
// capped at the configured upload size.
func readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	conf := configuration.Use()
	r.Body = http.MaxBytesReader(w, r.Body, conf.MaxUploadSize)
	if err := r.ParseMultipartForm(conf.MaxUploadSize); err != nil {
		writeBadRequest(w, "invalid multipart form: "+err.Error())
		return "", nil, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "file is required")
		return "", nil, false
	}
	defer func() { _ = file.Close() }()
	name := filepath.Base(header.Filename)
	if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
		writeBadRequest(w, "Only .xlsx files are supported")
		return "", nil, false
	}
	blob, err := io.ReadAll(file)
	if err != nil {
		writeBadRequest(w, "failed to read file: "+err.Error())
		return "", nil, false
	}
	return name, blob, true
}

func (c *ImportController) DetectSchema(w http.ResponseWriter, r *http.Request) {
	filename, blob, ok := readUpload(w, r)
	if !ok {
		return
	}
	info, err := c.importer.DetectSchema(r.Context(), filename, blob)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, info)
}

func (c *ImportController) Upload(w http.ResponseWriter, r *http.Request) {
	filename, blob, ok := readUpload(w, r)
	if !ok {
		return
	}
	sheetName := r.FormValue("sheet")
	importType := r.FormValue("import_type")

	outcome, err := c.importer.UploadAndImport(r.Context(), filename, blob, sheetName, importType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, outcome)
}
