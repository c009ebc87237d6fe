package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/workbook"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/services"
	"github.com/fieldgrid-io/fieldgrid/pkg/application"
	"github.com/fieldgrid-io/fieldgrid/pkg/httpapi"
)

// ExcelController exposes the raw workbook archive: browse workbooks,
// sheets and rows, and patch individual row cells.
type ExcelController struct {
	app   application.Application
	excel *services.ExcelService
}

func NewExcelController(app application.Application) application.Controller {
	return &ExcelController{
		app:   app,
		excel: app.Service(services.ExcelService{}).(*services.ExcelService),
	}
}

func (c *ExcelController) Key() string {
	return "/excel"
}

func (c *ExcelController) Register(r *mux.Router) {
	api := r.PathPrefix("/excel").Subrouter()

	api.HandleFunc("/workbooks", c.ListWorkbooks).Methods(http.MethodGet)
	api.HandleFunc("/workbooks/{id}", c.GetWorkbook).Methods(http.MethodGet)
	api.HandleFunc("/workbooks/{id}/sheets", c.ListSheets).Methods(http.MethodGet)
	api.HandleFunc("/sheets/{id}", c.GetSheet).Methods(http.MethodGet)
	api.HandleFunc("/sheets/{id}/rows", c.ListRows).Methods(http.MethodGet)
	api.HandleFunc("/rows/{id}", c.PatchRow).Methods(http.MethodPatch)
}

func (c *ExcelController) ListWorkbooks(w http.ResponseWriter, r *http.Request) {
	workbooks, err := c.excel.ListWorkbooks(r.Context(), listParams(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, workbooks)
}

func (c *ExcelController) GetWorkbook(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	wb, err := c.excel.GetWorkbook(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, wb)
}

func (c *ExcelController) ListSheets(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	sheets, err := c.excel.ListSheets(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, sheets)
}

func (c *ExcelController) GetSheet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	sheet, err := c.excel.GetSheet(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, sheet)
}

func (c *ExcelController) ListRows(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	query := workbook.RowQuery{
		ListParams: listParams(r),
		Contains:   r.URL.Query().Get("q"),
		SortCol:    r.URL.Query().Get("sort_col"),
		SortDesc:   r.URL.Query().Get("sort_dir") == "desc",
	}
	rows, err := c.excel.ListRows(r.Context(), id, query)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, rows)
}

// PatchRow merges the body over the stored cells. A null value deletes the
// cell.
func (c *ExcelController) PatchRow(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var patch map[string]any
	if err := decodeJSON(r.Body, &patch); err != nil {
		writeBadRequest(w, "invalid json body")
		return
	}
	row, err := c.excel.PatchRow(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, row)
}
