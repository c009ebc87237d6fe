package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/services"
	"github.com/fieldgrid-io/fieldgrid/pkg/application"
	"github.com/fieldgrid-io/fieldgrid/pkg/httpapi"
)

type SearchController struct {
	app    application.Application
	search *services.SearchService
}

func NewSearchController(app application.Application) application.Controller {
	return &SearchController{
		app:    app,
		search: app.Service(services.SearchService{}).(*services.SearchService),
	}
}

func (c *SearchController) Key() string {
	return "/search"
}

func (c *SearchController) Register(r *mux.Router) {
	api := r.PathPrefix("/search").Subrouter()

	api.HandleFunc("/global", c.Global).Methods(http.MethodGet)
	api.HandleFunc("/excel-by-value", c.ExcelByValue).Methods(http.MethodGet)
}

func searchQuery(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeBadRequest(w, "q is required")
		return "", 0, false
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return q, limit, true
}

func (c *SearchController) Global(w http.ResponseWriter, r *http.Request) {
	q, limit, ok := searchQuery(w, r)
	if !ok {
		return
	}
	resp, err := c.search.Global(r.Context(), q, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, resp)
}

func (c *SearchController) ExcelByValue(w http.ResponseWriter, r *http.Request) {
	q, limit, ok := searchQuery(w, r)
	if !ok {
		return
	}
	workbooks, err := c.search.ExcelByValue(r.Context(), q, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, workbooks)
}
