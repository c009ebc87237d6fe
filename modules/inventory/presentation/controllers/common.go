package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fieldgrid-io/fieldgrid/pkg/httpapi"
	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

func parseID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id: " + raw)
	}
	return id, nil
}

// listParams reads limit/offset pagination. "skip" is accepted as an alias
// for offset.
func listParams(r *http.Request) repo.ListParams {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	if offset == 0 {
		offset, _ = strconv.Atoi(q.Get("skip"))
	}
	return repo.ListParams{Limit: limit, Offset: offset}
}

func decodeJSON(body io.Reader, dst any) error {
	return json.NewDecoder(body).Decode(dst)
}

func writeBadRequest(w http.ResponseWriter, detail string) {
	_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", detail, nil)
}

// writeServiceError translates service failures: missing rows become 404,
// StatusError keeps its status, the rest is a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, repo.ErrNotFound) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
		return
	}
	_ = httpapi.WriteFailure(w, err)
}
