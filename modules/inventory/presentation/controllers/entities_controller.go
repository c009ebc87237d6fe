package controllers

import (
	"context"
	"net/http"
	"reflect"

	"github.com/gorilla/mux"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/component"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/services"
	"github.com/fieldgrid-io/fieldgrid/pkg/application"
	"github.com/fieldgrid-io/fieldgrid/pkg/httpapi"
	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

// crudService is the shape every entity service shares.
type crudService[T any] interface {
	List(ctx context.Context, params repo.ListParams) ([]*T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, v *T) (*T, error)
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id int64) error
}

// EntitiesController serves plain CRUD for the reconciled inventory
// entities. Components get custom handlers because their reads embed
// credentials.
type EntitiesController struct {
	app         application.Application
	regions     *services.RegionService
	districts   *services.DistrictService
	landmarks   *services.LandmarkService
	poles       *services.PoleService
	jbs         *services.JunctionBoxService
	components  *services.ComponentService
	credentials *services.CredentialService
}

func NewEntitiesController(app application.Application) application.Controller {
	return &EntitiesController{
		app:         app,
		regions:     app.Service(services.RegionService{}).(*services.RegionService),
		districts:   app.Service(services.DistrictService{}).(*services.DistrictService),
		landmarks:   app.Service(services.LandmarkService{}).(*services.LandmarkService),
		poles:       app.Service(services.PoleService{}).(*services.PoleService),
		jbs:         app.Service(services.JunctionBoxService{}).(*services.JunctionBoxService),
		components:  app.Service(services.ComponentService{}).(*services.ComponentService),
		credentials: app.Service(services.CredentialService{}).(*services.CredentialService),
	}
}

func (c *EntitiesController) Key() string {
	return "/entities"
}

func (c *EntitiesController) Register(r *mux.Router) {
	registerCRUD(r, "/regions", c.regions)
	registerCRUD(r, "/districts", c.districts)
	registerCRUD(r, "/landmarks", c.landmarks)
	registerCRUD(r, "/poles", c.poles)
	registerCRUD(r, "/junction-boxes", c.jbs)
	registerCRUD(r, "/credentials", c.credentials)

	api := r.PathPrefix("/components").Subrouter()
	api.HandleFunc("", c.ListComponents).Methods(http.MethodGet)
	api.HandleFunc("", c.CreateComponent).Methods(http.MethodPost)
	api.HandleFunc("/{id}", c.GetComponent).Methods(http.MethodGet)
	api.HandleFunc("/{id}", c.ReplaceComponent).Methods(http.MethodPut)
	api.HandleFunc("/{id}", c.PatchComponent).Methods(http.MethodPatch)
	api.HandleFunc("/{id}", c.DeleteComponent).Methods(http.MethodDelete)
}

// setEntityID forces the route id onto the decoded body so a stray "id"
// field can never redirect a write.
func setEntityID(v any, id int64) {
	reflect.ValueOf(v).Elem().FieldByName("ID").SetInt(id)
}

func registerCRUD[T any](r *mux.Router, prefix string, svc crudService[T]) {
	api := r.PathPrefix(prefix).Subrouter()

	api.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), listParams(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = httpapi.WriteJSON(w, http.StatusOK, items)
	}).Methods(http.MethodGet)

	api.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		v := new(T)
		if err := decodeJSON(r.Body, v); err != nil {
			writeBadRequest(w, "invalid json body")
			return
		}
		created, err := svc.Create(r.Context(), v)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = httpapi.WriteJSON(w, http.StatusCreated, created)
	}).Methods(http.MethodPost)

	api.HandleFunc("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		v, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		_ = httpapi.WriteJSON(w, http.StatusOK, v)
	}).Methods(http.MethodGet)

	api.HandleFunc("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		v := new(T)
		if err := decodeJSON(r.Body, v); err != nil {
			writeBadRequest(w, "invalid json body")
			return
		}
		setEntityID(v, id)
		if err := svc.Update(r.Context(), v); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = httpapi.WriteJSON(w, http.StatusOK, v)
	}).Methods(http.MethodPut)

	// PATCH merges the body over the stored entity, so omitted fields
	// survive.
	api.HandleFunc("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		v, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if err := decodeJSON(r.Body, v); err != nil {
			writeBadRequest(w, "invalid json body")
			return
		}
		setEntityID(v, id)
		if err := svc.Update(r.Context(), v); err != nil {
			writeServiceError(w, err)
			return
		}
		_ = httpapi.WriteJSON(w, http.StatusOK, v)
	}).Methods(http.MethodPatch)

	api.HandleFunc("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)
}

func (c *EntitiesController) ListComponents(w http.ResponseWriter, r *http.Request) {
	items, err := c.components.List(r.Context(), listParams(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, items)
}

func (c *EntitiesController) GetComponent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	v, err := c.components.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, v)
}

func (c *EntitiesController) CreateComponent(w http.ResponseWriter, r *http.Request) {
	var v component.Component
	if err := decodeJSON(r.Body, &v); err != nil {
		writeBadRequest(w, "invalid json body")
		return
	}
	created, err := c.components.Create(r.Context(), &v)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, created)
}

func (c *EntitiesController) ReplaceComponent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var v component.Component
	if err := decodeJSON(r.Body, &v); err != nil {
		writeBadRequest(w, "invalid json body")
		return
	}
	v.ID = id
	if err := c.components.Update(r.Context(), &v); err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &v)
}

func (c *EntitiesController) PatchComponent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	existing, err := c.components.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	v := existing.Component
	if err := decodeJSON(r.Body, v); err != nil {
		writeBadRequest(w, "invalid json body")
		return
	}
	v.ID = id
	if err := c.components.Update(r.Context(), v); err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, v)
}

func (c *EntitiesController) DeleteComponent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := c.components.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
