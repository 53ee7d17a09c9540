package category

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/finledger/finledger/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CategoryDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ns, err := ParseNamespace(mux.Vars(r)["namespace"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	categories, err := h.service.List(r.Context(), ns)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, CategoryDTO{ID: c.ID, Name: c.Name})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new category")
	ns, err := ParseNamespace(mux.Vars(r)["namespace"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, apperr.Validation("invalid request body: %v", err))
		return
	}

	created, err := h.service.Create(r.Context(), ns, dto.Name)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, CategoryDTO{ID: created.ID, Name: created.Name})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ns, err := ParseNamespace(vars["namespace"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		rest.WriteError(w, apperr.Validation("invalid category id %q", vars["id"]))
		return
	}

	if err := h.service.Delete(r.Context(), ns, id); err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
