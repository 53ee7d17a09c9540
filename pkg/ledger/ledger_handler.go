package ledger

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/finledger/finledger/internal/rest"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type EntryDTO struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
}

type addEntryRequest struct {
	CategoryID int    `json:"categoryId"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
}

type updateAmountRequest struct {
	Amount string `json:"amount"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding ledger entry")
	kind, err := ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, apperr.Validation("invalid request body: %v", err))
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		rest.WriteError(w, apperr.Validation("invalid amount %q", req.Amount))
		return
	}

	entry, err := h.service.Add(r.Context(), kind, req.CategoryID, amount, req.Date)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, entryToDTO(entry))
}

func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	kind, err := ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	query := r.URL.Query()
	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		rest.WriteError(w, apperr.Validation("invalid month %q", query.Get("month")))
		return
	}
	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		rest.WriteError(w, apperr.Validation("invalid year %q", query.Get("year")))
		return
	}

	entries, err := h.service.View(r.Context(), kind, month, year, query.Get("category"))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, entryToDTO(e))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) UpdateAmount(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind, err := ParseKind(vars["kind"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		rest.WriteError(w, apperr.Validation("invalid entry id %q", vars["id"]))
		return
	}

	var req updateAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, apperr.Validation("invalid request body: %v", err))
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		rest.WriteError(w, apperr.Validation("invalid amount %q", req.Amount))
		return
	}

	if err := h.service.UpdateAmount(r.Context(), kind, id, amount); err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func entryToDTO(e Entry) EntryDTO {
	return EntryDTO{
		ID:       e.ID,
		Category: e.Category,
		Amount:   e.Amount.String(),
		Date:     e.Date.Format(DateLayout),
	}
}
