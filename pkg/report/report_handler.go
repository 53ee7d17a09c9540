package report

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/finledger/finledger/internal/rest"
)

type Handler struct {
	service  Service
	renderer *CsvRendererImpl
}

func NewHandler(service Service, renderer *CsvRendererImpl) *Handler {
	return &Handler{service: service, renderer: renderer}
}

func (h *Handler) Monthly(w http.ResponseWriter, r *http.Request) {
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

	summary, err := h.service.MonthlySummary(r.Context(), month, year)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	csvBody, err := h.renderer.Render(summary)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=summary-%d-%02d.csv", year, month))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csvBody)); err != nil {
		rest.WriteError(w, err)
	}
}
