package budget

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/finledger/finledger/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type BudgetDTO struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`
}

type EvaluationDTO struct {
	Budgeted string `json:"budgeted"`
	Spent    string `json:"spent"`
	Delta    string `json:"delta"`
}

type PeriodNetDTO struct {
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	log.Debug("Setting budget")
	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, apperr.Validation("invalid request body: %v", err))
		return
	}
	amount, err := decimal.NewFromString(dto.Amount)
	if err != nil {
		rest.WriteError(w, apperr.Validation("invalid amount %q", dto.Amount))
		return
	}

	if err := h.service.Set(r.Context(), dto.Category, amount, dto.Month, dto.Year); err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, b := range budgets {
		dtos = append(dtos, BudgetDTO{
			ID:       b.ID,
			Category: b.Category,
			Amount:   b.Amount.String(),
			Month:    b.Month,
			Year:     b.Year,
		})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	month, year, err := periodFromQuery(r)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	eval, err := h.service.Evaluate(r.Context(), category, month, year)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, EvaluationDTO{
		Budgeted: eval.Budgeted.String(),
		Spent:    eval.Spent.String(),
		Delta:    eval.Delta.String(),
	})
}

func (h *Handler) NetForPeriod(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodFromQuery(r)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	net, err := h.service.NetForPeriod(r.Context(), month, year)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, PeriodNetDTO{
		Income:   net.Income.String(),
		Expenses: net.Expenses.String(),
		Net:      net.Net.String(),
	})
}

func periodFromQuery(r *http.Request) (int, int, error) {
	query := r.URL.Query()
	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		return 0, 0, apperr.Validation("invalid month %q", query.Get("month"))
	}
	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		return 0, 0, apperr.Validation("invalid year %q", query.Get("year"))
	}
	return month, year, nil
}
