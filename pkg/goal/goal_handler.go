package goal

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

type GoalDTO struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Target     string `json:"target"`
	Saved      string `json:"saved"`
	TargetDate string `json:"targetDate"`
}

type createGoalRequest struct {
	Name       string `json:"name"`
	Target     string `json:"target"`
	TargetDate string `json:"targetDate"`
}

type assignmentDTO struct {
	GoalID int    `json:"goalId"`
	Amount string `json:"amount"`
}

type allocateRequest struct {
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Assignments []assignmentDTO `json:"assignments"`
}

type rejectedDTO struct {
	GoalID int    `json:"goalId"`
	Amount string `json:"amount"`
	Reason string `json:"reason"`
}

type allocationResultDTO struct {
	Accepted  []assignmentDTO `json:"accepted"`
	Rejected  []rejectedDTO   `json:"rejected"`
	Remaining string          `json:"remaining"`
}

type withdrawalRequest struct {
	Amount     string `json:"amount"`
	Action     string `json:"action"`
	DestGoalID int    `json:"destGoalId,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating savings goal")
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, apperr.Validation("invalid request body: %v", err))
		return
	}
	target, err := decimal.NewFromString(req.Target)
	if err != nil {
		rest.WriteError(w, apperr.Validation("invalid target amount %q", req.Target))
		return
	}

	g, err := h.service.Create(r.Context(), req.Name, target, req.TargetDate)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, goalToDTO(g))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]GoalDTO, 0, len(goals))
	for _, g := range goals {
		dtos = append(dtos, goalToDTO(g))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) UpdateTarget(w http.ResponseWriter, r *http.Request) {
	id, err := goalIDFromPath(r)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	var req struct {
		Target string `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, apperr.Validation("invalid request body: %v", err))
		return
	}
	target, err := decimal.NewFromString(req.Target)
	if err != nil {
		rest.WriteError(w, apperr.Validation("invalid target amount %q", req.Target))
		return
	}

	if err := h.service.UpdateTarget(r.Context(), id, target); err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AvailableExcess(w http.ResponseWriter, r *http.Request) {
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

	excess, err := h.service.AvailableExcess(r.Context(), month, year)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]string{"excess": excess.String()})
}

func (h *Handler) Allocate(w http.ResponseWriter, r *http.Request) {
	log.Debug("Allocating excess income")
	var req allocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, apperr.Validation("invalid request body: %v", err))
		return
	}

	assignments := make([]Assignment, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		amount, err := decimal.NewFromString(a.Amount)
		if err != nil {
			rest.WriteError(w, apperr.Validation("invalid amount %q for goal %d", a.Amount, a.GoalID))
			return
		}
		assignments = append(assignments, Assignment{GoalID: a.GoalID, Amount: amount})
	}

	result, err := h.service.Allocate(r.Context(), req.Month, req.Year, assignments)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	dto := allocationResultDTO{
		Accepted:  make([]assignmentDTO, 0, len(result.Accepted)),
		Rejected:  make([]rejectedDTO, 0, len(result.Rejected)),
		Remaining: result.Remaining.String(),
	}
	for _, a := range result.Accepted {
		dto.Accepted = append(dto.Accepted, assignmentDTO{GoalID: a.GoalID, Amount: a.Amount.String()})
	}
	for _, rej := range result.Rejected {
		dto.Rejected = append(dto.Rejected, rejectedDTO{GoalID: rej.GoalID, Amount: rej.Amount.String(), Reason: rej.Reason})
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, err := goalIDFromPath(r)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	var req withdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, apperr.Validation("invalid request body: %v", err))
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		rest.WriteError(w, apperr.Validation("invalid amount %q", req.Amount))
		return
	}
	action, err := ParseWithdrawalAction(req.Action)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	if err := h.service.RemoveOrTransfer(r.Context(), id, amount, action, req.DestGoalID); err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	id, err := goalIDFromPath(r)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	percent, err := h.service.Progress(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]string{"percent": percent.String()})
}

func goalIDFromPath(r *http.Request) (int, error) {
	idString := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idString)
	if err != nil {
		return 0, apperr.Validation("invalid goal id %q", idString)
	}
	return id, nil
}

func goalToDTO(g Goal) GoalDTO {
	return GoalDTO{
		ID:         g.ID,
		Name:       g.Name,
		Target:     g.Target.String(),
		Saved:      g.Saved.String(),
		TargetDate: g.TargetDate.Format(DateLayout),
	}
}
