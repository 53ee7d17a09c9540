package rest

import (
	"encoding/json"
	"net/http"

	"github.com/finledger/finledger/internal/apperr"
	log "github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
}

// WriteJSON encodes body as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

// WriteError maps the error's kind to an HTTP status and writes a JSON body.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindReferential:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Errorf("internal error: %v", err)
	}
	WriteJSON(w, status, errorResponse{Error: err.Error()})
}
