package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dealdeck/dealdeck/internal/domain"
)

// errorBody is the envelope every error response uses.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response body", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// writeDomainError maps the domain sentinel errors onto HTTP statuses.
// Anything unmapped is a 500 with the detail kept out of the response.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrDealNotFound):
		writeError(w, http.StatusNotFound, "deal_not_found", "deal not found")
	case errors.Is(err, domain.ErrHotelNotFound):
		writeError(w, http.StatusUnprocessableEntity, "hotel_not_found", "referenced hotel does not exist")
	case errors.Is(err, domain.ErrDuplicateDeal):
		writeError(w, http.StatusConflict, "duplicate_deal", "deal with this external id already exists")
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
