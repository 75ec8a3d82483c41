package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dealdeck/dealdeck/internal/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// parseListQuery maps query parameters onto a filter and page window.
// Unknown sort fields and malformed numbers are client errors.
func parseListQuery(q url.Values) (domain.DealFilter, int, int, error) {
	f := domain.DealFilter{
		City:     q.Get("city"),
		RoomType: q.Get("room_type"),
		SortBy:   q.Get("sort_by"),
	}

	if raw := q.Get("available"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, 0, 0, badParam{"available", "must be a boolean"}
		}
		f.Available = &v
	}
	if raw := q.Get("min_rating"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 5 {
			return f, 0, 0, badParam{"min_rating", "must be an integer between 1 and 5"}
		}
		f.MinRating = v
	}
	switch q.Get("order") {
	case "", "asc":
	case "desc":
		f.Descending = true
	default:
		return f, 0, 0, badParam{"order", `must be "asc" or "desc"`}
	}
	if err := f.Validate(); err != nil {
		return f, 0, 0, badParam{"sort_by", err.Error()}
	}

	skip := 0
	if raw := q.Get("skip"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return f, 0, 0, badParam{"skip", "must be a non-negative integer"}
		}
		skip = v
	}
	limit := defaultLimit
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxLimit {
			return f, 0, 0, badParam{"limit", "must be an integer between 1 and 100"}
		}
		limit = v
	}
	return f, skip, limit, nil
}

type badParam struct {
	name, reason string
}

func (e badParam) Error() string {
	return e.name + " " + e.reason
}

func (s *Server) handleListDeals(w http.ResponseWriter, r *http.Request) {
	f, skip, limit, err := parseListQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}

	page, err := s.deals.List(r.Context(), f, skip, limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageResponse(page))
}

func dealID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (s *Server) handleGetDeal(w http.ResponseWriter, r *http.Request) {
	id, ok := dealID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "deal id must be a positive integer")
		return
	}

	deal, err := s.deals.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDealResponse(deal))
}

func (s *Server) handleCreateDeal(w http.ResponseWriter, r *http.Request) {
	var req dealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}
	deal, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
		return
	}

	created, err := s.deals.Create(r.Context(), deal)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDealResponse(created))
}

func (s *Server) handleUpdateDeal(w http.ResponseWriter, r *http.Request) {
	id, ok := dealID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "deal id must be a positive integer")
		return
	}
	var req dealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}
	deal, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
		return
	}
	deal.ID = id

	updated, err := s.deals.Update(r.Context(), deal)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDealResponse(updated))
}

func (s *Server) handleDeleteDeal(w http.ResponseWriter, r *http.Request) {
	id, ok := dealID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_id", "deal id must be a positive integer")
		return
	}

	if err := s.deals.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
