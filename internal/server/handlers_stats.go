package server

import "net/http"

func (s *Server) handleCityStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deals.CityStats(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
