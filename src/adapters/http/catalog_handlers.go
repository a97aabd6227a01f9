package http

import (
	"net/http"

	"historyatlas/src/domain"
)

// ListCollection devolve a coleção inteira; não há paginação nem filtros.
func (s *Server) ListCollection(collection domain.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.catalogService.List(r.Context(), collection)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

func (s *Server) GetTimeline(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalogService.Timeline(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}
