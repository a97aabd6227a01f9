package http

import (
	"net/http"
)

func (s *Server) CreateOrder(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	var request CreateOrderRequest
	if err := decodeAndValidate(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := s.orderService.Create(r.Context(), principal.UserID, request.LineItems(), *request.Total)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (s *Server) ListOrders(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	orders, err := s.orderService.ListByUser(r.Context(), principal.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}
