package http

import (
	"net/http"

	"historyatlas/src/services/auth"
)

func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var request SignupRequest
	if err := decodeAndValidate(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := s.authService.Signup(r.Context(), auth.SignupInput{
		Name:     request.Name,
		Email:    request.Email,
		Password: request.Password,
		City:     request.City,
		Country:  request.Country,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var request LoginRequest
	if err := decodeAndValidate(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := s.authService.Login(r.Context(), request.Email, request.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	user, err := s.authService.Me(r.Context(), principal.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
