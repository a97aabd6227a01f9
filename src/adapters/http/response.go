package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"historyatlas/src/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError traduz erros de domínio em status HTTP. Erros inesperados são
// logados e respondidos com a mensagem genérica.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUserAlreadyExists):
		writeError(w, http.StatusBadRequest, domain.ErrUserAlreadyExists.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, domain.ErrInvalidInput.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, domain.ErrUserNotFound.Error())
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, domain.ErrUnavailableServer.Error())
	}
}

// decodeAndValidate lê o corpo JSON e aplica as tags validate do DTO.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidBody
	}
	return validateStruct(dst)
}
