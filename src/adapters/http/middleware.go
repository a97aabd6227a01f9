package http

import (
	"context"
	"net/http"
	"strings"

	"historyatlas/src/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// authenticate exige "Authorization: Bearer <token>". Sem token: 401; token inválido
// ou expirado: 403. Em ambos os casos o handler não é chamado.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Access token required")
			return
		}

		principal, err := s.authService.Authenticate(token)
		if err != nil {
			s.logger.Debug("rejected token", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusForbidden, domain.ErrInvalidToken.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, principal)))
	})
}

// bearerToken devolve o segundo campo separado por espaço simples. O esquema não é
// conferido: "Basic x" chega à validação e vira 403, "Bearer" sozinho vira 401.
func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func principalFrom(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(domain.Principal)
	return principal, ok
}

// recoverer transforma panics em 500 genérico.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}
				s.logger.Error("panic serving request", "method", r.Method, "path", r.URL.Path, "panic", recovered)
				writeError(w, http.StatusInternalServerError, domain.ErrUnavailableServer.Error())
			}
		}()

		next.ServeHTTP(w, r)
	})
}
