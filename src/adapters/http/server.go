package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"historyatlas/src/domain"
	"historyatlas/src/services/auth"
	"historyatlas/src/services/catalog"
	"historyatlas/src/services/orders"

	"github.com/go-chi/cors"
)

type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

// Server representa o servidor HTTP da API
type Server struct {
	logger         *slog.Logger
	server         *http.Server
	mux            *http.ServeMux
	port           int
	catalogService *catalog.CatalogService
	authService    *auth.AuthService
	orderService   *orders.OrderService
}

func NewServer(
	logger *slog.Logger,
	config ServerConfig,
	catalogService *catalog.CatalogService,
	authService *auth.AuthService,
	orderService *orders.OrderService,
) *Server {
	server := &Server{
		logger:         logger,
		mux:            http.NewServeMux(),
		port:           config.Port,
		catalogService: catalogService,
		authService:    authService,
		orderService:   orderService,
	}

	server.routes()

	allowedOrigins := config.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", config.Port),
		Handler:      corsHandler(server.recoverer(server.mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return server
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.Health)

	// Autenticação
	s.mux.HandleFunc("POST /api/auth/signup", s.Signup)
	s.mux.HandleFunc("POST /api/auth/login", s.Login)
	s.mux.Handle("GET /api/auth/me", s.authenticate(http.HandlerFunc(s.Me)))

	// Coleções de leitura
	for _, collection := range domain.CatalogCollections {
		s.mux.HandleFunc("GET /api/"+string(collection), s.ListCollection(collection))
	}
	s.mux.HandleFunc("GET /api/timeline", s.GetTimeline)

	// Pedidos
	s.mux.Handle("POST /api/orders", s.authenticate(http.HandlerFunc(s.CreateOrder)))
	s.mux.Handle("GET /api/orders", s.authenticate(http.HandlerFunc(s.ListOrders)))
}

// Handler expõe a cadeia completa (CORS + recover + rotas), usada também nos testes.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
