// Package api provides the HTTP API server implementation.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/quantum-ledger/quantum-backend/internal/auth"
	"github.com/quantum-ledger/quantum-backend/internal/logging"
	"github.com/quantum-ledger/quantum-backend/internal/models"
)

// Service interfaces for dependency injection and testing

// AuthServiceInterface defines the interface for auth service operations
type AuthServiceInterface interface {
	Register(ctx context.Context, name, email, password string) (*auth.Session, error)
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	VerifyToken(token string) (*auth.Claims, error)
}

// PortfolioServiceInterface defines the interface for valuation operations
type PortfolioServiceInterface interface {
	Snapshot(ctx context.Context) *models.PortfolioSnapshot
	MarketListing(ctx context.Context) ([]models.MarketListingEntry, models.SnapshotSource)
}

// Pinger reports reachability of an optional backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP API server.
type Server struct {
	router           *mux.Router
	httpServer       *http.Server
	authService      AuthServiceInterface
	portfolioService PortfolioServiceInterface
	cachePing        Pinger
	config           *ServerConfig
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// NewServer creates a new API server instance. cachePing may be nil when no
// quote cache is configured.
func NewServer(
	config *ServerConfig,
	authService AuthServiceInterface,
	portfolioService PortfolioServiceInterface,
	cachePing Pinger,
) *Server {
	s := &Server{
		router:           mux.NewRouter(),
		authService:      authService,
		portfolioService: portfolioService,
		cachePing:        cachePing,
		config:           config,
	}

	s.setupRouter()

	return s
}

// setupRouter configures the router with middleware and routes
func (s *Server) setupRouter() {
	// Set up middleware (order matters!)
	s.router.Use(RequestIDMiddleware)
	s.router.Use(LoggingMiddleware)
	s.router.Use(RecoveryMiddleware)
	s.router.Use(CORSMiddleware)

	// mux skips Use() middleware on a method mismatch, so preflight OPTIONS
	// requests need the CORS handling wired in explicitly here.
	s.router.MethodNotAllowedHandler = CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()

	// Auth endpoints
	api.HandleFunc("/register", s.handleRegister).Methods("POST")
	api.HandleFunc("/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/me", s.requireAuth(s.handleMe)).Methods("GET")

	// Portfolio endpoints
	api.HandleFunc("/portfolio", s.requireAuth(s.handleGetPortfolio)).Methods("GET")
	api.HandleFunc("/trade", s.requireAuth(s.handleTrade)).Methods("POST")

	// Market listing shown on the landing page, no auth required
	api.HandleFunc("/markets", s.handleGetMarkets).Methods("GET")
}

// handleHealth handles health check requests. An unreachable quote cache is
// reported but does not make the service unhealthy; the dashboard degrades to
// direct feed fetches without it.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{
		"status":  "healthy",
		"service": "quantum-ledger-backend",
	}

	if s.cachePing != nil {
		if err := s.cachePing.Ping(r.Context()); err != nil {
			body["cache"] = "unreachable"
		} else {
			body["cache"] = "ok"
		}
	}

	respondJSON(w, http.StatusOK, body)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	logging.GetGlobalLogger().Infof("Starting API server on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.GetGlobalLogger().Info("Shutting down API server...")
	return s.httpServer.Shutdown(ctx)
}
