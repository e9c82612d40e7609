package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/halyard-auth/halyard-core/internal/adapters/driven/auth"
	"github.com/halyard-auth/halyard-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	persistence driving.AuthPersistence

	// Infrastructure
	tokens *auth.ServiceTokens
	store  Pinger // backing store health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	persistence driving.AuthPersistence,
	tokens *auth.ServiceTokens,
	store Pinger, // can be nil
) *Server {
	s := &Server{
		router:      http.NewServeMux(),
		version:     cfg.Version,
		persistence: persistence,
		tokens:      tokens,
		store:       store,
	}

	// Recovery wraps logging so a panicking handler still gets logged
	// with its 500.
	handler := NewLoggingMiddleware().Handler(s.router)
	handler = NewRecoveryMiddleware().Handler(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Create middleware
	authMiddleware := NewAuthMiddleware(s.tokens)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// User endpoints
	s.router.Handle("POST /api/v1/users",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateUser)))
	s.router.Handle("GET /api/v1/users/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetUser)))
	s.router.Handle("PUT /api/v1/users/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUpdateUser)))
	s.router.Handle("DELETE /api/v1/users/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteUser)))
	s.router.Handle("GET /api/v1/users/email/{email}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetUserByEmail)))
	s.router.Handle("GET /api/v1/users/account/{providerId}/{providerAccountId}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetUserByProviderAccount)))

	// Account endpoints
	s.router.Handle("POST /api/v1/accounts",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLinkAccount)))
	s.router.Handle("DELETE /api/v1/accounts/{providerId}/{providerAccountId}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUnlinkAccount)))

	// Session endpoints
	s.router.Handle("POST /api/v1/sessions",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateSession)))
	s.router.Handle("GET /api/v1/sessions/{token}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetSession)))
	s.router.Handle("PATCH /api/v1/sessions/{token}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUpdateSession)))
	s.router.Handle("DELETE /api/v1/sessions/{token}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteSession)))

	// Verification request endpoints. Tokens ride in POST bodies so the
	// plaintext never lands in access logs.
	s.router.Handle("POST /api/v1/verification-requests",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateVerificationRequest)))
	s.router.Handle("POST /api/v1/verification-requests/lookup",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLookupVerificationRequest)))
	s.router.Handle("POST /api/v1/verification-requests/delete",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteVerificationRequest)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
