// Package server wires the document store, gateway registry, and
// contract service into an HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/vclens/vclens/internal/api"
	"github.com/vclens/vclens/internal/config"
	"github.com/vclens/vclens/internal/contracts"
	"github.com/vclens/vclens/internal/home"
	"github.com/vclens/vclens/internal/llmcall"
	"github.com/vclens/vclens/internal/providers"
	"github.com/vclens/vclens/internal/server/endpoints"
	"github.com/vclens/vclens/internal/store"
	"github.com/vclens/vclens/internal/svcctx"
)

// Server is the main vclens HTTP server.
type Server struct {
	httpServer *http.Server
	store      store.Store
	registry   *providers.Registry
	service    *contracts.Service
	calls      *llmcall.Log
	configMgr  *config.Manager
	logger     *slog.Logger
	homeDir    *home.Dir

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 0.0.0.0)
	Host string
	// Port is the port to listen on (default: 8000)
	Port int
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
	// Home is the vclens home directory
	Home *home.Dir
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.ConfigManager == nil {
		return nil, errors.New("config manager is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	appCfg := cfg.ConfigManager.Get()
	if cfg.Host == "" {
		cfg.Host = appCfg.Server.Host
	}
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Port == 0 {
		cfg.Port = appCfg.Server.Port
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}

	// Document store
	uploadsDir := appCfg.Storage.Dir
	if uploadsDir == "" {
		if cfg.Home == nil {
			return nil, errors.New("either storage.dir or a home directory is required")
		}
		uploadsDir = cfg.Home.UploadsPath()
	}
	layout := store.Layout(appCfg.Storage.Layout)
	if layout == "" {
		layout = store.LayoutFlat
	}
	st, err := store.NewFSStore(uploadsDir, layout)
	if err != nil {
		return nil, fmt.Errorf("failed to create document store: %w", err)
	}

	// Gateway registry with hot reload
	registry := providers.NewRegistry()
	registry.SetLogger(cfg.Logger)
	registry.Reload(appCfg.ToRegistryConfig())
	cfg.ConfigManager.OnChange(func(c *config.Config) {
		registry.Reload(c.ToRegistryConfig())
		cfg.Logger.Info("gateway registry reloaded from config")
	})

	calls := llmcall.NewLog(llmcall.DefaultCapacity)

	service := contracts.NewService(contracts.Config{
		Store:    st,
		Registry: registry,
		Gateway:  appCfg.Model.Gateway,
		Params: contracts.ModelParams{
			SystemMessage: appCfg.Model.SystemMessage,
			MaxTokens:     appCfg.Model.MaxTokens,
			Temperature:   appCfg.Model.Temperature,
			TopP:          appCfg.Model.TopP,
		},
		Calls:  calls,
		Logger: cfg.Logger,
	})

	s := &Server{
		store:     st,
		registry:  registry,
		service:   service,
		calls:     calls,
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
		homeDir:   cfg.Home,
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All() {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute, // extraction waits on the model gateway
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start starts the server. It blocks until the context is cancelled or
// an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	// Create services struct for context enrichment
	s.services = &svcctx.Services{
		Store:     s.store,
		Registry:  s.registry,
		Contracts: s.service,
		Calls:     s.calls,
		ConfigMgr: s.configMgr,
		Logger:    s.logger,
		Home:      s.homeDir,
	}

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Registry returns the gateway registry.
func (s *Server) Registry() *providers.Registry {
	return s.registry
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.services != nil {
			ctx = svcctx.WithServices(ctx, s.services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable if the services aren't ready.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.services == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
